package metaclient

import (
	"net/url"
	"strconv"

	metadomain "github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/domain"
)

type ResponseAdAccounts struct {
	Data []metadomain.AdAccount `json:"data"`
}

const adAccountFields = "account_id,name,account_status,currency,amount_spent,balance"

// ListAdAccounts lista as contas de anúncios acessíveis pelo token informado
func (c *GraphClient) ListAdAccounts(token string) ([]metadomain.AdAccount, error) {
	params := url.Values{}
	params.Set("fields", adAccountFields)
	params.Set("limit", strconv.Itoa(c.Cfg.Meta.AccountListLimit))

	var response ResponseAdAccounts
	if err := c.get("/me/adaccounts", token, params, &response); err != nil {
		return nil, err
	}

	return response.Data, nil
}
