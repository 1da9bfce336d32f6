package metaclient

import (
	"fmt"
	"net/url"
	"strconv"

	metadomain "github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/domain"
)

type ResponseAccountUsers struct {
	Data []metadomain.AccountUser `json:"data"`
}

// GetAccountUsers lista os usuários com acesso à conta, até o limite
// informado
func (c *GraphClient) GetAccountUsers(token, accountID string, limit int) ([]metadomain.AccountUser, error) {
	params := url.Values{}
	params.Set("fields", "id,name,email,role")
	params.Set("limit", strconv.Itoa(limit))

	var response ResponseAccountUsers
	if err := c.get(fmt.Sprintf("/%s/users", accountID), token, params, &response); err != nil {
		return nil, err
	}

	return response.Data, nil
}
