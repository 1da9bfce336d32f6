package metaclient

import (
	"fmt"
	"net/url"
	"strconv"

	metadomain "github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/domain"
)

// ActivityQuery parametriza uma consulta ao log de atividades. Since e Until
// são segundos de época; After é o cursor opaco da página anterior.
type ActivityQuery struct {
	Fields string
	Limit  int
	Since  *int64
	Until  *int64
	After  string
}

func (q ActivityQuery) values() url.Values {
	params := url.Values{}
	if q.Fields != "" {
		params.Set("fields", q.Fields)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Since != nil {
		params.Set("since", strconv.FormatInt(*q.Since, 10))
	}
	if q.Until != nil {
		params.Set("until", strconv.FormatInt(*q.Until, 10))
	}
	if q.After != "" {
		params.Set("after", q.After)
	}
	return params
}

// GetActivitiesPage obtém uma página do log de atividades da conta
func (c *GraphClient) GetActivitiesPage(token, accountID string, query ActivityQuery) (*metadomain.ActivityPage, error) {
	var page metadomain.ActivityPage
	if err := c.get(fmt.Sprintf("/%s/activities", accountID), token, query.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}
