package metaclient

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	metadomain "github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/domain"
	"github.com/purgedigital/agency-controller-api/internal/domain"
)

type ResponseAccountInsights struct {
	Data []metadomain.AccountInsight `json:"data"`
}

// GetAccountInsights obtém o registro agregado de métricas de uma conta para
// o intervalo selecionado. A API retorna zero ou um registro; zero registros
// resulta em nil sem erro.
func (c *GraphClient) GetAccountInsights(token, accountID string, rng domain.RangeSelection, fields []string) (*metadomain.AccountInsight, error) {
	params := url.Values{}
	params.Set("fields", strings.Join(fields, ","))
	params.Set("level", "account")

	if preset := rng.DatePreset(); preset != "" {
		params.Set("date_preset", preset)
	} else {
		timeRange := fmt.Sprintf(
			`{"since":"%s","until":"%s"}`,
			rng.Start.Format(time.DateOnly),
			rng.End.Format(time.DateOnly),
		)
		params.Set("time_range", timeRange)
	}

	var response ResponseAccountInsights
	if err := c.get(fmt.Sprintf("/%s/insights", accountID), token, params, &response); err != nil {
		return nil, err
	}

	if len(response.Data) == 0 {
		return nil, nil
	}

	return &response.Data[0], nil
}
