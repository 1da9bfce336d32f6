package metaclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	metadomain "github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/domain"
	"github.com/purgedigital/agency-controller-api/internal/config"
	"github.com/purgedigital/agency-controller-api/internal/domain"
)

// Client é a superfície da API do Meta consumida pelo sistema. O token de
// acesso é fornecido por chamada porque cada sessão autentica com o token do
// próprio usuário.
type Client interface {
	ListAdAccounts(token string) ([]metadomain.AdAccount, error)
	GetAccountInsights(token, accountID string, rng domain.RangeSelection, fields []string) (*metadomain.AccountInsight, error)
	GetActivitiesPage(token, accountID string, query ActivityQuery) (*metadomain.ActivityPage, error)
	GetAccountUsers(token, accountID string, limit int) ([]metadomain.AccountUser, error)
}

type GraphClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &GraphClient{
		Cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// get executa uma requisição GET autenticada contra a API e decodifica a
// resposta em out
func (c *GraphClient) get(path, token string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("access_token", token)

	requestURL := fmt.Sprintf("%s%s?%s", c.Cfg.Meta.URL, path, params.Encode())

	req, err := http.NewRequest(http.MethodGet, requestURL, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Error("Erro ao fazer a requisição")
		return errors.Wrap(err, "erro de comunicação com a API do Meta")
	}
	defer resp.Body.Close()

	body, err := handleResponse(resp)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		logrus.WithError(err).WithField("path", path).Error("Erro ao decodificar JSON")
		return err
	}

	return nil
}

// handleResponse lê o corpo e verifica o envelope de erro da aplicação.
// Respostas com o campo "error" são falhas mesmo com status de transporte de
// sucesso.
func handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler o corpo da resposta")
	}

	var errResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && !errResp.IsEmpty() {
		return nil, &errResp.Error
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("resposta inesperada da API: status %s", resp.Status)
	}

	return body, nil
}
