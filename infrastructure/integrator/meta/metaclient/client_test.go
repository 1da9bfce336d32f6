package metaclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metadomain "github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/domain"
	"github.com/purgedigital/agency-controller-api/internal/config"
	"github.com/purgedigital/agency-controller-api/internal/domain"
)

func newTestClient(serverURL string) *GraphClient {
	cfg := &config.Config{}
	cfg.Meta.URL = serverURL
	cfg.Meta.AccountListLimit = 200

	return &GraphClient{
		Cfg:        cfg,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestListAdAccounts(t *testing.T) {
	t.Run("Decodifica a lista de contas e propaga token e campos na query", func(t *testing.T) {
		var gotQuery map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = map[string]string{
				"access_token": r.URL.Query().Get("access_token"),
				"fields":       r.URL.Query().Get("fields"),
				"limit":        r.URL.Query().Get("limit"),
			}

			assert.Equal(t, "/me/adaccounts", r.URL.Path)
			w.Write([]byte(`{"data":[{"id":"act_1","account_id":"1","name":"Loja Norte","account_status":1,"currency":"BRL","amount_spent":"1234.56","balance":"10.00"}]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		accounts, err := client.ListAdAccounts("token-abc")
		require.NoError(t, err)

		assert.Equal(t, "token-abc", gotQuery["access_token"])
		assert.Equal(t, adAccountFields, gotQuery["fields"])
		assert.Equal(t, "200", gotQuery["limit"])

		require.Len(t, accounts, 1)
		assert.Equal(t, "act_1", accounts[0].ID)
		assert.Equal(t, 1234.56, accounts[0].AmountSpentValue())
	})

	t.Run("Envelope de erro da aplicação é falha mesmo com status 200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"error":{"message":"Invalid OAuth access token","type":"OAuthException","code":190}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		accounts, err := client.ListAdAccounts("token-abc")
		require.Error(t, err)
		assert.Nil(t, accounts)

		details, ok := err.(*metadomain.ErrorDetails)
		require.True(t, ok)
		assert.Equal(t, 190, details.Code)
		assert.True(t, details.IsAuthError())
	})
}

func TestGetAccountInsights(t *testing.T) {
	t.Run("Preset nomeado vira date_preset na query", func(t *testing.T) {
		var gotQuery map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = map[string]string{
				"date_preset": r.URL.Query().Get("date_preset"),
				"time_range":  r.URL.Query().Get("time_range"),
				"level":       r.URL.Query().Get("level"),
			}
			w.Write([]byte(`{"data":[{"spend":"600.00","actions":[{"action_type":"lead","value":"10"}]}]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		insight, err := client.GetAccountInsights("t", "act_1", domain.RangeSelection{Preset: domain.RangeLast30d}, []string{"spend", "actions"})
		require.NoError(t, err)

		assert.Equal(t, "last_30d", gotQuery["date_preset"])
		assert.Empty(t, gotQuery["time_range"])
		assert.Equal(t, "account", gotQuery["level"])

		require.NotNil(t, insight)
		assert.Equal(t, 600.0, insight.SpendValue())
		assert.Equal(t, 10.0, insight.ActionValue(metadomain.BagActions, "lead"))
	})

	t.Run("Intervalo customizado vira time_range explícito", func(t *testing.T) {
		var gotTimeRange string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotTimeRange = r.URL.Query().Get("time_range")
			w.Write([]byte(`{"data":[{"spend":"1.00"}]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)

		_, err := client.GetAccountInsights("t", "act_1", domain.RangeSelection{
			Preset: domain.RangeCustom,
			Start:  &start,
			End:    &end,
		}, []string{"spend"})
		require.NoError(t, err)

		assert.Equal(t, `{"since":"2024-04-01","until":"2024-04-30"}`, gotTimeRange)
	})

	t.Run("Zero registros resulta em nil sem erro", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		insight, err := client.GetAccountInsights("t", "act_1", domain.RangeSelection{Preset: domain.RangeToday}, []string{"spend"})
		require.NoError(t, err)
		assert.Nil(t, insight)
	})
}

func TestGetActivitiesPage(t *testing.T) {
	t.Run("Propaga os parâmetros da consulta e decodifica a página", func(t *testing.T) {
		var gotQuery map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = map[string]string{
				"fields": r.URL.Query().Get("fields"),
				"limit":  r.URL.Query().Get("limit"),
				"since":  r.URL.Query().Get("since"),
				"after":  r.URL.Query().Get("after"),
			}

			assert.Equal(t, "/act_1/activities", r.URL.Path)
			w.Write([]byte(`{"data":[{"event_time":"2024-05-10T08:00:00-0300","event_type":"create_ad"}],"paging":{"cursors":{"after":"abc"}}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		since := int64(1714500000)
		page, err := client.GetActivitiesPage("t", "act_1", ActivityQuery{
			Fields: "event_time,event_type",
			Limit:  500,
			Since:  &since,
			After:  "prev-cursor",
		})
		require.NoError(t, err)

		assert.Equal(t, "event_time,event_type", gotQuery["fields"])
		assert.Equal(t, "500", gotQuery["limit"])
		assert.Equal(t, "1714500000", gotQuery["since"])
		assert.Equal(t, "prev-cursor", gotQuery["after"])

		require.Len(t, page.Data, 1)
		assert.Equal(t, "abc", page.Paging.Cursors.After)

		ts, err := page.Data[0].Timestamp()
		require.NoError(t, err)
		assert.Equal(t, 2024, ts.Year())
	})

	t.Run("Status de transporte inesperado sem envelope é erro", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`upstream timeout`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		page, err := client.GetActivitiesPage("t", "act_1", ActivityQuery{})
		assert.Error(t, err)
		assert.Nil(t, page)
	})
}
