package handler

import (
	"net/http"

	"github.com/purgedigital/agency-controller-api/internal/domain"
	"github.com/purgedigital/agency-controller-api/pkg/apiErrors"
	"github.com/purgedigital/agency-controller-api/pkg/log"
	"github.com/purgedigital/agency-controller-api/pkg/middleware"
)

type AccountResponse struct {
	domain.Account
	AtRisk bool               `json:"at_risk"`
	Risk   *domain.RiskRecord `json:"risk,omitempty"`
}

type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Total    int               `json:"total"`
}

// AccountList lista o snapshot de contas da sessão com os filtros de status,
// risco e busca por nome. O snapshot nunca é rebuscado aqui; ele é congelado
// no login.
func AccountList() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão não autenticada", nil)
			return
		}

		filter := domain.AccountFilter{
			Status:     domain.StatusFilter(r.URL.Query().Get("status")),
			AtRiskOnly: r.URL.Query().Get("at_risk") == "true",
			Search:     r.URL.Query().Get("search"),
		}
		if filter.Status == "" {
			filter.Status = domain.StatusFilterAll
		}

		atRisk := session.AtRiskIndex()
		accounts := domain.FilterAccounts(session.Accounts(), filter, atRisk)

		riskByAccount := make(map[string]*domain.RiskRecord)
		records := session.RiskRecords()
		for i := range records {
			riskByAccount[records[i].AccountID] = &records[i]
		}

		response := AccountListResponse{
			Accounts: make([]AccountResponse, 0, len(accounts)),
			Total:    len(accounts),
		}
		for _, acc := range accounts {
			response.Accounts = append(response.Accounts, AccountResponse{
				Account: acc,
				AtRisk:  atRisk[acc.AccountID],
				Risk:    riskByAccount[acc.AccountID],
			})
		}

		logger.WithFields(log.Fields{
			"total":   response.Total,
			"at_risk": filter.AtRiskOnly,
		}).Debug("accounts: listing session accounts")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("accounts: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
