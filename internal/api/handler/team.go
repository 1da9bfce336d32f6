package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/purgedigital/agency-controller-api/internal/domain"
	"github.com/purgedigital/agency-controller-api/internal/usecases/rostering"
	"github.com/purgedigital/agency-controller-api/pkg/apiErrors"
	"github.com/purgedigital/agency-controller-api/pkg/log"
	"github.com/purgedigital/agency-controller-api/pkg/middleware"
)

type TeamResponse struct {
	Members []domain.TeamMember `json:"members"`
	Total   int                 `json:"total"`
}

// AccountTeam devolve a equipe com acesso à conta. O resultado é servido do
// cache da sessão quando disponível; a primeira consulta por conta faz uma
// única chamada de rede.
func AccountTeam(rosterService *rostering.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão não autenticada", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		account, ok := session.FindAccount(id)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAccountNotFound, "Conta fora do snapshot da sessão", nil)
			return
		}

		roster, err := rosterService.Load(session.Token, account.ID, session)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"error":      err.Error(),
			}).Error("team: failed to load account roster")

			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao buscar a equipe da conta", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(TeamResponse{
			Members: roster,
			Total:   len(roster),
		}); err != nil {
			logger.WithError(err).Error("team: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
