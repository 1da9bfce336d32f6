package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/purgedigital/agency-controller-api/internal/domain"
	"github.com/purgedigital/agency-controller-api/internal/usecases/rostering"
	"github.com/purgedigital/agency-controller-api/internal/usecases/syncing"
	"github.com/purgedigital/agency-controller-api/pkg/apiErrors"
	"github.com/purgedigital/agency-controller-api/pkg/log"
	"github.com/purgedigital/agency-controller-api/pkg/middleware"
	"github.com/purgedigital/agency-controller-api/pkg/utils"
)

// AccountOverview sincroniza a conta selecionada para o intervalo pedido e
// devolve métricas, log de mudanças, atribuição de atividade e veredito de
// saúde. Uma seleção mais nova na mesma sessão supera esta: o resultado de
// uma sincronização superada é descartado e o cliente recebe um conflito.
func AccountOverview(syncService *syncing.Service, rosterService *rostering.Service) http.Handler {
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

		rng, err := parseRangeSelection(r)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"error":      err.Error(),
			}).Warn("overview: invalid range selection")

			apiErrors.WriteError(w, apiErrors.ErrInvalidRange, err.Error(), nil)
			return
		}

		gen := session.BeginSync()
		session.Tracker.BeginBlocking("Loading account data...", false)

		// A equipe degrada para vazia quando a busca falha; a sincronização
		// segue sem atribuição de atividade
		roster, rosterErr := rosterService.Load(session.Token, account.ID, session)
		if rosterErr != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"error":      rosterErr.Error(),
			}).Warn("overview: roster unavailable, syncing without team attribution")
			roster = nil
		}

		result := syncService.Sync(session.Token, account, rng, roster)

		if !session.IsCurrentSync(gen) {
			// Outra seleção começou enquanto esta sincronizava; o resultado
			// antigo é descartado e a trilha bloqueante pertence à mais nova
			logger.WithField("account_id", id).Info("overview: sync superseded by a newer selection")
			apiErrors.WriteError(w, apiErrors.ErrSyncSuperseded, "Sincronização superada por uma seleção mais recente", nil)
			return
		}

		session.Tracker.EndBlocking()

		logger.WithFields(log.Fields{
			"account_id": id,
			"entries":    len(result.Logs),
		}).Info("overview: account sync completed")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("overview: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// parseRangeSelection monta a seleção de intervalo a partir da query string.
// start e end implicam um intervalo customizado; sem parâmetros a seleção é
// a dos últimos 7 dias.
func parseRangeSelection(r *http.Request) (domain.RangeSelection, error) {
	query := r.URL.Query()

	rng := domain.RangeSelection{
		Preset: domain.RangePreset(query.Get("preset")),
	}

	if query.Get("start") != "" || query.Get("end") != "" {
		rng.Preset = domain.RangeCustom

		start, err := utils.ParseDate(query.Get("start"))
		if err != nil {
			return rng, err
		}
		end, err := utils.ParseDate(query.Get("end"))
		if err != nil {
			return rng, err
		}

		if query.Get("start") != "" {
			rng.Start = start
		}
		if query.Get("end") != "" {
			rng.End = end
		}
	}

	if rng.Preset == "" {
		rng.Preset = domain.RangeLast7d
	}

	return rng, rng.Validate()
}
