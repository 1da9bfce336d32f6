package handler

import (
	"net/http"

	"github.com/purgedigital/agency-controller-api/internal/domain"
	"github.com/purgedigital/agency-controller-api/internal/progress"
	"github.com/purgedigital/agency-controller-api/internal/usecases/sessioning"
	"github.com/purgedigital/agency-controller-api/pkg/apiErrors"
	"github.com/purgedigital/agency-controller-api/pkg/middleware"
)

type ScanStateResponse struct {
	Blocking   progress.BlockingState   `json:"blocking"`
	Background progress.BackgroundState `json:"background"`
	Records    []domain.RiskRecord      `json:"records"`
}

// ScanState devolve o estado das duas trilhas de progresso e os registros do
// último scan concluído. O cliente consulta esta rota para animar o modal
// bloqueante e o indicador de fundo.
func ScanState() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão não autenticada", nil)
			return
		}

		blocking, background := session.Tracker.Snapshot()
		records := session.RiskRecords()
		if records == nil {
			records = []domain.RiskRecord{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ScanStateResponse{
			Blocking:   blocking,
			Background: background,
			Records:    records,
		})
	})
}

type SkipScanResponse struct {
	Skipped bool `json:"skipped"`
}

// SkipScan dispensa o modal bloqueante de um scan pulável. O scan em si não
// é cancelado: ele continua na trilha de fundo até o fim.
func SkipScan() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão não autenticada", nil)
			return
		}

		skipped := session.Tracker.Skip()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SkipScanResponse{Skipped: skipped})
	})
}

// RunScan dispara um novo scan de risco sob demanda. Rejeitado com conflito
// quando a sessão já tem um scan em andamento.
func RunScan(service sessioning.Sessioner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão não autenticada", nil)
			return
		}

		if err := service.StartScan(session, true); err != nil {
			handleSessionError(w, err)
			return
		}

		w.WriteHeader(http.StatusAccepted)
	})
}
