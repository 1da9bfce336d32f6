package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/purgedigital/agency-controller-api/internal/usecases/sessioning"
	"github.com/purgedigital/agency-controller-api/pkg/apiErrors"
	"github.com/purgedigital/agency-controller-api/pkg/middleware"
)

type LoginRequest struct {
	AccessToken string `json:"access_token"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Accounts int    `json:"accounts"`
}

// Login valida o token de acesso, cria a sessão e dispara o scan inicial do
// portfólio em segundo plano. O cliente acompanha o scan pela rota de
// progresso.
func Login(service sessioning.Sessioner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.AccessToken == "" {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "access_token é obrigatório", nil)
			return
		}

		session, token, err := service.Login(req.AccessToken)
		if err != nil {
			handleSessionError(w, err)
			return
		}

		// O primeiro scan é pulável: o usuário pode dispensar o modal e o
		// scan continua na trilha de fundo
		if err := service.StartScan(session, true); err != nil {
			logrus.WithError(err).Warn("session: failed to start initial portfolio scan")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(LoginResponse{
			Token:    token,
			Accounts: len(session.Accounts()),
		})
	})
}

// Logout encerra a sessão e descarta todo o estado associado a ela
func Logout(service sessioning.Sessioner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão não autenticada", nil)
			return
		}

		service.Logout(session.ID)
		w.WriteHeader(http.StatusNoContent)
	})
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
	CreatedAt string `json:"created_at"`
	Accounts  int    `json:"accounts"`
}

// GetSession devolve o resumo da sessão autenticada
func GetSession() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão não autenticada", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SessionResponse{
			SessionID: session.ID,
			CreatedAt: session.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			Accounts:  len(session.Accounts()),
		})
	})
}

// handleSessionError trata erros de sessão e retorna a resposta apropriada
func handleSessionError(w http.ResponseWriter, err error) {
	var sessionErr *sessioning.SessionError
	if errors.As(err, &sessionErr) {
		apiErrors.WriteError(w, sessionErr.Code, sessionErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, sessioning.ErrInvalidAccessToken):
		apiErrors.WriteError(w, apiErrors.ErrInvalidAccessToken, "Token de acesso inválido ou expirado", nil)

	case errors.Is(err, sessioning.ErrSessionNotFound):
		apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Sessão expirada ou encerrada", nil)

	case errors.Is(err, sessioning.ErrScanAlreadyRunning):
		apiErrors.WriteError(w, apiErrors.ErrScanConflict, "Um scan já está em andamento", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar a sessão", nil)
	}
}
