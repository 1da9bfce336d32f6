package sessioning

import (
	"errors"
	"fmt"
)

// Tipos de erros de sessão personalizados
var (
	// Erros de autenticação
	ErrInvalidAccessToken = errors.New("token de acesso inválido ou expirado")
	ErrInvalidSession     = errors.New("sessão inválida")
	ErrSessionNotFound    = errors.New("sessão não encontrada")
	ErrInvalidToken       = errors.New("token de sessão inválido")

	// Erros de orquestração
	ErrScanAlreadyRunning = errors.New("um scan de risco já está em andamento para a sessão")
	ErrSyncSuperseded     = errors.New("sincronização substituída por uma seleção mais recente")

	// Erros de serviço externo
	ErrExternalService = errors.New("erro ao consultar o serviço externo")
)

// SessionError é um erro com contexto adicional de sessão
type SessionError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	SessionID string // ID da sessão envolvida (quando aplicável)
	Details   string // Detalhes adicionais
}

// Error implementa a interface error
func (e *SessionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *SessionError) Unwrap() error {
	return e.Err
}

// IsAuthenticationError verifica se o erro está relacionado a credenciais ou
// tokens inválidos
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrInvalidAccessToken) ||
		errors.Is(err, ErrInvalidSession) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrInvalidToken)
}

// NewSessionError cria um novo erro de sessão
func NewSessionError(baseErr error, code string, details string) *SessionError {
	return &SessionError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
