package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro da API
const (
	// Erros de autenticação (1000-1999)
	ErrInvalidAccessToken = "AUTH_001" // Token de acesso da API externa inválido ou expirado
	ErrInvalidToken       = "AUTH_002" // Token de sessão inválido
	ErrInvalidSession     = "AUTH_003" // Sessão expirada ou encerrada
	ErrMissingToken       = "AUTH_004" // Token de sessão ausente

	// Erros de validação (2000-2999)
	ErrInvalidRequest  = "VAL_001" // Requisição inválida
	ErrInvalidRange    = "VAL_002" // Intervalo de datas inválido
	ErrAccountNotFound = "VAL_003" // Conta fora do snapshot da sessão

	// Erros de concorrência (4000-4999)
	ErrScanConflict   = "CONF_001" // Scan de risco já em andamento
	ErrSyncSuperseded = "CONF_002" // Sincronização superada por uma mais recente

	// Erros do servidor (5000-5999)
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrExternalService = "SRV_002" // Erro em serviço externo
	ErrCommunication   = "SRV_003" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidAccessToken: http.StatusUnauthorized,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrInvalidSession:     http.StatusUnauthorized,
	ErrMissingToken:       http.StatusUnauthorized,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrInvalidRange:       http.StatusBadRequest,
	ErrAccountNotFound:    http.StatusNotFound,
	ErrScanConflict:       http.StatusConflict,
	ErrSyncSuperseded:     http.StatusConflict,
	ErrInternalServer:     http.StatusInternalServerError,
	ErrExternalService:    http.StatusBadGateway,
	ErrCommunication:      http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
