package metadomain

import "fmt"

// ErrorResponse representa a estrutura de erro da API do Meta. Qualquer
// resposta que contenha o campo "error" é tratada como falha, mesmo quando o
// status de transporte é de sucesso.
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// IsEmpty indica se a resposta não carrega um erro da aplicação
func (e *ErrorResponse) IsEmpty() bool {
	return e.Error.Code == 0 && e.Error.Message == "" && e.Error.Type == ""
}

// IsAuthError verifica se o erro é de token inválido ou expirado.
// O código 190 representa problema de token nas respostas da API do Meta;
// os subcódigos 460, 463 e 467 também indicam problemas de token.
func (e *ErrorDetails) IsAuthError() bool {
	return e.Code == 190 ||
		(e.Type == "OAuthException" && (e.ErrorSubcode == 460 || e.ErrorSubcode == 463 || e.ErrorSubcode == 467)) ||
		e.Type == "OAuthException"
}

// Error implementa a interface error expondo a mensagem da API
func (e *ErrorDetails) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s (%s, code %d)", e.Message, e.Type, e.Code)
	}
	return e.Message
}
