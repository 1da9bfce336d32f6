package metadomain

// AccountUser é um usuário com acesso a uma conta, como retornado por
// GET /{account_id}/users. Qualquer campo pode vir vazio.
type AccountUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
