package metadomain

import "strconv"

// AdAccount representa uma conta de anúncios como retornada por
// GET /me/adaccounts. Os campos monetários chegam como strings.
type AdAccount struct {
	ID          string `json:"id"`
	AccountID   string `json:"account_id"`
	Name        string `json:"name"`
	Status      int    `json:"account_status"`
	Currency    string `json:"currency"`
	AmountSpent string `json:"amount_spent"`
	Balance     string `json:"balance"`
}

// AmountSpentValue converte o gasto acumulado para float64; valores
// inválidos ou ausentes viram zero
func (a AdAccount) AmountSpentValue() float64 {
	return parseAmount(a.AmountSpent)
}

// BalanceValue converte o saldo para float64
func (a AdAccount) BalanceValue() float64 {
	return parseAmount(a.Balance)
}

func parseAmount(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
