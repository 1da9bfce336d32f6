package domain

import (
	"sort"
	"strings"
)

// AccountStatus representa o status de uma conta de anúncios na API do Meta.
// A API usa códigos numéricos e pode introduzir novos códigos, por isso o
// tipo é um enum aberto e não um booleano.
type AccountStatus int

const (
	AccountStatusUnknown           AccountStatus = 0
	AccountStatusActive            AccountStatus = 1
	AccountStatusDisabled          AccountStatus = 2
	AccountStatusUnsettled         AccountStatus = 3
	AccountStatusPendingRiskReview AccountStatus = 7
	AccountStatusPendingClosure    AccountStatus = 100
	AccountStatusClosed            AccountStatus = 101
)

// IsActive indica se a conta está ativa para fins de filtro
func (s AccountStatus) IsActive() bool {
	return s == AccountStatusActive
}

// Account é o snapshot imutável de uma conta de anúncios obtido no login.
// Nunca é alterado localmente; é substituído por inteiro em um novo login.
type Account struct {
	ID          string        `json:"id"`
	AccountID   string        `json:"account_id"`
	Name        string        `json:"name"`
	Status      AccountStatus `json:"account_status"`
	Currency    string        `json:"currency"`
	AmountSpent float64       `json:"amount_spent"`
	Balance     float64       `json:"balance"`
}

// SortAccounts ordena as contas colocando as ativas primeiro e, dentro de
// cada grupo, por nome
func SortAccounts(accounts []Account) {
	sort.SliceStable(accounts, func(i, j int) bool {
		if accounts[i].Status.IsActive() != accounts[j].Status.IsActive() {
			return accounts[i].Status.IsActive()
		}
		return accounts[i].Name < accounts[j].Name
	})
}

// StatusFilter são os valores aceitos para o filtro de status de contas
type StatusFilter string

const (
	StatusFilterActive   StatusFilter = "active"
	StatusFilterInactive StatusFilter = "inactive"
	StatusFilterAll      StatusFilter = "all"
)

// AccountFilter são os predicados de filtragem expostos para a camada de UI
type AccountFilter struct {
	Status     StatusFilter
	AtRiskOnly bool
	Search     string
}

// FilterAccounts aplica os predicados de filtro sobre a lista de contas.
// atRisk é o conjunto de contas sinalizadas pelo último scan de risco.
func FilterAccounts(accounts []Account, filter AccountFilter, atRisk map[string]bool) []Account {
	result := make([]Account, 0, len(accounts))

	search := strings.ToLower(strings.TrimSpace(filter.Search))

	for _, acc := range accounts {
		switch filter.Status {
		case StatusFilterActive:
			if !acc.Status.IsActive() {
				continue
			}
		case StatusFilterInactive:
			if acc.Status.IsActive() {
				continue
			}
		}

		if filter.AtRiskOnly && !atRisk[acc.AccountID] {
			continue
		}

		if search != "" && !strings.Contains(strings.ToLower(acc.Name), search) {
			continue
		}

		result = append(result, acc)
	}

	return result
}
