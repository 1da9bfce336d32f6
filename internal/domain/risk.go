package domain

// RiskRecord é o registro derivado de uma conta sinalizada durante o scan de
// portfólio. A ausência de uma conta no conjunto significa "saudável". O
// conjunto inteiro é substituído atomicamente ao fim de cada scan.
type RiskRecord struct {
	AccountID             string  `json:"account_id"`
	IsDormant             bool    `json:"is_dormant"`
	IsHighCostRisk        bool    `json:"is_high_cost_risk"`
	CPA                   float64 `json:"cpa"`
	LastSubstantiveChange string  `json:"last_substantive_change"`
}

// RiskIndex monta o conjunto de contas em risco para consulta rápida
func RiskIndex(records []RiskRecord) map[string]bool {
	index := make(map[string]bool, len(records))
	for _, r := range records {
		index[r.AccountID] = true
	}
	return index
}
