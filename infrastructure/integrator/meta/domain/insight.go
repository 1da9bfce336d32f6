package metadomain

import "strconv"

// ActionStat é uma entrada das coleções de ações do insight (actions,
// action_values, cost_per_action_type, purchase_roas)
type ActionStat struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// ActionBag identifica qual coleção de ações consultar em um insight
type ActionBag string

const (
	BagActions           ActionBag = "actions"
	BagActionValues      ActionBag = "action_values"
	BagCostPerActionType ActionBag = "cost_per_action_type"
	BagPurchaseROAS      ActionBag = "purchase_roas"
)

// AccountInsight é o registro agregado de métricas de uma conta para um
// intervalo de datas. A taxonomia de ações da API é aberta, então as ações
// são tratadas como um saco de valores indexado por action_type e não como
// campos fixos.
type AccountInsight struct {
	Spend                  string       `json:"spend"`
	Impressions            string       `json:"impressions"`
	CPM                    string       `json:"cpm"`
	InlineLinkClicks       string       `json:"inline_link_clicks"`
	InlineLinkClickCTR     string       `json:"inline_link_click_ctr"`
	CostPerInlineLinkClick string       `json:"cost_per_inline_link_click"`
	Actions                []ActionStat `json:"actions"`
	ActionValues           []ActionStat `json:"action_values"`
	CostPerActionType      []ActionStat `json:"cost_per_action_type"`
	PurchaseROAS           []ActionStat `json:"purchase_roas"`
	DateStart              string       `json:"date_start,omitempty"`
	DateStop               string       `json:"date_stop,omitempty"`
}

// SpendValue converte o gasto para float64; ausente ou inválido vira zero
func (i *AccountInsight) SpendValue() float64 {
	if i == nil {
		return 0
	}
	return parseAmount(i.Spend)
}

// ActionValue busca o valor numérico de uma ação pelo action_type na coleção
// indicada. Ações ausentes valem zero.
func (i *AccountInsight) ActionValue(bag ActionBag, actionType string) float64 {
	if i == nil {
		return 0
	}

	var stats []ActionStat
	switch bag {
	case BagActions:
		stats = i.Actions
	case BagActionValues:
		stats = i.ActionValues
	case BagCostPerActionType:
		stats = i.CostPerActionType
	case BagPurchaseROAS:
		stats = i.PurchaseROAS
	}

	for _, stat := range stats {
		if stat.ActionType == actionType {
			v, err := strconv.ParseFloat(stat.Value, 64)
			if err != nil {
				return 0
			}
			return v
		}
	}

	return 0
}
