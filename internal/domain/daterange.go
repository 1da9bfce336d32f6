package domain

import (
	"fmt"
	"time"
)

// RangePreset identifica um intervalo de datas nomeado para consultas de
// métricas e de log de atividades
type RangePreset string

const (
	RangeToday   RangePreset = "today"
	RangeLast7d  RangePreset = "7d"
	RangeLast30d RangePreset = "30d"
	RangeAllTime RangePreset = "all"
	RangeCustom  RangePreset = "custom"
)

// allTimeLookbackYears define a janela de "todo o período": a API não aceita
// um intervalo aberto, então usamos um retrocesso de várias décadas
const allTimeLookbackYears = 20

// RangeSelection é a seleção de intervalo ativa: um preset nomeado ou um par
// início/fim explícito quando o preset é RangeCustom
type RangeSelection struct {
	Preset RangePreset `json:"preset"`
	Start  *time.Time  `json:"start,omitempty"`
	End    *time.Time  `json:"end,omitempty"`
}

// Validate verifica se a seleção está completa e consistente
func (r RangeSelection) Validate() error {
	switch r.Preset {
	case RangeToday, RangeLast7d, RangeLast30d, RangeAllTime:
		return nil
	case RangeCustom:
		if r.Start == nil || r.End == nil {
			return fmt.Errorf("intervalo customizado exige datas de início e fim")
		}
		if r.Start.After(*r.End) {
			return fmt.Errorf("a data de início não pode ser posterior à data de fim")
		}
		return nil
	default:
		return fmt.Errorf("preset de intervalo desconhecido: %q", r.Preset)
	}
}

// DatePreset devolve o valor de date_preset esperado pela API para presets
// nomeados; a string vazia indica que a seleção usa time_range explícito
func (r RangeSelection) DatePreset() string {
	switch r.Preset {
	case RangeToday:
		return "today"
	case RangeLast7d:
		return "last_7d"
	case RangeLast30d:
		return "last_30d"
	case RangeAllTime:
		return "maximum"
	default:
		return ""
	}
}

// ActivityWindow converte a seleção para os limites since/until, em segundos
// de época, aceitos pelo endpoint de atividades. until é nil quando o limite
// superior é aberto.
func (r RangeSelection) ActivityWindow(now time.Time) (since int64, until *int64) {
	switch r.Preset {
	case RangeAllTime:
		return now.AddDate(-allTimeLookbackYears, 0, 0).Unix(), nil
	case RangeCustom:
		u := r.End.Unix()
		return r.Start.Unix(), &u
	case RangeToday:
		return now.AddDate(0, 0, -1).Unix(), nil
	case RangeLast30d:
		return now.AddDate(0, 0, -30).Unix(), nil
	default:
		return now.AddDate(0, 0, -7).Unix(), nil
	}
}
