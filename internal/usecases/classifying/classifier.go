// Package classifying separa as entradas do log de atividades entre mudanças
// substantivas e ruído administrativo, e interpreta o payload opaco de
// detalhes de cada entrada.
package classifying

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	metadomain "github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/domain"
	"github.com/purgedigital/agency-controller-api/internal/domain"
)

// noiseMarkers são os marcadores de eventos administrativos: cobrança,
// arquivamento e rotulagem não contam como atividade significativa para fins
// de dormência ou saúde da conta
var noiseMarkers = []string{
	"billing",
	"payment",
	"invoice",
	"run_status",
	"archive",
	"delete",
	"tag",
	"label",
}

// IsSubstantive indica se a entrada representa uma mudança significativa na
// conta. A comparação é por substring, sem diferenciar caixa.
func IsSubstantive(entry metadomain.ActivityLogEntry) bool {
	eventType := strings.ToLower(entry.EventType)
	for _, marker := range noiseMarkers {
		if strings.Contains(eventType, marker) {
			return false
		}
	}
	return true
}

// FirstSubstantive devolve a primeira entrada substantiva da sequência (a
// mais recente, já que a API retorna em ordem decrescente de data) ou nil
func FirstSubstantive(entries []metadomain.ActivityLogEntry) *metadomain.ActivityLogEntry {
	for i := range entries {
		if IsSubstantive(entries[i]) {
			return &entries[i]
		}
	}
	return nil
}

// rawFallbackLimit limita o texto bruto exibido quando o payload não casa
// com nenhuma forma conhecida
const rawFallbackLimit = 100

// ParseChangeDetail interpreta o payload extra_data de uma entrada e produz
// a união etiquetada correspondente. A função é total: payloads malformados
// degradam para a variante Raw truncada, nunca para um erro.
func ParseChangeDetail(raw string) domain.ChangeDetail {
	if raw == "" {
		return domain.ChangeDetail{Kind: domain.ChangeDetailRaw}
	}

	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return rawFallback(raw)
	}

	switch value := data.(type) {
	case []any:
		items := make([]string, 0, len(value))
		for _, item := range value {
			items = append(items, stringify(item))
		}
		return domain.ChangeDetail{Kind: domain.ChangeDetailList, Items: items}

	case map[string]any:
		oldValue, hasOld := value["old_value"]
		newValue, hasNew := value["new_value"]
		if hasOld || hasNew {
			detail := domain.ChangeDetail{Kind: domain.ChangeDetailDiff}
			// O lado ausente (ou old_value nulo) é omitido do diff
			if hasOld && oldValue != nil {
				s := stringify(oldValue)
				detail.OldValue = &s
			}
			if hasNew {
				s := stringify(newValue)
				detail.NewValue = &s
			}
			return detail
		}

		fields := make([]domain.FieldPair, 0, len(value))
		keys := make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fields = append(fields, domain.FieldPair{
				Key:   strings.ReplaceAll(key, "_", " "),
				Value: stringify(value[key]),
			})
		}
		return domain.ChangeDetail{Kind: domain.ChangeDetailFields, Fields: fields}

	default:
		// Escalares JSON válidos (número, string, booleano) não têm forma
		// estruturada reconhecida e caem no texto bruto
		return rawFallback(raw)
	}
}

func rawFallback(raw string) domain.ChangeDetail {
	runes := []rune(raw)
	if len(runes) > rawFallbackLimit {
		raw = string(runes[:rawFallbackLimit])
	}
	return domain.ChangeDetail{Kind: domain.ChangeDetailRaw, Raw: raw}
}

// stringify converte um valor JSON decodificado para a forma textual exibida
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}
