package classifying

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metadomain "github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/domain"
	"github.com/purgedigital/agency-controller-api/internal/domain"
)

func TestIsSubstantive(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		expected  bool
	}{
		{
			name:      "Mudança de orçamento é substantiva",
			eventType: "update_campaign_budget",
			expected:  true,
		},
		{
			name:      "Criação de anúncio é substantiva",
			eventType: "create_ad",
			expected:  true,
		},
		{
			name:      "Evento de cobrança é ruído",
			eventType: "ad_account_billing_charge",
			expected:  false,
		},
		{
			name:      "Marcador em caixa alta também é ruído",
			eventType: "BILLING_EVENT",
			expected:  false,
		},
		{
			name:      "Atualização de forma de pagamento é ruído",
			eventType: "payment_method_update",
			expected:  false,
		},
		{
			name:      "Emissão de fatura é ruído",
			eventType: "invoice_generated",
			expected:  false,
		},
		{
			name:      "Mudança de run_status é ruído",
			eventType: "campaign_run_status_change",
			expected:  false,
		},
		{
			name:      "Arquivamento é ruído",
			eventType: "archive_campaign",
			expected:  false,
		},
		{
			name:      "Remoção é ruído",
			eventType: "delete_ad",
			expected:  false,
		},
		{
			name:      "Rotulagem é ruído",
			eventType: "apply_label",
			expected:  false,
		},
		{
			name:      "Mudança de segmentação não casa com o marcador tag",
			eventType: "update_targeting",
			expected:  true,
		},
		{
			name:      "Tipo de evento vazio é substantivo por padrão",
			eventType: "",
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := metadomain.ActivityLogEntry{EventType: tt.eventType}
			assert.Equal(t, tt.expected, IsSubstantive(entry))
		})
	}
}

func TestFirstSubstantive(t *testing.T) {
	t.Run("Retorna a primeira entrada substantiva na ordem da API", func(t *testing.T) {
		entries := []metadomain.ActivityLogEntry{
			{EventType: "billing_charge", EventTime: "2024-05-14T10:00:00-0300"},
			{EventType: "update_campaign_budget", EventTime: "2024-05-13T09:00:00-0300"},
			{EventType: "create_ad", EventTime: "2024-05-12T08:00:00-0300"},
		}

		first := FirstSubstantive(entries)
		require.NotNil(t, first)
		assert.Equal(t, "update_campaign_budget", first.EventType)
	})

	t.Run("Retorna nil quando todas as entradas são ruído", func(t *testing.T) {
		entries := []metadomain.ActivityLogEntry{
			{EventType: "billing_charge"},
			{EventType: "archive_campaign"},
		}

		assert.Nil(t, FirstSubstantive(entries))
	})

	t.Run("Retorna nil para amostra vazia", func(t *testing.T) {
		assert.Nil(t, FirstSubstantive(nil))
	})
}

func TestParseChangeDetail(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name     string
		raw      string
		expected domain.ChangeDetail
	}{
		{
			name:     "Payload vazio produz texto bruto vazio",
			raw:      "",
			expected: domain.ChangeDetail{Kind: domain.ChangeDetailRaw},
		},
		{
			name:     "JSON inválido degrada para texto bruto",
			raw:      "{oops",
			expected: domain.ChangeDetail{Kind: domain.ChangeDetailRaw, Raw: "{oops"},
		},
		{
			name: "Lista JSON vira a variante de lista com itens textuais",
			raw:  `["budget", "audience", 3]`,
			expected: domain.ChangeDetail{
				Kind:  domain.ChangeDetailList,
				Items: []string{"budget", "audience", "3"},
			},
		},
		{
			name: "Objeto com old_value e new_value vira diff",
			raw:  `{"old_value": "100", "new_value": "250"}`,
			expected: domain.ChangeDetail{
				Kind:     domain.ChangeDetailDiff,
				OldValue: strPtr("100"),
				NewValue: strPtr("250"),
			},
		},
		{
			name: "Diff sem o lado antigo omite o valor antigo",
			raw:  `{"new_value": "250"}`,
			expected: domain.ChangeDetail{
				Kind:     domain.ChangeDetailDiff,
				NewValue: strPtr("250"),
			},
		},
		{
			name: "old_value nulo é omitido, new_value nulo vira o texto null",
			raw:  `{"old_value": null, "new_value": null}`,
			expected: domain.ChangeDetail{
				Kind:     domain.ChangeDetailDiff,
				NewValue: strPtr("null"),
			},
		},
		{
			name: "Objeto genérico vira lista de campos ordenada por chave",
			raw:  `{"daily_budget": 100.5, "bid_strategy": "LOWEST_COST", "enabled": true}`,
			expected: domain.ChangeDetail{
				Kind: domain.ChangeDetailFields,
				Fields: []domain.FieldPair{
					{Key: "bid strategy", Value: "LOWEST_COST"},
					{Key: "daily budget", Value: "100.5"},
					{Key: "enabled", Value: "true"},
				},
			},
		},
		{
			name:     "Escalar numérico degrada para texto bruto",
			raw:      `42`,
			expected: domain.ChangeDetail{Kind: domain.ChangeDetailRaw, Raw: "42"},
		},
		{
			name:     "Escalar string degrada para o texto bruto original",
			raw:      `"hello"`,
			expected: domain.ChangeDetail{Kind: domain.ChangeDetailRaw, Raw: `"hello"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseChangeDetail(tt.raw))
		})
	}

	t.Run("Texto bruto é truncado no limite de caracteres", func(t *testing.T) {
		raw := "x" + strings.Repeat("y", 200)

		detail := ParseChangeDetail(raw)
		assert.Equal(t, domain.ChangeDetailRaw, detail.Kind)
		assert.Len(t, []rune(detail.Raw), rawFallbackLimit)
	})

	t.Run("Truncamento respeita caracteres multibyte", func(t *testing.T) {
		raw := strings.Repeat("ç", 150)

		detail := ParseChangeDetail(raw)
		assert.Equal(t, strings.Repeat("ç", rawFallbackLimit), detail.Raw)
	})
}
