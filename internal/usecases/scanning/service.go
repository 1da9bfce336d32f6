// Package scanning implementa o scan de risco do portfólio: cada conta é
// avaliada por dormência e por custo de aquisição sobre uma janela fixa dos
// últimos 30 dias.
package scanning

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	metadomain "github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/domain"
	"github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/metaclient"
	"github.com/purgedigital/agency-controller-api/internal/config"
	"github.com/purgedigital/agency-controller-api/internal/domain"
	"github.com/purgedigital/agency-controller-api/internal/usecases/classifying"
	"github.com/purgedigital/agency-controller-api/pkg/utils"
)

// ProgressFunc recebe o avanço do scan depois de cada conta processada
type ProgressFunc func(completed, total int, accountName string)

const scanActivityFields = "event_time,event_type,actor_name"

// noRecentHistoryLabel é o rótulo usado quando a conta não tem nenhuma
// mudança substantiva na amostra
const noRecentHistoryLabel = "No recent history"

var scanInsightFields = []string{"spend", "actions", "action_values"}

type Service struct {
	cfg    *config.Config
	client metaclient.Client
	now    func() time.Time
}

func NewService(cfg *config.Config, client metaclient.Client) *Service {
	return &Service{
		cfg:    cfg,
		client: client,
		now:    time.Now,
	}
}

// Scan percorre o portfólio sequencialmente e produz um RiskRecord por conta
// sinalizada; contas saudáveis são omitidas do resultado. As contas são
// processadas uma por vez para limitar a taxa de requisições contra a API,
// que é limitada por cota. A falha de uma conta nunca aborta o scan: a conta
// é apenas ignorada neste passe.
func (s *Service) Scan(token string, accounts []domain.Account, progress ProgressFunc) []domain.RiskRecord {
	results := make([]domain.RiskRecord, 0)
	cutoff := s.now().AddDate(0, 0, -s.cfg.Scan.DormancyDays)
	total := len(accounts)

	for i, account := range accounts {
		if progress != nil {
			progress(i+1, total, account.Name)
		}

		record, flagged := s.evaluateAccount(token, account, cutoff)
		if flagged {
			results = append(results, record)
		}
	}

	return results
}

// evaluateAccount avalia uma única conta. As duas buscas do passo (amostra
// de atividades e snapshot de métricas) correm em paralelo e são aguardadas
// juntas; a falha de uma não cancela a outra.
func (s *Service) evaluateAccount(token string, account domain.Account, cutoff time.Time) (domain.RiskRecord, bool) {
	var (
		sample     []metadomain.ActivityLogEntry
		insight    *metadomain.AccountInsight
		sampleErr  error
		insightErr error
	)

	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		page, err := s.client.GetActivitiesPage(token, account.ID, metaclient.ActivityQuery{
			Fields: scanActivityFields,
			Limit:  s.cfg.Scan.ActivitySampleLimit,
		})
		if err != nil {
			sampleErr = err
			return
		}
		sample = page.Data
	}()

	go func() {
		defer wg.Done()
		// O scan sempre usa a janela fixa dos últimos 30 dias,
		// independente do intervalo selecionado pelo usuário
		insight, insightErr = s.client.GetAccountInsights(
			token,
			account.ID,
			domain.RangeSelection{Preset: domain.RangeLast30d},
			scanInsightFields,
		)
	}()

	wg.Wait()

	if sampleErr != nil || insightErr != nil {
		logrus.WithFields(logrus.Fields{
			"account_id":    account.AccountID,
			"sample_error":  sampleErr,
			"insight_error": insightErr,
		}).Warn("Falha ao buscar dados da conta durante o scan de risco; conta ignorada neste passe")
		return domain.RiskRecord{}, false
	}

	isDormant := false
	lastChangeLabel := noRecentHistoryLabel

	lastSubstantive := classifying.FirstSubstantive(sample)
	if lastSubstantive == nil {
		isDormant = true
	} else {
		ts, err := lastSubstantive.Timestamp()
		if err != nil || ts.Before(cutoff) {
			isDormant = true
		}
		if err == nil {
			lastChangeLabel = ts.Format(time.DateOnly)
		}
	}

	isHighCostRisk := false
	cpa := 0.0

	spend := insight.SpendValue()
	leads := insight.ActionValue(metadomain.BagActions, "lead")
	purchases := insight.ActionValue(metadomain.BagActions, "purchase")
	totalConversions := int(leads) + int(purchases)

	threshold := s.cfg.Scan.CostRiskThreshold
	if totalConversions > 0 {
		cpa = spend / float64(totalConversions)
		if cpa > threshold {
			isHighCostRisk = true
		}
	} else if spend > threshold {
		// Conta sem conversões e com gasto acima do limiar é risco por
		// definição
		isHighCostRisk = true
	}

	if !isDormant && !isHighCostRisk {
		return domain.RiskRecord{}, false
	}

	return domain.RiskRecord{
		AccountID:             account.AccountID,
		IsDormant:             isDormant,
		IsHighCostRisk:        isHighCostRisk,
		CPA:                   utils.RoundWithTwoDecimalPlace(cpa),
		LastSubstantiveChange: lastChangeLabel,
	}, true
}
