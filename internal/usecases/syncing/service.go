// Package syncing implementa a sincronização de uma conta selecionada:
// métricas do intervalo ativo, o log de mudanças completo do intervalo, a
// atribuição de atividade aos membros da equipe e o veredito de saúde de 30
// dias.
package syncing

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	metadomain "github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/domain"
	"github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/metaclient"
	"github.com/purgedigital/agency-controller-api/internal/config"
	"github.com/purgedigital/agency-controller-api/internal/domain"
	"github.com/purgedigital/agency-controller-api/internal/usecases/classifying"
)

const (
	logFields     = "event_time,event_type,translated_event_type,actor_name,actor_id,object_name,object_id,object_type,object_link,extra_data,application_name"
	healthFields  = "event_time,event_type"
	healthWindow  = 30 // dias
	noHealthLabel = "None"
)

var insightFields = []string{
	"spend",
	"impressions",
	"cpm",
	"inline_link_clicks",
	"inline_link_click_ctr",
	"cost_per_inline_link_click",
	"actions",
	"action_values",
	"cost_per_action_type",
	"purchase_roas",
}

// Result é a saída de uma sincronização de conta. Cada bloco degrada de
// forma independente quando a busca correspondente falha: Insights fica nil,
// Logs fica vazio e Health fica nil.
type Result struct {
	Range          domain.RangeSelection         `json:"range"`
	Insights       *metadomain.AccountInsight    `json:"insights"`
	Logs           []metadomain.ActivityLogEntry `json:"logs"`
	ActivityCounts []domain.ActorActivity        `json:"activity_counts"`
	MainActorID    string                        `json:"main_actor_id,omitempty"`
	Health         *domain.HealthVerdict         `json:"health,omitempty"`
}

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

// Sync busca e reconcilia os dados da conta para o intervalo selecionado. As
// três buscas (métricas, log completo, amostra de saúde) correm em paralelo
// e falham de forma independente; o mapa de contagens só é computado depois
// que o log paginado está completo, de modo que o contribuidor principal
// nunca é calculado sobre um log parcial.
func (s *Service) Sync(token string, account domain.Account, rng domain.RangeSelection, roster []domain.TeamMember) *Result {
	result := &Result{
		Range: rng,
		Logs:  []metadomain.ActivityLogEntry{},
	}

	since, until := rng.ActivityWindow(s.now())
	logQuery := metaclient.ActivityQuery{
		Fields: logFields,
		Limit:  s.cfg.Scan.ActivityPageLimit,
		Since:  &since,
		Until:  until,
	}

	var (
		insight      *metadomain.AccountInsight
		logEntries   []metadomain.ActivityLogEntry
		healthSample []metadomain.ActivityLogEntry

		insightErr error
		logsErr    error
		healthErr  error
	)

	wg := sync.WaitGroup{}
	wg.Add(3)

	go func() {
		defer wg.Done()
		insight, insightErr = s.client.GetAccountInsights(token, account.ID, rng, insightFields)
	}()

	go func() {
		defer wg.Done()
		logEntries, logsErr = metaclient.FetchAllActivities(s.client, token, account.ID, logQuery)
	}()

	go func() {
		defer wg.Done()
		// O veredito de saúde usa uma amostra fixa, independente do
		// intervalo selecionado pelo usuário
		page, err := s.client.GetActivitiesPage(token, account.ID, metaclient.ActivityQuery{
			Fields: healthFields,
			Limit:  s.cfg.Scan.HealthSampleLimit,
		})
		if err != nil {
			healthErr = err
			return
		}
		healthSample = page.Data
	}()

	wg.Wait()

	if insightErr != nil {
		logrus.WithError(insightErr).WithField("account_id", account.ID).
			Warn("Falha ao buscar métricas da conta; bloco de métricas degradado")
	} else {
		result.Insights = insight
	}

	if logsErr != nil {
		logrus.WithError(logsErr).WithField("account_id", account.ID).
			Warn("Falha ao buscar o log de mudanças; log degradado para vazio")
	} else {
		result.Logs = logEntries
	}

	result.ActivityCounts = countActorActivity(result.Logs)
	result.MainActorID = resolveMainActor(result.ActivityCounts, roster)

	if healthErr != nil {
		logrus.WithError(healthErr).WithField("account_id", account.ID).
			Warn("Falha ao buscar a amostra de saúde; veredito omitido")
	} else {
		result.Health = s.healthVerdict(healthSample)
	}

	return result
}

// countActorActivity conta as entradas do log por autor normalizado,
// preservando a ordem de primeira aparição de cada autor. Essa ordem é o
// critério de desempate do contribuidor principal.
func countActorActivity(entries []metadomain.ActivityLogEntry) []domain.ActorActivity {
	counts := make([]domain.ActorActivity, 0)
	index := make(map[string]int)

	for _, entry := range entries {
		key := domain.NormalizeActorKey(entry.ActorName)
		if key == "" {
			continue
		}

		i, seen := index[key]
		if !seen {
			index[key] = len(counts)
			counts = append(counts, domain.ActorActivity{
				ActorKey: key,
				ActorID:  entry.ActorID,
			})
			i = index[key]
		}

		counts[i].Count++
		if counts[i].ActorID == "" && entry.ActorID != "" {
			counts[i].ActorID = entry.ActorID
		}
	}

	return counts
}

// resolveMainActor identifica o contribuidor principal e o traduz para um
// identificador da equipe. Empates são decididos pela primeira aparição no
// log; a tradução tenta o identificador exato do autor, depois o nome
// normalizado, e por fim cai no primeiro membro da equipe quando existe.
func resolveMainActor(counts []domain.ActorActivity, roster []domain.TeamMember) string {
	var top *domain.ActorActivity
	for i := range counts {
		if top == nil || counts[i].Count > top.Count {
			top = &counts[i]
		}
	}

	if top != nil {
		if top.ActorID != "" {
			for _, member := range roster {
				if member.ID == top.ActorID {
					return member.ID
				}
			}
		}

		for _, member := range roster {
			key := member.ActivityKey
			if key == "" {
				key = member.Name
			}
			if domain.NormalizeActorKey(key) == top.ActorKey {
				return member.ID
			}
		}
	}

	if len(roster) > 0 {
		return roster[0].ID
	}

	return ""
}

// healthVerdict computa o veredito de 30 dias a partir da amostra fixa de
// atividades: saudável quando existe mudança substantiva dentro da janela
func (s *Service) healthVerdict(sample []metadomain.ActivityLogEntry) *domain.HealthVerdict {
	cutoff := s.now().AddDate(0, 0, -healthWindow)

	lastSubstantive := classifying.FirstSubstantive(sample)
	if lastSubstantive == nil {
		return &domain.HealthVerdict{Healthy: false, LastDate: noHealthLabel}
	}

	ts, err := lastSubstantive.Timestamp()
	if err != nil {
		return &domain.HealthVerdict{Healthy: false, LastDate: noHealthLabel}
	}

	return &domain.HealthVerdict{
		Healthy:  ts.After(cutoff),
		LastDate: ts.Format(time.DateOnly),
	}
}
