package metaclient

import (
	"github.com/pkg/errors"

	metadomain "github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/domain"
)

// ActivityPager é o subconjunto do cliente necessário para a paginação do
// log de atividades
type ActivityPager interface {
	GetActivitiesPage(token, accountID string, query ActivityQuery) (*metadomain.ActivityPage, error)
}

// FetchAllActivities percorre o log de atividades até o esgotamento do
// cursor, acumulando todas as páginas em uma única sequência na ordem da
// API. A fonte remota garante que as páginas não se sobrepõem, então não há
// deduplicação. Uma falha em qualquer página aborta a operação inteira e os
// resultados parciais são descartados; quem chama decide se refaz a busca.
func FetchAllActivities(client ActivityPager, token, accountID string, query ActivityQuery) ([]metadomain.ActivityLogEntry, error) {
	var activityLog []metadomain.ActivityLogEntry

	after := ""
	for {
		query.After = after

		page, err := client.GetActivitiesPage(token, accountID, query)
		if err != nil {
			return nil, errors.Wrapf(err, "erro ao paginar atividades da conta %s", accountID)
		}

		activityLog = append(activityLog, page.Data...)

		after = page.Paging.Cursors.After
		if after == "" || len(page.Data) == 0 {
			break
		}
	}

	return activityLog, nil
}
