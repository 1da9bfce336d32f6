// Package rostering carrega a equipe de uma conta e a mantém em cache por
// sessão, garantindo uma única chamada de rede por conta durante a vida da
// sessão.
package rostering

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/metaclient"
	"github.com/purgedigital/agency-controller-api/internal/config"
	"github.com/purgedigital/agency-controller-api/internal/domain"
)

// Cache guarda as equipes já resolvidas de uma sessão. A sessão é a dona do
// cache; o serviço apenas o consulta e o preenche.
type Cache interface {
	Get(accountID string) ([]domain.TeamMember, bool)
	Put(accountID string, roster []domain.TeamMember)
}

type Service struct {
	cfg    *config.Config
	client metaclient.Client
}

func NewService(cfg *config.Config, client metaclient.Client) *Service {
	return &Service{
		cfg:    cfg,
		client: client,
	}
}

// Load devolve a equipe da conta, consultando o cache antes da rede. Uma
// busca que falha grava uma equipe vazia no cache, de modo que a falha não é
// retentada dentro da mesma sessão, e ainda assim devolve o erro ao chamador.
func (s *Service) Load(token, accountID string, cache Cache) ([]domain.TeamMember, error) {
	if cache != nil {
		if roster, ok := cache.Get(accountID); ok {
			return roster, nil
		}
	}

	users, err := s.client.GetAccountUsers(token, accountID, s.cfg.Roster.UserLimit)
	if err != nil {
		logrus.WithError(err).WithField("account_id", accountID).
			Warn("Falha ao buscar a equipe da conta; equipe vazia cacheada para a sessão")
		if cache != nil {
			cache.Put(accountID, []domain.TeamMember{})
		}
		return nil, errors.Wrapf(err, "falha ao buscar a equipe da conta %s", accountID)
	}

	roster := make([]domain.TeamMember, 0, len(users))
	for i, user := range users {
		roster = append(roster, domain.NewTeamMember(user.ID, user.Name, user.Email, user.Role, i))
	}

	if cache != nil {
		cache.Put(accountID, roster)
	}

	return roster, nil
}
