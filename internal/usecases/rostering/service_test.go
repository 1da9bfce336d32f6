package rostering

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	metadomain "github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/domain"
	"github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/mocks"
	"github.com/purgedigital/agency-controller-api/internal/config"
	"github.com/purgedigital/agency-controller-api/internal/domain"
)

const testToken = "token-abc"

// memoryCache é um cache simples de equipes para os testes
type memoryCache struct {
	rosters map[string][]domain.TeamMember
}

func newMemoryCache() *memoryCache {
	return &memoryCache{rosters: make(map[string][]domain.TeamMember)}
}

func (c *memoryCache) Get(accountID string) ([]domain.TeamMember, bool) {
	roster, ok := c.rosters[accountID]
	return roster, ok
}

func (c *memoryCache) Put(accountID string, roster []domain.TeamMember) {
	c.rosters[accountID] = roster
}

func newTestService(client *mocks.MockClient) *Service {
	cfg := &config.Config{}
	cfg.Roster.UserLimit = 200
	return NewService(cfg, client)
}

func TestLoad(t *testing.T) {
	t.Run("Normaliza os usuários e faz uma única chamada de rede por conta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockClient := mocks.NewMockClient(ctrl)
		service := newTestService(mockClient)
		cache := newMemoryCache()

		// Uma única chamada, mesmo com dois Load
		mockClient.EXPECT().
			GetAccountUsers(testToken, "act_1", 200).
			Return([]metadomain.AccountUser{
				{ID: "u-1", Name: "Carla Dias", Email: "carla@example.com", Role: "ADMIN"},
				{Name: "", Email: "", Role: ""},
			}, nil).
			Times(1)

		roster, err := service.Load(testToken, "act_1", cache)
		require.NoError(t, err)
		require.Len(t, roster, 2)

		assert.Equal(t, "u-1", roster[0].ID)
		assert.Equal(t, []string{"ADMIN"}, roster[0].AccessLabels)

		// Campos ausentes recebem os valores padrão
		assert.Equal(t, "member-1", roster[1].ID)
		assert.Equal(t, "Unknown User", roster[1].Name)
		assert.Equal(t, "Email not available", roster[1].Email)
		assert.Equal(t, "Assigned User", roster[1].Role)

		// Segunda consulta é servida do cache
		cached, err := service.Load(testToken, "act_1", cache)
		require.NoError(t, err)
		assert.Equal(t, roster, cached)
	})

	t.Run("Falha na busca cacheia equipe vazia e devolve o erro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockClient := mocks.NewMockClient(ctrl)
		service := newTestService(mockClient)
		cache := newMemoryCache()

		mockClient.EXPECT().
			GetAccountUsers(testToken, "act_1", 200).
			Return(nil, errors.New("permission denied")).
			Times(1)

		roster, err := service.Load(testToken, "act_1", cache)
		assert.Error(t, err)
		assert.Nil(t, roster)

		// A falha não é retentada na mesma sessão: o cache devolve vazio
		cached, err := service.Load(testToken, "act_1", cache)
		require.NoError(t, err)
		assert.Empty(t, cached)
	})

	t.Run("Sem cache, a busca é feita a cada chamada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockClient := mocks.NewMockClient(ctrl)
		service := newTestService(mockClient)

		mockClient.EXPECT().
			GetAccountUsers(testToken, "act_1", 200).
			Return([]metadomain.AccountUser{{ID: "u-1", Name: "Carla Dias"}}, nil).
			Times(2)

		for i := 0; i < 2; i++ {
			roster, err := service.Load(testToken, "act_1", nil)
			require.NoError(t, err)
			assert.Len(t, roster, 1)
		}
	})
}
