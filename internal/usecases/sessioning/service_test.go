package sessioning

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	metadomain "github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/domain"
	"github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/mocks"
	"github.com/purgedigital/agency-controller-api/internal/config"
	"github.com/purgedigital/agency-controller-api/internal/domain"
	"github.com/purgedigital/agency-controller-api/internal/usecases/scanning"
)

const testAccessToken = "graph-token-abc"

func newTestService(client *mocks.MockClient) *Service {
	cfg := &config.Config{}
	cfg.Auth.Secret = "test-secret"
	cfg.Auth.SessionTTLHours = 12
	cfg.Scan.DormancyDays = 7
	cfg.Scan.CostRiskThreshold = 60.0

	return NewService(cfg, client, scanning.NewService(cfg, client))
}

func TestLogin(t *testing.T) {
	t.Run("Login valida o token, congela o snapshot ordenado e emite o JWT", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockClient := mocks.NewMockClient(ctrl)
		service := newTestService(mockClient)

		mockClient.EXPECT().
			ListAdAccounts(testAccessToken).
			Return([]metadomain.AdAccount{
				{ID: "act_1", AccountID: "1", Name: "Zebra", Status: 2},
				{ID: "act_2", AccountID: "2", Name: "Mango", Status: 1, AmountSpent: "100.50"},
				{ID: "act_3", AccountID: "3", Name: "Echo", Status: 1},
			}, nil)

		session, token, err := service.Login(testAccessToken)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.NotEmpty(t, token)
		assert.Equal(t, testAccessToken, session.Token)

		// Ativas primeiro, por nome; inativas depois
		accounts := session.Accounts()
		require.Len(t, accounts, 3)
		assert.Equal(t, "Echo", accounts[0].Name)
		assert.Equal(t, "Mango", accounts[1].Name)
		assert.Equal(t, "Zebra", accounts[2].Name)
		assert.Equal(t, 100.50, accounts[1].AmountSpent)

		// O JWT resolve de volta para a mesma sessão
		resolved, err := service.Resolve(token)
		require.NoError(t, err)
		assert.Same(t, session, resolved)
	})

	t.Run("Token de acesso inválido não cria sessão", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockClient := mocks.NewMockClient(ctrl)
		service := newTestService(mockClient)

		mockClient.EXPECT().
			ListAdAccounts(testAccessToken).
			Return(nil, &metadomain.ErrorDetails{
				Message: "Invalid OAuth access token",
				Type:    "OAuthException",
				Code:    190,
			})

		session, token, err := service.Login(testAccessToken)
		assert.Nil(t, session)
		assert.Empty(t, token)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidAccessToken))
		assert.True(t, IsAuthenticationError(err))
		assert.Empty(t, service.ActiveSessions())
	})

	t.Run("Falha de comunicação vira erro de serviço externo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockClient := mocks.NewMockClient(ctrl)
		service := newTestService(mockClient)

		mockClient.EXPECT().
			ListAdAccounts(testAccessToken).
			Return(nil, errors.New("connection refused"))

		_, _, err := service.Login(testAccessToken)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrExternalService))
		assert.False(t, IsAuthenticationError(err))
	})
}

func TestLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	service := newTestService(mockClient)

	mockClient.EXPECT().
		ListAdAccounts(testAccessToken).
		Return([]metadomain.AdAccount{{ID: "act_1", AccountID: "1", Name: "Echo", Status: 1}}, nil)

	session, token, err := service.Login(testAccessToken)
	require.NoError(t, err)

	assert.True(t, service.Logout(session.ID))
	assert.False(t, service.Logout(session.ID))

	// O JWT ainda é válido criptograficamente, mas a sessão não existe mais
	_, err = service.Resolve(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestResolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newTestService(mocks.NewMockClient(ctrl))

	t.Run("Token malformado é rejeitado", func(t *testing.T) {
		_, err := service.Resolve("not-a-jwt")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})
}

func TestStartScan(t *testing.T) {
	t.Run("Scan sem contas conclui e encerra as duas trilhas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := newTestService(mocks.NewMockClient(ctrl))
		session := newSession("sess-1", testAccessToken, nil)

		require.NoError(t, service.StartScan(session, true))

		assert.Eventually(t, func() bool {
			return !session.scanRunning.Load()
		}, time.Second, 5*time.Millisecond)

		blocking, background := session.Tracker.Snapshot()
		assert.False(t, blocking.Active)
		assert.False(t, background.Active)
		assert.Empty(t, session.RiskRecords())
	})

	t.Run("Sessão com scan em andamento rejeita um novo scan", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := newTestService(mocks.NewMockClient(ctrl))
		session := newSession("sess-1", testAccessToken, nil)
		session.scanRunning.Store(true)

		err := service.StartScan(session, true)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrScanAlreadyRunning))
	})

	t.Run("Scan de fundo não toca a trilha bloqueante", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := newTestService(mocks.NewMockClient(ctrl))
		session := newSession("sess-1", testAccessToken, nil)

		require.NoError(t, service.StartBackgroundScan(session))

		assert.Eventually(t, func() bool {
			return !session.scanRunning.Load()
		}, time.Second, 5*time.Millisecond)

		blocking, _ := session.Tracker.Snapshot()
		assert.False(t, blocking.Active)
	})
}

func TestSessionSyncGeneration(t *testing.T) {
	session := newSession("sess-1", testAccessToken, nil)

	first := session.BeginSync()
	assert.True(t, session.IsCurrentSync(first))

	// Uma sincronização mais nova supera a anterior
	second := session.BeginSync()
	assert.False(t, session.IsCurrentSync(first))
	assert.True(t, session.IsCurrentSync(second))
}

func TestSessionRiskRecords(t *testing.T) {
	session := newSession("sess-1", testAccessToken, nil)

	session.SetRiskRecords([]domain.RiskRecord{
		{AccountID: "1", IsDormant: true},
		{AccountID: "2", IsHighCostRisk: true},
	})

	index := session.AtRiskIndex()
	assert.True(t, index["1"])
	assert.True(t, index["2"])
	assert.False(t, index["3"])

	// O resultado novo troca o antigo por inteiro, sem mesclar
	session.SetRiskRecords([]domain.RiskRecord{{AccountID: "3", IsDormant: true}})

	index = session.AtRiskIndex()
	assert.False(t, index["1"])
	assert.True(t, index["3"])
}
