package sessioning

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/purgedigital/agency-controller-api/internal/domain"
	"github.com/purgedigital/agency-controller-api/internal/progress"
)

// Session é o estado de um usuário autenticado: o token de acesso retido, o
// snapshot de contas do login, os registros do último scan de risco, o cache
// de equipes e as duas trilhas de progresso. Todo o estado vive em memória e
// é descartado em bloco no logout.
type Session struct {
	ID        string
	Token     string
	CreatedAt time.Time
	Tracker   *progress.Tracker

	mu          sync.RWMutex
	accounts    []domain.Account
	riskRecords []domain.RiskRecord
	riskIndex   map[string]bool
	rosters     map[string][]domain.TeamMember

	syncGen     atomic.Uint64
	scanRunning atomic.Bool
}

func newSession(id, token string, accounts []domain.Account) *Session {
	return &Session{
		ID:        id,
		Token:     token,
		CreatedAt: time.Now(),
		Tracker:   progress.NewTracker(),
		accounts:  accounts,
		riskIndex: make(map[string]bool),
		rosters:   make(map[string][]domain.TeamMember),
	}
}

// Accounts devolve o snapshot imutável de contas obtido no login
func (s *Session) Accounts() []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts
}

// FindAccount localiza uma conta do snapshot pelo identificador externo
func (s *Session) FindAccount(accountID string) (domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acc := range s.accounts {
		if acc.AccountID == accountID || acc.ID == accountID {
			return acc, true
		}
	}
	return domain.Account{}, false
}

// RiskRecords devolve os registros do último scan concluído
func (s *Session) RiskRecords() []domain.RiskRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.riskRecords
}

// AtRiskIndex devolve o conjunto de contas sinalizadas, indexado pelo
// identificador externo
func (s *Session) AtRiskIndex() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.riskIndex
}

// SetRiskRecords substitui atomicamente os registros de risco da sessão. Um
// scan nunca mescla com o anterior: o resultado novo troca o antigo por
// inteiro.
func (s *Session) SetRiskRecords(records []domain.RiskRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.riskRecords = records
	s.riskIndex = domain.RiskIndex(records)
}

// Get implementa rostering.Cache
func (s *Session) Get(accountID string) ([]domain.TeamMember, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roster, ok := s.rosters[accountID]
	return roster, ok
}

// Put implementa rostering.Cache
func (s *Session) Put(accountID string, roster []domain.TeamMember) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rosters[accountID] = roster
}

// BeginSync registra o início de uma sincronização de conta e devolve o
// número de geração dela. Uma sincronização mais nova supera as anteriores:
// o resultado de uma geração superada deve ser descartado.
func (s *Session) BeginSync() uint64 {
	return s.syncGen.Add(1)
}

// IsCurrentSync indica se a geração informada ainda é a mais recente
func (s *Session) IsCurrentSync(gen uint64) bool {
	return s.syncGen.Load() == gen
}
