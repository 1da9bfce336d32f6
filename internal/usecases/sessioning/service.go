// Package sessioning gerencia o ciclo de vida das sessões autenticadas: o
// login valida o token de acesso contra a API externa, retém o token no
// servidor e emite um JWT de sessão; o logout descarta todo o estado em
// bloco. O pacote também orquestra o scan de risco sobre as duas trilhas de
// progresso da sessão.
package sessioning

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"

	metadomain "github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/domain"
	"github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/metaclient"
	"github.com/purgedigital/agency-controller-api/internal/config"
	"github.com/purgedigital/agency-controller-api/internal/domain"
	"github.com/purgedigital/agency-controller-api/internal/usecases/scanning"
	"github.com/purgedigital/agency-controller-api/pkg/apiErrors"
)

type Sessioner interface {
	Login(accessToken string) (*Session, string, error)
	Logout(sessionID string) bool
	Resolve(tokenString string) (*Session, error)
	StartScan(session *Session, skippable bool) error
	StartBackgroundScan(session *Session) error
	ActiveSessions() []*Session
}

type Service struct {
	cfg     *config.Config
	client  metaclient.Client
	scanner *scanning.Service

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewService(cfg *config.Config, client metaclient.Client, scanner *scanning.Service) *Service {
	return &Service{
		cfg:      cfg,
		client:   client,
		scanner:  scanner,
		sessions: make(map[string]*Session),
	}
}

// Login valida o token de acesso buscando a lista de contas do usuário. A
// própria busca é a validação: um token inválido falha aqui e nenhuma sessão
// é criada. O snapshot de contas retornado fica congelado até o próximo
// login.
func (s *Service) Login(accessToken string) (*Session, string, error) {
	adAccounts, err := s.client.ListAdAccounts(accessToken)
	if err != nil {
		if details, ok := err.(*metadomain.ErrorDetails); ok && details.IsAuthError() {
			return nil, "", NewSessionError(ErrInvalidAccessToken, apiErrors.ErrInvalidAccessToken, details.Message)
		}
		return nil, "", NewSessionError(ErrExternalService, apiErrors.ErrExternalService, err.Error())
	}

	accounts := make([]domain.Account, 0, len(adAccounts))
	for _, acc := range adAccounts {
		accounts = append(accounts, domain.Account{
			ID:          acc.ID,
			AccountID:   acc.AccountID,
			Name:        acc.Name,
			Status:      domain.AccountStatus(acc.Status),
			Currency:    acc.Currency,
			AmountSpent: acc.AmountSpentValue(),
			Balance:     acc.BalanceValue(),
		})
	}
	domain.SortAccounts(accounts)

	id, err := gonanoid.New()
	if err != nil {
		return nil, "", NewSessionError(err, apiErrors.ErrInternalServer, "erro ao gerar o identificador da sessão")
	}

	session := newSession(id, accessToken, accounts)

	token, err := s.generateJWT(session)
	if err != nil {
		return nil, "", NewSessionError(err, apiErrors.ErrInternalServer, "erro ao gerar o token de sessão")
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"session_id": session.ID,
		"accounts":   len(accounts),
	}).Info("Sessão criada")

	return session, token, nil
}

// Logout remove a sessão e todo o seu estado derivado de uma vez: snapshot
// de contas, registros de risco, caches de equipe e trilhas de progresso
func (s *Service) Logout(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}

	delete(s.sessions, sessionID)
	logrus.WithField("session_id", sessionID).Info("Sessão encerrada")
	return true
}

// Resolve valida o token de sessão e devolve a sessão correspondente
func (s *Service) Resolve(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		return nil, NewSessionError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewSessionError(ErrInvalidToken, apiErrors.ErrInvalidToken, "claims inválidas")
	}

	s.mu.RLock()
	session, ok := s.sessions[claims.SessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, NewSessionError(ErrSessionNotFound, apiErrors.ErrInvalidSession, "sessão expirada ou encerrada")
	}

	return session, nil
}

// StartScan dispara o scan de risco do portfólio em segundo plano. As duas
// trilhas de progresso andam em sincronia durante o scan, mas pular a trilha
// bloqueante não interrompe o trabalho: o scan continua e atualiza a trilha
// de fundo até o fim. Uma sessão só corre um scan por vez.
func (s *Service) StartScan(session *Session, skippable bool) error {
	return s.runScan(session, true, skippable)
}

// StartBackgroundScan dispara um scan que atualiza somente a trilha de
// fundo. É o modo usado pelo re-scan periódico, que nunca deve abrir o modal
// bloqueante no cliente.
func (s *Service) StartBackgroundScan(session *Session) error {
	return s.runScan(session, false, false)
}

func (s *Service) runScan(session *Session, blocking, skippable bool) error {
	if !session.scanRunning.CompareAndSwap(false, true) {
		return NewSessionError(ErrScanAlreadyRunning, apiErrors.ErrScanConflict, "")
	}

	if blocking {
		session.Tracker.BeginBlocking("Analyzing portfolio health...", skippable)
	}
	session.Tracker.BeginBackground("Analyzing portfolio health...")

	go func() {
		defer session.scanRunning.Store(false)

		records := s.scanner.Scan(session.Token, session.Accounts(), func(completed, total int, accountName string) {
			percent := 0
			if total > 0 {
				percent = int(math.Round(float64(completed) / float64(total) * 100))
			}
			status := fmt.Sprintf("Checking %s (%d of %d)", accountName, completed, total)
			if blocking {
				session.Tracker.UpdateBlocking(status, percent)
			}
			session.Tracker.UpdateBackground(status, percent)
		})

		session.SetRiskRecords(records)
		if blocking {
			session.Tracker.EndBlocking()
		}
		session.Tracker.EndBackground()

		logrus.WithFields(logrus.Fields{
			"session_id": session.ID,
			"flagged":    len(records),
		}).Info("Scan de risco concluído")
	}()

	return nil
}

// ActiveSessions devolve as sessões vivas, para uso do re-scan periódico
func (s *Service) ActiveSessions() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}

func (s *Service) generateJWT(session *Session) (string, error) {
	ttl := time.Duration(s.cfg.Auth.SessionTTLHours) * time.Hour
	claims := domain.Claims{
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.Secret))
}
