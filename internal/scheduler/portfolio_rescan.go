package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/purgedigital/agency-controller-api/internal/config"
	"github.com/purgedigital/agency-controller-api/internal/usecases/sessioning"
)

// PortfolioRescanConfig representa a configuração do agendador de re-scan
type PortfolioRescanConfig struct {
	CronSchedule  string
	RescanEnabled bool
}

// PortfolioRescanService re-executa periodicamente o scan de risco das
// sessões ativas, para que os registros não envelheçam em sessões longas. O
// re-scan corre apenas na trilha de fundo de cada sessão.
type PortfolioRescanService struct {
	scheduler           *gocron.Scheduler
	config              PortfolioRescanConfig
	sessionService      sessioning.Sessioner
	rescanRunning       bool
	rescanMutex         sync.Mutex
	lastRescanStartedAt time.Time
}

// NewPortfolioRescanService cria uma nova instância do serviço de re-scan
func NewPortfolioRescanService(sessionService sessioning.Sessioner, appConfig *config.Config) *PortfolioRescanService {
	rescanConfig := PortfolioRescanConfig{
		CronSchedule:  appConfig.Rescan.CronSchedule,
		RescanEnabled: appConfig.Rescan.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  rescanConfig.CronSchedule,
		"rescan_enabled": rescanConfig.RescanEnabled,
	}).Info("Configuração do agendador de re-scan do portfólio carregada")

	return &PortfolioRescanService{
		scheduler:      scheduler,
		config:         rescanConfig,
		sessionService: sessionService,
	}
}

// Start inicia o agendador
func (s *PortfolioRescanService) Start(ctx context.Context) error {
	if !s.config.RescanEnabled {
		logrus.Info("Re-scan periódico do portfólio desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de re-scan do portfólio")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.rescanActiveSessions()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar re-scan do portfólio: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de re-scan do portfólio")
		s.scheduler.Stop()
	}()

	return nil
}

// rescanActiveSessions dispara o scan de fundo em cada sessão ativa
func (s *PortfolioRescanService) rescanActiveSessions() {
	s.rescanMutex.Lock()
	if s.rescanRunning {
		s.rescanMutex.Unlock()
		logrus.Info("Re-scan do portfólio já em andamento, ignorando")
		return
	}
	s.rescanRunning = true
	s.lastRescanStartedAt = time.Now()
	s.rescanMutex.Unlock()

	defer func() {
		s.rescanMutex.Lock()
		s.rescanRunning = false
		s.rescanMutex.Unlock()
	}()

	sessions := s.sessionService.ActiveSessions()
	if len(sessions) == 0 {
		logrus.Info("Nenhuma sessão ativa para re-scan do portfólio")
		return
	}

	logrus.WithField("sessions", len(sessions)).Info("Iniciando re-scan do portfólio das sessões ativas")

	for _, session := range sessions {
		if err := s.sessionService.StartBackgroundScan(session); err != nil {
			// Sessão com scan em andamento é apenas pulada neste ciclo
			logrus.WithFields(logrus.Fields{
				"session_id": session.ID,
				"error":      err.Error(),
			}).Info("Sessão pulada no re-scan do portfólio")
		}
	}
}

// GetStatus retorna o status atual do agendador
func (s *PortfolioRescanService) GetStatus() map[string]any {
	s.rescanMutex.Lock()
	defer s.rescanMutex.Unlock()

	return map[string]any{
		"rescan_enabled":         s.config.RescanEnabled,
		"rescan_cron":            s.config.CronSchedule,
		"rescan_running":         s.rescanRunning,
		"last_rescan_started_at": s.lastRescanStartedAt,
	}
}
