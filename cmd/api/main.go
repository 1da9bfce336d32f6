package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/purgedigital/agency-controller-api/infrastructure/integrator/meta/metaclient"
	"github.com/purgedigital/agency-controller-api/internal/api"
	"github.com/purgedigital/agency-controller-api/internal/config"
	"github.com/purgedigital/agency-controller-api/internal/scheduler"
	"github.com/purgedigital/agency-controller-api/internal/usecases/rostering"
	"github.com/purgedigital/agency-controller-api/internal/usecases/scanning"
	"github.com/purgedigital/agency-controller-api/internal/usecases/sessioning"
	"github.com/purgedigital/agency-controller-api/internal/usecases/syncing"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metaClient := metaclient.NewClient(cfg)

	scanService := scanning.NewService(cfg, metaClient)
	syncService := syncing.NewService(cfg, metaClient)
	rosterService := rostering.NewService(cfg, metaClient)
	sessionService := sessioning.NewService(cfg, metaClient, scanService)

	// Inicializa o agendador de re-scan periódico do portfólio
	portfolioRescanService := scheduler.NewPortfolioRescanService(sessionService, cfg)

	if err := portfolioRescanService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de re-scan do portfólio")
	} else {
		logrus.Info("Agendador de re-scan do portfólio iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		sessionService,
		syncService,
		rosterService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
