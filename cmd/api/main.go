package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jellywind/jellywind-api/infrastructure/database/postgres"
	"github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin"
	"github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin/jellyfinclient"
	"github.com/jellywind/jellywind-api/infrastructure/repository"
	"github.com/jellywind/jellywind-api/internal/api"
	"github.com/jellywind/jellywind-api/internal/config"
	"github.com/jellywind/jellywind-api/internal/scheduler"
	"github.com/jellywind/jellywind-api/internal/usecases/authenticating"
	"github.com/jellywind/jellywind-api/internal/usecases/insighting"
	"github.com/jellywind/jellywind-api/internal/usecases/reporting"
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

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	reportRepo := repository.NewReportRepository(pgConn)

	jellyfinClient := jellyfinclient.NewClient(cfg)
	jellyfinIntegrator := jellyfin.New(cfg, jellyfinClient)

	authenticator := authenticating.NewService(jellyfinIntegrator, cfg)
	insightService := insighting.NewService(cfg, jellyfinIntegrator)
	reportService := reporting.NewService(reportRepo)

	// Inicializa o agendador de limpeza de definições de relatório
	reportRetentionService := scheduler.NewReportRetentionService(reportRepo, cfg)

	if err := reportRetentionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de retenção de relatórios")
	} else {
		logrus.Info("Agendador de retenção de relatórios iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		insightService,
		reportService,
		authenticator,
		reportRetentionService,
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

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
