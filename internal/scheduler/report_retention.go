// Package scheduler contém os serviços de agendamento de rotinas da API
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/jellywind/jellywind-api/infrastructure/repository"
	"github.com/jellywind/jellywind-api/internal/config"
)

type ReportRetentionConfig struct {
	CronSchedule string
	MaxAgeDays   int
	Enabled      bool
}

// ReportRetentionService remove em definitivo as definições de relatório
// que ficaram na janela de soft delete por mais tempo que o configurado
type ReportRetentionService struct {
	scheduler          *gocron.Scheduler
	reportRepo         repository.ReportRepository
	config             ReportRetentionConfig
	runRunning         bool
	runMutex           sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastRunDeleted     int64
}

func NewReportRetentionService(
	reportRepo repository.ReportRepository,
	cfg *config.Config,
) *ReportRetentionService {
	retentionConfig := ReportRetentionConfig{
		CronSchedule: cfg.ReportRetention.CronSchedule, // Default: 4h da manhã todos os dias
		MaxAgeDays:   cfg.ReportRetention.MaxAgeDays,
		Enabled:      cfg.ReportRetention.Enabled, // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": retentionConfig.CronSchedule,
		"max_age_days":  retentionConfig.MaxAgeDays,
	}).Info("Configuração do agendador de retenção de relatórios carregada")

	return &ReportRetentionService{
		scheduler:  scheduler,
		reportRepo: reportRepo,
		config:     retentionConfig,
	}
}

func (s *ReportRetentionService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de retenção de definições de relatório desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de retenção de definições de relatório")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunRetention(); err != nil {
			logrus.WithError(err).Error("Erro na limpeza de definições de relatório")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de definições de relatório: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de retenção de definições de relatório")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *ReportRetentionService) RunRetention() error {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	if s.runRunning {
		logrus.Warn("Limpeza de definições de relatório já está em execução")
		return nil
	}

	s.runRunning = true
	s.lastRunStartedAt = time.Now()
	defer func() {
		s.runRunning = false
		s.lastRunCompletedAt = time.Now()
	}()

	logrus.Info("Iniciando limpeza de definições de relatório removidas")

	deleted, err := s.reportRepo.DeleteOlderThan(s.config.MaxAgeDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover definições de relatório antigas")
		return err
	}

	s.lastRunDeleted = deleted

	logrus.WithFields(logrus.Fields{
		"deleted":      deleted,
		"max_age_days": s.config.MaxAgeDays,
	}).Info("Limpeza de definições de relatório concluída")

	return nil
}

// TriggerManualRun inicia manualmente uma limpeza de definições de relatório
func (s *ReportRetentionService) TriggerManualRun() {
	s.runMutex.Lock()
	if s.runRunning {
		s.runMutex.Unlock()
		logrus.Info("Limpeza de definições de relatório já em andamento, ignorando solicitação manual")
		return
	}
	s.runMutex.Unlock()

	logrus.Info("Iniciando limpeza manual de definições de relatório")
	go s.RunRetention()
}

// GetStatus retorna o status atual do agendador
func (s *ReportRetentionService) GetStatus() map[string]any {
	return map[string]any{
		"retention_enabled":     s.config.Enabled,
		"retention_cron":        s.config.CronSchedule,
		"max_age_days":          s.config.MaxAgeDays,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_run_deleted":      s.lastRunDeleted,
	}
}
