package reporting

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jellywind/jellywind-api/infrastructure/repository"
	"github.com/jellywind/jellywind-api/internal/domain"
	"github.com/jellywind/jellywind-api/pkg/log"
)

// ReportManager gerencia as definições de relatório salvas de um usuário.
// A definição guarda só título e período; o conteúdo é recalculado sob
// demanda a cada consulta.
type ReportManager interface {
	Create(userID, title string, startDate, endDate time.Time) (*domain.ReportDefinition, error)
	List(userID string) ([]*domain.ReportDefinition, error)
	Get(userID, reportID string) (*domain.ReportDefinition, error)
	Delete(userID, reportID string) error
}

type Service struct {
	reportRepo repository.ReportRepository
}

func NewService(reportRepo repository.ReportRepository) ReportManager {
	return &Service{
		reportRepo: reportRepo,
	}
}

func (s *Service) Create(userID, title string, startDate, endDate time.Time) (*domain.ReportDefinition, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrMissingTitle
	}

	if startDate.After(endDate) {
		return nil, ErrInvalidTimespan
	}

	report := &domain.ReportDefinition{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.reportRepo.Save(report); err != nil {
		log.L.WithError(err).Error("reporting: erro ao salvar definição de relatório")
		return nil, err
	}

	return report, nil
}

func (s *Service) List(userID string) ([]*domain.ReportDefinition, error) {
	return s.reportRepo.ListByUser(userID)
}

func (s *Service) Get(userID, reportID string) (*domain.ReportDefinition, error) {
	report, err := s.reportRepo.GetByID(userID, reportID)
	if err != nil {
		return nil, err
	}

	if report == nil {
		return nil, ErrReportNotFound
	}

	return report, nil
}

func (s *Service) Delete(userID, reportID string) error {
	deleted, err := s.reportRepo.SoftDelete(userID, reportID)
	if err != nil {
		return err
	}

	if !deleted {
		return ErrReportNotFound
	}

	return nil
}
