package reporting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jellywind/jellywind-api/infrastructure/repository/mocks"
	"github.com/jellywind/jellywind-api/internal/domain"
)

func TestService_Create(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		title    string
		start    time.Time
		end      time.Time
		setup    func(mock *mocks.MockReportRepository)
		validate func(t *testing.T, report *domain.ReportDefinition, err error)
	}{
		{
			name:  "Definição válida - salva com ID gerado",
			title: "Janeiro 2024",
			start: start,
			end:   end,
			setup: func(mock *mocks.MockReportRepository) {
				mock.EXPECT().
					Save(gomock.Any()).
					DoAndReturn(func(report *domain.ReportDefinition) error {
						assert.NotEmpty(t, report.ID)
						assert.Equal(t, "user-1", report.UserID)
						assert.Equal(t, "Janeiro 2024", report.Title)
						return nil
					})
			},
			validate: func(t *testing.T, report *domain.ReportDefinition, err error) {
				require.NoError(t, err)
				require.NotNil(t, report)
				assert.NotEmpty(t, report.ID)
			},
		},
		{
			name:  "Título vazio - rejeita sem tocar o repositório",
			title: "   ",
			start: start,
			end:   end,
			setup: func(mock *mocks.MockReportRepository) {},
			validate: func(t *testing.T, report *domain.ReportDefinition, err error) {
				assert.Nil(t, report)
				assert.ErrorIs(t, err, ErrMissingTitle)
			},
		},
		{
			name:  "Período invertido - rejeita sem tocar o repositório",
			title: "Janeiro 2024",
			start: end,
			end:   start,
			setup: func(mock *mocks.MockReportRepository) {},
			validate: func(t *testing.T, report *domain.ReportDefinition, err error) {
				assert.Nil(t, report)
				assert.ErrorIs(t, err, ErrInvalidTimespan)
			},
		},
		{
			name:  "Falha no banco - propaga o erro",
			title: "Janeiro 2024",
			start: start,
			end:   end,
			setup: func(mock *mocks.MockReportRepository) {
				mock.EXPECT().
					Save(gomock.Any()).
					Return(errors.New("connection refused"))
			},
			validate: func(t *testing.T, report *domain.ReportDefinition, err error) {
				assert.Nil(t, report)
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockReportRepository(ctrl)
			tt.setup(mockRepo)

			service := NewService(mockRepo)

			report, err := service.Create("user-1", tt.title, tt.start, tt.end)
			tt.validate(t, report, err)
		})
	}
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReportRepository(ctrl)
	service := NewService(mockRepo)

	saved := &domain.ReportDefinition{ID: "rep-1", UserID: "user-1", Title: "Janeiro 2024"}

	mockRepo.EXPECT().GetByID("user-1", "rep-1").Return(saved, nil)
	report, err := service.Get("user-1", "rep-1")
	require.NoError(t, err)
	assert.Equal(t, saved, report)

	// Definição de outro usuário (ou inexistente) vira "não encontrada"
	mockRepo.EXPECT().GetByID("user-2", "rep-1").Return(nil, nil)
	report, err = service.Get("user-2", "rep-1")
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReportRepository(ctrl)
	service := NewService(mockRepo)

	mockRepo.EXPECT().SoftDelete("user-1", "rep-1").Return(true, nil)
	assert.NoError(t, service.Delete("user-1", "rep-1"))

	mockRepo.EXPECT().SoftDelete("user-1", "rep-2").Return(false, nil)
	assert.ErrorIs(t, service.Delete("user-1", "rep-2"), ErrReportNotFound)
}
