package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"

	"github.com/jellywind/jellywind-api/internal/domain"
	"github.com/jellywind/jellywind-api/internal/usecases/insighting"
	"github.com/jellywind/jellywind-api/internal/usecases/reporting"
	"github.com/jellywind/jellywind-api/pkg/apiErrors"
	"github.com/jellywind/jellywind-api/pkg/log"
	"github.com/jellywind/jellywind-api/pkg/middleware"
)

type CreateReportRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CreateReport salva uma nova definição de relatório para o usuário logado
func CreateReport(service reporting.ReportManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrNotAuthenticated, "Usuário não autenticado", nil)
			return
		}

		var req CreateReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		startDate, err := time.Parse(time.DateOnly, req.StartDate)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date deve estar no formato AAAA-MM-DD", nil)
			return
		}

		endDate, err := time.Parse(time.DateOnly, req.EndDate)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date deve estar no formato AAAA-MM-DD", nil)
			return
		}

		report, err := service.Create(userClaims.UserID, req.Title, startDate, endDate)
		if err != nil {
			writeReportError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(report)
	}
}

// ListReports lista as definições de relatório salvas do usuário logado
func ListReports(service reporting.ReportManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrNotAuthenticated, "Usuário não autenticado", nil)
			return
		}

		reports, err := service.List(userClaims.UserID)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("reports: failed to list report definitions")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar definições de relatório", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reports)
	}
}

// GetReport devolve uma definição de relatório salva
func GetReport(service reporting.ReportManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrNotAuthenticated, "Usuário não autenticado", nil)
			return
		}

		reportID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		report, err := service.Get(userClaims.UserID, reportID)
		if err != nil {
			writeReportError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	}
}

// DeleteReport remove uma definição de relatório salva
func DeleteReport(service reporting.ReportManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrNotAuthenticated, "Usuário não autenticado", nil)
			return
		}

		reportID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.Delete(userClaims.UserID, reportID); err != nil {
			writeReportError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GetReportStatistics monta o relatório de escuta para o período de uma
// definição salva. O conteúdo é sempre recalculado: só a definição é
// persistida.
func GetReportStatistics(reportService reporting.ReportManager, insightService insighting.ReportInsighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrNotAuthenticated, "Usuário não autenticado", nil)
			return
		}

		reportID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		report, err := reportService.Get(userClaims.UserID, reportID)
		if err != nil {
			writeReportError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"user_id":   userClaims.UserID,
			"report_id": report.ID,
			"period":    report.StartDate.Format(time.DateOnly) + ".." + report.EndDate.Format(time.DateOnly),
		}).Info("reports: computing statistics for saved report")

		statistics, err := insightService.ComputeReport(r.Context(), userClaims.Credentials(), *report.Filters())
		if err != nil {
			writeStatisticsError(w, r, userClaims.UserID, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"report":     report,
			"statistics": statistics,
		})
	})
}

// writeReportError mapeia as falhas do gerenciamento de definições para os
// códigos da API
func writeReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reporting.ErrReportNotFound):
		apiErrors.WriteError(w, apiErrors.ErrReportNotFound, "Definição de relatório não encontrada", nil)

	case errors.Is(err, reporting.ErrMissingTitle):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Título é obrigatório", nil)

	case errors.Is(err, reporting.ErrInvalidTimespan):
		apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, "A data de início não pode ser posterior à data de fim", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao acessar definições de relatório", nil)
	}
}
