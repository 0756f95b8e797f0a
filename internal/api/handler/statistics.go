package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"

	jellyfindomain "github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin/domain"
	"github.com/jellywind/jellywind-api/internal/domain"
	"github.com/jellywind/jellywind-api/internal/usecases/insighting"
	"github.com/jellywind/jellywind-api/pkg/apiErrors"
	"github.com/jellywind/jellywind-api/pkg/log"
	"github.com/jellywind/jellywind-api/pkg/middleware"
	"github.com/jellywind/jellywind-api/pkg/utils"
)

// GetListeningStatistics monta o relatório de escuta do período informado
// via query string. Sem datas, o relatório cobre o histórico inteiro.
func GetListeningStatistics(service insighting.ReportInsighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrNotAuthenticated, "Usuário não autenticado", nil)
			return
		}

		filters, err := parseStatsFilters(r)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id":    userClaims.UserID,
				"start_date": r.URL.Query().Get("start_date"),
				"end_date":   r.URL.Query().Get("end_date"),
				"error":      err.Error(),
			}).Warn("statistics: invalid date filters")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		if filters.StartDate != nil && filters.EndDate != nil && filters.StartDate.After(*filters.EndDate) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, "A data de início não pode ser posterior à data de fim", nil)
			return
		}

		logger.WithFields(log.Fields{
			"user_id": userClaims.UserID,
			"period":  formatPeriod(filters),
		}).Info("statistics: computing listening report")

		report, err := service.ComputeReport(r.Context(), userClaims.Credentials(), *filters)
		if err != nil {
			writeStatisticsError(w, r, userClaims.UserID, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithFields(log.Fields{
				"user_id": userClaims.UserID,
				"error":   err.Error(),
			}).Error("statistics: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func parseStatsFilters(r *http.Request) (*domain.StatsFilters, error) {
	filters := &domain.StatsFilters{}

	if value := r.URL.Query().Get("start_date"); value != "" {
		startDate, err := utils.ParseDate(value)
		if err != nil {
			return nil, err
		}
		filters.StartDate = startDate
	}

	if value := r.URL.Query().Get("end_date"); value != "" {
		endDate, err := utils.ParseDate(value)
		if err != nil {
			return nil, err
		}
		filters.EndDate = endDate
	}

	return filters, nil
}

// writeStatisticsError mapeia as falhas da agregação para os códigos da API
func writeStatisticsError(w http.ResponseWriter, r *http.Request, userID string, err error) {
	logger := log.ForContext(r.Context())

	logger.WithFields(log.Fields{
		"user_id": userID,
		"error":   err.Error(),
	}).Error("statistics: failed to compute listening report")

	switch {
	case errors.Is(err, insighting.ErrNotAuthenticated):
		apiErrors.WriteError(w, apiErrors.ErrNotAuthenticated, "Credenciais do Jellyfin incompletas", nil)

	default:
		if apiErr, ok := jellyfindomain.AsAPIError(err); ok {
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro no servidor Jellyfin", map[string]any{
				"upstream_status": apiErr.StatusCode,
			})
			return
		}
		if errors.Is(err, jellyfindomain.ErrMalformedResponse) {
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Resposta inesperada do servidor Jellyfin", nil)
			return
		}

		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar o relatório de escuta", nil)
	}
}

// formatPeriod resume o período para logs
func formatPeriod(filters *domain.StatsFilters) string {
	if filters == nil || filters.StartDate == nil || filters.EndDate == nil {
		return "all-time"
	}
	return filters.StartDate.Format(time.DateOnly) + ".." + filters.EndDate.Format(time.DateOnly)
}
