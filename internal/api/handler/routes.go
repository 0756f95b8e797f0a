package handler

import (
	"net/http"

	"github.com/jellywind/jellywind-api/internal/api/handler/router"
	"github.com/jellywind/jellywind-api/internal/usecases/authenticating"
	"github.com/jellywind/jellywind-api/internal/usecases/insighting"
	"github.com/jellywind/jellywind-api/internal/usecases/reporting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/me",
			Method:  http.MethodGet,
			Handler: GetMe(),
		},
	}
}

func Statistics(service insighting.ReportInsighter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/statistics",
			Method:  http.MethodGet,
			Handler: GetListeningStatistics(service),
		},
	}
}

func Reports(reportService reporting.ReportManager, insightService insighting.ReportInsighter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports",
			Method:  http.MethodPost,
			Handler: CreateReport(reportService),
		},
		{
			Path:    "/v1/reports",
			Method:  http.MethodGet,
			Handler: ListReports(reportService),
		},
		{
			Path:    "/v1/reports/:id",
			Method:  http.MethodGet,
			Handler: GetReport(reportService),
		},
		{
			Path:    "/v1/reports/:id",
			Method:  http.MethodDelete,
			Handler: DeleteReport(reportService),
		},
		{
			Path:    "/v1/reports/:id/statistics",
			Method:  http.MethodGet,
			Handler: GetReportStatistics(reportService, insightService),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
