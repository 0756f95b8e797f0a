package insighting

import (
	"context"

	"github.com/jellywind/jellywind-api/internal/domain"
)

// ReportInsighter define a interface para a agregação de estatísticas de
// escuta de um usuário do Jellyfin
type ReportInsighter interface {
	// ComputeReport monta o relatório completo do período: mais ouvidas,
	// mais puladas, artistas e álbuns mais tocados
	ComputeReport(ctx context.Context, creds domain.Credentials, filters domain.StatsFilters) (*domain.ListeningReport, error)
}
