package jellyfin

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	jellyfindomain "github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin/domain"
	"github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin/jellyfinclient"
	"github.com/jellywind/jellywind-api/internal/config"
	"github.com/jellywind/jellywind-api/internal/domain"
	"github.com/jellywind/jellywind-api/pkg/log"
)

// Duração de reprodução, em segundos, abaixo da qual uma reprodução conta
// como pulada
const skipThresholdSeconds = 30

type JellyfinIntegrator interface {
	Authenticate(serverURL, username, password string) (*jellyfindomain.AuthenticationResult, error)
	GetMostPlayedSongs(creds domain.Credentials, filters domain.StatsFilters, limit int) ([]jellyfindomain.PlayActivityRow, error)
	GetSkipCandidates(creds domain.Credentials, filters domain.StatsFilters, limit int) ([]jellyfindomain.SkipActivityRow, error)
	GetItemsByIDs(creds domain.Credentials, ids []string) ([]jellyfindomain.CatalogItem, error)
	GetPlayedSongs(creds domain.Credentials, filters domain.StatsFilters, limit int) ([]jellyfindomain.CatalogItem, error)
	GetTopAlbums(creds domain.Credentials, filters domain.StatsFilters, limit int) ([]jellyfindomain.CatalogItem, error)
	SearchArtist(creds domain.Credentials, name string) (*jellyfindomain.CatalogItem, error)
}

type Service struct {
	cfg    *config.Config
	Client jellyfinclient.Client
}

func New(cfg *config.Config, client jellyfinclient.Client) JellyfinIntegrator {
	return &Service{
		cfg:    cfg,
		Client: client,
	}
}

// Authenticate valida as credenciais do usuário diretamente contra o
// servidor Jellyfin dele
func (s *Service) Authenticate(serverURL, username, password string) (*jellyfindomain.AuthenticationResult, error) {
	return s.Client.AuthenticateByName(serverURL, username, password)
}

// GetMostPlayedSongs consulta o plugin de estatísticas de uso pelas faixas
// mais tocadas no período, já ordenadas por contagem de reproduções
func (s *Service) GetMostPlayedSongs(creds domain.Credentials, filters domain.StatsFilters, limit int) ([]jellyfindomain.PlayActivityRow, error) {
	query := mostPlayedQuery(creds.UserID, filters, limit)

	response, err := s.Client.SubmitCustomQuery(creds, query)
	if err != nil {
		return nil, err
	}

	rows := make([]jellyfindomain.PlayActivityRow, 0, len(response.Results))
	for _, raw := range response.Results {
		row, err := jellyfindomain.MapPlayActivityRow(raw)
		if err != nil {
			return nil, errors.Wrap(err, "consulta de mais tocadas")
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// GetSkipCandidates consulta o plugin pelas faixas com maior proporção de
// reproduções curtas. A ordenação e a proporção final são recalculadas pelo
// caso de uso; aqui só limitamos o universo de candidatas.
func (s *Service) GetSkipCandidates(creds domain.Credentials, filters domain.StatsFilters, limit int) ([]jellyfindomain.SkipActivityRow, error) {
	query := skipCandidatesQuery(creds.UserID, filters, limit)

	response, err := s.Client.SubmitCustomQuery(creds, query)
	if err != nil {
		return nil, err
	}

	rows := make([]jellyfindomain.SkipActivityRow, 0, len(response.Results))
	for _, raw := range response.Results {
		row, err := jellyfindomain.MapSkipActivityRow(raw)
		if err != nil {
			return nil, errors.Wrap(err, "consulta de mais puladas")
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// GetItemsByIDs busca os registros de catálogo para enriquecer as linhas de
// atividade com artista, álbum e imagens
func (s *Service) GetItemsByIDs(creds domain.Credentials, ids []string) ([]jellyfindomain.CatalogItem, error) {
	return s.Client.GetItemsByIDs(creds, ids)
}

// GetPlayedSongs lista as faixas reproduzidas pelo usuário no período,
// ordenadas pelo contador de reproduções do servidor. Alimenta a agregação
// por artista.
func (s *Service) GetPlayedSongs(creds domain.Credentials, filters domain.StatsFilters, limit int) ([]jellyfindomain.CatalogItem, error) {
	params := &url.Values{}
	params.Set("IncludeItemTypes", jellyfindomain.ItemTypeAudio)
	params.Set("Recursive", "true")
	params.Set("Filters", "IsPlayed")
	params.Set("SortBy", "PlayCount")
	params.Set("SortOrder", "Descending")
	params.Set("Fields", "Album,AlbumArtist,Artists,RunTimeTicks")
	params.Set("Limit", strconv.Itoa(limit))
	applyPlayedDateRange(params, filters)

	response, err := s.Client.GetUserItems(creds, params)
	if err != nil {
		return nil, err
	}

	return response.Items, nil
}

// GetTopAlbums lista os álbuns mais reproduzidos do usuário no período
func (s *Service) GetTopAlbums(creds domain.Credentials, filters domain.StatsFilters, limit int) ([]jellyfindomain.CatalogItem, error) {
	params := &url.Values{}
	params.Set("IncludeItemTypes", "MusicAlbum")
	params.Set("Recursive", "true")
	params.Set("Filters", "IsPlayed")
	params.Set("SortBy", "PlayCount")
	params.Set("SortOrder", "Descending")
	params.Set("Fields", "AlbumArtist,Artists,ImageTags")
	params.Set("Limit", strconv.Itoa(limit))
	applyPlayedDateRange(params, filters)

	response, err := s.Client.GetUserItems(creds, params)
	if err != nil {
		return nil, err
	}

	return response.Items, nil
}

// SearchArtist resolve o nome exibido de um artista para o registro do
// catálogo. Nome desconhecido não é erro: devolve nil.
func (s *Service) SearchArtist(creds domain.Credentials, name string) (*jellyfindomain.CatalogItem, error) {
	artist, err := s.Client.SearchArtist(creds, name)
	if err != nil {
		log.L.WithError(err).Warn("jellyfin integrator: falha ao buscar artista")
		return nil, err
	}
	return artist, nil
}

// mostPlayedQuery monta a consulta SQL de faixas mais tocadas para o plugin
// Playback Reporting. O UserId entra entre aspas duplas por ser assim que o
// plugin armazena os identificadores.
func mostPlayedQuery(userID string, filters domain.StatsFilters, limit int) string {
	var b strings.Builder

	b.WriteString("SELECT ItemId, ItemName, COUNT(*) AS PlayCount, SUM(PlayDuration) AS TotalDuration ")
	b.WriteString("FROM PlaybackActivity ")
	b.WriteString("WHERE ItemType = 'Audio' ")
	writeDateClause(&b, filters)
	fmt.Fprintf(&b, "AND UserId = \"%s\" ", sanitizeQueryValue(userID))
	b.WriteString("GROUP BY ItemId, ItemName ")
	b.WriteString("ORDER BY PlayCount DESC ")
	fmt.Fprintf(&b, "LIMIT %d", limit)

	return b.String()
}

// skipCandidatesQuery monta a consulta SQL de faixas puladas. O SQLite do
// plugin não aceita alias em ORDER BY de expressão, então as expressões
// completas se repetem na ordenação.
func skipCandidatesQuery(userID string, filters domain.StatsFilters, limit int) string {
	var b strings.Builder

	skipExpr := fmt.Sprintf("SUM(CASE WHEN PlayDuration < %d THEN 1 ELSE 0 END)", skipThresholdSeconds)

	b.WriteString("SELECT ItemId, ItemName, COUNT(*) AS PlayCount, AVG(PlayDuration) AS AvgDuration, ")
	b.WriteString(skipExpr)
	b.WriteString(" AS SkipCount ")
	b.WriteString("FROM PlaybackActivity ")
	b.WriteString("WHERE ItemType = 'Audio' ")
	writeDateClause(&b, filters)
	fmt.Fprintf(&b, "AND UserId = \"%s\" ", sanitizeQueryValue(userID))
	b.WriteString("GROUP BY ItemId, ItemName ")
	b.WriteString("HAVING COUNT(*) > 1 ")
	fmt.Fprintf(&b, "ORDER BY (1.0 * %s / COUNT(*)) DESC, AVG(PlayDuration) ASC ", skipExpr)
	fmt.Fprintf(&b, "LIMIT %d", limit)

	return b.String()
}

func writeDateClause(b *strings.Builder, filters domain.StatsFilters) {
	if filters.StartDate == nil || filters.EndDate == nil {
		return
	}
	fmt.Fprintf(
		b,
		"AND DateCreated BETWEEN '%s' AND '%s 23:59:59' ",
		filters.StartDate.Format(time.DateOnly),
		filters.EndDate.Format(time.DateOnly),
	)
}

func applyPlayedDateRange(params *url.Values, filters domain.StatsFilters) {
	if filters.StartDate != nil {
		params.Set("MinDatePlayed", filters.StartDate.Format(time.DateOnly))
	}
	if filters.EndDate != nil {
		params.Set("MaxDatePlayed", filters.EndDate.Format(time.DateOnly))
	}
}

// sanitizeQueryValue remove caracteres que fechariam o literal dentro da
// consulta enviada ao plugin
func sanitizeQueryValue(value string) string {
	value = strings.ReplaceAll(value, `"`, "")
	value = strings.ReplaceAll(value, "'", "")
	return value
}
