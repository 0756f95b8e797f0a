package insighting

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin"
	jellyfindomain "github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin/domain"
	"github.com/jellywind/jellywind-api/internal/config"
	"github.com/jellywind/jellywind-api/internal/domain"
	"github.com/jellywind/jellywind-api/pkg/log"
	"github.com/jellywind/jellywind-api/pkg/utils"
)

const (
	// Tamanho das listas do relatório
	topSongsLimit   = 10
	topArtistsLimit = 10
	topAlbumsLimit  = 10

	// Universo de candidatas para a lista de mais puladas
	skipCandidatesLimit = 50

	// Universo de faixas para a agregação por artista
	playedSongsLimit = 200

	// Máximo de consultas simultâneas ao resolver artistas
	maxArtistLookups = 5
)

// Service implementa a agregação de estatísticas de escuta
type Service struct {
	cfg             *config.Config
	jellyfinService jellyfin.JellyfinIntegrator
}

// NewService cria uma nova instância do serviço de relatórios de escuta
func NewService(cfg *config.Config, jellyfinService jellyfin.JellyfinIntegrator) ReportInsighter {
	return &Service{
		cfg:             cfg,
		jellyfinService: jellyfinService,
	}
}

// ComputeReport monta o relatório completo do período. As quatro listas são
// calculadas em paralelo e cada chamada parte do zero: nada é memorizado
// entre relatórios.
func (s *Service) ComputeReport(ctx context.Context, creds domain.Credentials, filters domain.StatsFilters) (*domain.ListeningReport, error) {
	if !creds.Complete() {
		return nil, ErrNotAuthenticated
	}

	var (
		mostListened []*domain.SongEntry
		mostSkipped  []*domain.SkippedEntry
		topArtists   []*domain.ArtistEntry
		topAlbums    []*domain.AlbumEntry

		listenedErr error
		skippedErr  error
		artistsErr  error
		albumsErr   error
	)

	wg := sync.WaitGroup{}
	wg.Add(4)

	go func() {
		defer wg.Done()
		mostListened, listenedErr = s.computeMostListened(creds, filters)
	}()

	go func() {
		defer wg.Done()
		mostSkipped, skippedErr = s.computeMostSkipped(creds, filters)
	}()

	go func() {
		defer wg.Done()
		topArtists, artistsErr = s.computeTopArtists(ctx, creds, filters)
	}()

	go func() {
		defer wg.Done()
		topAlbums, albumsErr = s.computeTopAlbums(creds, filters)
	}()

	wg.Wait()

	for _, err := range []error{listenedErr, skippedErr, artistsErr, albumsErr} {
		if err != nil {
			log.ForContext(ctx).WithError(err).Error("insighting: falha ao montar relatório de escuta")
			return nil, err
		}
	}

	return &domain.ListeningReport{
		MostListened: mostListened,
		MostSkipped:  mostSkipped,
		TopArtists:   topArtists,
		TopAlbums:    topAlbums,
		Filters:      &filters,
	}, nil
}

// computeMostListened monta a lista de mais ouvidas: as linhas de uso do
// período dão contagem e duração; o catálogo enriquece com artista e álbum.
// Período sem reproduções devolve lista vazia sem consultar o catálogo.
func (s *Service) computeMostListened(creds domain.Credentials, filters domain.StatsFilters) ([]*domain.SongEntry, error) {
	rows, err := s.jellyfinService.GetMostPlayedSongs(creds, filters, topSongsLimit)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return []*domain.SongEntry{}, nil
	}

	catalog, err := s.catalogByID(creds, playActivityIDs(rows))
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.SongEntry, 0, len(rows))
	for i, row := range rows {
		entry := &domain.SongEntry{
			Rank:             i + 1,
			ID:               row.ItemID,
			Title:            row.ItemName,
			Artist:           domain.UnknownArtist,
			Album:            domain.UnknownAlbum,
			Plays:            row.PlayCount,
			TotalPlaySeconds: row.TotalDuration,
		}

		if item, ok := catalog[row.ItemID]; ok {
			if item.Name != "" {
				entry.Title = item.Name
			}
			entry.Artist = domain.ArtistDisplayName(item.Artists, item.AlbumArtist)
			entry.Album = domain.AlbumDisplayName(item.Album)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// computeMostSkipped monta a lista de mais puladas. O universo de candidatas
// vem ordenado do servidor, mas o percentual final e a ordenação são
// recalculados aqui, sobre as contagens cruas.
func (s *Service) computeMostSkipped(creds domain.Credentials, filters domain.StatsFilters) ([]*domain.SkippedEntry, error) {
	rows, err := s.jellyfinService.GetSkipCandidates(creds, filters, skipCandidatesLimit)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return []*domain.SkippedEntry{}, nil
	}

	catalog, err := s.catalogByID(creds, skipActivityIDs(rows))
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.SkippedEntry, 0, len(rows))
	for _, row := range rows {
		if row.PlayCount <= 0 || row.SkipCount <= 0 {
			continue
		}

		entry := &domain.SkippedEntry{
			ID:             row.ItemID,
			Title:          row.ItemName,
			Artist:         domain.UnknownArtist,
			Plays:          row.PlayCount,
			SkipPercentage: utils.RoundWithTwoDecimalPlace(100 * float64(row.SkipCount) / float64(row.PlayCount)),
		}

		if item, ok := catalog[row.ItemID]; ok {
			if item.Name != "" {
				entry.Title = item.Name
			}
			entry.Artist = domain.ArtistDisplayName(item.Artists, item.AlbumArtist)
		}

		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SkipPercentage > entries[j].SkipPercentage
	})

	if len(entries) > topSongsLimit {
		entries = entries[:topSongsLimit]
	}

	for i, entry := range entries {
		entry.Rank = i + 1
	}

	return entries, nil
}

// computeTopArtists agrega as reproduções do período por artista. A falha na
// listagem de faixas derruba o relatório; a resolução de cada artista no
// servidor é melhor esforço e degrada para entrada sem ID e sem imagem.
func (s *Service) computeTopArtists(ctx context.Context, creds domain.Credentials, filters domain.StatsFilters) ([]*domain.ArtistEntry, error) {
	songs, err := s.jellyfinService.GetPlayedSongs(creds, filters, playedSongsLimit)
	if err != nil {
		return nil, err
	}

	if len(songs) == 0 {
		return []*domain.ArtistEntry{}, nil
	}

	playsByArtist := make(map[string]int)
	for _, song := range songs {
		plays := song.PlayCount()
		if plays <= 0 {
			continue
		}

		for _, name := range creditedArtists(song) {
			playsByArtist[name] += plays
		}
	}

	entries := make([]*domain.ArtistEntry, 0, len(playsByArtist))
	for name, plays := range playsByArtist {
		entries = append(entries, &domain.ArtistEntry{
			Name:  name,
			Plays: plays,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Plays != entries[j].Plays {
			return entries[i].Plays > entries[j].Plays
		}
		return entries[i].Name < entries[j].Name
	})

	if len(entries) > topArtistsLimit {
		entries = entries[:topArtistsLimit]
	}

	for i, entry := range entries {
		entry.Rank = i + 1
	}

	s.resolveArtists(ctx, creds, entries)

	return entries, nil
}

// resolveArtists consulta o servidor pelos registros dos artistas da lista
// final, para preencher ID e miniatura. Falhas individuais só geram aviso.
func (s *Service) resolveArtists(ctx context.Context, creds domain.Credentials, entries []*domain.ArtistEntry) {
	semaphore := make(chan struct{}, maxArtistLookups)
	wg := sync.WaitGroup{}

	for _, entry := range entries {
		if entry.Name == domain.UnknownArtist {
			continue
		}

		wg.Add(1)
		go func(entry *domain.ArtistEntry) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			artist, err := s.jellyfinService.SearchArtist(creds, entry.Name)
			if err != nil || artist == nil {
				if err != nil {
					log.ForContext(ctx).WithError(err).WithFields(log.Fields{
						"artist": entry.Name,
					}).Warn("insighting: falha ao resolver artista no servidor")
				}
				return
			}

			id := artist.ID
			entry.ID = &id

			if artist.HasPrimaryImage() {
				thumbnail := s.primaryImageURL(creds, artist.ID)
				entry.Thumbnail = &thumbnail
			}
		}(entry)
	}

	wg.Wait()
}

// computeTopAlbums monta a lista de álbuns mais reproduzidos do período
func (s *Service) computeTopAlbums(creds domain.Credentials, filters domain.StatsFilters) ([]*domain.AlbumEntry, error) {
	albums, err := s.jellyfinService.GetTopAlbums(creds, filters, topAlbumsLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.AlbumEntry, 0, len(albums))
	for _, album := range albums {
		if album.PlayCount() <= 0 {
			continue
		}

		entries = append(entries, &domain.AlbumEntry{
			Rank:   len(entries) + 1,
			ID:     album.ID,
			Title:  domain.AlbumDisplayName(album.Name),
			Artist: domain.ArtistDisplayName(album.Artists, album.AlbumArtist),
			Plays:  album.PlayCount(),
		})
	}

	return entries, nil
}

// creditedArtists resolve os nomes que recebem crédito pelas reproduções de
// uma faixa: cada entrada de Artists e também o AlbumArtist, sem crédito
// duplicado quando o AlbumArtist repete um dos artistas da faixa. Faixa sem
// nenhum dos dois credita "Unknown Artist".
func creditedArtists(song jellyfindomain.CatalogItem) []string {
	names := make([]string, 0, len(song.Artists)+1)
	names = append(names, song.Artists...)

	if song.AlbumArtist != "" && !containsName(names, song.AlbumArtist) {
		names = append(names, song.AlbumArtist)
	}

	if len(names) == 0 {
		names = []string{domain.UnknownArtist}
	}

	return names
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// catalogByID busca os itens no catálogo e indexa por ID. Só itens de áudio
// entram no índice: uma colisão de ID com outro tipo de item não pode
// sobrescrever os dados da faixa.
func (s *Service) catalogByID(creds domain.Credentials, ids []string) (map[string]jellyfindomain.CatalogItem, error) {
	items, err := s.jellyfinService.GetItemsByIDs(creds, ids)
	if err != nil {
		return nil, err
	}

	catalog := make(map[string]jellyfindomain.CatalogItem, len(items))
	for _, item := range items {
		if item.Type != jellyfindomain.ItemTypeAudio {
			continue
		}
		catalog[item.ID] = item
	}

	return catalog, nil
}

func (s *Service) primaryImageURL(creds domain.Credentials, itemID string) string {
	return fmt.Sprintf("%s/Items/%s/Images/Primary?maxHeight=80", creds.NormalizedServerURL(), itemID)
}

func playActivityIDs(rows []jellyfindomain.PlayActivityRow) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ItemID)
	}
	return ids
}

func skipActivityIDs(rows []jellyfindomain.SkipActivityRow) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ItemID)
	}
	return ids
}
