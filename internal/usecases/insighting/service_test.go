package insighting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	jellyfindomain "github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin/domain"
	jellyfinmocks "github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin/mocks"
	"github.com/jellywind/jellywind-api/internal/config"
	"github.com/jellywind/jellywind-api/internal/domain"
)

func testCredentials() domain.Credentials {
	return domain.Credentials{
		ServerURL:   "http://media.local",
		UserID:      "user-1",
		AccessToken: "tok",
	}
}

func testFilters() domain.StatsFilters {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	return domain.StatsFilters{StartDate: &start, EndDate: &end}
}

func userData(plays int) *jellyfindomain.UserData {
	return &jellyfindomain.UserData{PlayCount: plays}
}

func TestService_ComputeReport(t *testing.T) {
	creds := testCredentials()
	filters := testFilters()

	tests := []struct {
		name     string
		creds    domain.Credentials
		setup    func(mock *jellyfinmocks.MockJellyfinIntegrator)
		validate func(t *testing.T, report *domain.ListeningReport, err error)
	}{
		{
			name:  "Relatório completo - enriquece, ordena e numera as quatro listas",
			creds: creds,
			setup: func(mock *jellyfinmocks.MockJellyfinIntegrator) {
				// Mais ouvidas: duas faixas, já ordenadas pelo servidor
				mock.EXPECT().
					GetMostPlayedSongs(creds, filters, topSongsLimit).
					Return([]jellyfindomain.PlayActivityRow{
						{ItemID: "song-1", ItemName: "Song One", PlayCount: 12, TotalDuration: 3600},
						{ItemID: "song-2", ItemName: "Song Two", PlayCount: 8, TotalDuration: 1800},
					}, nil)

				mock.EXPECT().
					GetItemsByIDs(creds, []string{"song-1", "song-2"}).
					Return([]jellyfindomain.CatalogItem{
						{ID: "song-1", Name: "Song One", Type: jellyfindomain.ItemTypeAudio, Artists: []string{"Artist A", "Artist B"}, Album: "Album X"},
						{ID: "song-2", Name: "Song Two", Type: jellyfindomain.ItemTypeAudio, AlbumArtist: "Artist C"},
					}, nil)

				// Mais puladas: o servidor manda na ordem dele, o percentual
				// recalculado inverte as posições
				mock.EXPECT().
					GetSkipCandidates(creds, filters, skipCandidatesLimit).
					Return([]jellyfindomain.SkipActivityRow{
						{ItemID: "skip-1", ItemName: "Skip One", PlayCount: 10, AvgDuration: 20, SkipCount: 3},
						{ItemID: "skip-2", ItemName: "Skip Two", PlayCount: 4, AvgDuration: 15, SkipCount: 2},
					}, nil)

				mock.EXPECT().
					GetItemsByIDs(creds, []string{"skip-1", "skip-2"}).
					Return([]jellyfindomain.CatalogItem{
						{ID: "skip-1", Name: "Skip One", Type: jellyfindomain.ItemTypeAudio, Artists: []string{"Artist A"}},
						{ID: "skip-2", Name: "Skip Two", Type: jellyfindomain.ItemTypeAudio, Artists: []string{"Artist B"}},
					}, nil)

				// Artistas: contagens agregadas por nome; o artista do álbum
				// também recebe crédito
				mock.EXPECT().
					GetPlayedSongs(creds, filters, playedSongsLimit).
					Return([]jellyfindomain.CatalogItem{
						{ID: "p1", Artists: []string{"Artist A"}, UserData: userData(10)},
						{ID: "p2", Artists: []string{"Artist A", "Artist B"}, UserData: userData(5)},
						{ID: "p3", AlbumArtist: "Artist C", UserData: userData(7)},
					}, nil)

				mock.EXPECT().
					SearchArtist(creds, "Artist A").
					Return(&jellyfindomain.CatalogItem{
						ID:        "art-a",
						Name:      "Artist A",
						ImageTags: map[string]string{"Primary": "tag"},
					}, nil)
				mock.EXPECT().
					SearchArtist(creds, "Artist B").
					Return(nil, errors.New("timeout"))
				mock.EXPECT().
					SearchArtist(creds, "Artist C").
					Return(nil, nil)

				// Álbuns: itens sem reprodução ficam de fora
				mock.EXPECT().
					GetTopAlbums(creds, filters, topAlbumsLimit).
					Return([]jellyfindomain.CatalogItem{
						{ID: "alb-1", Name: "Album X", Artists: []string{"Artist A"}, UserData: userData(20)},
						{ID: "alb-2", Name: "Album Y", UserData: userData(0)},
					}, nil)
			},
			validate: func(t *testing.T, report *domain.ListeningReport, err error) {
				require.NoError(t, err)
				require.NotNil(t, report)

				// Mais ouvidas
				require.Len(t, report.MostListened, 2)
				assert.Equal(t, 1, report.MostListened[0].Rank)
				assert.Equal(t, "Artist A, Artist B", report.MostListened[0].Artist)
				assert.Equal(t, "Album X", report.MostListened[0].Album)
				assert.Equal(t, 12, report.MostListened[0].Plays)
				assert.Equal(t, 3600.0, report.MostListened[0].TotalPlaySeconds)
				assert.Equal(t, 2, report.MostListened[1].Rank)
				assert.Equal(t, "Artist C", report.MostListened[1].Artist)
				assert.Equal(t, domain.UnknownAlbum, report.MostListened[1].Album)

				// Mais puladas: 2/4 = 50% fica acima de 3/10 = 30%
				require.Len(t, report.MostSkipped, 2)
				assert.Equal(t, "skip-2", report.MostSkipped[0].ID)
				assert.Equal(t, 50.0, report.MostSkipped[0].SkipPercentage)
				assert.Equal(t, 1, report.MostSkipped[0].Rank)
				assert.Equal(t, "skip-1", report.MostSkipped[1].ID)
				assert.Equal(t, 30.0, report.MostSkipped[1].SkipPercentage)
				assert.Equal(t, 2, report.MostSkipped[1].Rank)

				// Artistas: A=15, C=7, B=5
				require.Len(t, report.TopArtists, 3)
				assert.Equal(t, "Artist A", report.TopArtists[0].Name)
				assert.Equal(t, 15, report.TopArtists[0].Plays)
				require.NotNil(t, report.TopArtists[0].ID)
				assert.Equal(t, "art-a", *report.TopArtists[0].ID)
				require.NotNil(t, report.TopArtists[0].Thumbnail)
				assert.Equal(t, "http://media.local/Items/art-a/Images/Primary?maxHeight=80", *report.TopArtists[0].Thumbnail)

				// Falha ou ausência na resolução degrada para entrada sem ID
				assert.Equal(t, "Artist C", report.TopArtists[1].Name)
				assert.Nil(t, report.TopArtists[1].ID)
				assert.Equal(t, "Artist B", report.TopArtists[2].Name)
				assert.Nil(t, report.TopArtists[2].ID)
				assert.Nil(t, report.TopArtists[2].Thumbnail)

				// Álbuns
				require.Len(t, report.TopAlbums, 1)
				assert.Equal(t, "Album X", report.TopAlbums[0].Title)
				assert.Equal(t, "Artist A", report.TopAlbums[0].Artist)
				assert.Equal(t, 20, report.TopAlbums[0].Plays)
			},
		},
		{
			name:  "Período sem reproduções - listas vazias sem consultar o catálogo",
			creds: creds,
			setup: func(mock *jellyfinmocks.MockJellyfinIntegrator) {
				mock.EXPECT().
					GetMostPlayedSongs(creds, filters, topSongsLimit).
					Return([]jellyfindomain.PlayActivityRow{}, nil)
				mock.EXPECT().
					GetSkipCandidates(creds, filters, skipCandidatesLimit).
					Return([]jellyfindomain.SkipActivityRow{}, nil)
				mock.EXPECT().
					GetPlayedSongs(creds, filters, playedSongsLimit).
					Return([]jellyfindomain.CatalogItem{}, nil)
				mock.EXPECT().
					GetTopAlbums(creds, filters, topAlbumsLimit).
					Return([]jellyfindomain.CatalogItem{}, nil)
				// Nenhuma chamada a GetItemsByIDs ou SearchArtist é esperada
			},
			validate: func(t *testing.T, report *domain.ListeningReport, err error) {
				require.NoError(t, err)
				require.NotNil(t, report)
				assert.Empty(t, report.MostListened)
				assert.Empty(t, report.MostSkipped)
				assert.Empty(t, report.TopArtists)
				assert.Empty(t, report.TopAlbums)
				assert.NotNil(t, report.Filters)
			},
		},
		{
			name:  "Credenciais incompletas - erro sem nenhuma chamada ao servidor",
			creds: domain.Credentials{ServerURL: "http://media.local"},
			setup: func(mock *jellyfinmocks.MockJellyfinIntegrator) {},
			validate: func(t *testing.T, report *domain.ListeningReport, err error) {
				assert.Nil(t, report)
				assert.ErrorIs(t, err, ErrNotAuthenticated)
			},
		},
		{
			name:  "Falha na consulta de mais tocadas - derruba o relatório",
			creds: creds,
			setup: func(mock *jellyfinmocks.MockJellyfinIntegrator) {
				upstreamErr := &jellyfindomain.APIError{StatusCode: 500, Body: "boom"}

				mock.EXPECT().
					GetMostPlayedSongs(creds, filters, topSongsLimit).
					Return(nil, upstreamErr)

				// As outras listas rodam em paralelo e podem completar
				mock.EXPECT().
					GetSkipCandidates(creds, filters, skipCandidatesLimit).
					Return([]jellyfindomain.SkipActivityRow{}, nil).
					AnyTimes()
				mock.EXPECT().
					GetPlayedSongs(creds, filters, playedSongsLimit).
					Return([]jellyfindomain.CatalogItem{}, nil).
					AnyTimes()
				mock.EXPECT().
					GetTopAlbums(creds, filters, topAlbumsLimit).
					Return([]jellyfindomain.CatalogItem{}, nil).
					AnyTimes()
			},
			validate: func(t *testing.T, report *domain.ListeningReport, err error) {
				assert.Nil(t, report)
				require.Error(t, err)

				apiErr, ok := jellyfindomain.AsAPIError(err)
				require.True(t, ok)
				assert.Equal(t, 500, apiErr.StatusCode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mock := jellyfinmocks.NewMockJellyfinIntegrator(ctrl)
			tt.setup(mock)

			service := NewService(&config.Config{}, mock)

			report, err := service.ComputeReport(context.Background(), tt.creds, filters)
			tt.validate(t, report, err)
		})
	}
}

func TestService_ComputeReport_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creds := testCredentials()
	filters := testFilters()

	mock := jellyfinmocks.NewMockJellyfinIntegrator(ctrl)

	mock.EXPECT().
		GetMostPlayedSongs(creds, filters, topSongsLimit).
		Return([]jellyfindomain.PlayActivityRow{
			{ItemID: "song-1", ItemName: "Song One", PlayCount: 3, TotalDuration: 540},
		}, nil).
		Times(2)
	mock.EXPECT().
		GetItemsByIDs(creds, []string{"song-1"}).
		Return([]jellyfindomain.CatalogItem{
			{ID: "song-1", Name: "Song One", Type: jellyfindomain.ItemTypeAudio, Artists: []string{"Artist A"}, Album: "Album X"},
		}, nil).
		Times(2)
	mock.EXPECT().
		GetSkipCandidates(creds, filters, skipCandidatesLimit).
		Return([]jellyfindomain.SkipActivityRow{}, nil).
		Times(2)
	mock.EXPECT().
		GetPlayedSongs(creds, filters, playedSongsLimit).
		Return([]jellyfindomain.CatalogItem{}, nil).
		Times(2)
	mock.EXPECT().
		GetTopAlbums(creds, filters, topAlbumsLimit).
		Return([]jellyfindomain.CatalogItem{}, nil).
		Times(2)

	service := NewService(&config.Config{}, mock)

	first, err := service.ComputeReport(context.Background(), creds, filters)
	require.NoError(t, err)

	second, err := service.ComputeReport(context.Background(), creds, filters)
	require.NoError(t, err)

	// Mesmas entradas, mesmo relatório: o agregador não guarda estado
	assert.Equal(t, first, second)
}

func TestService_ComputeTopArtists_CreditsAlbumArtist(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creds := testCredentials()
	filters := testFilters()

	mock := jellyfinmocks.NewMockJellyfinIntegrator(ctrl)

	// O artista do álbum recebe crédito junto com os artistas da faixa,
	// mas sem crédito duplicado quando os nomes coincidem
	mock.EXPECT().
		GetPlayedSongs(creds, filters, playedSongsLimit).
		Return([]jellyfindomain.CatalogItem{
			{ID: "p1", Artists: []string{"Solo"}, AlbumArtist: "Band", UserData: userData(8)},
			{ID: "p2", Artists: []string{"Band"}, AlbumArtist: "Band", UserData: userData(2)},
		}, nil)

	mock.EXPECT().
		SearchArtist(creds, gomock.Any()).
		Return(nil, nil).
		AnyTimes()

	service := NewService(&config.Config{}, mock).(*Service)

	entries, err := service.computeTopArtists(context.Background(), creds, filters)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "Band", entries[0].Name)
	assert.Equal(t, 10, entries[0].Plays)
	assert.Equal(t, "Solo", entries[1].Name)
	assert.Equal(t, 8, entries[1].Plays)
}

func TestService_ComputeMostListened_CatalogJoin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creds := testCredentials()
	filters := testFilters()

	mock := jellyfinmocks.NewMockJellyfinIntegrator(ctrl)

	mock.EXPECT().
		GetMostPlayedSongs(creds, filters, topSongsLimit).
		Return([]jellyfindomain.PlayActivityRow{
			{ItemID: "x1", ItemName: "Track X", PlayCount: 5, TotalDuration: 900},
			{ItemID: "x2", ItemName: "Track Y", PlayCount: 3, TotalDuration: 540},
		}, nil)

	// Um item de outro tipo colidindo no ID não entra no índice; um item de
	// áudio sem artista nem artista de álbum vira "Unknown Artist"
	mock.EXPECT().
		GetItemsByIDs(creds, []string{"x1", "x2"}).
		Return([]jellyfindomain.CatalogItem{
			{ID: "x1", Name: "Some Movie", Type: "Movie", Artists: []string{"Director"}},
			{ID: "x2", Name: "Track Y", Type: jellyfindomain.ItemTypeAudio},
		}, nil)

	service := NewService(&config.Config{}, mock).(*Service)

	entries, err := service.computeMostListened(creds, filters)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// O item que não é de áudio não sobrescreve os dados da linha de uso
	assert.Equal(t, "Track X", entries[0].Title)
	assert.Equal(t, domain.UnknownArtist, entries[0].Artist)
	assert.Equal(t, domain.UnknownAlbum, entries[0].Album)
	assert.Equal(t, 5, entries[0].Plays)

	assert.Equal(t, domain.UnknownArtist, entries[1].Artist)
	assert.Equal(t, domain.UnknownAlbum, entries[1].Album)
}
