package domain

import "strings"

const (
	// UnknownArtist é o nome exibido quando o item não tem artista associado
	UnknownArtist = "Unknown Artist"
	// UnknownAlbum é o nome exibido quando o item não tem álbum associado
	UnknownAlbum = "Unknown Album"
)

// SongEntry é uma posição na lista de músicas mais ouvidas. Plays e
// TotalPlaySeconds vêm das linhas de uso do período consultado, nunca do
// contador de reproduções de vida inteira do catálogo.
type SongEntry struct {
	Rank             int     `json:"rank"`
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Artist           string  `json:"artist"`
	Album            string  `json:"album"`
	Plays            int     `json:"plays"`
	TotalPlaySeconds float64 `json:"total_play_seconds"`
}

// SkippedEntry é uma posição na lista de músicas mais puladas. O percentual
// é derivado de quantas reproduções duraram menos que o limiar de pulo.
type SkippedEntry struct {
	Rank           int     `json:"rank"`
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Artist         string  `json:"artist"`
	Plays          int     `json:"plays"`
	SkipPercentage float64 `json:"skip_percentage"`
}

// ArtistEntry é uma posição na lista de artistas mais ouvidos. ID e
// Thumbnail podem ser nulos quando a resolução do artista no servidor
// falha; isso nunca derruba o relatório.
type ArtistEntry struct {
	Rank      int     `json:"rank"`
	Name      string  `json:"name"`
	ID        *string `json:"id"`
	Thumbnail *string `json:"thumbnail"`
	Plays     int     `json:"plays"`
}

// AlbumEntry é uma posição na lista de álbuns mais ouvidos
type AlbumEntry struct {
	Rank   int    `json:"rank"`
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Plays  int    `json:"plays"`
}

// ListeningReport é o resultado completo de uma agregação. Criado do zero a
// cada chamada; o agregador não guarda estado entre relatórios.
type ListeningReport struct {
	MostListened []*SongEntry    `json:"most_listened"`
	MostSkipped  []*SkippedEntry `json:"most_skipped"`
	TopArtists   []*ArtistEntry  `json:"top_artists"`
	TopAlbums    []*AlbumEntry   `json:"top_albums"`
	Filters      *StatsFilters   `json:"filters"`
}

// ArtistDisplayName resolve o nome de artista para exibição: a lista de
// artistas unida por vírgula, senão o artista do álbum, senão "Unknown
// Artist".
func ArtistDisplayName(artists []string, albumArtist string) string {
	if len(artists) > 0 {
		return strings.Join(artists, ", ")
	}
	if albumArtist != "" {
		return albumArtist
	}
	return UnknownArtist
}

// AlbumDisplayName resolve o nome de álbum para exibição
func AlbumDisplayName(album string) string {
	if album == "" {
		return UnknownAlbum
	}
	return album
}
