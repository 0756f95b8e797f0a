package domain

// ItemTypeAudio é o tipo de item do catálogo para faixas de música
const ItemTypeAudio = "Audio"

// UserData carrega os dados de reprodução do usuário para um item do
// catálogo. PlayCount aqui é o contador de vida inteira do servidor, não o
// contador do período de um relatório.
type UserData struct {
	PlayCount             int    `json:"PlayCount"`
	PlaybackPositionTicks int64  `json:"PlaybackPositionTicks"`
	LastPlayedDate        string `json:"LastPlayedDate"`
	IsFavorite            bool   `json:"IsFavorite"`
}

// CatalogItem é um registro do catálogo de itens do Jellyfin
type CatalogItem struct {
	ID           string            `json:"Id"`
	Name         string            `json:"Name"`
	Type         string            `json:"Type"`
	Album        string            `json:"Album"`
	AlbumArtist  string            `json:"AlbumArtist"`
	Artists      []string          `json:"Artists"`
	RunTimeTicks int64             `json:"RunTimeTicks"`
	UserData     *UserData         `json:"UserData"`
	ImageTags    map[string]string `json:"ImageTags"`
}

// PlayCount retorna o contador de reproduções de vida inteira, tolerando
// itens sem UserData
func (i CatalogItem) PlayCount() int {
	if i.UserData == nil {
		return 0
	}
	return i.UserData.PlayCount
}

// HasPrimaryImage indica se o item tem uma imagem primária disponível
func (i CatalogItem) HasPrimaryImage() bool {
	return len(i.ImageTags) > 0 && i.ImageTags["Primary"] != ""
}

// ItemsResponse é o envelope das respostas do catálogo
type ItemsResponse struct {
	Items            []CatalogItem `json:"Items"`
	TotalRecordCount int           `json:"TotalRecordCount"`
}

// AuthenticationResult é a resposta do AuthenticateByName do Jellyfin
type AuthenticationResult struct {
	AccessToken string            `json:"AccessToken"`
	User        AuthenticatedUser `json:"User"`
}

// AuthenticatedUser identifica o usuário autenticado no servidor
type AuthenticatedUser struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}
