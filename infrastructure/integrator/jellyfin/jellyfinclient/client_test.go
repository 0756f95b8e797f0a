package jellyfinclient

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jellyfindomain "github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin/domain"
	"github.com/jellywind/jellywind-api/internal/config"
	"github.com/jellywind/jellywind-api/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Jellyfin: config.Jellyfin{
			ClientName:     "Jellywind",
			ClientVersion:  "1.0.0",
			DeviceName:     "JellywindAPI",
			RequestTimeout: 5,
		},
	}
}

func testCredentials(serverURL string) domain.Credentials {
	return domain.Credentials{
		ServerURL:   serverURL,
		UserID:      "user-123",
		AccessToken: "token-abc",
	}
}

func TestSubmitCustomQuery(t *testing.T) {
	var capturedBody string
	var capturedAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/user_usage_stats/submit_custom_query", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		capturedBody = string(body)
		capturedAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"colums":["ItemId","ItemName","PlayCount","TotalDuration"],"results":[["abc","Song A",12,3600.5]]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig())

	response, err := client.SubmitCustomQuery(testCredentials(server.URL), "SELECT 1")
	require.NoError(t, err)

	assert.Contains(t, capturedBody, `"CustomQueryString":"SELECT 1"`)
	assert.Contains(t, capturedBody, `"ReplaceUserId":false`)
	assert.Equal(t, `MediaBrowser Token="token-abc"`, capturedAuth)

	require.Len(t, response.Results, 1)
	row, err := jellyfindomain.MapPlayActivityRow(response.Results[0])
	require.NoError(t, err)
	assert.Equal(t, "abc", row.ItemID)
	assert.Equal(t, "Song A", row.ItemName)
	assert.Equal(t, 12, row.PlayCount)
	assert.Equal(t, 3600.5, row.TotalDuration)
}

func TestSubmitCustomQuery_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "plugin not installed", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(testConfig())

	_, err := client.SubmitCustomQuery(testCredentials(server.URL), "SELECT 1")
	require.Error(t, err)

	apiErr, ok := jellyfindomain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "plugin not installed")
}

func TestGetItemsByIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Items", r.URL.Path)
		assert.Equal(t, "id1,id2", r.URL.Query().Get("Ids"))
		assert.NotEmpty(t, r.URL.Query().Get("Fields"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Items":[{"Id":"id1","Name":"Song A","Artists":["Artist A"],"Album":"Album A"},{"Id":"id2","Name":"Song B"}],"TotalRecordCount":2}`))
	}))
	defer server.Close()

	client := NewClient(testConfig())

	items, err := client.GetItemsByIDs(testCredentials(server.URL), []string{"id1", "id2"})
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Song A", items[0].Name)
	assert.Equal(t, []string{"Artist A"}, items[0].Artists)
	assert.Equal(t, "Album A", items[0].Album)
}

func TestGetItemsByIDs_EmptyInput(t *testing.T) {
	// Nenhuma requisição deve ser feita quando a lista de IDs é vazia
	client := NewClient(testConfig())

	items, err := client.GetItemsByIDs(testCredentials("http://unreachable.invalid"), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSearchArtist(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Artists", r.URL.Path)
		assert.Equal(t, "Caetano Veloso", r.URL.Query().Get("SearchTerm"))
		assert.Equal(t, "1", r.URL.Query().Get("Limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Items":[{"Id":"artist-1","Name":"Caetano Veloso","ImageTags":{"Primary":"tag123"}}],"TotalRecordCount":1}`))
	}))
	defer server.Close()

	client := NewClient(testConfig())

	artist, err := client.SearchArtist(testCredentials(server.URL), "Caetano Veloso")
	require.NoError(t, err)

	require.NotNil(t, artist)
	assert.Equal(t, "artist-1", artist.ID)
	assert.True(t, artist.HasPrimaryImage())
}

func TestSearchArtist_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Items":[],"TotalRecordCount":0}`))
	}))
	defer server.Close()

	client := NewClient(testConfig())

	artist, err := client.SearchArtist(testCredentials(server.URL), "Ninguém")
	require.NoError(t, err)
	assert.Nil(t, artist)
}

func TestAuthenticateByName(t *testing.T) {
	var capturedEmbyAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Users/AuthenticateByName", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"Username":"maria"`)
		assert.Contains(t, string(body), `"Pw":"s3cret"`)
		capturedEmbyAuth = r.Header.Get("X-Emby-Authorization")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"AccessToken":"new-token","User":{"Id":"user-9","Name":"maria"}}`))
	}))
	defer server.Close()

	client := NewClient(testConfig())

	result, err := client.AuthenticateByName(server.URL, "maria", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, "new-token", result.AccessToken)
	assert.Equal(t, "user-9", result.User.ID)
	assert.Equal(t, "maria", result.User.Name)

	// O login ainda não tem token, então o cabeçalho só identifica o cliente
	assert.Contains(t, capturedEmbyAuth, `Client="Jellywind"`)
	assert.NotContains(t, capturedEmbyAuth, "Token=")
}

func TestAuthenticateByName_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid user or password", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(testConfig())

	_, err := client.AuthenticateByName(server.URL, "maria", "errada")
	require.Error(t, err)

	apiErr, ok := jellyfindomain.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsUnauthorized())
}
