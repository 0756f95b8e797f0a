package jellyfinclient

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	jellyfindomain "github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin/domain"
	"github.com/jellywind/jellywind-api/internal/config"
	"github.com/jellywind/jellywind-api/internal/domain"
	"github.com/jellywind/jellywind-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	AuthenticateByName(serverURL, username, password string) (*jellyfindomain.AuthenticationResult, error)
	SubmitCustomQuery(creds domain.Credentials, query string) (*jellyfindomain.CustomQueryResponse, error)
	GetItemsByIDs(creds domain.Credentials, ids []string) ([]jellyfindomain.CatalogItem, error)
	GetUserItems(creds domain.Credentials, params *url.Values) (*jellyfindomain.ItemsResponse, error)
	SearchArtist(creds domain.Credentials, name string) (*jellyfindomain.CatalogItem, error)
}

type JellyfinClient struct {
	httpClient *http.Client
	config     *config.Config
	deviceID   string
}

// NewClient cria uma nova instância do cliente da API do Jellyfin. O
// deviceID é gerado uma única vez por processo e identifica esta instância
// nos registros de sessão do servidor de mídia.
func NewClient(cfg *config.Config) Client {
	return &JellyfinClient{
		httpClient: &http.Client{
			Timeout: cfg.Jellyfin.RequestTimeoutDuration(),
		},
		config:   cfg,
		deviceID: utils.GenerateDeviceID(),
	}
}

// buildURL monta a URL final juntando a URL base do servidor do usuário com
// o caminho do endpoint
func (c *JellyfinClient) buildURL(serverURL, endpointPath string) (*url.URL, error) {
	endpoint, err := url.Parse(serverURL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao analisar a URL do servidor")
	}
	endpoint.Path = path.Join(endpoint.Path, endpointPath)
	return endpoint, nil
}

// setAuthHeaders adiciona os cabeçalhos de autenticação que o Jellyfin
// espera em requisições autenticadas
func (c *JellyfinClient) setAuthHeaders(req *http.Request, token string) {
	req.Header.Set("Authorization", fmt.Sprintf("MediaBrowser Token=%q", token))
	req.Header.Set("X-Emby-Authorization", c.embyAuthorization(token))
	req.Header.Set("Accept", "application/json")
}

// embyAuthorization monta o cabeçalho de identificação do cliente. O token
// pode ser vazio (caso do login, quando ainda não temos um).
func (c *JellyfinClient) embyAuthorization(token string) string {
	value := fmt.Sprintf(
		"MediaBrowser Client=%q, Device=%q, DeviceId=%q, Version=%q",
		c.config.Jellyfin.ClientName,
		c.config.Jellyfin.DeviceName,
		c.deviceID,
		c.config.Jellyfin.ClientVersion,
	)
	if token != "" {
		value += fmt.Sprintf(", Token=%q", token)
	}
	return value
}

// handleResponse verifica o status da resposta e devolve o corpo bruto.
// Respostas não-2xx viram *domain.APIError com o corpo preservado para
// diagnóstico.
func (c *JellyfinClient) handleResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler o corpo da resposta")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &jellyfindomain.APIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}
