package jellyfinclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	jellyfindomain "github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin/domain"
	"github.com/jellywind/jellywind-api/internal/domain"
)

// SearchArtist procura um artista pelo nome exibido e devolve o primeiro
// resultado, ou nil quando o servidor não conhece o nome
func (c *JellyfinClient) SearchArtist(creds domain.Credentials, name string) (*jellyfindomain.CatalogItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.config.Jellyfin.RequestTimeoutDuration())
	defer cancel()

	endpoint, err := c.buildURL(creds.NormalizedServerURL(), "/Artists")
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("SearchTerm", name)
	params.Set("Limit", "1")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	c.setAuthHeaders(req, creds.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição")
	}

	body, err := c.handleResponse(resp)
	if err != nil {
		return nil, err
	}

	var response jellyfindomain.ItemsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta")
	}

	if len(response.Items) == 0 {
		return nil, nil
	}

	return &response.Items[0], nil
}
