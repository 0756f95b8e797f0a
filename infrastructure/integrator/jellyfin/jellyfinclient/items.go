package jellyfinclient

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/pkg/errors"

	jellyfindomain "github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin/domain"
	"github.com/jellywind/jellywind-api/internal/domain"
)

// GetItemsByIDs busca os registros de catálogo de um lote de itens, em uma
// única requisição. O Jellyfin aceita a lista inteira no parâmetro Ids.
func (c *JellyfinClient) GetItemsByIDs(creds domain.Credentials, ids []string) ([]jellyfindomain.CatalogItem, error) {
	if len(ids) == 0 {
		return []jellyfindomain.CatalogItem{}, nil
	}

	params := &url.Values{}
	params.Set("Ids", strings.Join(ids, ","))
	params.Set("Fields", "Album,AlbumArtist,Artists,RunTimeTicks,ImageTags")

	response, err := c.getItems(creds, "/Items", params)
	if err != nil {
		return nil, err
	}

	return response.Items, nil
}

// GetUserItems consulta o catálogo do usuário em /Users/{id}/Items, com os
// filtros que o chamador montar (tipo, período de reprodução, ordenação)
func (c *JellyfinClient) GetUserItems(creds domain.Credentials, params *url.Values) (*jellyfindomain.ItemsResponse, error) {
	endpointPath := path.Join("/Users", creds.UserID, "Items")
	return c.getItems(creds, endpointPath, params)
}

func (c *JellyfinClient) getItems(creds domain.Credentials, endpointPath string, params *url.Values) (*jellyfindomain.ItemsResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.config.Jellyfin.RequestTimeoutDuration())
	defer cancel()

	endpoint, err := c.buildURL(creds.NormalizedServerURL(), endpointPath)
	if err != nil {
		return nil, err
	}

	if params != nil {
		endpoint.RawQuery = params.Encode()
	}

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

	return &response, nil
}
