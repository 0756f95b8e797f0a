package jellyfinclient

import (
	"bytes"
	"context"
	"net/http"

	"github.com/pkg/errors"

	jellyfindomain "github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin/domain"
	"github.com/jellywind/jellywind-api/internal/domain"
)

type customQueryRequest struct {
	CustomQueryString string `json:"CustomQueryString"`
	ReplaceUserID     bool   `json:"ReplaceUserId"`
}

// SubmitCustomQuery envia uma consulta SQL ao plugin Playback Reporting do
// servidor do usuário e devolve as linhas como tuplas posicionais
func (c *JellyfinClient) SubmitCustomQuery(creds domain.Credentials, query string) (*jellyfindomain.CustomQueryResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.config.Jellyfin.RequestTimeoutDuration())
	defer cancel()

	endpoint, err := c.buildURL(creds.NormalizedServerURL(), "/user_usage_stats/submit_custom_query")
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(customQueryRequest{
		CustomQueryString: query,
		ReplaceUserID:     false,
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar a consulta")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	c.setAuthHeaders(req, creds.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição")
	}

	body, err := c.handleResponse(resp)
	if err != nil {
		return nil, err
	}

	var response jellyfindomain.CustomQueryResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta")
	}

	return &response, nil
}
