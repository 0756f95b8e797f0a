package jellyfinclient

import (
	"bytes"
	"context"
	"net/http"

	"github.com/pkg/errors"

	jellyfindomain "github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin/domain"
)

type authenticateRequest struct {
	Username string `json:"Username"`
	Pw       string `json:"Pw"`
}

// AuthenticateByName troca usuário e senha por um token de acesso do
// servidor Jellyfin. Como ainda não há token nesse momento, só o cabeçalho
// de identificação do cliente é enviado.
func (c *JellyfinClient) AuthenticateByName(serverURL, username, password string) (*jellyfindomain.AuthenticationResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.config.Jellyfin.RequestTimeoutDuration())
	defer cancel()

	endpoint, err := c.buildURL(serverURL, "/Users/AuthenticateByName")
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(authenticateRequest{
		Username: username,
		Pw:       password,
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar as credenciais")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	req.Header.Set("X-Emby-Authorization", c.embyAuthorization(""))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição")
	}

	body, err := c.handleResponse(resp)
	if err != nil {
		return nil, err
	}

	var result jellyfindomain.AuthenticationResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta")
	}

	return &result, nil
}
