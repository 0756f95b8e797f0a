package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse indica uma resposta do Jellyfin que não bate com o
// formato esperado (linhas com aridade errada, campos de tipo inesperado).
// Para propagação, é tratado como falha de upstream.
var ErrMalformedResponse = errors.New("resposta do Jellyfin em formato inesperado")

// APIError é uma resposta não-2xx do servidor Jellyfin, com detalhe
// suficiente para a camada de exibição montar um diagnóstico
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jellyfin respondeu com status %d: %s", e.StatusCode, e.Body)
}

// IsUnauthorized indica se o servidor rejeitou as credenciais
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// AsAPIError extrai um *APIError da cadeia de erros, se houver
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
