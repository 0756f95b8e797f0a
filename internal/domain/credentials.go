package domain

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Credentials agrupa tudo que é necessário para consultar um servidor
// Jellyfin em nome de um usuário. São imutáveis durante o cálculo de um
// relatório: a API nunca persiste essas informações.
type Credentials struct {
	ServerURL   string `json:"server_url"`
	UserID      string `json:"user_id"`
	AccessToken string `json:"-"`
}

// Complete verifica se todos os campos obrigatórios estão presentes
func (c Credentials) Complete() bool {
	return strings.TrimSpace(c.ServerURL) != "" &&
		strings.TrimSpace(c.UserID) != "" &&
		strings.TrimSpace(c.AccessToken) != ""
}

// NormalizedServerURL remove a barra final da URL do servidor
func (c Credentials) NormalizedServerURL() string {
	return strings.TrimRight(strings.TrimSpace(c.ServerURL), "/")
}

// Claims é o conteúdo do token de sessão emitido pela API. O token do
// Jellyfin viaja dentro do nosso JWT assinado; não existe base local de
// usuários.
type Claims struct {
	ServerURL   string `json:"server_url"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name,omitempty"`
	AccessToken string `json:"access_token"`
	jwt.RegisteredClaims
}

// Credentials converte as claims de volta para credenciais do Jellyfin
func (c *Claims) Credentials() Credentials {
	return Credentials{
		ServerURL:   c.ServerURL,
		UserID:      c.UserID,
		AccessToken: c.AccessToken,
	}
}

// LoginResult é a resposta do fluxo de autenticação pass-through
type LoginResult struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	ServerURL string `json:"server_url"`
}
