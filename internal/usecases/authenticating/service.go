package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin"
	jellyfindomain "github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin/domain"
	"github.com/jellywind/jellywind-api/internal/config"
	"github.com/jellywind/jellywind-api/internal/domain"
	"github.com/jellywind/jellywind-api/pkg/apiErrors"
	"github.com/jellywind/jellywind-api/pkg/log"
)

type Authenticator interface {
	Login(serverURL, username, password string) (*domain.LoginResult, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	jellyfinService jellyfin.JellyfinIntegrator
	cfg             *config.Config
}

func NewService(jellyfinService jellyfin.JellyfinIntegrator, cfg *config.Config) Authenticator {
	return &Service{
		jellyfinService: jellyfinService,
		cfg:             cfg,
	}
}

// Login valida as credenciais diretamente contra o servidor Jellyfin do
// usuário e devolve um token de sessão. O token de acesso do Jellyfin viaja
// dentro do JWT assinado: a API não guarda nenhuma credencial.
func (s *Service) Login(serverURL, username, password string) (*domain.LoginResult, error) {
	serverURL = strings.TrimSpace(serverURL)
	if serverURL == "" || strings.TrimSpace(username) == "" || password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Servidor, usuário e senha são obrigatórios")
	}

	result, err := s.jellyfinService.Authenticate(serverURL, username, password)
	if err != nil {
		if apiErr, ok := jellyfindomain.AsAPIError(err); ok && apiErr.IsUnauthorized() {
			return nil, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Usuário ou senha incorretos")
		}
		log.L.WithError(err).Error("authenticating: falha ao autenticar no servidor Jellyfin")
		return nil, NewAuthError(ErrServerUnreachable, apiErrors.ErrExternalService, "Erro ao contatar o servidor Jellyfin")
	}

	if result.AccessToken == "" || result.User.ID == "" {
		return nil, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Resposta de autenticação incompleta")
	}

	token, err := s.generateJWT(serverURL, result)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return &domain.LoginResult{
		Token:     token,
		UserID:    result.User.ID,
		UserName:  result.User.Name,
		ServerURL: serverURL,
	}, nil
}

func (s *Service) generateJWT(serverURL string, result *jellyfindomain.AuthenticationResult) (string, error) {
	ttl := time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	claims := domain.Claims{
		ServerURL:   serverURL,
		UserID:      result.User.ID,
		UserName:    result.User.Name,
		AccessToken: result.AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString([]byte(s.cfg.Auth.Secret))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
