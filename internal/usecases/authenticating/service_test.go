package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	jellyfindomain "github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin/domain"
	jellyfinmocks "github.com/jellywind/jellywind-api/infrastructure/integrator/jellyfin/mocks"
	"github.com/jellywind/jellywind-api/internal/config"
	"github.com/jellywind/jellywind-api/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.Auth{
			Secret:        "segredo-de-teste",
			TokenTTLHours: 1,
		},
	}
}

func TestService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := jellyfinmocks.NewMockJellyfinIntegrator(ctrl)
	service := NewService(mock, testConfig())

	mock.EXPECT().
		Authenticate("http://media.local", "maria", "s3cret").
		Return(&jellyfindomain.AuthenticationResult{
			AccessToken: "jf-token",
			User: jellyfindomain.AuthenticatedUser{
				ID:   "user-9",
				Name: "maria",
			},
		}, nil)

	result, err := service.Login("http://media.local", "maria", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, "user-9", result.UserID)
	assert.Equal(t, "maria", result.UserName)
	assert.Equal(t, "http://media.local", result.ServerURL)
	require.NotEmpty(t, result.Token)

	// O token de sessão carrega as credenciais do Jellyfin
	claims, err := service.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "http://media.local", claims.ServerURL)
	assert.Equal(t, "user-9", claims.UserID)
	assert.Equal(t, "jf-token", claims.AccessToken)

	creds := claims.Credentials()
	assert.True(t, creds.Complete())
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := jellyfinmocks.NewMockJellyfinIntegrator(ctrl)
	service := NewService(mock, testConfig())

	mock.EXPECT().
		Authenticate("http://media.local", "maria", "errada").
		Return(nil, &jellyfindomain.APIError{StatusCode: 401, Body: "Invalid user or password"})

	result, err := service.Login("http://media.local", "maria", "errada")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.True(t, IsCredentialsError(err))
}

func TestService_Login_MissingData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := jellyfinmocks.NewMockJellyfinIntegrator(ctrl)
	service := NewService(mock, testConfig())

	// Nenhuma chamada ao servidor é esperada
	result, err := service.Login("", "maria", "s3cret")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrMissingRequiredData)
}

func TestService_ValidateToken_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := jellyfinmocks.NewMockJellyfinIntegrator(ctrl)
	service := NewService(mock, testConfig())

	claims, err := service.ValidateToken("nem-um-jwt")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_ValidateToken_Expired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := jellyfinmocks.NewMockJellyfinIntegrator(ctrl)
	cfg := testConfig()
	service := NewService(mock, cfg)

	expired := domain.Claims{
		ServerURL:   "http://media.local",
		UserID:      "user-9",
		AccessToken: "jf-token",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &expired)
	signed, err := token.SignedString([]byte(cfg.Auth.Secret))
	require.NoError(t, err)

	claims, err := service.ValidateToken(signed)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestService_ValidateToken_WrongSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := jellyfinmocks.NewMockJellyfinIntegrator(ctrl)
	service := NewService(mock, testConfig())

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, &domain.Claims{
		UserID: "user-9",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := other.SignedString([]byte("outro-segredo"))
	require.NoError(t, err)

	claims, err := service.ValidateToken(signed)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
