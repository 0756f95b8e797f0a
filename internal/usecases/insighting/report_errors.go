package insighting

import "errors"

var (
	// ErrNotAuthenticated indica credenciais do Jellyfin incompletas
	ErrNotAuthenticated = errors.New("credenciais do Jellyfin incompletas")
)
