package service

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deckwise/backend/internal/server"
)

// AuthService initializes the Clerk SDK. Clerk holds its key in package
// state, so constructing this service once at startup is what makes
// token verification work everywhere else.
type AuthService struct {
	server *server.Server
}

// NewAuthService sets the Clerk secret key and returns the service.
func NewAuthService(s *server.Server) *AuthService {
	clerk.SetKey(s.Config.Auth.SecretKey)
	return &AuthService{
		server: s,
	}
}
