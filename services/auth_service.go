package services

import (
	"fmt"

	"github.com/gameroster/roster-system/utils"
)

// AuthService is the credential-checking half of the authentication gate.
// The stock implementation accepts exactly one configured username/password
// pair; a real credential store can be dropped in behind the same interface.
type AuthService interface {
	Authenticate(username, password string) error
}

type staticAuthService struct {
	username     string
	passwordHash string
}

func NewStaticAuthService(username, password string) (AuthService, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash configured password: %w", err)
	}
	return &staticAuthService{
		username:     username,
		passwordHash: hash,
	}, nil
}

func (s *staticAuthService) Authenticate(username, password string) error {
	if username != s.username || !utils.CheckPasswordHash(password, s.passwordHash) {
		return ErrInvalidCredentials
	}
	return nil
}
