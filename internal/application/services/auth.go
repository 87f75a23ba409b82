package services

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"cloudnest-api/internal/application/ports"
	"cloudnest-api/internal/domain/user"
	"cloudnest-api/internal/infrastructure/jwt"
)

const tokenTTL = time.Hour

type AuthService struct {
	jwtService *jwt.Service
}

func NewAuthService(jwtService *jwt.Service) ports.Auth {
	return &AuthService{
		jwtService: jwtService,
	}
}

func (as *AuthService) GenerateToken(u *user.User, requestPassword string) (string, error) {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(requestPassword))
	if err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := as.jwtService.GenerateJWT(u.UUID.String(), tokenTTL)
	if err != nil {
		return "", ErrFailedToGenerateToken
	}

	return token, nil
}

func (as *AuthService) RevokeToken(token string) error {
	return as.jwtService.RevokeToken(token)
}
