package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"time"

	"prep-tool-be/internal/config"
	"prep-tool-be/internal/dto"
	"prep-tool-be/internal/pkg/apperror"
	"prep-tool-be/internal/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenExpiry = 24 * time.Hour

type IAuthService interface {
	Enabled() bool
	Secret() []byte
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// authService checks the single configured account. The password is only kept
// as a bcrypt hash.
type authService struct {
	enabled      bool
	user         string
	passwordHash []byte
	secret       []byte
	logger       logger.ILogger
}

func NewAuthService(cfg config.AuthConfig, log logger.ILogger) (IAuthService, error) {
	s := &authService{enabled: cfg.Enabled(), user: cfg.User, logger: log}

	if cfg.Secret != "" {
		s.secret = []byte(cfg.Secret)
	} else {
		// tokens do not survive a restart without PREP_TOOL_SECRET
		s.secret = make([]byte, 32)
		if _, err := rand.Read(s.secret); err != nil {
			return nil, err
		}
	}

	if s.enabled {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Pass), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		s.passwordHash = hash
	}
	return s, nil
}

func (s *authService) Enabled() bool {
	return s.enabled
}

func (s *authService) Secret() []byte {
	return s.secret
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if !s.enabled {
		return nil, fmt.Errorf("%w: login is disabled", apperror.ErrValidation)
	}

	userOk := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.user)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if !userOk || passErr != nil {
		s.logger.Warn("AUTH", "Failed login attempt", map[string]interface{}{
			"username": req.Username,
		})
		return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	}

	expiresAt := time.Now().Add(accessTokenExpiry)
	claims := jwt.RegisteredClaims{
		Subject:   s.user,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "User logged in", map[string]interface{}{"username": s.user})
	return &dto.LoginResponse{
		AccessToken: signedToken,
		ExpiresAt:   expiresAt,
		Viewer:      s.user,
	}, nil
}
