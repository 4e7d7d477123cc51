package service

import (
	"fmt"
	"strings"
	"time"

	"time-control-api/internal/apperr"
	"time-control-api/internal/config"
	"time-control-api/internal/models"
	"time-control-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	msgBadCredentials = "Email o contraseña incorrectos."
	msgBadToken       = "La sesión no es válida o ha caducado."
)

type AuthService struct {
	db     *gorm.DB
	users  *repository.UserRepository
	secret []byte
	ttl    time.Duration
	logger *logrus.Logger
}

func NewAuthService(db *gorm.DB, users *repository.UserRepository, cfg *config.AppConfig) *AuthService {
	return &AuthService{
		db:     db,
		users:  users,
		secret: []byte(cfg.JWTSecret),
		ttl:    time.Duration(cfg.TokenTTLHours) * time.Hour,
		logger: newLogger(),
	}
}

// Login verifies the credentials and mints a signed session token. Wrong
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(s.db, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}
	if user == nil || !user.Active {
		return "", nil, apperr.NewUnauthorized(msgBadCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.WithField("email", user.Email).Warn("Login with wrong password")
		return "", nil, apperr.NewUnauthorized(msgBadCredentials)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", user.ID),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.WithError(err).Error("Failed to sign session token")
		return "", nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User logged in")

	return token, user, nil
}

// ValidateToken parses the session token and loads its user. A token whose
// user has since been disabled is rejected.
func (s *AuthService) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.NewUnauthorized(msgBadToken)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.NewUnauthorized(msgBadToken)
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return nil, apperr.NewUnauthorized(msgBadToken)
	}

	var userID uint
	if _, err := fmt.Sscanf(subject, "%d", &userID); err != nil {
		return nil, apperr.NewUnauthorized(msgBadToken)
	}

	user, err := s.users.GetByID(s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperr.NewUnauthorized(msgBadToken)
	}

	return user, nil
}

// SeedAdmin makes sure the configured bootstrap admin exists. Without at
// least one admin nobody can create users or sites.
func (s *AuthService) SeedAdmin(cfg *config.AppConfig) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		s.logger.Info("No bootstrap admin configured, skipping seed")
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.users.GetByEmail(tx, cfg.AdminEmail)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		admin := &models.User{
			Email:        cfg.AdminEmail,
			Name:         "Administrador",
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
			Active:       true,
		}
		if err := s.users.Create(tx, admin); err != nil {
			return err
		}

		s.logger.WithField("email", admin.Email).Info("Bootstrap admin seeded")
		return nil
	})
}
