package service

import (
	"strings"
	"unicode"

	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
	"time-control-api/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	msgUserNotFound  = "No se encuentra este usuario."
	msgUserDuplicate = "Ya hay un usuario registrado con este email."
	msgUserBadEmail  = "El email no es válido."
	msgUserBadRole   = "El rol no es válido."
	msgPasswordWeak  = "La contraseña debe tener al menos 8 caracteres, con minúsculas, mayúsculas y números o símbolos."
	msgPasswordChars = "La contraseña contiene caracteres no permitidos."
)

// Characters that historically break downstream form handling.
const passwordForbidden = " '\"\\`"

// UserCreate carries a new account.
type UserCreate struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// UserPatch is a partial update. Password, when set, is re-checked against
// the policy and re-hashed.
type UserPatch struct {
	Name     models.Optional[string]
	Password models.Optional[string]
	Role     models.Optional[string]
	Active   models.Optional[bool]
}

type UserService struct {
	db     *gorm.DB
	users  *repository.UserRepository
	logger *logrus.Logger
}

func NewUserService(db *gorm.DB, users *repository.UserRepository) *UserService {
	return &UserService{
		db:     db,
		users:  users,
		logger: newLogger(),
	}
}

func (s *UserService) GetAll() ([]*models.User, error) {
	return s.users.GetAll(s.db)
}

func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.users.GetByID(s.db, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NewNotFound(msgUserNotFound)
	}
	return user, nil
}

func (s *UserService) Create(input UserCreate) (*models.User, error) {
	var user *models.User

	err := s.db.Transaction(func(tx *gorm.DB) error {
		email := strings.ToLower(strings.TrimSpace(input.Email))
		if !strings.Contains(email, "@") {
			return apperr.NewValidation(msgUserBadEmail)
		}

		role := input.Role
		if role == "" {
			role = models.RoleUser
		}
		if role != models.RoleUser && role != models.RoleAdmin {
			return apperr.NewValidation(msgUserBadRole)
		}

		if err := validatePassword(input.Password); err != nil {
			return err
		}

		existing, err := s.users.GetByEmail(tx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.NewValidation(msgUserDuplicate)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user = &models.User{
			Email:        email,
			Name:         strings.TrimSpace(input.Name),
			PasswordHash: string(hash),
			Role:         role,
			Active:       true,
		}
		if err := s.users.Create(tx, user); err != nil {
			if repository.ViolationKind(err) == repository.UniqueViolated {
				return apperr.NewValidation(msgUserDuplicate)
			}
			return err
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Update(id uint, patch UserPatch) (*models.User, error) {
	var user *models.User

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.users.GetByID(tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NewNotFound(msgUserNotFound)
		}

		if patch.Name.Set && patch.Name.Valid {
			existing.Name = strings.TrimSpace(patch.Name.Value)
		}
		if patch.Role.Set && patch.Role.Valid {
			if patch.Role.Value != models.RoleUser && patch.Role.Value != models.RoleAdmin {
				return apperr.NewValidation(msgUserBadRole)
			}
			existing.Role = patch.Role.Value
		}
		if patch.Active.Set && patch.Active.Valid {
			existing.Active = patch.Active.Value
		}
		if patch.Password.Set && patch.Password.Valid {
			if err := validatePassword(patch.Password.Value); err != nil {
				return err
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(patch.Password.Value), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			existing.PasswordHash = string(hash)
		}

		if err := s.users.Update(tx, existing); err != nil {
			return err
		}

		user = existing
		return nil
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

// validatePassword enforces the account password policy: at least eight
// characters, a lowercase letter, an uppercase letter and a number or symbol,
// with a short list of characters that are never accepted.
func validatePassword(password string) error {
	if strings.ContainsAny(password, passwordForbidden) {
		return apperr.NewValidation(msgPasswordChars)
	}
	if len(password) < 8 {
		return apperr.NewValidation(msgPasswordWeak)
	}

	var hasLower, hasUpper, hasNumberOrSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r), unicode.IsPunct(r), unicode.IsSymbol(r):
			hasNumberOrSymbol = true
		}
	}
	if !hasLower || !hasUpper || !hasNumberOrSymbol {
		return apperr.NewValidation(msgPasswordWeak)
	}

	return nil
}
