package repository

import (
	"errors"

	"time-control-api/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserRepository struct {
	logger *logrus.Logger
}

func NewUserRepository(db *gorm.DB) (*UserRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.User{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate users table")
		return nil, err
	}

	return &UserRepository{logger: logger}, nil
}

func (r *UserRepository) GetByID(tx *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	result := tx.First(&user, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("User not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get user by ID")
		return nil, result.Error
	}

	return &user, nil
}

func (r *UserRepository) GetByEmail(tx *gorm.DB, email string) (*models.User, error) {
	var user models.User
	result := tx.Where("email = ?", email).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get user by email")
		return nil, result.Error
	}

	return &user, nil
}

// GetByIDs loads a batch of users; callers compare lengths to detect unknown
// ids before wiring site assignments.
func (r *UserRepository) GetByIDs(tx *gorm.DB, ids []uint) ([]*models.User, error) {
	var users []*models.User

	result := tx.Where("id IN ?", ids).Find(&users)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get users by IDs")
		return nil, result.Error
	}

	return users, nil
}

func (r *UserRepository) GetAll(tx *gorm.DB) ([]*models.User, error) {
	var users []*models.User

	result := tx.Order("name ASC").Find(&users)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get users")
		return nil, result.Error
	}

	return users, nil
}

func (r *UserRepository) Create(tx *gorm.DB, user *models.User) error {
	result := tx.Create(user)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create user")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	}).Info("User created")

	return nil
}

func (r *UserRepository) Update(tx *gorm.DB, user *models.User) error {
	result := tx.Save(user)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update user")
		return result.Error
	}

	return nil
}
