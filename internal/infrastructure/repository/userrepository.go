package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"boxmas/internal/domain/user"
	"boxmas/internal/infrastructure/persistence/mappers"
	"boxmas/internal/infrastructure/persistence/models"
	apperrors "boxmas/internal/shared/errors"
	"boxmas/internal/shared/logger"
	"boxmas/internal/shared/utils"
)

var _ user.Repository = (*UserRepository)(nil)

// UserRepository is the gorm-backed credential store
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB, logger logger.Interface) *UserRepository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

// Create creates a new user. The unique index on email is the final guard
// against concurrent registrations racing past the use case's pre-check.
func (r *UserRepository) Create(ctx context.Context, userEntity *user.User) error {
	model := r.mapper.ToModel(userEntity)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateError(err) {
			return user.NewEmailTakenError()
		}
		r.logger.Errorw("failed to create user in database", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	// Set the ID back to the entity
	if err := userEntity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created successfully", "id", model.ID, "email", utils.MaskEmail(model.Email))
	return nil
}

// GetByEmail retrieves a user by exact email, returning nil when absent
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel

	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by email", "email", utils.MaskEmail(email), "error", err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// ExistsByEmail checks if a user exists by email
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check email existence", "email", utils.MaskEmail(email), "error", err)
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

// List returns all users ordered by ID
func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	var userModels []*models.UserModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&userModels).Error; err != nil {
		r.logger.Errorw("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return r.mapper.ToEntities(userModels)
}

// UpdatePasswordHash replaces the stored credential for userID
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID uint, hash string) error {
	result := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", userID).
		Update("password_hash", hash)
	if result.Error != nil {
		r.logger.Errorw("failed to update password hash", "id", userID, "error", result.Error)
		return fmt.Errorf("failed to update password hash: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.NewUserNotFoundError()
	}
	return nil
}
