package repository

import (
	"context"
	"errors"

	"github.com/sadeeshasathsara/nexa-sub000/domain"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).
		Preload("TutorProfile").
		Preload("InstitutionProfile").
		First(&user, "email = ? AND deleted_at IS NULL", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByUUID(ctx context.Context, uuid string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).
		Preload("TutorProfile").
		Preload("InstitutionProfile").
		First(&user, "uuid = ? AND deleted_at IS NULL", uuid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListUsers(ctx context.Context, role, status string) ([]domain.User, error) {
	q := r.db.WithContext(ctx).Where("deleted_at IS NULL")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var users []domain.User
	if err := q.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// DeleteUser soft-deletes; accounts are never hard-deleted in the common path.
func (r *userRepository) DeleteUser(ctx context.Context, uuid string) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("uuid = ? AND deleted_at IS NULL", uuid).
		Update("deleted_at", gorm.Expr("NOW()"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
