package repository

import (
	"context"

	"github.com/sadeeshasathsara/nexa-sub000/domain"

	"gorm.io/gorm"
)

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) domain.AdminRepository {
	return &adminRepository{db: db}
}

type groupCount struct {
	Key   string
	Count int64
}

func (r *adminRepository) CountUsersByRole(ctx context.Context) (map[string]int64, error) {
	var rows []groupCount
	if err := r.db.WithContext(ctx).Model(&domain.User{}).
		Select("role AS key, COUNT(*) AS count").
		Where("deleted_at IS NULL").
		Group("role").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}

func (r *adminRepository) CountUsersByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []groupCount
	if err := r.db.WithContext(ctx).Model(&domain.User{}).
		Select("status AS key, COUNT(*) AS count").
		Where("deleted_at IS NULL").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}

func (r *adminRepository) CountCourses(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Course{}).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count, err
}
