package repository

import (
	"context"
	"errors"

	"github.com/sadeeshasathsara/nexa-sub000/domain"

	"gorm.io/gorm"
)

type donationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) domain.DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) CreateDonation(ctx context.Context, d *domain.Donation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *donationRepository) GetDonationByOrderID(ctx context.Context, orderID string) (*domain.Donation, error) {
	var d domain.Donation
	if err := r.db.WithContext(ctx).First(&d, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *donationRepository) ListDonationsByDonor(ctx context.Context, donorUUID string) ([]domain.Donation, error) {
	var donations []domain.Donation
	if err := r.db.WithContext(ctx).
		Where("donor_uuid = ?", donorUUID).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) UpdateDonation(ctx context.Context, d *domain.Donation) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *donationRepository) DonationTotals(ctx context.Context) (int64, float64, error) {
	var result struct {
		Count int64
		Total float64
	}
	err := r.db.WithContext(ctx).Model(&domain.Donation{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Where("status = ?", domain.DonationCompleted).
		Scan(&result).Error
	return result.Count, result.Total, err
}
