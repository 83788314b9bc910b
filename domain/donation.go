package domain

import (
	"context"
	"time"
)

const (
	DonationPending   = "pending"
	DonationCompleted = "completed"
	DonationFailed    = "failed"
)

type Donation struct {
	OrderID   string  `gorm:"primaryKey;type:uuid" json:"order_id"`
	DonorUUID string  `gorm:"type:uuid;not null;index" json:"donor_uuid"`
	Amount    float64 `gorm:"not null" json:"amount"`
	Currency  string  `gorm:"size:3;not null;default:'LKR'" json:"currency"`
	Message   string  `gorm:"type:text" json:"message"`
	Status    string  `gorm:"size:20;not null;default:'pending'" json:"status"` // pending | completed | failed
	PaymentID *string `gorm:"size:100" json:"payment_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CheckoutPayload is what the frontend posts to the payment gateway. The hash
// signs merchant id, order id, amount and currency with the shared secret.
type CheckoutPayload struct {
	MerchantID string  `json:"merchant_id"`
	OrderID    string  `json:"order_id"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Hash       string  `json:"hash"`
}

type DonationRepository interface {
	CreateDonation(ctx context.Context, d *Donation) error
	GetDonationByOrderID(ctx context.Context, orderID string) (*Donation, error)
	ListDonationsByDonor(ctx context.Context, donorUUID string) ([]Donation, error)
	UpdateDonation(ctx context.Context, d *Donation) error
	DonationTotals(ctx context.Context) (count int64, sum float64, err error)
}

type DonationUseCase interface {
	CreateDonation(ctx context.Context, donorUUID string, amount float64, currency, message string) (*CheckoutPayload, error)
	ListMyDonations(ctx context.Context, donorUUID string) ([]Donation, error)
	// HandleGatewayNotify verifies the gateway signature and settles the
	// donation. Called from the public webhook.
	HandleGatewayNotify(ctx context.Context, params map[string]string) error
}
