package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sadeeshasathsara/nexa-sub000/domain"
	"github.com/sadeeshasathsara/nexa-sub000/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PayHere reports payment outcome in status_code: 2 success, 0 pending,
// -1 cancelled, -2 failed, -3 chargedback.
const payhereStatusSuccess = "2"

type donationService struct {
	donationRepo domain.DonationRepository

	merchantID     string
	merchantSecret string
}

func NewDonationService(donationRepo domain.DonationRepository, merchantID, merchantSecret string) domain.DonationUseCase {
	return &donationService{
		donationRepo:   donationRepo,
		merchantID:     merchantID,
		merchantSecret: merchantSecret,
	}
}

func (s *donationService) CreateDonation(ctx context.Context, donorUUID string, amount float64, currency, message string) (*domain.CheckoutPayload, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if currency == "" {
		currency = "LKR"
	}

	donation := &domain.Donation{
		OrderID:   uuid.NewString(),
		DonorUUID: donorUUID,
		Amount:    amount,
		Currency:  currency,
		Message:   message,
		Status:    domain.DonationPending,
	}
	if err := s.donationRepo.CreateDonation(ctx, donation); err != nil {
		return nil, err
	}

	return &domain.CheckoutPayload{
		MerchantID: s.merchantID,
		OrderID:    donation.OrderID,
		Amount:     amount,
		Currency:   currency,
		Hash:       utils.PayHereCheckoutHash(s.merchantID, donation.OrderID, amount, currency, s.merchantSecret),
	}, nil
}

func (s *donationService) ListMyDonations(ctx context.Context, donorUUID string) ([]domain.Donation, error) {
	return s.donationRepo.ListDonationsByDonor(ctx, donorUUID)
}

func (s *donationService) HandleGatewayNotify(ctx context.Context, params map[string]string) error {
	orderID := params["order_id"]
	statusCode := params["status_code"]

	if !utils.VerifyPayHereNotification(
		params["merchant_id"],
		orderID,
		params["payhere_amount"],
		params["payhere_currency"],
		statusCode,
		params["md5sig"],
		s.merchantSecret,
	) {
		log.Warn().Str("order_id", orderID).Msg("payment notification with bad signature")
		return domain.ErrUnauthorized
	}
	if params["merchant_id"] != s.merchantID {
		return domain.ErrUnauthorized
	}

	donation, err := s.donationRepo.GetDonationByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	// Already-settled donations are left alone; the gateway may retry
	// notifications.
	if donation.Status != domain.DonationPending {
		return nil
	}

	// Cross-check the reported amount against our record.
	if reported, err := strconv.ParseFloat(params["payhere_amount"], 64); err != nil || reported != donation.Amount {
		log.Warn().Str("order_id", orderID).Str("reported", params["payhere_amount"]).
			Msg("payment notification amount mismatch")
		return domain.ErrValidation
	}

	if statusCode == payhereStatusSuccess {
		donation.Status = domain.DonationCompleted
	} else {
		donation.Status = domain.DonationFailed
	}
	if pid := params["payment_id"]; pid != "" {
		donation.PaymentID = &pid
	}

	return s.donationRepo.UpdateDonation(ctx, donation)
}
