package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sadeeshasathsara/nexa-sub000/domain"
)

type mockDonationRepo struct {
	donations map[string]*domain.Donation
}

func newMockDonationRepo() *mockDonationRepo {
	return &mockDonationRepo{donations: map[string]*domain.Donation{}}
}

func (m *mockDonationRepo) CreateDonation(_ context.Context, d *domain.Donation) error {
	m.donations[d.OrderID] = d
	return nil
}

func (m *mockDonationRepo) GetDonationByOrderID(_ context.Context, orderID string) (*domain.Donation, error) {
	d, ok := m.donations[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (m *mockDonationRepo) ListDonationsByDonor(_ context.Context, donorUUID string) ([]domain.Donation, error) {
	var out []domain.Donation
	for _, d := range m.donations {
		if d.DonorUUID == donorUUID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *mockDonationRepo) UpdateDonation(_ context.Context, d *domain.Donation) error {
	if _, ok := m.donations[d.OrderID]; !ok {
		return domain.ErrNotFound
	}
	m.donations[d.OrderID] = d
	return nil
}

func (m *mockDonationRepo) DonationTotals(_ context.Context) (int64, float64, error) {
	var count int64
	var sum float64
	for _, d := range m.donations {
		if d.Status == domain.DonationCompleted {
			count++
			sum += d.Amount
		}
	}
	return count, sum, nil
}

const (
	testMerchantID = "1211149"
	testSecret     = "merchant-secret"
)

func notifySig(orderID, amount, currency, statusCode string) string {
	inner := md5.Sum([]byte(testSecret))
	innerHex := strings.ToUpper(hex.EncodeToString(inner[:]))
	outer := md5.Sum([]byte(testMerchantID + orderID + amount + currency + statusCode + innerHex))
	return strings.ToUpper(hex.EncodeToString(outer[:]))
}

func notifyParams(orderID, amount, statusCode string) map[string]string {
	return map[string]string{
		"merchant_id":      testMerchantID,
		"order_id":         orderID,
		"payhere_amount":   amount,
		"payhere_currency": "LKR",
		"status_code":      statusCode,
		"md5sig":           notifySig(orderID, amount, "LKR", statusCode),
		"payment_id":       "pay-001",
	}
}

func TestCreateDonation(t *testing.T) {
	repo := newMockDonationRepo()
	svc := NewDonationService(repo, testMerchantID, testSecret)
	ctx := context.Background()

	payload, err := svc.CreateDonation(ctx, "donor-1", 2500, "", "keep it up")
	if err != nil {
		t.Fatalf("CreateDonation: %v", err)
	}
	if payload.MerchantID != testMerchantID {
		t.Errorf("merchant id = %q, want %q", payload.MerchantID, testMerchantID)
	}
	if payload.Currency != "LKR" {
		t.Errorf("currency = %q, want LKR (default)", payload.Currency)
	}
	if payload.Hash == "" || payload.OrderID == "" {
		t.Fatal("payload missing hash or order id")
	}

	donation := repo.donations[payload.OrderID]
	if donation == nil {
		t.Fatal("donation not persisted")
	}
	if donation.Status != domain.DonationPending {
		t.Errorf("status = %q, want pending", donation.Status)
	}

	if _, err := svc.CreateDonation(ctx, "donor-1", 0, "LKR", ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("zero amount err = %v, want ErrValidation", err)
	}
	if _, err := svc.CreateDonation(ctx, "donor-1", -5, "LKR", ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("negative amount err = %v, want ErrValidation", err)
	}
}

func TestHandleGatewayNotifySuccess(t *testing.T) {
	repo := newMockDonationRepo()
	svc := NewDonationService(repo, testMerchantID, testSecret)
	ctx := context.Background()

	payload, err := svc.CreateDonation(ctx, "donor-1", 2500, "LKR", "")
	if err != nil {
		t.Fatalf("CreateDonation: %v", err)
	}

	amount := fmt.Sprintf("%.2f", 2500.0)
	if err := svc.HandleGatewayNotify(ctx, notifyParams(payload.OrderID, amount, "2")); err != nil {
		t.Fatalf("HandleGatewayNotify: %v", err)
	}

	donation := repo.donations[payload.OrderID]
	if donation.Status != domain.DonationCompleted {
		t.Errorf("status = %q, want completed", donation.Status)
	}
	if donation.PaymentID == nil || *donation.PaymentID != "pay-001" {
		t.Error("payment id not recorded")
	}

	// Gateway retries are idempotent once settled.
	if err := svc.HandleGatewayNotify(ctx, notifyParams(payload.OrderID, amount, "2")); err != nil {
		t.Fatalf("retry notify: %v", err)
	}
}

func TestHandleGatewayNotifyFailure(t *testing.T) {
	repo := newMockDonationRepo()
	svc := NewDonationService(repo, testMerchantID, testSecret)
	ctx := context.Background()

	payload, err := svc.CreateDonation(ctx, "donor-1", 2500, "LKR", "")
	if err != nil {
		t.Fatalf("CreateDonation: %v", err)
	}
	amount := fmt.Sprintf("%.2f", 2500.0)

	if err := svc.HandleGatewayNotify(ctx, notifyParams(payload.OrderID, amount, "-2")); err != nil {
		t.Fatalf("HandleGatewayNotify: %v", err)
	}
	if repo.donations[payload.OrderID].Status != domain.DonationFailed {
		t.Errorf("status = %q, want failed", repo.donations[payload.OrderID].Status)
	}
}

func TestHandleGatewayNotifyRejections(t *testing.T) {
	repo := newMockDonationRepo()
	svc := NewDonationService(repo, testMerchantID, testSecret)
	ctx := context.Background()

	payload, err := svc.CreateDonation(ctx, "donor-1", 2500, "LKR", "")
	if err != nil {
		t.Fatalf("CreateDonation: %v", err)
	}
	amount := fmt.Sprintf("%.2f", 2500.0)

	// Tampered signature.
	params := notifyParams(payload.OrderID, amount, "2")
	params["md5sig"] = "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF"
	if err := svc.HandleGatewayNotify(ctx, params); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("bad sig err = %v, want ErrUnauthorized", err)
	}

	// Amount mismatch with a valid signature.
	wrong := fmt.Sprintf("%.2f", 9999.0)
	if err := svc.HandleGatewayNotify(ctx, notifyParams(payload.OrderID, wrong, "2")); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("amount mismatch err = %v, want ErrValidation", err)
	}

	// Unknown order with a valid signature.
	if err := svc.HandleGatewayNotify(ctx, notifyParams("no-such-order", amount, "2")); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown order err = %v, want ErrNotFound", err)
	}

	// Nothing settled along the way.
	if repo.donations[payload.OrderID].Status != domain.DonationPending {
		t.Errorf("status = %q, want pending", repo.donations[payload.OrderID].Status)
	}
}
