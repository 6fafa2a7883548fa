package billing_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/birikio/birikio/internal/billing"
	"github.com/birikio/birikio/internal/model"
)

var errNotFound = errors.New("not found")

type stubStore struct {
	subscription *model.Subscription
	getErr       error
	saved        *model.Subscription
}

func (store *stubStore) GetSubscription(userID int) (model.Subscription, error) {
	if store.getErr != nil {
		return model.Subscription{}, store.getErr
	}

	if store.subscription == nil {
		return model.Subscription{}, errNotFound
	}

	return *store.subscription, nil
}

func (store *stubStore) UpsertSubscription(subscription *model.Subscription) error {
	store.saved = subscription

	return nil
}

type stubProvider struct {
	result    billing.PaymentResult
	verifyErr error
	cancelled string
}

func (provider *stubProvider) CreateCheckoutSession(email, successURL, cancelURL string) (billing.CheckoutSession, error) {
	return billing.CheckoutSession{ID: "sess_1", URL: "https://pay.example/" + email}, nil
}

func (provider *stubProvider) VerifySession(sessionID string) (billing.PaymentResult, error) {
	return provider.result, provider.verifyErr
}

func (provider *stubProvider) CancelSubscription(subscriptionID string) error {
	provider.cancelled = subscriptionID

	return nil
}

func makeService(store *stubStore, provider *stubProvider) *billing.Service {
	return &billing.Service{
		Store:    store,
		Provider: provider,
		NotFound: func(err error) bool { return errors.Is(err, errNotFound) },
	}
}

func TestStatusMissingRecordIsFree(t *testing.T) {
	service := makeService(&stubStore{}, &stubProvider{})
	status := service.Status(1)

	if status.IsPro {
		t.Error("missing record must resolve to free")
	}
}

func TestStatusFetchErrorFallsBackToFree(t *testing.T) {
	service := makeService(&stubStore{getErr: errors.New("connection refused")}, &stubProvider{})
	status := service.Status(1)

	if status.IsPro {
		t.Error("a fetch error must never grant pro")
	}
}

func TestStatusActivePro(t *testing.T) {
	service := makeService(&stubStore{
		subscription: &model.Subscription{
			IsPro:           true,
			SubscriptionEnd: sql.NullTime{Time: time.Now().Add(time.Hour), Valid: true},
		},
	}, &stubProvider{})

	if !service.Status(1).IsPro {
		t.Error("expected pro status")
	}
}

func TestVerifyPaymentRecordsPro(t *testing.T) {
	store := &stubStore{}
	provider := &stubProvider{
		result: billing.PaymentResult{
			Paid:           true,
			CustomerID:     "cus_1",
			SubscriptionID: "sub_1",
		},
	}
	service := makeService(store, provider)

	paid, err := service.VerifyPayment(7, "sess_1")

	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if !paid {
		t.Fatal("expected payment to verify")
	}

	if store.saved == nil {
		t.Fatal("expected a subscription to be saved")
	}

	if !store.saved.IsPro || store.saved.UserID != 7 {
		t.Errorf("expected pro subscription for user 7, got %+v", store.saved)
	}

	if !store.saved.SubscriptionEnd.Valid {
		t.Error("expected a subscription end date")
	}

	if store.saved.StripeSubscriptionID.String != "sub_1" {
		t.Errorf("expected stripe subscription id recorded, got %+v", store.saved.StripeSubscriptionID)
	}
}

func TestVerifyPaymentUnpaid(t *testing.T) {
	store := &stubStore{}
	service := makeService(store, &stubProvider{result: billing.PaymentResult{Paid: false}})

	paid, err := service.VerifyPayment(7, "sess_1")

	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if paid {
		t.Error("unpaid session must not verify")
	}

	if store.saved != nil {
		t.Error("unpaid session must not record a subscription")
	}
}

func TestCancelDowngrades(t *testing.T) {
	store := &stubStore{
		subscription: &model.Subscription{
			UserID:               7,
			IsPro:                true,
			PlanType:             "pro",
			StripeSubscriptionID: sql.NullString{String: "sub_1", Valid: true},
		},
	}
	provider := &stubProvider{}
	service := makeService(store, provider)

	if err := service.Cancel(7); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if provider.cancelled != "sub_1" {
		t.Errorf("expected provider cancellation of sub_1, got %q", provider.cancelled)
	}

	if store.saved == nil || store.saved.IsPro {
		t.Errorf("expected downgraded record, got %+v", store.saved)
	}
}

func TestCancelWithoutSubscription(t *testing.T) {
	store := &stubStore{}
	service := makeService(store, &stubProvider{})

	if err := service.Cancel(7); err != nil {
		t.Fatalf("cancelling with no record must be a no-op, got %s", err)
	}

	if store.saved != nil {
		t.Error("no record should be written")
	}
}

func TestStartCheckout(t *testing.T) {
	service := makeService(&stubStore{}, &stubProvider{})
	user := model.User{ID: 7, Username: "kerem@example.com"}

	url, err := service.StartCheckout(&user, "https://app/success", "https://app/cancel")

	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if url != "https://pay.example/kerem@example.com" {
		t.Errorf("unexpected checkout url %q", url)
	}
}
