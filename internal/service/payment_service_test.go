package service

import (
	"Folioforge/internal/model"
	"Folioforge/internal/pkg/cache"
	"Folioforge/internal/pkg/payment"
	"Folioforge/internal/repository"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

const webhookSecret = "whsec_test"

func signPayload(payload string) string {
	timestamp := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	fmt.Fprintf(mac, "%d.%s", timestamp, payload)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func checkoutPayload(externalID, email string) string {
	return fmt.Sprintf(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"customer_email":%q,"metadata":{"user_id":%q}}}}`,
		email, externalID)
}

func newTestPaymentService(t *testing.T) (PaymentService, repository.UserRepo) {
	t.Helper()
	db := newServiceTestDB(t)
	userRepo := repository.NewUserRepository(db)

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	provider := &fakeProvider{}
	accountSvc := NewAccountService(provider, cache.New(rdb, 5*time.Minute), userRepo)

	svc := NewPaymentService(payment.NewVerifier(webhookSecret), userRepo, provider, accountSvc)
	return svc, userRepo
}

func TestHandleWebhookUpgradesPlan(t *testing.T) {
	svc, userRepo := newTestPaymentService(t)
	ctx := context.Background()

	err := userRepo.UpsertUser(ctx, &model.User{ExternalID: "user_abc", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	payload := checkoutPayload("user_abc", "jane@example.com")
	if err = svc.HandleWebhook(ctx, []byte(payload), signPayload(payload)); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	user, err := userRepo.GetByExternalID(ctx, "user_abc")
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Plan != model.PlanPremium {
		t.Errorf("plan = %s, want premium", user.Plan)
	}
	if user.UpgradedAt == nil {
		t.Error("upgraded_at not set")
	}
}

func TestHandleWebhookCreatesMissingUser(t *testing.T) {
	svc, userRepo := newTestPaymentService(t)
	ctx := context.Background()

	// 本地还没有镜像，webhook 先到
	payload := checkoutPayload("user_new", "new@example.com")
	if err := svc.HandleWebhook(ctx, []byte(payload), signPayload(payload)); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	user, err := userRepo.GetByExternalID(ctx, "user_new")
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Plan != model.PlanPremium {
		t.Errorf("plan = %s, want premium", user.Plan)
	}
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	svc, _ := newTestPaymentService(t)
	ctx := context.Background()

	payload := checkoutPayload("user_abc", "jane@example.com")
	err := svc.HandleWebhook(ctx, []byte(payload), "t=1,v1=deadbeef")
	if !errors.Is(err, ErrWebhookInvalid) {
		t.Errorf("err = %v, want ErrWebhookInvalid", err)
	}
}

func TestHandleWebhookIgnoresOtherEvents(t *testing.T) {
	svc, userRepo := newTestPaymentService(t)
	ctx := context.Background()

	err := userRepo.UpsertUser(ctx, &model.User{ExternalID: "user_abc", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	payload := `{"id":"evt_2","type":"invoice.paid","data":{"object":{"customer_email":"jane@example.com"}}}`
	if err = svc.HandleWebhook(ctx, []byte(payload), signPayload(payload)); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	user, err := userRepo.GetByExternalID(ctx, "user_abc")
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Plan == model.PlanPremium {
		t.Error("plan upgraded by ignored event")
	}
}
