package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"
)

const testSecret = "whsec_test"

func signedHeader(t *testing.T, payload []byte, at time.Time) string {
	t.Helper()
	timestamp := at.Unix()
	mac := hmac.New(sha256.New, []byte(testSecret))
	fmt.Fprintf(mac, "%d.%s", timestamp, payload)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func newTestVerifier(now time.Time) *Verifier {
	v := NewVerifier(testSecret)
	v.now = func() time.Time { return now }
	return v
}

func TestVerifyAndParse(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{
		"id": "evt_123",
		"type": "checkout.session.completed",
		"data": {"object": {
			"customer_details": {"email": "buyer@example.com"},
			"metadata": {"user_id": "user_abc"}
		}}
	}`)

	verifier := newTestVerifier(now)
	event, err := verifier.VerifyAndParse(payload, signedHeader(t, payload, now))
	if err != nil {
		t.Fatalf("VerifyAndParse: %v", err)
	}
	if event.Type != "checkout.session.completed" {
		t.Errorf("type = %q", event.Type)
	}
	if event.Email() != "buyer@example.com" {
		t.Errorf("email = %q", event.Email())
	}
	if event.ExternalUserID() != "user_abc" {
		t.Errorf("external user id = %q", event.ExternalUserID())
	}
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"type":"checkout.session.completed"}`)
	verifier := newTestVerifier(now)

	header := signedHeader(t, []byte("tampered"), now)
	if _, err := verifier.VerifyAndParse(payload, header); err != ErrInvalidSignature {
		t.Errorf("tampered payload: err = %v, want invalid signature", err)
	}

	if _, err := verifier.VerifyAndParse(payload, "v1=deadbeef"); err != ErrInvalidSignature {
		t.Errorf("missing timestamp: err = %v, want invalid signature", err)
	}

	if _, err := verifier.VerifyAndParse(payload, ""); err != ErrInvalidSignature {
		t.Errorf("empty header: err = %v, want invalid signature", err)
	}
}

func TestVerifyRejectsStaleTimestamp(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"type":"checkout.session.completed"}`)
	verifier := newTestVerifier(now)

	header := signedHeader(t, payload, now.Add(-6*time.Minute))
	if _, err := verifier.VerifyAndParse(payload, header); err != ErrStaleTimestamp {
		t.Errorf("stale timestamp: err = %v, want stale timestamp", err)
	}
}

func TestEmailFallsBackToCustomerEmail(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{
		"type": "checkout.session.completed",
		"data": {"object": {"customer_email": "direct@example.com"}}
	}`)

	verifier := newTestVerifier(now)
	event, err := verifier.VerifyAndParse(payload, signedHeader(t, payload, now))
	if err != nil {
		t.Fatalf("VerifyAndParse: %v", err)
	}
	if event.Email() != "direct@example.com" {
		t.Errorf("email = %q, want direct@example.com", event.Email())
	}
}
