package kafka

import (
	"testing"
	"time"

	"github.com/IBM/sarama"
)

func TestToViewEvent(t *testing.T) {
	msg := &sarama.ConsumerMessage{
		Value: []byte(`{"portfolio_id":42,"slug":"jane-doe","ip_address":"1.2.3.4","user_agent":"ua","referrer":"https://news.ycombinator.com","occurred_at":"2025-06-01T10:00:00Z"}`),
	}

	event, err := ToViewEvent(msg)
	if err != nil {
		t.Fatalf("ToViewEvent: %v", err)
	}
	if event.PortfolioID != 42 || event.Slug != "jane-doe" {
		t.Errorf("event = %+v", event)
	}
	want := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	if !event.OccurredAt.Equal(want) {
		t.Errorf("occurred_at = %v, want %v", event.OccurredAt, want)
	}
}

func TestToViewEventFallsBackToMessageTimestamp(t *testing.T) {
	ts := time.Date(2025, 6, 2, 12, 30, 0, 0, time.UTC)
	msg := &sarama.ConsumerMessage{
		Value:     []byte(`{"portfolio_id":7,"slug":"jane-doe"}`),
		Timestamp: ts,
	}

	event, err := ToViewEvent(msg)
	if err != nil {
		t.Fatalf("ToViewEvent: %v", err)
	}
	if !event.OccurredAt.Equal(ts) {
		t.Errorf("occurred_at = %v, want message timestamp %v", event.OccurredAt, ts)
	}
}

func TestToViewEventRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{"not json", "{{"},
		{"missing portfolio id", `{"slug":"jane-doe"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ToViewEvent(&sarama.ConsumerMessage{Value: []byte(tc.value)})
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
