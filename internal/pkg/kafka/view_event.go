package kafka

import (
	"errors"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// ViewEvent 公开页渲染侧投递的访问事件
type ViewEvent struct {
	PortfolioID uint64    `json:"portfolio_id"`
	Slug        string    `json:"slug"`
	IPAddress   string    `json:"ip_address"`
	UserAgent   string    `json:"user_agent"`
	Referrer    string    `json:"referrer"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ToViewEvent 将 kafka 消息解析为访问事件
func ToViewEvent(msg *sarama.ConsumerMessage) (*ViewEvent, error) {
	var event ViewEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return nil, err
	}
	if event.PortfolioID == 0 {
		return nil, errors.New("view event missing portfolio id")
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = msg.Timestamp
	}
	return &event, nil
}
