package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DefaultTolerance 签名时间戳允许的最大偏差
const DefaultTolerance = 5 * time.Minute

var (
	ErrInvalidSignature = errors.New("webhook 签名校验失败")
	ErrStaleTimestamp   = errors.New("webhook 时间戳超出容忍范围")
)

// Event Stripe webhook 事件，只保留计划升级所需的字段
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			CustomerEmail   string `json:"customer_email"`
			CustomerDetails struct {
				Email string `json:"email"`
			} `json:"customer_details"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// Email 从事件中取付款人邮箱，两个位置都可能携带
func (e *Event) Email() string {
	if e.Data.Object.CustomerEmail != "" {
		return e.Data.Object.CustomerEmail
	}
	return e.Data.Object.CustomerDetails.Email
}

// ExternalUserID checkout 时写入 metadata 的外部用户 ID
func (e *Event) ExternalUserID() string {
	return e.Data.Object.Metadata["user_id"]
}

// Verifier 校验 Stripe-Signature 头并解析事件体
type Verifier struct {
	secret    []byte
	tolerance time.Duration
	now       func() time.Time
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret:    []byte(secret),
		tolerance: DefaultTolerance,
		now:       time.Now,
	}
}

// VerifyAndParse 校验签名后解析事件，任何一步失败都不会返回事件体
func (v *Verifier) VerifyAndParse(payload []byte, header string) (*Event, error) {
	if err := v.verify(payload, header); err != nil {
		return nil, err
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("webhook 事件解析失败: %w", err)
	}
	return &event, nil
}

// verify 按 Stripe 规则校验：HMAC-SHA256(secret, "{t}.{payload}") 与 v1 比对
func (v *Verifier) verify(payload []byte, header string) error {
	timestamp, signatures, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	issued := time.Unix(timestamp, 0)
	if v.now().Sub(issued) > v.tolerance || issued.Sub(v.now()) > v.tolerance {
		return ErrStaleTimestamp
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, signature := range signatures {
		decoded, err := hex.DecodeString(signature)
		if err != nil {
			continue
		}
		if hmac.Equal(expected, decoded) {
			return nil
		}
	}
	return ErrInvalidSignature
}

func parseSignatureHeader(header string) (int64, []string, error) {
	var timestamp int64
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, ErrInvalidSignature
			}
			timestamp = parsed
		case "v1":
			signatures = append(signatures, value)
		}
	}
	if timestamp == 0 || len(signatures) == 0 {
		return 0, nil, ErrInvalidSignature
	}
	return timestamp, signatures, nil
}
