package handler

import (
	"Folioforge/internal/pkg/response"
	"Folioforge/internal/service"
	"io"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody Stripe 事件体上限，防止异常大包
const maxWebhookBody = 1 << 20

type PaymentHandler struct {
	paymentSvc service.PaymentService
}

func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentSvc: paymentSvc,
	}
}

// StripeWebhook 签名校验依赖原始请求体，不能走 JSON 绑定
func (s *PaymentHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.Error(c, service.ErrWebhookInvalid)
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err = s.paymentSvc.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
