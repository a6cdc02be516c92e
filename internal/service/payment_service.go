package service

import (
	"Folioforge/internal/model"
	"Folioforge/internal/pkg/identity"
	"Folioforge/internal/pkg/payment"
	"Folioforge/internal/repository"
	"context"
	log "log/slog"
)

// checkoutCompleted 触发套餐升级的事件类型
const checkoutCompleted = "checkout.session.completed"

type PaymentService interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type paymentServiceImpl struct {
	verifier   *payment.Verifier
	userRepo   repository.UserRepo
	provider   identity.Provider
	accountSvc AccountService
}

func NewPaymentService(
	verifier *payment.Verifier,
	userRepo repository.UserRepo,
	provider identity.Provider,
	accountSvc AccountService,
) PaymentService {
	return &paymentServiceImpl{
		verifier:   verifier,
		userRepo:   userRepo,
		provider:   provider,
		accountSvc: accountSvc,
	}
}

// HandleWebhook 校验签名后处理支付事件，付款完成即升级为高级套餐
func (s *paymentServiceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.verifier.VerifyAndParse(payload, signature)
	if err != nil {
		log.WarnContext(ctx, "webhook verify error", "err", err)
		return ErrWebhookInvalid
	}

	if event.Type != checkoutCompleted {
		log.InfoContext(ctx, "webhook event ignored", "type", event.Type)
		return nil
	}

	externalID := event.ExternalUserID()
	email := event.Email()

	var rows int64
	switch {
	case externalID != "":
		rows, err = s.userRepo.UpdatePlanByExternalID(ctx, externalID, model.PlanPremium)
	case email != "":
		rows, err = s.userRepo.UpdatePlanByEmail(ctx, email, model.PlanPremium)
	default:
		log.WarnContext(ctx, "webhook missing user reference", "event", event.ID)
		return ErrUserNotFound
	}
	if err != nil {
		log.ErrorContext(ctx, "upgrade plan error", "event", event.ID, "err", err)
		return UnExpectedError
	}
	if rows == 0 {
		// 本地还没有镜像，尝试按邮箱反查外部 ID
		if externalID == "" && email != "" {
			externalID, err = s.provider.FindExternalIDByEmail(ctx, email)
			if err != nil || externalID == "" {
				log.WarnContext(ctx, "webhook user not found", "email", email, "err", err)
				return ErrUserNotFound
			}
		}
		err = s.userRepo.UpsertUser(ctx, &model.User{
			ExternalID: externalID,
			Email:      email,
		})
		if err != nil {
			log.ErrorContext(ctx, "upsert user error", "event", event.ID, "err", err)
			return UnExpectedError
		}
		if _, err = s.userRepo.UpdatePlanByExternalID(ctx, externalID, model.PlanPremium); err != nil {
			log.ErrorContext(ctx, "upgrade plan error", "event", event.ID, "err", err)
			return UnExpectedError
		}
	}

	if externalID != "" {
		if err = s.accountSvc.InvalidateCapabilities(ctx, externalID); err != nil {
			log.WarnContext(ctx, "invalidate capabilities error", "user_id", externalID, "err", err)
		}
	}

	log.InfoContext(ctx, "plan upgraded", "event", event.ID, "user_id", externalID, "email", email)
	return nil
}
