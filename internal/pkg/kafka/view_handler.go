package kafka

import (
	"Folioforge/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ViewsHandler 消费访问事件并落入分析事件日志
type ViewsHandler struct {
	analyticsSvc service.AnalyticsService
}

func NewViewsHandler(analyticsSvc service.AnalyticsService) *ViewsHandler {
	return &ViewsHandler{
		analyticsSvc: analyticsSvc,
	}
}

func (s *ViewsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("portfolio view consumer setup")
	return nil
}

func (s *ViewsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("portfolio view consumer cleanup")
	return nil
}

func (s *ViewsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-portfolio-views consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-portfolio-views process batch error", "err", err)
		return err
	}
	return nil
}

func (s *ViewsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := ToViewEvent(msg)
	if err != nil {
		// 脏消息直接丢弃，避免无限重试
		log.ErrorContext(ctx, "drop malformed view event", "err", err)
		return nil
	}

	return s.analyticsSvc.RecordView(ctx, service.ViewRecord{
		PortfolioID: event.PortfolioID,
		IPAddress:   event.IPAddress,
		UserAgent:   event.UserAgent,
		Referrer:    event.Referrer,
		OccurredAt:  event.OccurredAt,
	})
}
