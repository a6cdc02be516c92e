package service

import (
	"Folioforge/internal/api/dto"
	"Folioforge/internal/pkg/llm"
	"context"
	log "log/slog"
)

type AIService interface {
	SuggestBio(ctx context.Context, req *dto.BioSuggestDTO) ([]string, error)
}

type aiServiceImpl struct{}

func NewAIService() AIService {
	return &aiServiceImpl{}
}

// SuggestBio 生成个人简介候选文案
func (s *aiServiceImpl) SuggestBio(ctx context.Context, req *dto.BioSuggestDTO) ([]string, error) {
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}
	suggestions, err := llm.SuggestBio(ctx, req.Profession, req.Keywords, tone)
	if err != nil {
		log.ErrorContext(ctx, "suggest bio error", "profession", req.Profession, "err", err)
		return nil, UnExpectedError
	}
	return suggestions, nil
}
