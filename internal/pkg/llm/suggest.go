package llm

import (
	"context"
	"errors"
	log "log/slog"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tmc/langchaingo/llms"
)

const bioSystemPrompt = `你是一位作品集文案助手。根据给出的职业、关键词和语气，产出 3 条第一人称的个人简介，每条不超过 280 字符。
只输出 JSON 字符串数组，不要输出其他内容。`

// SuggestBio 生成个人简介候选文案
func SuggestBio(ctx context.Context, profession string, keywords []string, tone string) ([]string, error) {
	if llmClient == nil {
		return nil, errors.New("AI服务未初始化")
	}

	if err := TextSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer TextSem.Release(1)

	var sb strings.Builder
	sb.WriteString("职业: " + profession + "\n")
	if len(keywords) > 0 {
		sb.WriteString("关键词: " + strings.Join(keywords, ", ") + "\n")
	}
	if tone != "" {
		sb.WriteString("语气: " + tone + "\n")
	}

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(bioSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(sb.String())},
		},
	}

	log.InfoContext(ctx, "正在请求AI大模型", "profession", profession)
	resp, err := llmClient.GenerateContent(ctx, messages, llms.WithTemperature(0.8))
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("AI大模型返回为空")
	}

	return parseSuggestions(resp.Choices[0].Content)
}

// parseSuggestions 解析模型输出，容忍围栏代码块包裹
func parseSuggestions(content string) ([]string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var suggestions []string
	if err := json.Unmarshal([]byte(content), &suggestions); err != nil {
		return nil, errors.New("AI大模型输出解析失败")
	}
	if len(suggestions) == 0 {
		return nil, errors.New("AI大模型输出为空")
	}
	return suggestions, nil
}
