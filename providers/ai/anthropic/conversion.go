package anthropic

import (
	"strings"

	"github.com/leofalp/aibridge/providers/ai"
)

// buildRequest maps the generic conversation onto the Messages API. System
// messages found inside the conversation are merged into the top-level
// system field, since Anthropic only accepts user and assistant turns.
func buildRequest(model, systemPrompt string, messages []ai.Message, config ai.ResolvedConfig) anthropicRequest {
	request := anthropicRequest{
		Model:       model,
		MaxTokens:   config.MaxTokens,
		Temperature: config.Temperature,
		TopP:        config.TopP,
		Messages:    make([]anthropicMessage, 0, len(messages)),
	}
	if request.MaxTokens <= 0 {
		request.MaxTokens = defaultMaxTokens
	}

	system := []string{}
	if systemPrompt != "" {
		system = append(system, systemPrompt)
	}
	for _, msg := range messages {
		if msg.Role == ai.RoleSystem {
			system = append(system, msg.Content)
			continue
		}
		role := "user"
		if msg.Role == ai.RoleAssistant {
			role = "assistant"
		}
		request.Messages = append(request.Messages, anthropicMessage{
			Role:    role,
			Content: []anthropicContentBlock{{Type: "text", Text: msg.Content}},
		})
	}
	request.System = strings.Join(system, "\n\n")
	return request
}

func textResponse(resp *anthropicResponse, requestedModel string) *ai.TextResponse {
	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	model := resp.Model
	if model == "" {
		model = requestedModel
	}
	return &ai.TextResponse{
		Id:           resp.ID,
		Model:        model,
		Content:      text.String(),
		FinishReason: resp.StopReason,
		Usage: &ai.Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}
}
