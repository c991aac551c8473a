package openai

import (
	"github.com/leofalp/aibridge/internal/utils"
	"github.com/leofalp/aibridge/providers/ai"
)

// buildChatRequest maps the generic conversation onto the chat completions
// body. The system prompt, when set, becomes the first message.
func buildChatRequest(model, systemPrompt string, messages []ai.Message, config ai.ResolvedConfig) chatCompletionRequest {
	request := chatCompletionRequest{
		Model:       model,
		Messages:    make([]chatMessage, 0, len(messages)+1),
		Temperature: config.Temperature,
		TopP:        config.TopP,
	}
	if config.MaxTokens > 0 {
		request.MaxTokens = utils.Ptr(config.MaxTokens)
	}

	if systemPrompt != "" {
		request.Messages = append(request.Messages, chatMessage{Role: string(ai.RoleSystem), Content: systemPrompt})
	}
	for _, msg := range messages {
		request.Messages = append(request.Messages, chatMessage{Role: string(msg.Role), Content: msg.Content})
	}
	return request
}

// responseFormatFor asks for native JSON output: a named json_schema when the
// caller supplied a schema, json_object otherwise.
func responseFormatFor(schema []byte) *chatResponseFormat {
	if len(schema) == 0 {
		return &chatResponseFormat{Type: "json_object"}
	}
	return &chatResponseFormat{
		Type:       "json_schema",
		JSONSchema: &jsonSchemaSpec{Name: "response", Schema: schema},
	}
}

func textResponseFromChat(resp *chatCompletionResponse, requestedModel string) *ai.TextResponse {
	out := &ai.TextResponse{
		Id:    resp.ID,
		Model: resp.Model,
	}
	if out.Model == "" {
		out.Model = requestedModel
	}
	if len(resp.Choices) > 0 {
		out.Content = resp.Choices[0].Message.Content
		out.FinishReason = resp.Choices[0].FinishReason
	}
	if resp.Usage != nil {
		out.Usage = &ai.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}
	return out
}
