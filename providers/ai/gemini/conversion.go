package gemini

import (
	"strings"

	"github.com/leofalp/aibridge/internal/utils"
	"github.com/leofalp/aibridge/providers/ai"
)

// buildRequest maps the generic conversation onto generateContent. Gemini
// calls the assistant role "model"; system messages join the system instruction.
func buildRequest(systemPrompt string, messages []ai.Message, config ai.ResolvedConfig) generateContentRequest {
	request := generateContentRequest{
		Contents: make([]content, 0, len(messages)),
	}

	system := []string{}
	if systemPrompt != "" {
		system = append(system, systemPrompt)
	}
	for _, msg := range messages {
		switch msg.Role {
		case ai.RoleSystem:
			system = append(system, msg.Content)
		case ai.RoleAssistant:
			request.Contents = append(request.Contents, content{Role: "model", Parts: []part{{Text: msg.Content}}})
		default:
			request.Contents = append(request.Contents, content{Role: "user", Parts: []part{{Text: msg.Content}}})
		}
	}
	if len(system) > 0 {
		request.SystemInstruction = &systemInstruction{Parts: []part{{Text: strings.Join(system, "\n\n")}}}
	}

	if config.Temperature != nil || config.TopP != nil || config.MaxTokens > 0 {
		request.GenerationConfig = &generationConfig{
			Temperature: config.Temperature,
			TopP:        config.TopP,
		}
		if config.MaxTokens > 0 {
			request.GenerationConfig.MaxOutputTokens = utils.Ptr(config.MaxTokens)
		}
	}
	return request
}

func (r *generateContentRequest) ensureConfig() *generationConfig {
	if r.GenerationConfig == nil {
		r.GenerationConfig = &generationConfig{}
	}
	return r.GenerationConfig
}

// textResponse joins the non-thought text parts of the first candidate.
func textResponse(resp *generateContentResponse, requestedModel string) *ai.TextResponse {
	out := &ai.TextResponse{Id: resp.ResponseID, Model: resp.ModelVersion}
	if out.Model == "" {
		out.Model = requestedModel
	}

	if len(resp.Candidates) > 0 {
		var text strings.Builder
		for _, p := range resp.Candidates[0].Content.Parts {
			if !p.Thought {
				text.WriteString(p.Text)
			}
		}
		out.Content = text.String()
		out.FinishReason = resp.Candidates[0].FinishReason
	}

	if resp.UsageMetadata != nil {
		out.Usage = &ai.Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}
	}
	return out
}

// firstInlineData returns the first binary part of the first candidate.
func firstInlineData(resp *generateContentResponse) *inlineData {
	if len(resp.Candidates) == 0 {
		return nil
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			return p.InlineData
		}
	}
	return nil
}
