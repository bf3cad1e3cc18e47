// services/ai.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"aiinvoice-backend/models"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// ErrUpstream marks draft-generation failures. There is no fallback workflow
// for the AI endpoint, so these are fatal for that request only.
var ErrUpstream = errors.New("ai generation failed")

// ChatCompleter is the slice of the OpenAI client the draft service uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// DraftService turns free text into an invoice-draft JSON object the user
// still submits through the normal create workflow. Persistence never
// depends on it.
type DraftService struct {
	client ChatCompleter
	models []string
	now    func() time.Time
	log    zerolog.Logger
}

func NewDraftService(client ChatCompleter, candidateModels []string, log zerolog.Logger) *DraftService {
	return &DraftService{
		client: client,
		models: candidateModels,
		now:    time.Now,
		log:    log,
	}
}

// GenerateDraft prompts the model for JSON only, trying each candidate model
// in order, and parses the outermost object from the reply. The profile, when
// present, seeds the schema defaults.
func (s *DraftService) GenerateDraft(ctx context.Context, prompt string, profile *models.BusinessProfile) (map[string]interface{}, string, error) {
	full := buildDraftPrompt(prompt, s.now(), profile)

	var lastErr error
	for _, model := range s.models {
		text, err := s.complete(ctx, model, full)
		if err != nil {
			s.log.Warn().Err(err).Str("model", model).Msg("draft model failed")
			lastErr = err
			continue
		}
		draft, err := extractJSONObject(text)
		if err != nil {
			s.log.Warn().Err(err).Str("model", model).Msg("draft reply unparseable")
			lastErr = err
			continue
		}
		return draft, model, nil
	}
	if lastErr == nil {
		lastErr = errors.New("no candidate models configured")
	}
	return nil, "", fmt.Errorf("%w: %v", ErrUpstream, lastErr)
}

func (s *DraftService) complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty response from model %s", model)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildDraftPrompt(promptText string, now time.Time, profile *models.BusinessProfile) string {
	template := map[string]interface{}{
		"invoiceNumber":    "",
		"issueDate":        now.Format("2006-01-02"),
		"dueDate":          "",
		"fromBusinessName": "",
		"fromEmail":        "",
		"fromAddress":      "",
		"fromPhone":        "",
		"client":           map[string]string{"name": "", "email": "", "address": "", "phone": ""},
		"items":            []map[string]interface{}{{"id": "1", "description": "", "qty": 1, "unitPrice": 0}},
		"taxPercent":       18,
		"notes":            "",
	}
	if profile != nil {
		template["fromBusinessName"] = profile.BusinessName
		template["fromEmail"] = profile.Email
		template["fromPhone"] = profile.PhoneNumber
		template["taxPercent"] = profile.DefaultTaxPercent
	}

	schema, _ := json.MarshalIndent(template, "", "  ")
	return fmt.Sprintf(`You are an invoice generation assistant.

Task:
  - Analyze the user's input text and produce a valid JSON object only (no explanatory text).
  - The JSON MUST match the schema below (include all fields even if empty).
  - Ensure all dates are ISO 'YYYY-MM-DD' strings and numeric fields are numbers.

Schema:
%s

User input:
%s

Output: valid JSON only (no surrounding code fences, no commentary).
`, schema, promptText)
}

// extractJSONObject pulls the outermost {...} out of a reply that may carry
// stray text around it.
func extractJSONObject(text string) (map[string]interface{}, error) {
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first == -1 || last <= first {
		return nil, errors.New("reply contains no JSON object")
	}
	var draft map[string]interface{}
	if err := json.Unmarshal([]byte(text[first:last+1]), &draft); err != nil {
		return nil, fmt.Errorf("reply contains invalid JSON: %w", err)
	}
	return draft, nil
}
