package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/vaultpay/backend/internal/application/adapter"
)

const (
	minInsights = 3
	maxInsights = 5
)

// GeminiService implements the InsightService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = "gemini-2.5-flash-lite"
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// GenerateInsights asks Gemini for concise spending insights.
func (s *GeminiService) GenerateInsights(ctx context.Context, summary *adapter.InsightSummary) ([]string, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.4)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(s.buildPrompt(summary)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	insights, err := s.parseResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return insights, nil
}

// buildPrompt creates the prompt for Gemini.
func (s *GeminiService) buildPrompt(summary *adapter.InsightSummary) string {
	var sb strings.Builder

	sb.WriteString(`You are a personal finance advisor. Analyze the spending summary below and produce 3 to 5 short, actionable insights.

RULES:
- Each insight is one sentence, concrete and specific to the numbers given.
- Mention actual amounts or percentages where relevant.
- Never recommend financial products; only budgeting behavior.
- Respond with a JSON array of strings and nothing else.

SPENDING SUMMARY:
`)

	sb.WriteString(fmt.Sprintf("Period: %s\n", summary.TimePeriod))
	sb.WriteString(fmt.Sprintf("Total spent: %.2f\n", summary.TotalSpent))

	sb.WriteString("\nBy category:\n")
	for _, c := range summary.SpendingByCategory {
		sb.WriteString(fmt.Sprintf("- %s: %.2f (%.2f%% of total)\n", c.Category, c.Amount, c.Percentage))
	}

	sb.WriteString("\nBy vault:\n")
	for _, v := range summary.SpendingByVault {
		sb.WriteString(fmt.Sprintf("- %s: %.2f (%.2f%% of total)\n", v.VaultName, v.Amount, v.PercentageOfTotal))
	}

	return sb.String()
}

// parseResponse parses the Gemini response into insight strings.
func (s *GeminiService) parseResponse(resp *genai.GenerateContentResponse) ([]string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}
	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Strip markdown code fences if present.
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var insights []string
	if err := json.Unmarshal([]byte(textContent), &insights); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	cleaned := make([]string, 0, len(insights))
	for _, insight := range insights {
		if trimmed := strings.TrimSpace(insight); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) < minInsights {
		return nil, fmt.Errorf("gemini returned %d insights, expected at least %d", len(cleaned), minInsights)
	}
	if len(cleaned) > maxInsights {
		cleaned = cleaned[:maxInsights]
	}
	return cleaned, nil
}
