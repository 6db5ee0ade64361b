package mealgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mealplan/backend/internal/infrastructure/config"
)

// LLMClient generates plans through an OpenAI-compatible chat completion
// endpoint. The model is instructed to answer with JSON only.
type LLMClient struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// NewLLMClient creates an LLMClient from meal generation settings.
func NewLLMClient(cfg config.MealGenConfig) (*LLMClient, error) {
	if cfg.APIEndpoint == "" {
		return nil, errors.New("llm producer requires an API endpoint")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &LLMClient{
		endpoint: cfg.APIEndpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GeneratePlan asks the model for a plan and parses its JSON answer.
func (c *LLMClient) GeneratePlan(ctx context.Context, prefs Preferences) (*GeneratedPlan, error) {
	prefs.ApplyDefaults()

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(prefs)},
		},
		Temperature: 0.2,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm api error: status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode llm response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, errors.New("empty llm response")
	}

	content := stripCodeFence(parsed.Choices[0].Message.Content)
	var plan GeneratedPlan
	if err := json.Unmarshal([]byte(content), &plan); err != nil {
		return nil, fmt.Errorf("parse generated plan: %w", err)
	}
	return &plan, nil
}

const systemPrompt = `You are a meal planning assistant. Respond with a single JSON object and nothing else. The object has a "days" array; each day has "day" (1-based) and "meals"; each meal has "meal_type" and "recipe" with "title", "description", "ingredients" (objects with "name", "amount", optional "unit" from g, kg, ml, l, pcs, tbsp, tsp, cup), "instructions" (array of strings), "calories_per_serving", "protein", "carbs" and "fat" as numbers.`

func buildUserPrompt(prefs Preferences) string {
	return fmt.Sprintf(
		"Create a %d-day meal plan with %d meals per day (%s). Daily target: %d calories. Dietary preferences: %s.",
		prefs.Days,
		prefs.MealsPerDay,
		strings.Join(prefs.MealTypes(), ", "),
		prefs.TargetCalories,
		strings.Join(prefs.DietaryPreferences, ", "),
	)
}

// stripCodeFence removes a surrounding markdown code fence if the model
// wrapped its answer in one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Ensure LLMClient implements Producer
var _ Producer = (*LLMClient)(nil)
