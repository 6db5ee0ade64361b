package mealgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealplan/backend/internal/infrastructure/config"
)

const planJSON = `{"days":[{"day":1,"meals":[{"meal_type":"breakfast","recipe":{"title":"Toast","description":"","ingredients":[{"name":"bread","amount":2,"unit":"pcs"}],"instructions":["toast it"],"calories_per_serving":200,"protein":6,"carbs":30,"fat":3}}]}]}`

func chatReply(content string) string {
	reply := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	data, _ := json.Marshal(reply)
	return string(data)
}

func newTestLLMClient(t *testing.T, handler http.HandlerFunc) *LLMClient {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewLLMClient(config.MealGenConfig{
		APIEndpoint: server.URL,
		APIKey:      "test-key",
		Model:       "test-model",
		Timeout:     5 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestLLMClient_GeneratePlan(t *testing.T) {
	ctx := context.Background()

	t.Run("parses a JSON-only answer", func(t *testing.T) {
		client := newTestLLMClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "test-model", req.Model)
			require.Len(t, req.Messages, 2)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(chatReply(planJSON)))
		})

		plan, err := client.GeneratePlan(ctx, Preferences{Days: 1, MealsPerDay: 1})
		require.NoError(t, err)
		require.NoError(t, plan.Validate())
		assert.Equal(t, "Toast", plan.Days[0].Meals[0].Recipe.Title)
	})

	t.Run("strips markdown code fences", func(t *testing.T) {
		client := newTestLLMClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(chatReply("```json\n" + planJSON + "\n```")))
		})

		plan, err := client.GeneratePlan(ctx, Preferences{Days: 1})
		require.NoError(t, err)
		assert.Len(t, plan.Days, 1)
	})

	t.Run("propagates API errors", func(t *testing.T) {
		client := newTestLLMClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model overloaded", http.StatusServiceUnavailable)
		})

		_, err := client.GeneratePlan(ctx, Preferences{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm api error")
	})

	t.Run("rejects non-JSON answers", func(t *testing.T) {
		client := newTestLLMClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(chatReply("Sure! Here is your meal plan: ...")))
		})

		_, err := client.GeneratePlan(ctx, Preferences{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse generated plan")
	})

	t.Run("rejects empty choice list", func(t *testing.T) {
		client := newTestLLMClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		})

		_, err := client.GeneratePlan(ctx, Preferences{})
		assert.EqualError(t, err, "empty llm response")
	})

	t.Run("requires an endpoint", func(t *testing.T) {
		_, err := NewLLMClient(config.MealGenConfig{})
		assert.Error(t, err)
	})
}
