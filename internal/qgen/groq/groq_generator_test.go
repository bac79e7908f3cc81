package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizgen/internal/config"
	"quizgen/internal/domain"
	"quizgen/internal/port"
	"quizgen/internal/qgen"
)

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message":       map[string]string{"content": content},
				"finish_reason": "stop",
			},
		},
	})
	return string(body)
}

func testConfig() *config.ProviderConfig {
	return &config.ProviderConfig{
		Provider:     "groq",
		APIKey:       "test-key",
		DefaultModel: "llama-3.1-8b-instant",
		MaxRetries:   1,
		TimeoutSecs:  5,
	}
}

func testInput() port.GenerateInput {
	return port.GenerateInput{
		Text:         "Water is made of hydrogen and oxygen.",
		QType:        domain.QTypeMCQ,
		Difficulty:   domain.DifficultyEasy,
		NumQuestions: 1,
	}
}

func TestGenerateSuccess(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama-3.1-8b-instant", req["model"])

		content := `{"questions":[{"question":"What is water made of?","answer":"A","choices":["hydrogen and oxygen","carbon","helium","iron"],"rationale":"Stated directly."}]}`
		_, _ = w.Write([]byte(completionBody(content)))
	}))
	defer srv.Close()

	g := NewGeneratorWithEndpoint(testConfig(), srv.URL)
	qs, err := g.Generate(context.Background(), testInput())
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "hydrogen and oxygen", qs[0].Answer)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestGenerateRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGeneratorWithEndpoint(testConfig(), srv.URL)
	_, err := g.Generate(context.Background(), testInput())

	var rlErr *qgen.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "groq", rlErr.Provider)
	assert.Equal(t, float64(30), rlErr.RetryAfter.Seconds())
}

func TestGenerateRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		content := `{"questions":[{"question":"Q?","answer":"fine"}]}`
		_, _ = w.Write([]byte(completionBody(content)))
	}))
	defer srv.Close()

	cfg := testConfig()
	g := NewGeneratorWithEndpoint(cfg, srv.URL)

	input := testInput()
	input.QType = domain.QTypeShortAnswer
	qs, err := g.Generate(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, "fine", qs[0].Answer)
}

func TestGenerateRetriesUnparseableCompletion(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			_, _ = w.Write([]byte(completionBody("sorry, I cannot produce JSON for that")))
			return
		}
		content := `{"questions":[{"question":"Q?","answer":"fine"}]}`
		_, _ = w.Write([]byte(completionBody(content)))
	}))
	defer srv.Close()

	g := NewGeneratorWithEndpoint(testConfig(), srv.URL)

	input := testInput()
	input.QType = domain.QTypeShortAnswer
	qs, err := g.Generate(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, "fine", qs[0].Answer)
}

func TestGenerateExhaustsRetriesOnBadCompletions(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		_, _ = w.Write([]byte(completionBody("still not JSON")))
	}))
	defer srv.Close()

	g := NewGeneratorWithEndpoint(testConfig(), srv.URL)
	_, err := g.Generate(context.Background(), testInput())
	require.Error(t, err)
	assert.Equal(t, 2, attempts)
}

func TestGenerateDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	g := NewGeneratorWithEndpoint(testConfig(), srv.URL)
	_, err := g.Generate(context.Background(), testInput())
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestGenerateTruncatedCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]interface{}{
			"choices": []map[string]interface{}{
				{
					"message":       map[string]string{"content": "{"},
					"finish_reason": "length",
				},
			},
		})
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	g := NewGeneratorWithEndpoint(testConfig(), srv.URL)
	_, err := g.Generate(context.Background(), testInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}
