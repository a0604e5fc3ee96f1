package generator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"marketing_slogan_generator/config"
	"marketing_slogan_generator/metrics"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxCompletionTokens int64    `json:"max_completion_tokens"`
	Temperature         *float64 `json:"temperature"`
}

// completionServer answers every request with content and counts the calls.
func completionServer(t *testing.T, content string, seen *chatRequest, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if seen != nil {
			body, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(body, seen); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func azureConfig(endpoint string) config.LLM {
	return config.LLM{
		Provider:            config.ProviderAzure,
		Endpoint:            endpoint,
		APIKey:              "test-key",
		Deployment:          "slogans",
		APIVersion:          "2024-10-21",
		MaxCompletionTokens: config.DefaultMaxCompletionTokens,
	}
}

func TestGenerateMissingConfigMakesNoCalls(t *testing.T) {
	var hits atomic.Int32
	srv := completionServer(t, "unused", nil, &hits)

	tests := []struct {
		name string
		cfg  config.LLM
		want string
	}{
		{
			name: "azure without key",
			cfg:  config.LLM{Provider: config.ProviderAzure, Endpoint: srv.URL, Deployment: "d", APIVersion: "v"},
			want: "ERROR: Missing Azure OpenAI configuration. Please check your .env file.",
		},
		{
			name: "empty config",
			cfg:  config.LLM{},
			want: "ERROR: Missing Azure OpenAI configuration. Please check your .env file.",
		},
		{
			name: "openai without key",
			cfg:  config.LLM{Provider: config.ProviderOpenAI, BaseURL: srv.URL},
			want: "ERROR: Missing OpenAI configuration. Please check your .env file.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := NewAgent(tt.cfg, WithRequestOptions(option.WithBaseURL(srv.URL)))
			got := agent.Generate(context.Background(), "prompt")
			if got != tt.want {
				t.Errorf("Generate() = %q, want %q", got, tt.want)
			}
			if !strings.HasPrefix(got, "ERROR") {
				t.Errorf("sentinel should start with ERROR: %q", got)
			}

			_, err := agent.Complete(context.Background(), "prompt")
			if !errors.Is(err, ErrConfigMissing) {
				t.Errorf("Complete() error = %v, want ErrConfigMissing", err)
			}
			var missing *config.MissingError
			if !errors.As(err, &missing) || len(missing.Fields) == 0 {
				t.Errorf("Complete() error should name missing fields: %v", err)
			}
		})
	}
	if n := hits.Load(); n != 0 {
		t.Errorf("server saw %d requests, want 0", n)
	}
}

type failingTransport struct {
	calls atomic.Int32
}

func (f *failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	f.calls.Add(1)
	return nil, errors.New("dial tcp: injected network failure")
}

func TestGenerateTransportFailure(t *testing.T) {
	transport := &failingTransport{}
	cfg := config.LLM{Provider: config.ProviderOpenAI, APIKey: "k", BaseURL: "http://completions.invalid/v1/"}
	agent := NewAgent(cfg, WithRequestOptions(option.WithHTTPClient(&http.Client{Transport: transport})))

	got := agent.Generate(context.Background(), "prompt")
	if !strings.HasPrefix(got, "Error generating slogan: ") {
		t.Errorf("Generate() = %q, want completion sentinel", got)
	}
	if !strings.Contains(got, "injected network failure") {
		t.Errorf("Generate() = %q, want injected message", got)
	}
	if n := transport.calls.Load(); n != 1 {
		t.Errorf("transport called %d times, want exactly 1 (no retries)", n)
	}

	_, err := agent.Complete(context.Background(), "prompt")
	if !errors.Is(err, ErrCompletionFailed) {
		t.Errorf("Complete() error = %v, want ErrCompletionFailed", err)
	}
}

func TestGenerateHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"Access denied due to invalid subscription key.","type":"invalid_request_error","code":"401"}}`)
	}))
	defer srv.Close()

	agent := NewAgent(azureConfig(srv.URL))
	res := agent.GenerateSlogans(context.Background(), SloganRequest{ProductName: "P", TargetAudience: "A", Style: StyleCreative})
	if !errors.Is(res.Err, ErrCompletionFailed) {
		t.Fatalf("Err = %v, want ErrCompletionFailed", res.Err)
	}
	if !strings.HasPrefix(res.Text, "Error generating slogan: ") {
		t.Errorf("Text = %q, want completion sentinel", res.Text)
	}
}

func TestGenerateReturnsCompletionVerbatim(t *testing.T) {
	want := "Slogan 1: Sip green, live clean.\nSlogan 2:  Refill the planet.  \nSlogan 3: Pro hydration, zero waste.\n\nBrief Explanation: Benefits first.\n"
	var hits atomic.Int32
	var seen chatRequest
	srv := completionServer(t, want, &seen, &hits)

	agent := NewAgent(azureConfig(srv.URL))
	prompt := Professional(demoProduct, demoAudience, "friendly")
	got := agent.Generate(context.Background(), prompt)
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
	if n := hits.Load(); n != 1 {
		t.Fatalf("server saw %d requests, want 1", n)
	}

	if seen.Model != "slogans" {
		t.Errorf("model = %q, want deployment name", seen.Model)
	}
	if len(seen.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(seen.Messages))
	}
	if seen.Messages[0].Role != "system" || seen.Messages[0].Content != SystemMessage {
		t.Errorf("system message = %+v", seen.Messages[0])
	}
	if seen.Messages[1].Role != "user" || seen.Messages[1].Content != prompt {
		t.Errorf("user message does not carry the rendered prompt")
	}
	if seen.MaxCompletionTokens != config.DefaultMaxCompletionTokens {
		t.Errorf("max_completion_tokens = %d, want %d", seen.MaxCompletionTokens, config.DefaultMaxCompletionTokens)
	}
	if seen.Temperature != nil {
		t.Errorf("temperature should be omitted, got %v", *seen.Temperature)
	}
}

func TestGenerateOpenAIProviderSendsSampling(t *testing.T) {
	var hits atomic.Int32
	var seen chatRequest
	srv := completionServer(t, "ok", &seen, &hits)

	temp := 0.9
	cfg := config.LLM{Provider: config.ProviderOpenAI, APIKey: "k", BaseURL: srv.URL + "/v1/", Temperature: &temp}
	got := NewAgent(cfg).Generate(context.Background(), "hello")
	if got != "ok" {
		t.Fatalf("Generate() = %q, want ok", got)
	}
	if seen.Model != config.DefaultOpenAIModel {
		t.Errorf("model = %q, want %q", seen.Model, config.DefaultOpenAIModel)
	}
	if seen.Temperature == nil || *seen.Temperature != temp {
		t.Errorf("temperature = %v, want %v", seen.Temperature, temp)
	}
	if seen.MaxCompletionTokens != 0 {
		t.Errorf("max_completion_tokens = %d, want omitted", seen.MaxCompletionTokens)
	}
}

func TestGenerateSlogansWithInjectedClient(t *testing.T) {
	agent := NewAgent(config.LLM{}, WithLLM(MockLLM{}))
	res := agent.GenerateSlogans(context.Background(), SloganRequest{
		ProductName:    demoProduct,
		TargetAudience: demoAudience,
		Style:          StyleAudienceFocused,
	})
	if res.Err != nil {
		t.Fatalf("Err = %v", res.Err)
	}
	if res.ID == "" {
		t.Error("ID should be set")
	}
	if res.Prompt != AudienceFocused(demoProduct, demoAudience, "") {
		t.Error("Prompt should be the rendered audience-focused template")
	}
	for _, want := range []string{"Slogan 1: EcoBottle Pro", "Slogan 3:", "Audience Insight:"} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("Text missing %q: %q", want, res.Text)
		}
	}
}

type stubLLM struct {
	text string
	err  error
	got  Prompt
}

func (s *stubLLM) Complete(_ context.Context, p Prompt) (string, error) {
	s.got = p
	return s.text, s.err
}

func TestErrorTextUnwrapsCompletionError(t *testing.T) {
	stub := &stubLLM{err: errors.New("rate limit exceeded")}
	agent := NewAgent(config.LLM{}, WithLLM(stub))
	got := agent.Generate(context.Background(), "p")
	if got != "Error generating slogan: rate limit exceeded" {
		t.Errorf("Generate() = %q", got)
	}
	if stub.got.System != SystemMessage || stub.got.User != "p" {
		t.Errorf("prompt = %+v", stub.got)
	}
}

func TestCompleteCountsErrorsByKind(t *testing.T) {
	missing := metrics.CompletionErrors.WithLabelValues("config_missing")
	failed := metrics.CompletionErrors.WithLabelValues("request_failed")
	requests := metrics.CompletionRequests.WithLabelValues("custom", "")

	tests := []struct {
		name        string
		agent       *Agent
		wantMissing float64
		wantFailed  float64
		wantSent    float64
	}{
		{
			name:        "missing configuration",
			agent:       NewAgent(config.LLM{Provider: config.ProviderAzure}),
			wantMissing: 1,
		},
		{
			name:       "request failure",
			agent:      NewAgent(config.LLM{}, WithLLM(&stubLLM{err: errors.New("boom")})),
			wantFailed: 1,
			wantSent:   1,
		},
		{
			name:     "success",
			agent:    NewAgent(config.LLM{}, WithLLM(&stubLLM{text: "ok"})),
			wantSent: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m0, f0, r0 := testutil.ToFloat64(missing), testutil.ToFloat64(failed), testutil.ToFloat64(requests)
			_, _ = tt.agent.Complete(context.Background(), "p")
			if got := testutil.ToFloat64(missing) - m0; got != tt.wantMissing {
				t.Errorf("config_missing delta = %v, want %v", got, tt.wantMissing)
			}
			if got := testutil.ToFloat64(failed) - f0; got != tt.wantFailed {
				t.Errorf("request_failed delta = %v, want %v", got, tt.wantFailed)
			}
			if got := testutil.ToFloat64(requests) - r0; got != tt.wantSent {
				t.Errorf("requests delta = %v, want %v", got, tt.wantSent)
			}
		})
	}
}
