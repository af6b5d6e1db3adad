package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fish-logistics-service/internal/domain"
	"fish-logistics-service/internal/platform/obs"
	"fish-logistics-service/internal/ports"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// ErrUnavailable is returned when the upstream model cannot be reached and
// no fallback generator is configured.
var ErrUnavailable = errors.New("assistant unavailable")

type Config struct {
	BaseURL string
	APIKey  string
	Model   string

	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration

	// Consecutive failed calls before the breaker opens, and how long it stays open.
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaseURL:          "https://api.openai.com/v1",
		Model:            "gpt-4o-mini",
		Timeout:          20 * time.Second,
		MaxAttempts:      3,
		Backoff:          500 * time.Millisecond,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
	}
}

// ChatClient implements TextGenerator against an OpenAI-compatible
// /chat/completions endpoint.
//
// Requests are retried on transient failures and guarded by a circuit
// breaker. When a Fallback is set, any upstream failure is answered by it
// instead. The client is safe for concurrent use.
type ChatClient struct {
	session     *http.Client
	apiKey      string
	endpoint    string
	model       string
	maxAttempts int
	backoff     time.Duration
	breaker     *gobreaker.CircuitBreaker
	logger      *slog.Logger

	Fallback ports.TextGenerator
}

func NewChatClient(cfg Config, logger *slog.Logger) (*ChatClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("assistant api key is empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = def.Backoff
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}

	threshold := cfg.FailureThreshold
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "assistant",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &ChatClient{
		session:     &http.Client{Timeout: cfg.Timeout},
		apiKey:      cfg.APIKey,
		endpoint:    chatEndpoint(cfg.BaseURL),
		model:       cfg.Model,
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.Backoff,
		breaker:     breaker,
		logger:      logger,
	}, nil
}

func chatEndpoint(baseURL string) string {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if strings.HasSuffix(baseURL, "/chat/completions") {
		return baseURL
	}
	return baseURL + "/chat/completions"
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// Answer asks the model a logistics question, grounding it in the route when given.
func (c *ChatClient) Answer(
	ctx context.Context,
	question string,
	route *domain.RouteCandidate,
) (_ string, err error) {
	defer obs.Time(ctx, "assistant.Answer")(&err)

	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("assistant answer: question must not be empty: %w", domain.ErrInvalidInput)
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.complete(ctx, question, route)
	})
	if err == nil {
		return out.(string), nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = fmt.Errorf("assistant answer: circuit open: %w", ErrUnavailable)
	} else {
		err = fmt.Errorf("assistant answer: %w: %w", ErrUnavailable, err)
	}

	if c.Fallback == nil {
		return "", err
	}

	c.logger.WarnContext(ctx, "assistant: upstream failed, using fallback", "err", err)
	return c.Fallback.Answer(ctx, question, route)
}

func (c *ChatClient) complete(ctx context.Context, question string, route *domain.RouteCandidate) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(route)},
			{Role: "user", Content: question},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("chat completion: no choices in response")
	}

	answer := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if answer == "" {
		return "", errors.New("chat completion: empty answer")
	}
	return answer, nil
}
