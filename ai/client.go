package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"retailfaker/logging"
)

const defaultModel = "gpt-3.5-turbo"

// Message одно сообщение диалога в формате chat completions
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RetryConfig конфигурация повторных попыток
type RetryConfig struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// Client клиент chat completions API
// Ключ и адрес берутся из окружения: OPENAI_API_KEY, OPENAI_BASE_URL
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	httpClient  *http.Client
	retryConfig RetryConfig
}

// NewClient создает новый клиент chat completions API
func NewClient() *Client {
	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logging.LogWarn("OPENAI_API_KEY not set, requests will be rejected")
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxConnsPerHost:     5,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   defaultModel,
		httpClient: &http.Client{
			Timeout:   60 * time.Second,
			Transport: transport,
		},
		retryConfig: RetryConfig{
			MaxRetries:        3,
			InitialDelay:      500 * time.Millisecond,
			MaxDelay:          10 * time.Second,
			BackoffMultiplier: 2.0,
		},
	}
}

// WithModel задает модель вместо модели по умолчанию
func (c *Client) WithModel(model string) *Client {
	c.model = model
	return c
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// ChatCompletion отправляет диалог и возвращает текст первого ответа
// Серверные ошибки и 429 повторяются с экспоненциальной задержкой,
// клиентские (4xx) возвращаются сразу
func (c *Client) ChatCompletion(ctx context.Context, requestID string, messages []Message) (string, error) {
	startTime := time.Now()

	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	requestURL := fmt.Sprintf("%s/chat/completions", c.baseURL)

	var lastErr error
	delay := c.retryConfig.InitialDelay

	for attempt := 0; attempt <= c.retryConfig.MaxRetries; attempt++ {
		if attempt > 0 {
			logging.Logger.Info("Retrying chat completion",
				"request_id", requestID,
				"attempt", attempt,
				"max_retries", c.retryConfig.MaxRetries,
				"delay", delay.String(),
			)
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("context cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * c.retryConfig.BackoffMultiplier)
			if delay > c.retryConfig.MaxDelay {
				delay = c.retryConfig.MaxDelay
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			logging.LogError(lastErr, "Chat completion request failed")
			continue
		}

		if resp.StatusCode == http.StatusOK {
			var completion chatResponse
			decodeErr := json.NewDecoder(resp.Body).Decode(&completion)
			resp.Body.Close()
			if decodeErr != nil {
				lastErr = fmt.Errorf("failed to decode response: %w", decodeErr)
				continue
			}
			if len(completion.Choices) == 0 {
				lastErr = fmt.Errorf("response contains no choices")
				continue
			}

			logging.Logger.Info("Chat completion succeeded",
				"request_id", requestID,
				"model", c.model,
				"duration_ms", time.Since(startTime).Milliseconds(),
			)
			return completion.Choices[0].Message.Content, nil
		}

		var apiErr chatResponse
		json.NewDecoder(resp.Body).Decode(&apiErr)
		resp.Body.Close()

		detail := ""
		if apiErr.Error != nil {
			detail = ": " + apiErr.Error.Message
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("rate limit exceeded (429)%s", detail)
			continue
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("server error %d%s", resp.StatusCode, detail)
			continue
		default:
			// 4xx не повторяем
			return "", fmt.Errorf("client error %d%s", resp.StatusCode, detail)
		}
	}

	return "", fmt.Errorf("all retry attempts failed: %w", lastErr)
}
