package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yanqian/tennis-playability/internal/domain/playability"
)

const errorBodyLimit = 4 << 10

// Client posts weather conditions to the live inference endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds an inference client. A zero timeout leaves the request unbounded
// apart from the caller's context.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		endpoint:   strings.TrimSpace(endpoint),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "inference.client"),
	}
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Predict sends one request and interprets the response.
func (c *Client) Predict(ctx context.Context, payload playability.Payload) (playability.Prediction, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return playability.Prediction{}, &playability.RequestError{Message: "encode inference payload", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return playability.Prediction{}, &playability.RequestError{Message: "build inference request", Err: fmt.Errorf("build inference request: %w", err)}
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("inference request failed", "endpoint", c.endpoint, "error", err)
		return playability.Prediction{}, &playability.RequestError{Message: "inference request failed", Err: fmt.Errorf("inference request failed: %w", err)}
	}
	defer resp.Body.Close()
	c.logger.Info("inference response", "endpoint", c.endpoint, "status", resp.StatusCode, "latency_ms", time.Since(start).Milliseconds())

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return playability.Prediction{}, &playability.RequestError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, raw),
		}
	}

	var out predictionWire
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return playability.Prediction{}, &playability.RequestError{Message: "decode inference response", Err: fmt.Errorf("decode inference response: %w", err)}
	}
	if out.Description == nil || out.CanPlay == nil {
		return playability.Prediction{}, &playability.RequestError{Message: "inference response missing description or can_play"}
	}

	return playability.Prediction{Description: *out.Description, CanPlay: *out.CanPlay}, nil
}

type predictionWire struct {
	Description *string `json:"description"`
	CanPlay     *bool   `json:"can_play"`
}

type errorWire struct {
	Detail json.RawMessage `json:"detail"`
}

type validationDetail struct {
	Msg string `json:"msg"`
}

// errorMessage prefers detail[0].msg, then a plain string detail, then the raw body.
func errorMessage(status int, raw []byte) string {
	var env errorWire
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Detail) > 0 {
		var details []validationDetail
		if err := json.Unmarshal(env.Detail, &details); err == nil && len(details) > 0 && details[0].Msg != "" {
			return details[0].Msg
		}
		var single string
		if err := json.Unmarshal(env.Detail, &single); err == nil && single != "" {
			return single
		}
	}
	if body := strings.TrimSpace(string(raw)); body != "" {
		return body
	}
	return http.StatusText(status)
}

var _ playability.Predictor = (*Client)(nil)
