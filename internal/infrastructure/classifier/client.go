package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"triago/internal/application/triage"
	"triago/internal/shared/config"
	"triago/internal/shared/logger"
	"triago/internal/shared/utils"
)

const (
	triagePath = "/triage"
	// Maximum response body size for the classifier (1MB). Draft replies
	// and step logs are small; anything larger is a misbehaving upstream.
	maxResponseSize = 1 << 20

	defaultTimeout = 20 * time.Second
)

// HTTPClient calls the classifier service over HTTP. One Triage call is one
// attempt; retry policy lives with the caller.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

func NewHTTPClient(cfg *config.ClassifierConfig, logger logger.Interface) *HTTPClient {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

var _ triage.Classifier = (*HTTPClient)(nil)

func (c *HTTPClient) Triage(ctx context.Context, req *triage.Request) (*triage.Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode triage request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+triagePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build triage request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Trace-Id", req.TraceID)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warnw("classifier returned non-2xx status",
			"status", resp.StatusCode,
			"trace_id", req.TraceID,
			"elapsed", time.Since(start),
		)
		return nil, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, truncate(string(body), 256))
	}

	var result triage.Response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}
	if err := utils.ValidateStruct(&result); err != nil {
		return nil, fmt.Errorf("classifier response failed validation: %w", err)
	}

	c.logger.Debugw("classifier call succeeded",
		"trace_id", req.TraceID,
		"confidence", result.Confidence,
		"category", result.PredictedCategory,
		"elapsed", time.Since(start),
	)

	return &result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
