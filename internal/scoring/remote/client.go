// internal/scoring/remote/client.go
// Package remote calls the external scoring service. Every failure mode --
// timeout, connection refusal, non-2xx status, malformed or schema-invalid
// body -- surfaces as an error so the caller falls back to local scoring.
// The client never retries within a call.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"marketplace-scoring/internal/common/errors"
	httpclient "marketplace-scoring/internal/common/http"
	"marketplace-scoring/internal/common/logger"
)

// Config holds the connection settings for the external scoring service.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client is a thin HTTP client for the external scoring service.
type Client struct {
	config Config
	http   *httpclient.Client
	schema *gojsonschema.Schema
	logger logger.Logger
}

// NewClient builds a client. The response schema is compiled once here; a
// compile failure is a programming error and panics at startup.
func NewClient(cfg Config, log logger.Logger) *Client {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(responseSchema))
	if err != nil {
		panic(fmt.Sprintf("remote response schema does not compile: %v", err))
	}
	return &Client{
		config: cfg,
		http:   httpclient.NewClient(cfg.Timeout),
		schema: schema,
		logger: log,
	}
}

// Score posts the request to {base_url}/v1/score and returns the validated
// response. The context bounds the call in addition to the client timeout.
func (c *Client) Score(ctx context.Context, req *ScoreRequest) (*ScoreResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.NewRemoteScoringFailedError(err)
	}

	url := c.config.BaseURL + "/v1/score"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewRemoteScoringFailedError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded || isTimeout(err) {
			return nil, errors.NewRemoteScoringTimeoutError()
		}
		return nil, errors.NewRemoteScoringFailedError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewRemoteScoringFailedError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("remote scoring returned non-2xx", map[string]interface{}{
			"status":      resp.StatusCode,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil, errors.NewRemoteScoringFailedError(
			fmt.Errorf("remote scoring returned status %d", resp.StatusCode))
	}

	validation, err := c.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, errors.NewRemoteResponseInvalidError(err.Error())
	}
	if !validation.Valid() {
		return nil, errors.NewRemoteResponseInvalidError(validation.Errors()[0].String())
	}

	var scoreResp ScoreResponse
	if err := json.Unmarshal(raw, &scoreResp); err != nil {
		return nil, errors.NewRemoteResponseInvalidError(err.Error())
	}

	c.logger.Debug("remote scoring succeeded", map[string]interface{}{
		"candidates":  len(scoreResp.Scores),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return &scoreResp, nil
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	for err != nil {
		if t, ok := err.(timeout); ok && t.Timeout() {
			return true
		}
		type unwrapper interface{ Unwrap() error }
		u, ok := err.(unwrapper)
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
