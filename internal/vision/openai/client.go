package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerlens/receipt-engine/internal/common"
	"github.com/ledgerlens/receipt-engine/internal/vision"
)

// Recognize implements vision.Recognizer against an OpenAI-compatible
// chat/completions endpoint. Single attempt, bounded by the client timeout
// and the caller's context; retries and backoff belong to the caller since
// the capability is metered per call.
func (c *Client) Recognize(ctx context.Context, req vision.Request) (vision.Output, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("vision.recognize.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"content_type", req.ContentType,
		"image_bytes", len(req.Image),
	)

	dataURL := "data:" + req.ContentType + ";base64," +
		base64.StdEncoding.EncodeToString(req.Image)

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"max_tokens":  c.cfg.MaxTokens,
		"messages": []map[string]any{
			{
				"role": "user",
				"content": []map[string]any{
					{"type": "text", "text": buildReceiptPrompt(req)},
					{"type": "image_url", "image_url": map[string]any{"url": dataURL}},
				},
			},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.logger.Error("vision.recognize.error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return vision.Output{}, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("vision.recognize.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return vision.Output{}, common.NewAppError("OCR_SERVICE_ERROR",
			"malformed response from vision service", common.ErrServiceError)
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("vision.recognize.no_choices",
			"req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
		return vision.Output{}, common.NewAppError("NO_TEXT_EXTRACTED",
			"vision service returned no choices", common.ErrNoContent)
	}

	content := strings.TrimSpace(cc.Choices[0].Message.Content)
	if content == "" {
		c.logger.Error("vision.recognize.empty_content",
			"req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
		return vision.Output{}, common.NewAppError("NO_TEXT_EXTRACTED",
			"vision service returned empty transcript", common.ErrNoContent)
	}

	out := vision.PlainText(content)
	if fields, ok := decodeBareObject(content); ok {
		out = vision.StructuredPayload(fields)
	}

	c.logger.Info("vision.recognize.ok",
		"req_id", rid,
		"structured", out.IsStructured(),
		"content_bytes", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, common.NewAppError("OCR_CONNECTION_ERROR",
			"build request failed", common.ErrServiceUnavailable)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// Transport failure: refused, DNS, timeout, cancellation.
		return nil, common.NewAppError("OCR_CONNECTION_ERROR",
			"vision service unreachable: "+err.Error(), common.ErrServiceUnavailable)
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			c.logger.Warn("vision response body close error", "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, common.NewAppError("OCR_SERVICE_ERROR",
			fmt.Sprintf("vision service status %d: %s", resp.StatusCode, truncate(string(raw), 512)),
			common.ErrServiceError)
	}
	return raw, nil
}

// decodeBareObject decodes content that is already a JSON object, preserving
// numbers as json.Number.
func decodeBareObject(content string) (map[string]any, bool) {
	if !strings.HasPrefix(content, "{") || !strings.HasSuffix(content, "}") {
		return nil, false
	}
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, false
	}
	return m, true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
