// Package importer is the bulk import/verify client for the parts API.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ctc-parts/catalog-importer/internal/common"
)

// Part is the subset of the parts API resource the importer reads back.
// Only the fields compared during verification are decoded.
type Part struct {
	ID           FlexID `json:"id"`
	MasterPartNo string `json:"master_part_no"`
	PartNo       string `json:"part_no"`
	Description  string `json:"description"`
}

// FlexID tolerates backends that return numeric or string ids.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }

// envelope unwraps the API's optional {"data": ...} response wrapper.
type envelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination *pagination     `json:"pagination"`
}

type pagination struct {
	Total int `json:"total"`
}

// Client is a thin HTTP client for the parts API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

// sendJSON performs one API call and returns the raw response body and
// status. Non-2xx responses return the body alongside the error so callers
// can surface the backend's message.
func (c *Client) sendJSON(ctx context.Context, method, url string, body any) ([]byte, int, error) {
	reqID := uuid.New().String()
	start := time.Now()

	var reader io.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			c.Logger.Error("api.encode_error", "req_id", reqID, "error", err)
			return nil, 0, fmt.Errorf("encode json: %w", err)
		}
		reader = bytes.NewReader(bs)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		c.Logger.Error("api.build_request_error", "req_id", reqID, "error", err)
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Logger.Error("api.send_error",
			"req_id", reqID, "method", method, "url", url,
			"error", err, "elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, 0, err
	}
	defer func(rc io.ReadCloser) {
		if cerr := rc.Close(); cerr != nil {
			c.Logger.Warn("api.response_body_close_error", "req_id", reqID, "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)

	c.Logger.Debug("api.response",
		"req_id", reqID,
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return raw, resp.StatusCode, fmt.Errorf("non-2xx status: %d", resp.StatusCode)
	}
	return raw, resp.StatusCode, nil
}

// Health is the preflight read: one lightweight list call. A failure here
// means no import should be attempted at all.
func (c *Client) Health(ctx context.Context) error {
	_, _, err := c.sendJSON(ctx, http.MethodGet, c.BaseURL+"/parts?limit=1", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrBackendUnreachable, err)
	}
	return nil
}

// CreatePart posts one create payload and decodes the created resource.
func (c *Client) CreatePart(ctx context.Context, payload map[string]any) (*Part, int, []byte, error) {
	raw, status, err := c.sendJSON(ctx, http.MethodPost, c.BaseURL+"/parts", payload)
	if err != nil {
		return nil, status, raw, err
	}
	part, err := decodePart(raw)
	if err != nil {
		// Created, but the response body was not decodable; the caller
		// treats this as success-without-verification.
		return nil, status, raw, nil
	}
	return part, status, raw, nil
}

// GetPart re-fetches a created part for verification.
func (c *Client) GetPart(ctx context.Context, id string) (*Part, error) {
	raw, _, err := c.sendJSON(ctx, http.MethodGet, c.BaseURL+"/parts/"+id, nil)
	if err != nil {
		return nil, err
	}
	return decodePart(raw)
}

// ListParts returns up to limit parts plus the backend's total count.
func (c *Client) ListParts(ctx context.Context, limit int) ([]Part, int, error) {
	url := c.BaseURL + "/parts?limit=" + strconv.Itoa(limit)
	raw, _, err := c.sendJSON(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}

	var env envelope
	if jerr := json.Unmarshal(raw, &env); jerr == nil && env.Data != nil {
		var parts []Part
		if jerr := json.Unmarshal(env.Data, &parts); jerr != nil {
			return nil, 0, fmt.Errorf("decode parts list: %w", jerr)
		}
		total := len(parts)
		if env.Pagination != nil {
			total = env.Pagination.Total
		}
		return parts, total, nil
	}

	var parts []Part
	if jerr := json.Unmarshal(raw, &parts); jerr != nil {
		return nil, 0, fmt.Errorf("decode parts list: %w", jerr)
	}
	return parts, len(parts), nil
}

// DeletePart removes one part by id.
func (c *Client) DeletePart(ctx context.Context, id string) error {
	_, _, err := c.sendJSON(ctx, http.MethodDelete, c.BaseURL+"/parts/"+id, nil)
	return err
}

// decodePart unwraps the optional data envelope and decodes a part.
func decodePart(raw []byte) (*Part, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		raw = env.Data
	}
	var p Part
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode part: %w", err)
	}
	return &p, nil
}
