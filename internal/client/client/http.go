package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/boardkeeper/internal/client/models"
	"github.com/dmitrijs2005/boardkeeper/internal/common"
	"github.com/dmitrijs2005/boardkeeper/internal/logging"
)

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 1 << 20

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient returns a client for the API at baseURL, e.g.
// "http://localhost:8080".
func NewHTTPClient(baseURL string, hc *http.Client, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API server address %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API server address %q: scheme must be http or https", baseURL)
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{baseURL: u, http: hc, logger: logger}, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResponse, error) {
	var out models.TokenResponse
	if err := c.do(ctx, http.MethodPost, common.RegisterPath, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	var out models.TokenResponse
	if err := c.do(ctx, http.MethodPost, common.LoginPath, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListBoards(ctx context.Context, params models.PageParams) (*models.BoardPage, error) {
	var out models.Envelope[models.BoardPage]
	if err := c.do(ctx, http.MethodGet, common.BoardsBasePath, params.Query(), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *HTTPClient) GetBoard(ctx context.Context, id int64) (*models.Board, error) {
	var out models.Envelope[*models.Board]
	if err := c.do(ctx, http.MethodGet, boardPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *HTTPClient) CreateBoard(ctx context.Context, in models.BoardInput) (*models.Board, error) {
	var out models.Envelope[*models.Board]
	if err := c.do(ctx, http.MethodPost, common.BoardsBasePath, nil, in, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *HTTPClient) UpdateBoard(ctx context.Context, id int64, in models.BoardInput) (*models.Board, error) {
	var out models.Envelope[*models.Board]
	if err := c.do(ctx, http.MethodPut, boardPath(id), nil, in, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// DeleteBoard accepts both 204 and a 200 envelope.
func (c *HTTPClient) DeleteBoard(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, boardPath(id), nil, nil, nil)
}

func boardPath(id int64) string {
	return common.BoardsBasePath + "/" + strconv.FormatInt(id, 10)
}

// do sends one JSON request and decodes a 2xx body into out. A nil out or
// an empty body leaves out untouched.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		c.logger.Debug(ctx, "api error", "method", method, "path", path, "status", resp.StatusCode,
			"message", apiErr.Message)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var e models.ErrorResponse
	if err := json.Unmarshal(data, &e); err != nil {
		return ""
	}
	return e.Message
}
