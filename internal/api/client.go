package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	maxImageBytes  = 32 << 20
	maxBodyBytes   = 4 << 20
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client when set; Timeout is then ignored.
	HTTPClient *http.Client
}

// Client speaks the dashboard backend's HTTP/JSON contract
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) CameraStatus(ctx context.Context) (*CameraStatus, error) {
	var status CameraStatus
	if err := c.do(ctx, "camera status", http.MethodGet, "/api/camera/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) StartCamera(ctx context.Context) (*MessageResponse, error) {
	return c.message(ctx, "start camera", "/api/camera/start")
}

func (c *Client) StopCamera(ctx context.Context) (*MessageResponse, error) {
	return c.message(ctx, "stop camera", "/api/camera/stop")
}

func (c *Client) Capture(ctx context.Context) (*MessageResponse, error) {
	return c.message(ctx, "capture", "/api/camera/capture")
}

func (c *Client) message(ctx context.Context, op, path string) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.do(ctx, op, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Images lists captured images in the order the backend returns them
func (c *Client) Images(ctx context.Context) ([]ImageInfo, error) {
	var images []ImageInfo
	if err := c.do(ctx, "list images", http.MethodGet, "/api/images", nil, &images); err != nil {
		return nil, err
	}
	if images == nil {
		images = []ImageInfo{}
	}
	return images, nil
}

func (c *Client) ImageURL(filename string) string {
	return c.baseURL + "/api/image/" + url.PathEscape(filename)
}

// Image downloads the raw bytes of one captured image
func (c *Client) Image(ctx context.Context, filename string) ([]byte, error) {
	const op = "fetch image"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ImageURL(filename), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, backendError(op, resp)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if len(data) > maxImageBytes {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("image larger than %d bytes", maxImageBytes)}
	}
	return data, nil
}

// Analyze asks the backend to describe an image. A blank question is sent as
// null so the backend uses its default prompt.
func (c *Client) Analyze(ctx context.Context, filename, question string) (*AnalyzeResponse, error) {
	body := analyzeRequest{}
	if q := strings.TrimSpace(question); q != "" {
		body.Question = &q
	}

	var resp AnalyzeResponse
	path := "/api/analyze/" + url.PathEscape(filename)
	if err := c.do(ctx, "analyze image", http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Chat(ctx context.Context, message string) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.do(ctx, "chat", http.MethodPost, "/api/chat", chatRequest{Message: message}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ChatHistory(ctx context.Context) ([]ChatTurn, error) {
	var turns []ChatTurn
	if err := c.do(ctx, "chat history", http.MethodGet, "/api/chat/history", nil, &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return backendError(op, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func backendError(op string, resp *http.Response) *BackendError {
	be := &BackendError{Op: op, Status: resp.StatusCode}

	var eb errorBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&eb); err == nil {
		be.Message = eb.Error
	}
	return be
}
