package backend

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
	"time"
)

// APIError is returned when the backend answers with a non-success
// status. Prior view state must be kept intact when one of these comes
// back from a read.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Body)
}

// Client provides typed access to the AstroMind project API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	projectID  string
}

// NewClient creates a client rooted at baseURL for a single project.
func NewClient(baseURL, projectID string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		projectID: projectID,
	}
}

// ProjectID returns the project this client is bound to.
func (c *Client) ProjectID() string {
	return c.projectID
}

// BaseURL returns the HTTP base the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) projectPath(suffix string) string {
	return "/api/projects/" + c.projectID + suffix
}

func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{Method: "GET", Path: path, Status: resp.StatusCode, Body: string(body)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	u := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return &APIError{Method: "POST", Path: path, Status: resp.StatusCode, Body: string(respBody)}
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// ListFiles fetches the full file listing. The result replaces any
// prior listing wholesale; there is no incremental diffing.
func (c *Client) ListFiles(ctx context.Context) ([]FileEntry, error) {
	var result []FileEntry
	if err := c.get(ctx, c.projectPath("/files"), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Status fetches the project status scalar and the step list.
func (c *Client) Status(ctx context.Context) (ProjectStatus, error) {
	var result ProjectStatus
	if err := c.get(ctx, c.projectPath("/status"), nil, &result); err != nil {
		return ProjectStatus{}, err
	}
	return result, nil
}

// FileContent fetches raw text content for (path, version).
func (c *Client) FileContent(ctx context.Context, path string, version int) (string, error) {
	query := url.Values{}
	query.Set("path", path)
	query.Set("version", strconv.Itoa(version))

	u := c.baseURL + c.projectPath("/file") + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", c.projectPath("/file"), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", &APIError{Method: "GET", Path: c.projectPath("/file"), Status: resp.StatusCode, Body: string(body)}
	}
	return string(body), nil
}

// SaveFile writes content for path at the head version.
func (c *Client) SaveFile(ctx context.Context, path, content string) error {
	body := map[string]string{"path": path, "content": content}
	return c.post(ctx, c.projectPath("/file"), body, nil)
}

// Chat sends a message plus the running transcript and returns the
// assistant response.
func (c *Client) Chat(ctx context.Context, message string, history []ChatMessage) (string, error) {
	body := map[string]any{"message": message, "history": history}
	var result struct {
		Response string `json:"response"`
	}
	if err := c.post(ctx, c.projectPath("/chat"), body, &result); err != nil {
		return "", err
	}
	return result.Response, nil
}

// Review requests a review verdict for the given paths.
func (c *Client) Review(ctx context.Context, paths []string) (ReviewVerdict, error) {
	body := map[string]any{"paths": paths}
	var result ReviewVerdict
	if err := c.post(ctx, c.projectPath("/review"), body, &result); err != nil {
		return ReviewVerdict{}, err
	}
	return result, nil
}

// DownloadURL returns the archive link for the given version. The link
// is surfaced to the user directly, never fetched by the client.
func (c *Client) DownloadURL(version int) string {
	return c.baseURL + c.projectPath("/download") + "?version=" + strconv.Itoa(version)
}
