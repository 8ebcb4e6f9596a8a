package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// RunResponse — статус запуска из API.
type RunResponse struct {
	RunID       string `json:"run_id"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
	Message     string `json:"message"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	CompletedAt string `json:"completed_at,omitempty"`
	ResultRef   string `json:"result_ref,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ResultFolderResponse — папка результатов из API.
type ResultFolderResponse struct {
	Name           string `json:"name"`
	Created        string `json:"created"`
	SolutionsCount int    `json:"solutions_count"`
	FileCount      int    `json:"file_count"`
	TotalSize      int64  `json:"total_size"`
	RuntimeSeconds float64 `json:"runtime_seconds"`
}

// DeleteFolderResponse — результат удаления папки.
type DeleteFolderResponse struct {
	Name         string `json:"name"`
	FilesDeleted int    `json:"files_deleted"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Client ---

// Client — HTTP-клиент для Rota API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Runs ---

// SubmitCase отправляет кейс на решение.
func (c *Client) SubmitCase(caseJSON []byte) (*RunResponse, error) {
	var run RunResponse
	err := c.doJSON(http.MethodPost, "/api/v1/solve", caseJSON, &run)
	return &run, err
}

// GetStatus возвращает статус запуска.
func (c *Client) GetStatus(runID string) (*RunResponse, error) {
	var run RunResponse
	err := c.doJSON(http.MethodGet, "/api/v1/status/"+runID, nil, &run)
	return &run, err
}

// StopRun останавливает запуск.
func (c *Client) StopRun(runID string) (*RunResponse, error) {
	var run RunResponse
	err := c.doJSON(http.MethodPost, "/api/v1/runs/"+runID+"/stop", nil, &run)
	return &run, err
}

// --- Results ---

// ListFolders возвращает папки результатов.
func (c *Client) ListFolders() ([]ResultFolderResponse, error) {
	var folders []ResultFolderResponse
	err := c.doJSON(http.MethodGet, "/api/v1/results/folders", nil, &folders)
	return folders, err
}

// DownloadFolder скачивает zip-архив папки результатов.
func (c *Client) DownloadFolder(name string) ([]byte, error) {
	resp, err := c.do(http.MethodGet, "/api/v1/results/"+name+"/download", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return nil, err
	}

	return io.ReadAll(resp.Body)
}

// DeleteFolder удаляет папку результатов.
func (c *Client) DeleteFolder(name string) (*DeleteFolderResponse, error) {
	var result DeleteFolderResponse
	err := c.doJSON(http.MethodDelete, "/api/v1/results/"+name, nil, &result)
	return &result, err
}

// --- HTTP helpers ---

func (c *Client) doJSON(method, path string, body []byte, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) do(method, path string, body []byte) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("%s: %s", er.Error.Code, er.Error.Message)
}
