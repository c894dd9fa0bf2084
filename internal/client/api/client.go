package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/terminplaner/internal/models"
	"github.com/iudanet/terminplaner/pkg/api"
)

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken устанавливает bearer token для последующих запросов
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError представляет ошибку, возвращенную сервером
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("%s (%s)", e.Message, strings.Join(e.Errors, "; "))
	}
	return e.Message
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию и запоминает полученный токен
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	c.token = resp.Token
	return &resp, nil
}

// ListEvents возвращает события текущего пользователя
func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := c.doRequest(ctx, http.MethodGet, "/api/events", nil, &events); err != nil {
		return nil, fmt.Errorf("list events request failed: %w", err)
	}
	return events, nil
}

// CreateEvent создает новое событие
func (c *Client) CreateEvent(ctx context.Context, req api.EventRequest) (*api.EventResponse, error) {
	var resp api.EventResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/events", req, &resp); err != nil {
		return nil, fmt.Errorf("create event request failed: %w", err)
	}
	return &resp, nil
}

// UpdateEvent обновляет существующее событие
func (c *Client) UpdateEvent(ctx context.Context, eventID string, req api.EventRequest) (*api.EventResponse, error) {
	var resp api.EventResponse
	if err := c.doRequest(ctx, http.MethodPut, "/api/events/"+eventID, req, &resp); err != nil {
		return nil, fmt.Errorf("update event request failed: %w", err)
	}
	return &resp, nil
}

// DeleteEvent удаляет событие
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	var resp api.MessageResponse
	if err := c.doRequest(ctx, http.MethodDelete, "/api/events/"+eventID, nil, &resp); err != nil {
		return fmt.Errorf("delete event request failed: %w", err)
	}
	return nil
}

// doRequest выполняет HTTP запрос и декодирует ответ.
// Не-2xx статусы превращаются в *APIError.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		var errResp api.ErrorResponse
		if jsonErr := json.Unmarshal(respBody, &errResp); jsonErr == nil && errResp.Message != "" {
			apiErr.Message = errResp.Message
			apiErr.Errors = errResp.Errors
		}
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
