package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/taskvault/taskvault/internal/apperr"
	"github.com/taskvault/taskvault/internal/models"
)

// Client is a thin HTTP client for the taskvault API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope apperr.Envelope
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Message != "" {
			return fmt.Errorf("%s (%d)", envelope.Message, envelope.StatusCode)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Register(req *models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(http.MethodPost, "/auth/register", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.do(http.MethodPost, "/auth/login", "", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Refresh(refreshToken string) (*models.TokenResponse, error) {
	var resp models.TokenResponse
	req := models.RefreshRequest{RefreshToken: refreshToken}
	if err := c.do(http.MethodPost, "/auth/refresh", "", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Logout(token string) error {
	return c.do(http.MethodPost, "/auth/logout", token, nil, nil)
}

func (c *Client) LogoutAll(token string) error {
	return c.do(http.MethodPost, "/auth/logout-all", token, nil, nil)
}

func (c *Client) CreateTodo(token string, req *models.CreateTodoRequest) (*models.Todo, error) {
	var todo models.Todo
	if err := c.do(http.MethodPost, "/todos", token, req, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) ListTodos(token string) ([]*models.Todo, error) {
	var todos []*models.Todo
	if err := c.do(http.MethodGet, "/todos", token, nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (c *Client) GetTodo(token, id string) (*models.Todo, error) {
	var todo models.Todo
	if err := c.do(http.MethodGet, "/todos/"+id, token, nil, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) UpdateTodo(token, id string, req *models.UpdateTodoRequest) (*models.Todo, error) {
	var todo models.Todo
	if err := c.do(http.MethodPut, "/todos/"+id, token, req, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) DeleteTodo(token, id string) error {
	return c.do(http.MethodDelete, "/todos/"+id, token, nil, nil)
}
