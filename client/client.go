// Package client is a typed client for the exercise tracker HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang-exercisetracker/models"
)

// ErrUserNotFound is returned for the API's "User not found" soft error.
var ErrUserNotFound = errors.New("user not found")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the API at baseURL. A nil httpClient uses
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

type ExerciseInput struct {
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Date        string `json:"date,omitempty"`
}

type LogQuery struct {
	From  string
	To    string
	Limit int
}

func (q LogQuery) values() url.Values {
	v := url.Values{}
	if q.From != "" {
		v.Set("from", q.From)
	}
	if q.To != "" {
		v.Set("to", q.To)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func (c *Client) CreateUser(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/api/users", nil, map[string]string{"username": username}, &user)
	return user, err
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, http.MethodGet, "/api/users", nil, nil, &users)
	return users, err
}

func (c *Client) AddExercise(ctx context.Context, userID string, in ExerciseInput) (models.ExerciseResponse, error) {
	var out models.ExerciseResponse
	err := c.do(ctx, http.MethodPost, "/api/users/"+url.PathEscape(userID)+"/exercises", nil, in, &out)
	return out, err
}

func (c *Client) GetLog(ctx context.Context, userID string, q LogQuery) (models.Log, error) {
	var out models.Log
	err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID)+"/logs", q.values(), nil, &out)
	return out, err
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	// Errors come back as {"error": ...}, and "User not found" does so with 200.
	var apiErr errorBody
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
		if apiErr.Error == models.UserNotFoundMessage {
			return ErrUserNotFound
		}
		return fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
