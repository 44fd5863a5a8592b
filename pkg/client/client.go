// Package client is a typed Go client for the EthioWork HTTP API. It
// also ships Collection, a refresh-on-mutate cache for list endpoints.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ethiowork-backend/internal/model"
)

// APIError carries the server's status code and error message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to one EthioWork server. Set Token after login; every
// request carries it as a bearer credential.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// New creates a Client for the given base URL, e.g.
// "https://api.ethiowork.example/api/v1".
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// AuthResult is the server's register and login payload.
type AuthResult struct {
	Account     model.Account `json:"account"`
	AccessToken string        `json:"access_token"`
}

// Login authenticates and stores the access token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.Token = result.AccessToken
	return &result, nil
}

// Register creates an account and stores the access token on the client.
func (c *Client) Register(ctx context.Context, email, password, role string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"role":     role,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.Token = result.AccessToken
	return &result, nil
}

// Logout revokes the current token and clears it from the client.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	c.Token = ""
	return nil
}

func (c *Client) Me(ctx context.Context) (*model.Account, error) {
	var acc model.Account
	if err := c.do(ctx, http.MethodGet, "/accounts/me", nil, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (c *Client) ListActivePostings(ctx context.Context) ([]model.JobPosting, error) {
	var postings []model.JobPosting
	if err := c.do(ctx, http.MethodGet, "/jobposting", nil, &postings); err != nil {
		return nil, err
	}
	return postings, nil
}

func (c *Client) GetPosting(ctx context.Context, id uint) (*model.JobPosting, error) {
	var posting model.JobPosting
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/jobposting/%d", id), nil, &posting); err != nil {
		return nil, err
	}
	return &posting, nil
}

func (c *Client) CreatePosting(ctx context.Context, info model.EditableJobPostingInfo) (*model.JobPosting, error) {
	var posting model.JobPosting
	if err := c.do(ctx, http.MethodPost, "/jobposting", info, &posting); err != nil {
		return nil, err
	}
	return &posting, nil
}

func (c *Client) Apply(ctx context.Context, jobID uint, coverLetter string) (*model.Application, error) {
	var app model.Application
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/jobposting/%d/apply", jobID), map[string]string{
		"cover_letter": coverLetter,
	}, &app)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) ListMyApplications(ctx context.Context) ([]model.Application, error) {
	var apps []model.Application
	if err := c.do(ctx, http.MethodGet, "/application/mine", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *Client) ListNotifications(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := c.do(ctx, http.MethodGet, "/notification", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/notification/%d/read", id), nil, nil)
}

func (c *Client) SaveJob(ctx context.Context, jobID uint) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/savedjob/%d", jobID), nil, nil)
}

func (c *Client) UnsaveJob(ctx context.Context, jobID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/savedjob/%d", jobID), nil, nil)
}

func (c *Client) ListSavedJobs(ctx context.Context) ([]model.SavedJob, error) {
	var saved []model.SavedJob
	if err := c.do(ctx, http.MethodGet, "/savedjob", nil, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}
