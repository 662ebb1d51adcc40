package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/monteroai/smiledental/internal/models"
)

// Client talks to the Smile Dental Temps backend. All endpoints live under
// /api; everything except login/register carries the bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// SetToken swaps the bearer token used for authenticated calls.
// An empty string drops authentication entirely.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, payload)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return newError(resp.StatusCode, bodyBytes)
	}

	if out != nil {
		if err := json.Unmarshal(bodyBytes, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// Login exchanges credentials for a token. No bearer header is sent.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.Token, error) {
	var tok models.Token
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Register creates an account with the role-conditional body and returns
// the same token payload as Login.
func (c *Client) Register(ctx context.Context, reg models.Registration) (*models.Token, error) {
	var tok models.Token
	if err := c.do(ctx, http.MethodPost, "/auth/register", reg, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Me resolves the current bearer token into the canonical user profile.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListJobs fetches every active job visible to the caller in one shot.
// There is no pagination; filtering happens client-side.
func (c *Client) ListJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := c.do(ctx, http.MethodGet, "/jobs", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// CreateJob posts a new job. The backend rejects non-client callers.
func (c *Client) CreateJob(ctx context.Context, draft models.JobCreate) (*models.Job, error) {
	var job models.Job
	if err := c.do(ctx, http.MethodPost, "/jobs", draft, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// MyPostings lists the jobs the authenticated dental office has posted.
func (c *Client) MyPostings(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := c.do(ctx, http.MethodGet, "/jobs/my-postings", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

type applyRequest struct {
	JobID   string `json:"job_id"`
	Message string `json:"message,omitempty"`
}

// Apply submits an application against a job. Duplicate applications come
// back as a 400 with a detail message; the client does not pre-check.
func (c *Client) Apply(ctx context.Context, jobID, message string) (*models.Application, error) {
	var app models.Application
	body := applyRequest{JobID: jobID, Message: message}
	if err := c.do(ctx, http.MethodPost, "/jobs/"+jobID+"/apply", body, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// MyApplications lists the professional's own applications with job details
// attached by the backend.
func (c *Client) MyApplications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := c.do(ctx, http.MethodGet, "/applications/my-applications", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ReceivedApplications lists applications against the dental office's jobs
// with applicant details attached by the backend.
func (c *Client) ReceivedApplications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := c.do(ctx, http.MethodGet, "/applications/received", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}
