package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// apiClient talks to the portal API on behalf of one user.
type apiClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{baseURL: baseURL, http: &http.Client{Timeout: 10 * time.Second}}
}

// apiError is an error response of the API.
type apiError struct {
	Code int
	Body string
}

func (err apiError) Error() string {
	return fmt.Sprintf("%d %s: %s", err.Code, http.StatusText(err.Code), err.Body)
}

func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		reqBody = bytes.NewReader(data)
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading response body")
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return apiError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}
	if out != nil && len(data) > 0 {
		if err = json.Unmarshal(data, out); err != nil {
			return errors.Wrap(err, "decoding response body")
		}
	}
	return nil
}

// login starts a session as `username` with `role`, on `subject`.
func (c *apiClient) login(ctx context.Context, username, role, subject string) error {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "role": role}
	if err := c.do(ctx, http.MethodPost, "/v1/sessions", nil, body, &resp); err != nil {
		return errors.Wrap(err, "starting session")
	}
	c.token = resp.Token
	if subject == "" {
		return nil
	}
	if err := c.do(ctx, http.MethodPut, "/v1/sessions/subject", nil, map[string]string{"subject": subject}, nil); err != nil {
		return errors.Wrap(err, "selecting subject")
	}
	return nil
}

func (c *apiClient) logout(ctx context.Context) error {
	if c.token == "" {
		return nil
	}
	err := c.do(ctx, http.MethodDelete, "/v1/sessions", nil, nil, nil)
	c.token = ""
	return err
}
