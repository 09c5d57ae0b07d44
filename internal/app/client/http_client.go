package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"subtracker/internal/app/client/config"
	"subtracker/internal/domain/subscription"
)

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string

	mu    sync.RWMutex
	token string
}

var _ API = (*httpClient)(nil)

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 2,
		},
	}

	return &httpClient{
		client:    client,
		log:       log.With("component", "http_client"),
		baseURL:   cfg.BaseURL(),
		userAgent: "subtracker-cli/1.0",
	}
}

func (h *httpClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.token = token
}

func (h *httpClient) currentToken() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.token
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    int     `json:"id"`
		Email string  `json:"email"`
		Name  *string `json:"name"`
	} `json:"user"`
}

func (r authResponse) session() Session {
	p := Profile{ID: r.User.ID, Email: r.User.Email}
	if r.User.Name != nil {
		p.Name = *r.User.Name
	}

	return Session{Token: r.Token, User: p}
}

func (h *httpClient) Register(ctx context.Context, email, password, name string) (Session, error) {
	return h.authenticate(ctx, "/api/register", credentials{Email: email, Password: password, Name: name})
}

func (h *httpClient) Login(ctx context.Context, email, password string) (Session, error) {
	return h.authenticate(ctx, "/api/login", credentials{Email: email, Password: password})
}

func (h *httpClient) authenticate(ctx context.Context, path string, body credentials) (Session, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return Session{}, err
	}

	var out authResponse
	if err := h.parseResponse(resp, &out); err != nil {
		return Session{}, err
	}
	if out.Token == "" {
		return Session{}, fmt.Errorf("server returned no token")
	}

	return out.session(), nil
}

func (h *httpClient) List(ctx context.Context) ([]subscription.Subscription, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/subscriptions", nil)
	if err != nil {
		return nil, err
	}

	var out []subscription.Response
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}

	list := make([]subscription.Subscription, 0, len(out))
	for _, r := range out {
		list = append(list, r.Model())
	}

	return list, nil
}

func (h *httpClient) Create(ctx context.Context, req subscription.Request) (subscription.Subscription, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/subscriptions", req)
	if err != nil {
		return subscription.Subscription{}, err
	}

	var out subscription.Response
	if err := h.parseResponse(resp, &out); err != nil {
		return subscription.Subscription{}, err
	}

	return out.Model(), nil
}

func (h *httpClient) Update(ctx context.Context, id int, req subscription.Request) (subscription.Subscription, error) {
	resp, err := h.doRequest(ctx, http.MethodPut, "/api/subscriptions/"+strconv.Itoa(id), req)
	if err != nil {
		return subscription.Subscription{}, err
	}

	var out subscription.Response
	if err := h.parseResponse(resp, &out); err != nil {
		return subscription.Subscription{}, err
	}

	return out.Model(), nil
}

func (h *httpClient) Delete(ctx context.Context, id int) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, "/api/subscriptions/"+strconv.Itoa(id), nil)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

func (h *httpClient) Stats(ctx context.Context) (subscription.Stats, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/subscriptions/stats", nil)
	if err != nil {
		return subscription.Stats{}, err
	}

	var out subscription.StatsResponse
	if err := h.parseResponse(resp, &out); err != nil {
		return subscription.Stats{}, err
	}

	return subscription.Stats{Count: out.Count, MonthlyTotal: out.MonthlyTotal, YearlyTotal: out.YearlyTotal}, nil
}

// doRequest fails with ErrNetwork when the server could not be reached at all.
func (h *httpClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := h.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	h.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	return resp, nil
}

// errorBody covers both the problem+json shape and a bare {"error": "..."} body.
type errorBody struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (e errorBody) message() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Error != "":
		return e.Error
	default:
		return e.Title
	}
}

func (h *httpClient) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	h.log.Debug("received response", "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp errorBody
		_ = json.Unmarshal(body, &errResp)
		return &APIError{Status: resp.StatusCode, Message: errResp.message()}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
