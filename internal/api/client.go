package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	logger "github.com/sirupsen/logrus"

	"commitview/internal/config"
	"commitview/internal/domain"
	"commitview/internal/eventbus"
)

const maxBodyBytes = 64 << 20

// Client talks to the repository browsing REST API
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	cookie     string
	timeout    time.Duration
	bus        eventbus.EventBus
	cache      *responseCache
	newID      func() string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the pooled default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every request; zero means no deadline
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithCookie passes a Cookie header through unchanged on every request
func WithCookie(cookie string) Option {
	return func(c *Client) { c.cookie = cookie }
}

// WithEventBus publishes fetch started/completed/failed events
func WithEventBus(bus eventbus.EventBus) Option {
	return func(c *Client) { c.bus = bus }
}

// WithCache enables the TTL cache for commit pages and commit details
func WithCache(size int, ttl time.Duration) Option {
	return func(c *Client) { c.cache = newResponseCache(size, ttl) }
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url: %q is not absolute", baseURL)
	}

	httpClient := cleanhttp.DefaultPooledClient()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	httpClient.Jar = jar

	c := &Client{
		baseURL:    u,
		httpClient: httpClient,
		newID:      func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewClientFromConfig builds a client from the [api] config section
func NewClientFromConfig(cfg config.APIConfig, bus eventbus.EventBus) (*Client, error) {
	return NewClient(cfg.BaseURL,
		WithTimeout(cfg.Timeout.Duration),
		WithCookie(cfg.Cookie),
		WithCache(cfg.CacheSize, cfg.CacheTTL.Duration),
		WithEventBus(bus),
	)
}

// BaseURL returns the API root the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// CurrentUser returns the identity of the session the API sees
func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var user domain.User
	err := c.get(ctx, "current user", "/api/user", nil, false, &user)
	return user, err
}

// ListRepositories returns the repositories visible to the session
func (c *Client) ListRepositories(ctx context.Context) ([]domain.Repository, error) {
	var resp repositoriesResponse
	if err := c.get(ctx, "list repositories", "/api/repos", nil, false, &resp); err != nil {
		return nil, err
	}
	if resp.Repositories == nil {
		return []domain.Repository{}, nil
	}
	return resp.Repositories, nil
}

// ListCommits returns one page of a repository's history. Non-positive page
// and perPage fall back to 1 and 10.
func (c *Client) ListCommits(ctx context.Context, owner, repo string, page, perPage int) (domain.CommitPage, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 10
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("perPage", strconv.Itoa(perPage))

	var resp commitsResponse
	endpoint := repoPath(owner, repo, "commits")
	if err := c.get(ctx, "list commits", endpoint, query, true, &resp); err != nil {
		return domain.CommitPage{}, err
	}

	result := domain.CommitPage{
		Owner:   owner,
		Repo:    repo,
		Page:    page,
		PerPage: perPage,
		Commits: resp.Commits,
	}
	if result.Commits == nil {
		result.Commits = []domain.Commit{}
	}
	return result, nil
}

// GetCommitDetail returns a commit with its ordered list of changed files
func (c *Client) GetCommitDetail(ctx context.Context, owner, repo, sha string) (domain.CommitDetail, error) {
	var resp commitDetailResponse
	endpoint := repoPath(owner, repo, "commits", sha)
	if err := c.get(ctx, "get commit detail", endpoint, nil, true, &resp); err != nil {
		return domain.CommitDetail{}, err
	}
	if resp.Commit == nil {
		return domain.CommitDetail{}, &FetchError{
			Op:  "get commit detail",
			URL: c.resolve(endpoint, nil),
			Err: errors.New("response has no commit"),
		}
	}

	detail := domain.CommitDetail{
		Commit:       *resp.Commit,
		ChangedFiles: resp.ChangedFiles,
	}
	if detail.ChangedFiles == nil {
		detail.ChangedFiles = []domain.ChangedFile{}
	}
	return detail, nil
}

// GetFileDiff returns the before/after content of one file in a commit.
// It is never served from the cache.
func (c *Client) GetFileDiff(ctx context.Context, owner, repo, sha, filePath string) (domain.FileDiffContent, error) {
	query := url.Values{}
	query.Set("filePath", filePath)

	var content domain.FileDiffContent
	endpoint := repoPath(owner, repo, "commit", sha, "file")
	if err := c.get(ctx, "get file diff", endpoint, query, false, &content); err != nil {
		return domain.FileDiffContent{}, err
	}
	return content, nil
}

func repoPath(owner, repo string, rest ...string) string {
	parts := []string{"/api/repos", url.PathEscape(owner), url.PathEscape(repo)}
	for _, p := range rest {
		parts = append(parts, url.PathEscape(p))
	}
	return strings.Join(parts, "/")
}

func (c *Client) resolve(endpoint string, query url.Values) string {
	target := c.baseURL.String() + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

func (c *Client) get(ctx context.Context, op, endpoint string, query url.Values, cacheable bool, out any) error {
	target := c.resolve(endpoint, query)

	if cacheable {
		if body, ok := c.cache.get(target); ok {
			if err := json.Unmarshal(body, out); err == nil {
				logger.Debugf("[api] GET %s served from cache", endpoint)
				c.publish(eventbus.FetchCompletedEvent{
					RequestID:  c.newID(),
					Path:       endpoint,
					StatusCode: http.StatusOK,
					FromCache:  true,
				})
				return nil
			}
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &FetchError{Op: op, URL: target, Err: err}
	}
	requestID := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	c.publish(eventbus.FetchStartedEvent{RequestID: requestID, Method: http.MethodGet, Path: endpoint})
	started := time.Now()

	body, status, err := c.do(req)
	elapsed := time.Since(started)
	if err == nil && (status < 200 || status > 299) {
		err = statusError(status, body)
	}
	if err == nil {
		if decodeErr := json.Unmarshal(body, out); decodeErr != nil {
			err = fmt.Errorf("failed to decode response: %w", decodeErr)
		}
	}

	if err != nil {
		fetchErr := &FetchError{Op: op, URL: target, StatusCode: status, Err: err}
		logger.Warnf("[api] GET %s -> %v (%s)", endpoint, fetchErr, elapsed.Round(time.Millisecond))
		c.publish(eventbus.FetchFailedEvent{
			RequestID:  requestID,
			Path:       endpoint,
			StatusCode: status,
			Duration:   elapsed,
			Err:        fetchErr,
		})
		return fetchErr
	}

	logger.Debugf("[api] GET %s -> %d (%s)", endpoint, status, elapsed.Round(time.Millisecond))
	c.publish(eventbus.FetchCompletedEvent{
		RequestID:  requestID,
		Path:       endpoint,
		StatusCode: status,
		Duration:   elapsed,
	})
	if cacheable {
		c.cache.put(target, body)
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func statusError(status int, body []byte) error {
	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return errors.New(payload.Error)
	}
	return errors.New(http.StatusText(status))
}

func (c *Client) publish(event eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}
