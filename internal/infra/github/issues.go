package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	gh "github.com/google/go-github/v72/github"

	"github.com/runoshun/idraft/internal/domain"
)

// Ensure IssueClient implements domain.IssueTracker.
var _ domain.IssueTracker = (*IssueClient)(nil)

// IssueClient creates issues through the GitHub REST API.
// Fields are ordered to minimize memory padding.
type IssueClient struct {
	httpClient      *http.Client
	baseURL         *url.URL
	logger          domain.Logger
	maxRetries      int
	initialInterval time.Duration
}

// IssueClientOptions configures an IssueClient.
type IssueClientOptions struct {
	Logger     domain.Logger
	APIURL     string
	Timeout    time.Duration
	MaxRetries int
}

// NewIssueClient creates an IssueClient for the API at opts.APIURL.
func NewIssueClient(opts IssueClientOptions) (*IssueClient, error) {
	apiURL := opts.APIURL
	if apiURL == "" {
		apiURL = domain.DefaultAPIURL
	}
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}
	baseURL, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid api_url %q: %w", domain.ErrValidation, opts.APIURL, err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &IssueClient{
		httpClient:      &http.Client{Timeout: timeout},
		baseURL:         baseURL,
		logger:          opts.Logger,
		maxRetries:      maxRetries,
		initialInterval: backoff.DefaultInitialInterval,
	}, nil
}

// client returns an API client authenticated with token.
func (c *IssueClient) client(token string) *gh.Client {
	client := gh.NewClient(c.httpClient).WithAuthToken(token)
	client.BaseURL = c.baseURL
	client.UserAgent = domain.AppName
	return client
}

// CreateIssue creates one issue in repo. Rate-limited requests are retried
// with exponential backoff; any other failure is returned immediately.
func (c *IssueClient) CreateIssue(ctx context.Context, token string, repo domain.RepoRef, req domain.IssueRequest) (*domain.Issue, error) {
	client := c.client(token)
	issueReq := &gh.IssueRequest{
		Title: gh.Ptr(req.Title),
		Body:  gh.Ptr(req.Body),
	}

	var created *gh.Issue
	attempt := 0
	op := func() error {
		attempt++
		issue, _, err := client.Issues.Create(ctx, repo.Owner, repo.Name, issueReq)
		if err != nil {
			if isRateLimited(err) {
				c.warn(fmt.Sprintf("rate limited creating issue in %s (attempt %d)", repo, attempt))
				return err
			}
			return backoff.Permanent(err)
		}
		created = issue
		return nil
	}

	if err := backoff.Retry(op, c.backOff(ctx)); err != nil {
		return nil, wrapAPIError("create issue", err)
	}

	return &domain.Issue{
		Number: created.GetNumber(),
		URL:    created.GetHTMLURL(),
	}, nil
}

// CurrentUser returns the login of the token's owner.
func (c *IssueClient) CurrentUser(ctx context.Context, token string) (string, error) {
	user, _, err := c.client(token).Users.Get(ctx, "")
	if err != nil {
		return "", wrapAPIError("get user", err)
	}
	return user.GetLogin(), nil
}

func (c *IssueClient) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.maxRetries)), ctx)
}

func (c *IssueClient) warn(msg string) {
	if c.logger != nil {
		c.logger.Warn("github", msg)
	}
}

// isRateLimited reports whether err is a primary or secondary rate limit.
func isRateLimited(err error) bool {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	return errors.As(err, &rateErr) || errors.As(err, &abuseErr)
}

// wrapAPIError classifies an API error. A 401 means the token was rejected.
func wrapAPIError(op string, err error) error {
	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s: %w", domain.ErrAuthFailed, op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrTransport, op, err)
}
