package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/roboto/pkg/domain/interfaces"
	"github.com/m-mizutani/roboto/pkg/domain/model"
)

type client struct {
	gh *github.Client
}

// Option configures the client
type Option func(c *client) error

// WithBaseURL points the client at a different API endpoint. Used by tests
// and GitHub Enterprise deployments.
func WithBaseURL(baseURL string) Option {
	return func(c *client) error {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return goerr.Wrap(err, "invalid GitHub API base URL", goerr.V("base_url", baseURL))
		}
		c.gh.BaseURL = u
		return nil
	}
}

// NewClient creates a GitHub API client authenticated with the given
// token. An empty token is accepted; calls fail on first authenticated use.
func NewClient(token string, opts ...Option) (interfaces.GitHubClient, error) {
	gh := github.NewClient(&http.Client{Timeout: 30 * time.Second})
	if token != "" {
		gh = gh.WithAuthToken(token)
	}

	c := &client{gh: gh}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ListMentions fetches unread notifications filtered to reason=mention
func (c *client) ListMentions(ctx context.Context) ([]model.Notification, error) {
	req, err := c.gh.NewRequest("GET", "notifications?reason=mention&unread=true", nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build notifications request")
	}

	var notifications []model.Notification
	if _, err := c.gh.Do(ctx, req, &notifications); err != nil {
		return nil, goerr.Wrap(err, "failed to list notifications")
	}
	return notifications, nil
}

// GetComment fetches an issue comment by the URL the notification payload supplied
func (c *client) GetComment(ctx context.Context, commentURL string) (*model.Comment, error) {
	var comment model.Comment
	if err := c.getJSON(ctx, commentURL, &comment); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch comment", goerr.V("url", commentURL))
	}
	return &comment, nil
}

// GetIssue fetches an issue by its API URL
func (c *client) GetIssue(ctx context.Context, issueURL string) (*model.Issue, error) {
	var issue model.Issue
	if err := c.getJSON(ctx, issueURL, &issue); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch issue", goerr.V("url", issueURL))
	}
	return &issue, nil
}

// GetPullRequest fetches a pull request by its API URL
func (c *client) GetPullRequest(ctx context.Context, prURL string) (*model.PullRequest, error) {
	var pr model.PullRequest
	if err := c.getJSON(ctx, prURL, &pr); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch pull request", goerr.V("url", prURL))
	}
	return &pr, nil
}

// CreateComment posts a comment body to <issue_url>/comments
func (c *client) CreateComment(ctx context.Context, issueURL, body string) error {
	payload := struct {
		Body string `json:"body"`
	}{Body: body}

	req, err := c.gh.NewRequest("POST", strings.TrimSuffix(issueURL, "/")+"/comments", payload)
	if err != nil {
		return goerr.Wrap(err, "failed to build comment request", goerr.V("issue_url", issueURL))
	}
	if _, err := c.gh.Do(ctx, req, nil); err != nil {
		return goerr.Wrap(err, "failed to post comment", goerr.V("issue_url", issueURL))
	}
	return nil
}

// MarkNotificationsRead acknowledges all notifications up to lastRead
func (c *client) MarkNotificationsRead(ctx context.Context, lastRead time.Time) error {
	payload := struct {
		LastReadAt string `json:"last_read_at"`
		Read       bool   `json:"read"`
	}{
		LastReadAt: lastRead.UTC().Format(time.RFC3339),
		Read:       true,
	}

	req, err := c.gh.NewRequest("PUT", "notifications", payload)
	if err != nil {
		return goerr.Wrap(err, "failed to build mark-read request")
	}
	if _, err := c.gh.Do(ctx, req, nil); err != nil {
		return goerr.Wrap(err, "failed to mark notifications read")
	}
	return nil
}

func (c *client) getJSON(ctx context.Context, rawURL string, v any) error {
	req, err := c.gh.NewRequest("GET", rawURL, nil)
	if err != nil {
		return err
	}
	_, err = c.gh.Do(ctx, req, v)
	return err
}
