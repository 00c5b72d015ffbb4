package interfaces

import (
	"context"
	"time"

	"github.com/m-mizutani/roboto/pkg/domain/model"
)

// GitHubClient defines the GitHub API operations the bot depends on. URLs
// are taken verbatim from API payloads (issue_url, latest_comment_url,
// pull_request.url) rather than rebuilt from owner/repo pairs.
type GitHubClient interface {
	// ListMentions fetches unread notifications with reason=mention
	ListMentions(ctx context.Context) ([]model.Notification, error)

	// GetComment fetches an issue comment by its API URL
	GetComment(ctx context.Context, commentURL string) (*model.Comment, error)

	// GetIssue fetches an issue by its API URL
	GetIssue(ctx context.Context, issueURL string) (*model.Issue, error)

	// GetPullRequest fetches a pull request by its API URL
	GetPullRequest(ctx context.Context, prURL string) (*model.PullRequest, error)

	// CreateComment posts a comment to the issue's comment collection
	CreateComment(ctx context.Context, issueURL, body string) error

	// MarkNotificationsRead marks all notifications up to lastRead as read
	MarkNotificationsRead(ctx context.Context, lastRead time.Time) error
}
