package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Notification represents a GitHub notification thread. It is produced by
// the platform and never mutated locally; acknowledgment happens through a
// batched mark-read call with a computed watermark.
type Notification struct {
	ID        string              `json:"id"`
	Reason    string              `json:"reason"`
	Unread    bool                `json:"unread"`
	UpdatedAt string              `json:"updated_at"`
	Subject   NotificationSubject `json:"subject"`
}

// NotificationSubject holds the thread subject of a notification
type NotificationSubject struct {
	Title            string `json:"title"`
	URL              string `json:"url"`
	LatestCommentURL string `json:"latest_comment_url"`
	Type             string `json:"type"`
}

// updatedAtLayout matches GitHub's ISO-8601 timestamps once the trailing
// UTC suffix has been stripped
const updatedAtLayout = "2006-01-02T15:04:05"

// ParseUpdatedAt parses the notification's updated_at timestamp. A trailing
// "Z" suffix is normalized away before parsing; the result is UTC.
func (n *Notification) ParseUpdatedAt() (time.Time, error) {
	raw := strings.TrimSuffix(n.UpdatedAt, "Z")

	ts, err := time.ParseInLocation(updatedAtLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "failed to parse notification timestamp",
			goerr.V("updated_at", n.UpdatedAt),
			goerr.V("notification_id", n.ID),
		)
	}

	return ts, nil
}
