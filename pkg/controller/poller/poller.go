// Package poller drives the notification polling loop: it periodically
// fetches unread mention notifications, acknowledges each one, forwards the
// mentioning comment to the command dispatcher, and marks the batch read.
package poller

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/roboto/pkg/domain/interfaces"
)

// ackReply is posted to the thread before the command is even recognized,
// matching the bot's long-standing reply ordering
const ackReply = "Working on your request..."

// Poller fetches mention notifications on a fixed interval and forwards
// them to the command dispatcher. All work within a cycle is strictly
// sequential and failures are contained per notification.
type Poller struct {
	ghClient   interfaces.GitHubClient
	dispatcher interfaces.CommandDispatcher
	interval   time.Duration
}

// New creates a Poller polling at the given interval
func New(ghClient interfaces.GitHubClient, dispatcher interfaces.CommandDispatcher, interval time.Duration) *Poller {
	return &Poller{
		ghClient:   ghClient,
		dispatcher: dispatcher,
		interval:   interval,
	}
}

// Run executes an immediate cycle, then one cycle per interval tick until
// the context is cancelled. Ticks that fired while a cycle was still in
// flight are dropped, so cycles never overlap or queue up.
func (p *Poller) Run(ctx context.Context) error {
	logger := ctxlog.From(ctx)
	logger.Info("Notification poller started", "interval", p.interval.String())

	p.cycle(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification poller stopped")
			return nil
		case <-ticker.C:
			p.cycle(ctx)

			// drop the tick that may have fired while processing
			select {
			case <-ticker.C:
			default:
			}
		}
	}
}

// cycle logs and contains all failures so the loop survives any cycle
func (p *Poller) cycle(ctx context.Context) {
	logger := ctxlog.From(ctx).With("cycle_id", uuid.NewString())
	ctx = ctxlog.With(ctx, logger)

	if err := p.RunCycle(ctx); err != nil {
		logger.Error("Polling cycle failed", "error", err)
	}
}

// RunCycle executes one polling cycle: list unread mentions, process each
// notification in the returned order, then acknowledge the whole batch
// with the highest updated_at timestamp observed.
func (p *Poller) RunCycle(ctx context.Context) error {
	logger := ctxlog.From(ctx)
	start := time.Now()

	mentions, err := p.ghClient.ListMentions(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list mention notifications")
	}
	if len(mentions) == 0 {
		logger.Debug("No unread mentions")
		return nil
	}

	var watermark time.Time
	for _, mention := range mentions {
		ts, err := mention.ParseUpdatedAt()
		if err != nil {
			logger.Warn("Skipping watermark update for notification",
				"notification_id", mention.ID,
				"error", err,
			)
		} else if ts.After(watermark) {
			watermark = ts
		}

		p.processMention(ctx, mention.Subject.LatestCommentURL)
	}

	if watermark.IsZero() {
		logger.Warn("No parsable timestamp in batch, leaving notifications unread")
		return nil
	}

	if err := p.ghClient.MarkNotificationsRead(ctx, watermark); err != nil {
		return goerr.Wrap(err, "failed to mark notifications read",
			goerr.V("last_read_at", watermark),
		)
	}

	logger.Info("Polling cycle complete",
		"mentions", len(mentions),
		"last_read_at", watermark,
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)
	return nil
}

// processMention handles a single notification. Failures are logged and
// never propagate: the cycle moves on to the next notification.
func (p *Poller) processMention(ctx context.Context, commentURL string) {
	logger := ctxlog.From(ctx)

	msg, err := p.ghClient.GetComment(ctx, commentURL)
	if err != nil {
		logger.Error("Failed to fetch mention comment",
			"comment_url", commentURL,
			"error", err,
		)
		return
	}

	if err := p.ghClient.CreateComment(ctx, msg.IssueURL, ackReply); err != nil {
		logger.Error("Failed to acknowledge mention",
			"issue_url", msg.IssueURL,
			"error", err,
		)
		return
	}

	if err := p.dispatcher.Dispatch(ctx, msg); err != nil {
		logger.Error("Command handling failed",
			"issue_url", msg.IssueURL,
			"error", err,
		)
	}
}
