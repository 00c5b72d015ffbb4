package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/roboto/pkg/domain/interfaces"
	"github.com/m-mizutani/roboto/pkg/domain/model"
)

// notRecognizedReply is posted when no command pattern matches the message
const notRecognizedReply = "Command not recognized, please inform a valid command."

// command binds a message pattern to its handler
type command struct {
	pattern *regexp.Regexp
	handler interfaces.CommandHandler
}

// Dispatcher holds an ordered list of (pattern, handler) pairs and routes
// incoming comments to the first matching handler.
type Dispatcher struct {
	ghClient interfaces.GitHubClient
	commands []command
}

// NewDispatcher creates a dispatcher with no registered commands
func NewDispatcher(ghClient interfaces.GitHubClient) *Dispatcher {
	return &Dispatcher{ghClient: ghClient}
}

// Register appends a command. The pattern is matched case-sensitively at
// the start of the message body; an anchor is added when missing.
func (d *Dispatcher) Register(pattern string, handler interfaces.CommandHandler) error {
	if !strings.HasPrefix(pattern, "^") {
		pattern = "^" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return goerr.Wrap(err, "invalid command pattern", goerr.V("pattern", pattern))
	}

	d.commands = append(d.commands, command{pattern: re, handler: handler})
	return nil
}

// Dispatch routes the comment to the first command whose pattern matches.
// When nothing matches, a not-recognized reply is posted to the thread.
func (d *Dispatcher) Dispatch(ctx context.Context, msg *model.Comment) error {
	logger := ctxlog.From(ctx)

	for _, cmd := range d.commands {
		if !cmd.pattern.MatchString(msg.Body) {
			continue
		}

		logger.Info("Dispatching command",
			"pattern", cmd.pattern.String(),
			"issue_url", msg.IssueURL,
			"sender", msg.User.Login,
		)
		return cmd.handler.Handle(ctx, msg)
	}

	logger.Info("Command not recognized",
		"issue_url", msg.IssueURL,
		"body", msg.Body,
	)
	if err := d.ghClient.CreateComment(ctx, msg.IssueURL, notRecognizedReply); err != nil {
		return goerr.Wrap(err, "failed to post not-recognized reply", goerr.V("issue_url", msg.IssueURL))
	}
	return nil
}
