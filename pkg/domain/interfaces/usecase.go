package interfaces

import (
	"context"

	"github.com/m-mizutani/roboto/pkg/domain/model"
)

// CommandHandler processes one recognized bot command
type CommandHandler interface {
	// Handle executes the command for the mentioning comment
	Handle(ctx context.Context, msg *model.Comment) error
}

// CommandDispatcher routes an incoming comment to the first registered
// command whose pattern matches the message body
type CommandDispatcher interface {
	Dispatch(ctx context.Context, msg *model.Comment) error
}
