package admin

import (
	"context"
	"fmt"
)

// CommandRequest is a single maintenance request.
type CommandRequest struct {
	Action Action
	Data   map[string]interface{}
	// ValidatorData may be set by a command's Validator and is then
	// available to its Handler.
	ValidatorData interface{}
}

// Command handles one maintenance action.
type Command interface {
	Validator(request *CommandRequest) error
	Handler(ctx context.Context, request *CommandRequest) (interface{}, error)
}

// Runner dispatches maintenance requests to the command registered for
// their action.
type Runner struct {
	commands map[Action]Command
}

func NewRunner() *Runner {
	return &Runner{commands: make(map[Action]Command)}
}

// RegisterCommand binds command to action, replacing any previous binding.
func (r *Runner) RegisterCommand(action Action, command Command) {
	r.commands[action] = command
}

// Run validates the request and runs its handler.
// Expected errors:
//   - InvalidRequestError if the action is unknown or the request is invalid
func (r *Runner) Run(ctx context.Context, request *CommandRequest) (interface{}, error) {
	command, ok := r.commands[request.Action]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, request.Action)
	}

	err := command.Validator(request)
	if err != nil {
		return nil, fmt.Errorf("invalid request for %s: %w", request.Action, err)
	}

	result, err := command.Handler(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", request.Action, err)
	}
	return result, nil
}
