package commands

import (
	"context"

	"github.com/onflow/flow-bootstrap/admin"
)

// AdminCommand defines the interface expected for maintenance command handlers.
type AdminCommand interface {
	// Validator is responsible for validating that the input forms a valid request.
	// By convention, Validator may set the ValidatorData field on the request, and
	// this will persist when the request is passed to Handler.
	// All errors indicate an invalid request.
	Validator(request *admin.CommandRequest) error
	// Handler is responsible for handling the request. It applies any state
	// changes associated with the request and returns any values which should
	// be displayed to the initiator of the request.
	Handler(ctx context.Context, request *admin.CommandRequest) (interface{}, error)
}

var _ admin.Command = (AdminCommand)(nil)
