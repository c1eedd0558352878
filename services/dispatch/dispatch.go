// Package dispatch turns a recipient selection into an immutable delivery
// request and executes it across channel senders with partial-failure
// accounting.
package dispatch

import (
	"context"
	"errors"

	"courier/models"
)

// Precondition and transport errors. Precondition errors surface before
// any delivery is attempted; ErrTransportUnavailable is the one fatal
// executor condition that is not a partial failure.
var (
	ErrEmptyMessage         = errors.New("message content is empty")
	ErrNoEligibleTargets    = errors.New("no recipients with selected channels")
	ErrEmptyRequest         = errors.New("dispatch request has no targets")
	ErrSenderUnavailable    = errors.New("sender unavailable")
	ErrTransportUnavailable = errors.New("all delivery channels unavailable")
)

// Sender delivers one message to one address over a single channel type.
// Implementations bound their own call with the supplied context; a failed
// send returns an error carrying the reason.
type Sender interface {
	Send(ctx context.Context, address, subject, body string) error
}

// Dispatcher executes a validated dispatch request. It is satisfied by
// *Executor and by deterministic fakes in tests.
type Dispatcher interface {
	Execute(ctx context.Context, req *models.DispatchRequest) (*models.DeliveryOutcome, error)
}
