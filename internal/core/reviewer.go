// Package core defines the contracts shared by the HTTP layer and the model
// client. Implementations live in other packages so the handler never depends
// on a concrete model SDK.
package core

import (
	"context"
)

// Reviewer produces a code review for a snippet of source code.
type Reviewer interface {
	// Review sends the already trimmed code to the remote model and returns the
	// generated text unmodified. Errors from the model are returned as-is so the
	// caller can surface their message.
	Review(ctx context.Context, code string) (string, error)
}
