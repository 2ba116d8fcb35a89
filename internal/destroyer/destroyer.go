// Package destroyer deletes individual tweets from the live account.
package destroyer

import (
	"context"
	"errors"
)

// ErrInvalidID is returned for ids that are not numeric tweet ids.
var ErrInvalidID = errors.New("invalid tweet id")

// Destroyer deletes one tweet. Implementations in dry-run mode make no
// remote call and report success.
type Destroyer interface {
	Destroy(ctx context.Context, id string) error
}
