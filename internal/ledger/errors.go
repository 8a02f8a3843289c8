package ledger

import (
	"errors"
	"fmt"
)

// ErrIncompleteTransaction is returned by Enqueue for a transaction missing a required field
var ErrIncompleteTransaction = errors.New("transaction is incomplete")

// ChainIntegrityError reports a block that does not link to its predecessor,
// does not hash to its stored hash, or misses the difficulty target.
// Once a ledger has seen one it refuses further mutations.
type ChainIntegrityError struct {
	Index  int
	Reason string
}

func (e *ChainIntegrityError) Error() string {
	return fmt.Sprintf("chain integrity violated at block %d: %s", e.Index, e.Reason)
}

// IsChainIntegrityError checks if err is or wraps a ChainIntegrityError
func IsChainIntegrityError(err error) bool {
	var target *ChainIntegrityError
	return errors.As(err, &target)
}
