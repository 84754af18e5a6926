package ledger

import (
	"errors"
	"fmt"
)

// ChainIntegrityError reports the first entry at which verification
// failed. Seq identifies the offending entry; Expected and Actual carry
// the digests that disagreed.
type ChainIntegrityError struct {
	Seq      uint64
	Reason   string
	Expected string
	Actual   string
}

func (e *ChainIntegrityError) Error() string {
	if e.Expected == "" && e.Actual == "" {
		return fmt.Sprintf("chain integrity: entry %d: %s", e.Seq, e.Reason)
	}
	return fmt.Sprintf("chain integrity: entry %d: %s (expected %s, got %s)",
		e.Seq, e.Reason, e.Expected, e.Actual)
}

// IsChainIntegrityError reports whether err is a ChainIntegrityError.
func IsChainIntegrityError(err error) bool {
	var ce *ChainIntegrityError
	return errors.As(err, &ce)
}

// StorageError wraps a failure in the underlying log.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("ledger storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// ErrNotFound is returned when a requested sequence does not exist.
var ErrNotFound = errors.New("ledger entry not found")
