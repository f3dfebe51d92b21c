package match

import (
	"errors"
	"fmt"
)

// ErrMalformedHit matches every *MalformedHitError through errors.Is.
var ErrMalformedHit = errors.New("malformed search hit")

// MalformedHitError reports a hit whose job id could not be resolved.
type MalformedHitError struct {
	Index   int
	ChunkID string
	Reason  string
}

func (e *MalformedHitError) Error() string {
	return fmt.Sprintf("hit %d (chunk %q): %s", e.Index, e.ChunkID, e.Reason)
}

func (e *MalformedHitError) Unwrap() error {
	return ErrMalformedHit
}
