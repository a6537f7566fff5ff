package digest

import (
	"errors"
	"fmt"
)

var (
	ErrBadConfiguration    = errors.New("bad configuration")
	ErrInternalConsistency = errors.New("internal consistency error")
)

// UnclassifiedFeedError reports a subscribed feed that was neither updated,
// failed, nor checked during a run.
type UnclassifiedFeedError struct {
	URL      string
	Category string
}

func (e *UnclassifiedFeedError) Error() string {
	return fmt.Sprintf("feed %s in category %q is not accounted for in updated, error or other feeds", e.URL, e.Category)
}

func (e *UnclassifiedFeedError) Unwrap() error {
	return ErrInternalConsistency
}
