package common

import (
	"errors"
	"fmt"
)

var ErrRecordNotFound = errors.New("record not found")

// NotFoundError reports a missing record and the id that was asked for.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("there is no %s with %q as an ID", e.Resource, e.ID)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrRecordNotFound
}
