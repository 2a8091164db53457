package reports

import "errors"

var (
	ErrNotFound = errors.New("not found")
)
