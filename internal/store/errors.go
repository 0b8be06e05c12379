package store

import "errors"

var (
	ErrNoIDField        = errors.New("no id field")
	ErrMultipleIDFields = errors.New("multiple id fields")
	ErrNoChanges        = errors.New("no changes")
	ErrUnknownField     = errors.New("unknown field")
)
