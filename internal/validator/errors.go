package validator

import (
	"fmt"
)

type ErrInvalidJobApplication struct {
	error
}

func NewErrInvalidJobApplication(format string, args ...any) *ErrInvalidJobApplication {
	return &ErrInvalidJobApplication{fmt.Errorf(format, args...)}
}
