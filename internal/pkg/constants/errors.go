package constants

import (
	"fmt"
	"net/http"
)

// CodedError is an error that carries the HTTP status it should surface
// as. The API error handler unwraps to the first CodedError in the chain.
type CodedError struct {
	code    int
	message string
}

func NewCodedError(code int, message string) *CodedError {
	return &CodedError{code: code, message: message}
}

func (e *CodedError) Error() string {
	return e.message
}

func (e *CodedError) Code() int {
	return e.code
}

// InvalidFilterf builds the configuration-error returned when a query
// filter names an unknown module/item/variable/region or a bad year.
func InvalidFilterf(format string, args ...interface{}) *CodedError {
	return NewCodedError(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

var (
	ErrDBNotFound       = NewCodedError(http.StatusNotFound, "not found")
	ErrRegionReferenced = NewCodedError(http.StatusConflict, "region is referenced by fact data")
)
