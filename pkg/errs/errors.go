package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusNotFound       = http.StatusNotFound
)

var (
	ErrInternalServer  = errors.New("server error")
	ErrNotFound        = errors.New("Resource not found")
	ErrProductNotFound = errors.New("product not found")
	ErrNoFeatured      = errors.New("no featured product found")
)

var errorMap = map[error]int{
	ErrInternalServer:  ErrStatusInternalServer,
	ErrNotFound:        ErrStatusNotFound,
	ErrProductNotFound: ErrStatusNotFound,
	ErrNoFeatured:      ErrStatusNotFound,
}

// GetErrorStatusCode maps err, or any sentinel it wraps, to an HTTP status.
// Anything unknown is an upstream failure and maps to 500.
func GetErrorStatusCode(err error) int {
	if errStatusCode, ok := errorMap[err]; ok {
		return errStatusCode
	}

	for sentinel, errStatusCode := range errorMap {
		if errors.Is(err, sentinel) {
			return errStatusCode
		}
	}

	return errorMap[ErrInternalServer]
}

func IsNotFound(err error) bool {
	return GetErrorStatusCode(err) == ErrStatusNotFound
}
