package errs

import "net/http"

// errorMap associates each error code with its message template and HTTP status.
var errorMap = map[int]CustomError{
	ErrInvalidParams: {
		Code:    ErrInvalidParams,
		Message: "Invalid request parameters.",
		Status:  http.StatusBadRequest,
	},
	ErrRateLimitExceeded: {
		Code:    ErrRateLimitExceeded,
		Message: "Too many requests. Please try again later.",
		Status:  http.StatusTooManyRequests,
	},
	ErrUnknown: {
		Code:    ErrUnknown,
		Message: "Internal server error.",
		Status:  http.StatusInternalServerError,
	},
}
