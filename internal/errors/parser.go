package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs a code with a message safe to show the caller.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts storage-layer errors into user-safe codes and
// messages. Constraint and connectivity detail is logged elsewhere,
// never surfaced.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM base errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. Constraint violations (Postgres 23505, SQLite UNIQUE)
	if strings.Contains(errStrLower, "duplicate key") ||
		strings.Contains(errStrLower, "unique constraint") ||
		strings.Contains(errStrLower, "unique failed") {
		return parseDuplicateKeyError(errStrLower)
	}

	// 3. Foreign key violations (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "Referenced record does not exist",
		}
	}

	// 4. Connectivity
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The store is temporarily unavailable, please try again later",
		}
	}

	// 5. Default internal error
	return ErrorInfo{
		Code:    InternalServerError,
		Message: "Something went wrong, please try again later",
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "email") {
		return ErrorInfo{
			Code:    NewsletterAlreadySubscribed,
			Message: "Email already subscribed",
		}
	}
	if strings.Contains(errLower, "username") {
		return ErrorInfo{
			Code:    AuthUsernameExists,
			Message: "Username already taken",
		}
	}
	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "Record already exists",
	}
}

// ParseAndRespond parses an unexpected error and writes the standard
// error body. Controllers use it on fallback paths where no sentinel
// matched.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "product") {
		return "Product not found"
	}
	if strings.Contains(contextLower, "cart") {
		return "Cart not found"
	}
	if strings.Contains(contextLower, "user") {
		return "User not found"
	}
	return "Requested record not found"
}
