package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageResponse is the body for status/error messages, e.g.
// {"message": "Error: Username is already taken!"}.
type MessageResponse struct {
	Message string `json:"message"`
}

// JWTResponse is the body returned on successful signin.
type JWTResponse struct {
	Token    string   `json:"token"`
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// Page is the envelope for paginated listings.
// Number is the zero-based page index requested by the client.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// NewPage computes page metadata for a slice of results.
func NewPage[T any](content []T, total int64, page, size int) Page[T] {
	if size <= 0 {
		size = 10
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Number:        page,
		Size:          size,
	}
}

// Message writes a MessageResponse with the given status.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, MessageResponse{Message: msg})
}

// AbortMessage writes a MessageResponse and stops the handler chain.
func AbortMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, MessageResponse{Message: msg})
}

// NotFound writes an empty 404 with no body.
func NotFound(c *gin.Context) {
	c.Status(http.StatusNotFound)
}
