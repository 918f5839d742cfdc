package session

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderTerminalID = "X-Terminal-ID"

type ctxKey struct{}

func WithTerminalID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// TerminalID returns the terminal bound to ctx, or "" when none is.
func TerminalID(ctx context.Context) string {
	if val, ok := ctx.Value(ctxKey{}).(string); ok {
		return val
	}
	return ""
}

// Middleware binds every request to a terminal. Requests without the
// header get a fresh id, echoed back so the client can reuse it.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderTerminalID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderTerminalID, id)
		c.Request = c.Request.WithContext(WithTerminalID(c.Request.Context(), id))
		c.Next()
	}
}
