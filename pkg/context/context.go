package context

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type ctxKey string

// RequestIDKey carries the request ID from fiber locals into service calls.
const RequestIDKey ctxKey = "request_id"

const requestIDHeader = "X-Request-ID"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

// FromFiberCtx detaches from fasthttp's request lifetime; only the request ID survives.
func FromFiberCtx(c *fiber.Ctx) context.Context {
	ctx := context.Background()

	requestID, ok := c.Locals(requestIDHeader).(string)
	if !ok || requestID == "" {
		requestID = string([]byte(c.Get(requestIDHeader)))

		if requestID == "" {
			requestID = "unknown"
		}
	}

	return WithRequestID(ctx, requestID)
}
