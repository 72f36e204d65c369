package server

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// loggerName tags notifications sent to the MCP client.
const loggerName = "pureflashblade"

// sessionLog sends data to the client as an info notification. The SDK
// drops it when the client has not asked for log messages.
func sessionLog(ctx context.Context, session *mcp.ServerSession, logger *slog.Logger, data string) {
	if session == nil {
		return
	}
	err := session.Log(ctx, &mcp.LoggingMessageParams{
		Level:  "info",
		Logger: loggerName,
		Data:   data,
	})
	if err != nil {
		logger.DebugContext(ctx, "session log failed", "error", err)
	}
}

// maskToken keeps a short prefix so operators can tell tokens apart.
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****"
}
