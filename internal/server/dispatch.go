package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"fb-mcp/internal/flashblade"
)

// performanceWindow is the trailing range get-array-full reports on.
const performanceWindow = 7 * 24 * time.Hour

// Dispatcher validates tool calls and runs them against a fresh facade.
// It holds no per-call state. Calls within one session run one at a time.
type Dispatcher struct {
	newFacade FacadeFactory
	now       func() time.Time
	logger    *slog.Logger

	mu    sync.Mutex
	locks map[*mcp.ServerSession]*sync.Mutex
}

// NewDispatcher returns a dispatcher building facades with newFacade.
func NewDispatcher(newFacade FacadeFactory, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		newFacade: newFacade,
		now:       time.Now,
		logger:    logger,
		locks:     make(map[*mcp.ServerSession]*sync.Mutex),
	}
}

// sessionLock returns the mutex serializing calls in session. In-process
// calls without a session share one lock. The entry is dropped once the
// session ends.
func (d *Dispatcher) sessionLock(session *mcp.ServerSession) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	if l, ok := d.locks[session]; ok {
		return l
	}
	l := &sync.Mutex{}
	d.locks[session] = l
	if session != nil {
		go func() {
			_ = session.Wait()
			d.mu.Lock()
			delete(d.locks, session)
			d.mu.Unlock()
		}()
	}
	return l
}

// Handle is the low-level MCP tool handler for every registered tool.
func (d *Dispatcher) Handle(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if req.Params == nil {
		return nil, ErrMissingArguments
	}
	var args map[string]any
	if len(req.Params.Arguments) > 0 {
		dec := json.NewDecoder(bytes.NewReader(req.Params.Arguments))
		dec.UseNumber()
		if err := dec.Decode(&args); err != nil {
			return nil, fmt.Errorf("decode arguments: %w", err)
		}
	}
	return d.Call(ctx, req.Session, req.Params.Name, args)
}

// Call runs tool name with args. Request-shape problems are returned as
// errors before any network activity; everything after that is reported in
// the result. session may be nil.
func (d *Dispatcher) Call(ctx context.Context, session *mcp.ServerSession, name string, args map[string]any) (*mcp.CallToolResult, error) {
	lock := d.sessionLock(session)
	lock.Lock()
	defer lock.Unlock()

	if name != ToolPureFB && name != ToolArrayFull {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if len(args) == 0 {
		return nil, ErrMissingArguments
	}
	host, _ := args["host"].(string)
	token, _ := args["api_token"].(string)

	logger := d.logger.With("call_id", uuid.NewString(), "tool", name)
	logger.InfoContext(ctx, "initializing query", "host", host, "api_token", maskToken(token))
	sessionLog(ctx, session, logger, fmt.Sprintf("Initializing query with '%s' and '%s'", host, maskToken(token)))

	if host == "" || token == "" {
		return nil, ErrMissingCredentials
	}
	creds := Credentials{Host: host, APIToken: token}

	if name == ToolPureFB {
		command, _ := args["command"].(string)
		if command == "" {
			return nil, ErrMissingCommand
		}
		params, err := parameters(args["parameters"])
		if err != nil {
			logger.WarnContext(ctx, "tool call failed", "error", err)
			return errorResult(err), nil
		}
		facade := d.newFacade(ctx, creds)
		return d.execute(ctx, logger, func() (string, error) {
			return d.fetch(ctx, session, logger, facade, command, params)
		})
	}

	facade := d.newFacade(ctx, creds)
	return d.execute(ctx, logger, func() (string, error) {
		return d.arrayFull(ctx, session, logger, facade)
	})
}

func (d *Dispatcher) arrayFull(ctx context.Context, session *mcp.ServerSession, logger *slog.Logger, facade Invoker) (string, error) {
	info, err := d.fetch(ctx, session, logger, facade, "get_arrays", nil)
	if err != nil {
		return "", err
	}
	space, err := d.fetch(ctx, session, logger, facade, "get_arrays_space", nil)
	if err != nil {
		return "", err
	}
	start, end := performanceWindowBounds(d.now())
	perf, err := d.fetch(ctx, session, logger, facade, "get_arrays_performance", map[string]any{
		"start_time": start,
		"end_time":   end,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Arrays information: %s, space: %s, and performance: %s", info, space, perf), nil
}

// fetch invokes one command and serializes the result. Only argument errors
// abort; array and connection failures are folded into the JSON payload.
func (d *Dispatcher) fetch(ctx context.Context, session *mcp.ServerSession, logger *slog.Logger, facade Invoker, command string, params map[string]any) (string, error) {
	res := facade.Invoke(ctx, command, params)
	var paramErr *flashblade.ParamError
	if errors.As(res.Err, &paramErr) {
		return "", paramErr
	}
	text := Serialize(res, command)
	if res.Err != nil {
		logger.WarnContext(ctx, "no response", "command", command, "error", res.Err)
	} else {
		logger.InfoContext(ctx, "response", "command", command, "bytes", len(text))
	}
	sessionLog(ctx, session, logger, command+": "+text)
	return text, nil
}

func (d *Dispatcher) execute(ctx context.Context, logger *slog.Logger, run func() (string, error)) (res *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "tool call panicked", "panic", r)
			res, err = errorResult(fmt.Errorf("%v", r)), nil
		}
	}()
	text, runErr := run()
	if runErr != nil {
		logger.WarnContext(ctx, "tool call failed", "error", runErr)
		return errorResult(runErr), nil
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}, nil
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + err.Error()}},
	}
}

// parameters treats an absent or null value as no parameters.
func parameters(v any) (map[string]any, error) {
	switch p := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return p, nil
	default:
		return nil, fmt.Errorf("%w, got %T", ErrInvalidParameters, v)
	}
}

// performanceWindowBounds returns [now-7d, now] in epoch milliseconds.
func performanceWindowBounds(now time.Time) (start, end int64) {
	end = now.UnixMilli()
	return end - performanceWindow.Milliseconds(), end
}
