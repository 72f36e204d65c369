package server

import (
	"context"
	"fmt"
	"log/slog"

	"fb-mcp/internal/flashblade"
)

// Result is the outcome of one facade call. Err is set when the call never
// produced a response; Response may still be an *flashblade.ErrorResponse
// when the array answered with a failure.
type Result struct {
	Command  string
	Response flashblade.Response
	Err      error
}

// OK reports whether the array answered at all.
func (r Result) OK() bool { return r.Err == nil && r.Response != nil }

// Invoker runs allow-listed commands against one array.
type Invoker interface {
	Invoke(ctx context.Context, command string, params map[string]any) Result
}

// FacadeFactory builds the Invoker for one tool call.
type FacadeFactory func(ctx context.Context, creds Credentials) Invoker

// Facade binds one set of credentials to a flashblade client. A facade whose
// login failed is still usable: every Invoke returns the login error.
type Facade struct {
	host    string
	client  *flashblade.Client
	connErr error
	logger  *slog.Logger
}

// NewFacade logs in to creds.Host. Login failures are logged and recorded,
// not returned.
func NewFacade(ctx context.Context, creds Credentials, logger *slog.Logger, opts ...flashblade.Option) *Facade {
	if logger == nil {
		logger = slog.Default()
	}
	f := &Facade{host: creds.Host, logger: logger}
	client, err := flashblade.New(ctx, creds.Host, creds.APIToken, opts...)
	if err != nil {
		logger.ErrorContext(ctx, "login to array failed", "host", creds.Host, "error", err)
		f.connErr = err
		return f
	}
	f.client = client
	return f
}

// Err returns the login error, if any.
func (f *Facade) Err() error { return f.connErr }

// Invoke runs command with params. It never panics on unknown commands or
// array failures; see Result.
func (f *Facade) Invoke(ctx context.Context, command string, params map[string]any) Result {
	res := Result{Command: command}
	if f.connErr != nil {
		res.Err = f.connErr
		return res
	}
	cmd, ok := flashblade.LookupCommand(command)
	if !ok {
		res.Err = fmt.Errorf("%w: %s", ErrUnknownCommand, command)
		f.logger.WarnContext(ctx, "command not found", "host", f.host, "command", command)
		return res
	}

	resp, err := cmd.Invoke(ctx, f.client, params)
	if err != nil {
		res.Err = err
		f.logger.WarnContext(ctx, "command failed", "host", f.host, "command", command, "error", err)
		return res
	}
	if errResp, ok := resp.(*flashblade.ErrorResponse); ok {
		f.logger.WarnContext(ctx, "array rejected command", "host", f.host, "command", command, "status", errResp.StatusCode, "error", errResp.Error())
	}
	res.Response = resp
	return res
}
