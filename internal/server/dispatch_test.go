package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fb-mcp/internal/flashblade"
)

type invocation struct {
	Command string
	Params  map[string]any
}

// fakeInvoker answers from a fixed table; unknown commands fail like the
// real facade.
type fakeInvoker struct {
	mu      sync.Mutex
	calls   []invocation
	results map[string]Result
	panics  bool
}

func (f *fakeInvoker) Invoke(_ context.Context, command string, params map[string]any) Result {
	f.mu.Lock()
	f.calls = append(f.calls, invocation{Command: command, Params: params})
	f.mu.Unlock()
	if f.panics {
		panic("boom")
	}
	if r, ok := f.results[command]; ok {
		r.Command = command
		return r
	}
	return Result{Command: command, Err: fmt.Errorf("%w: %s", ErrUnknownCommand, command)}
}

type fakeFactory struct {
	invoker *fakeInvoker
	creds   []Credentials
}

func (f *fakeFactory) build(_ context.Context, creds Credentials) Invoker {
	f.creds = append(f.creds, creds)
	return f.invoker
}

func newTestDispatcher(results map[string]Result) (*Dispatcher, *fakeFactory) {
	factory := &fakeFactory{invoker: &fakeInvoker{results: results}}
	d := NewDispatcher(factory.build, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return d, factory
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "got %T", res.Content[0])
	return text.Text
}

func TestCallRejectsBeforeNetwork(t *testing.T) {
	cases := []struct {
		name string
		tool string
		args map[string]any
		want error
	}{
		{"unknown tool", "pure-xx", map[string]any{"host": "h", "api_token": "t"}, ErrUnknownTool},
		{"nil arguments", ToolPureFB, nil, ErrMissingArguments},
		{"empty arguments", ToolArrayFull, map[string]any{}, ErrMissingArguments},
		{"missing host", ToolPureFB, map[string]any{"api_token": "t", "command": "get_arrays"}, ErrMissingCredentials},
		{"missing token", ToolPureFB, map[string]any{"host": "h", "command": "get_arrays"}, ErrMissingCredentials},
		{"empty host", ToolArrayFull, map[string]any{"host": "", "api_token": "t"}, ErrMissingCredentials},
		{"token not a string", ToolArrayFull, map[string]any{"host": "h", "api_token": 42}, ErrMissingCredentials},
		{"missing command", ToolPureFB, map[string]any{"host": "h", "api_token": "t"}, ErrMissingCommand},
		{"empty command", ToolPureFB, map[string]any{"host": "h", "api_token": "t", "command": ""}, ErrMissingCommand},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, factory := newTestDispatcher(nil)
			res, err := d.Call(context.Background(), nil, tc.tool, tc.args)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, res)
			assert.Empty(t, factory.creds, "facade must not be built")
		})
	}
}

func TestPureFBItemized(t *testing.T) {
	d, factory := newTestDispatcher(map[string]Result{
		"get_buckets": {Response: itemized(
			map[string]any{"id": "b1", "name": "logs"},
			map[string]any{"id": "b2", "name": "backups"},
		)},
	})

	res, err := d.Call(context.Background(), nil, ToolPureFB, map[string]any{
		"host": "10.0.0.1", "api_token": "T", "command": "get_buckets", "parameters": map[string]any{},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.JSONEq(t, `[{"id":"b1","name":"logs"},{"id":"b2","name":"backups"}]`, resultText(t, res))
	assert.Equal(t, []Credentials{{Host: "10.0.0.1", APIToken: "T"}}, factory.creds)
}

func TestPureFBParametersOmittedEqualsEmpty(t *testing.T) {
	results := map[string]Result{"get_arrays": {Response: itemized(map[string]any{"name": "fb01"})}}

	run := func(args map[string]any) (string, []invocation) {
		d, factory := newTestDispatcher(results)
		res, err := d.Call(context.Background(), nil, ToolPureFB, args)
		require.NoError(t, err)
		return resultText(t, res), factory.invoker.calls
	}

	omitted, omittedCalls := run(map[string]any{"host": "h", "api_token": "t", "command": "get_arrays"})
	empty, emptyCalls := run(map[string]any{"host": "h", "api_token": "t", "command": "get_arrays", "parameters": map[string]any{}})
	null, nullCalls := run(map[string]any{"host": "h", "api_token": "t", "command": "get_arrays", "parameters": nil})

	assert.Equal(t, empty, omitted)
	assert.Equal(t, empty, null)
	assert.Equal(t, emptyCalls, omittedCalls)
	assert.Equal(t, emptyCalls, nullCalls)
	require.Len(t, emptyCalls, 1)
	assert.Empty(t, emptyCalls[0].Params)
}

func TestPureFBForwardsParameters(t *testing.T) {
	d, factory := newTestDispatcher(map[string]Result{"get_alerts": {Response: itemized(map[string]any{"id": "1"})}})
	params := map[string]any{"filter": "severity='critical'", "limit": json.Number("5")}

	_, err := d.Call(context.Background(), nil, ToolPureFB, map[string]any{
		"host": "h", "api_token": "t", "command": "get_alerts", "parameters": params,
	})
	require.NoError(t, err)
	require.Len(t, factory.invoker.calls, 1)
	assert.Equal(t, params, factory.invoker.calls[0].Params)
}

func TestPureFBParametersNotAnObject(t *testing.T) {
	d, factory := newTestDispatcher(nil)
	res, err := d.Call(context.Background(), nil, ToolPureFB, map[string]any{
		"host": "h", "api_token": "t", "command": "get_arrays", "parameters": "limit=1",
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "Error: parameters must be an object, got string", resultText(t, res))
	assert.Empty(t, factory.creds, "facade must not be built")
}

func TestPureFBUnknownCommand(t *testing.T) {
	d, _ := newTestDispatcher(nil)
	res, err := d.Call(context.Background(), nil, ToolPureFB, map[string]any{
		"host": "h", "api_token": "t", "command": "nonexistent_method",
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, `{"error": "Invalid response from nonexistent_method"}`, resultText(t, res))
}

func TestPureFBParamErrorIsErrorResult(t *testing.T) {
	paramErr := &flashblade.ParamError{Command: "get_arrays", Err: fmt.Errorf(`json: unknown field "bogus"`)}
	d, _ := newTestDispatcher(map[string]Result{"get_arrays": {Err: paramErr}})

	res, err := d.Call(context.Background(), nil, ToolPureFB, map[string]any{
		"host": "h", "api_token": "t", "command": "get_arrays", "parameters": map[string]any{"bogus": 1},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, `Error: invalid parameters for get_arrays: json: unknown field "bogus"`, resultText(t, res))
}

func TestPanicIsErrorResult(t *testing.T) {
	d, factory := newTestDispatcher(nil)
	factory.invoker.panics = true

	res, err := d.Call(context.Background(), nil, ToolArrayFull, map[string]any{"host": "h", "api_token": "t"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "Error: boom", resultText(t, res))
}

func TestArrayFullSequenceAndWindow(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 30, 15, 123456789, time.UTC)
	d, factory := newTestDispatcher(map[string]Result{
		"get_arrays":             {Response: itemized(map[string]any{"name": "fb01"})},
		"get_arrays_space":       {Response: itemized(map[string]any{"capacity": 100})},
		"get_arrays_performance": {Response: itemized(map[string]any{"reads_per_sec": 1.5})},
	})
	d.now = func() time.Time { return now }

	res, err := d.Call(context.Background(), nil, ToolArrayFull, map[string]any{"host": "h", "api_token": "t"})
	require.NoError(t, err)
	assert.Equal(t,
		`Arrays information: [{"name": "fb01"}], space: [{"capacity": 100}], and performance: [{"reads_per_sec": 1.5}]`,
		resultText(t, res))

	calls := factory.invoker.calls
	require.Len(t, calls, 3)
	assert.Equal(t, "get_arrays", calls[0].Command)
	assert.Equal(t, "get_arrays_space", calls[1].Command)
	assert.Equal(t, "get_arrays_performance", calls[2].Command)

	start := calls[2].Params["start_time"].(int64)
	end := calls[2].Params["end_time"].(int64)
	assert.Equal(t, now.UnixMilli(), end)
	assert.Equal(t, int64(7*24*3600*1000), end-start)
}

func TestArrayFullAllFailing(t *testing.T) {
	d, _ := newTestDispatcher(map[string]Result{
		"get_arrays":             {Err: fmt.Errorf("login failed")},
		"get_arrays_space":       {Response: &flashblade.ErrorResponse{StatusCode: 500}},
		"get_arrays_performance": {Response: itemized()},
	})

	res, err := d.Call(context.Background(), nil, ToolArrayFull, map[string]any{"host": "h", "api_token": "t"})
	require.NoError(t, err)
	assert.Equal(t,
		`Arrays information: {"error": "Invalid response from get_arrays"}, `+
			`space: {"error": "Invalid response from get_arrays_space"}, `+
			`and performance: {"error": "No data available for get_arrays_performance"}`,
		resultText(t, res))
}

func TestPerformanceWindowBounds(t *testing.T) {
	for _, now := range []time.Time{
		time.Unix(0, 0),
		time.Date(2024, 3, 10, 2, 30, 0, 0, time.FixedZone("EST", -5*3600)),
		time.Now(),
	} {
		start, end := performanceWindowBounds(now)
		assert.Equal(t, int64(604800000), end-start, now.String())
		assert.Equal(t, now.UnixMilli(), end)
	}
}

func TestHandleDecodesRawArguments(t *testing.T) {
	d, factory := newTestDispatcher(map[string]Result{"get_arrays": {Response: itemized(map[string]any{"name": "fb01"})}})

	req := &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{
		Name:      ToolPureFB,
		Arguments: json.RawMessage(`{"host":"h","api_token":"t","command":"get_arrays","parameters":{"limit":1700000000000}}`),
	}}
	res, err := d.Handle(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resultText(t, res), "["))
	require.Len(t, factory.invoker.calls, 1)
	assert.Equal(t, json.Number("1700000000000"), factory.invoker.calls[0].Params["limit"])

	_, err = d.Handle(context.Background(), &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{Name: ToolPureFB}})
	require.ErrorIs(t, err, ErrMissingArguments)

	_, err = d.Handle(context.Background(), &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{
		Name: ToolPureFB, Arguments: json.RawMessage(`[1,2]`),
	}})
	require.Error(t, err)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", maskToken(""))
	assert.Equal(t, "****", maskToken("T"))
	assert.Equal(t, "T-12****", maskToken("T-1234567-abcdef"))
}
