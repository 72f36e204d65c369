package flashblade

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
)

// Command is one allow-listed read operation against the array, identified
// by the name an agent passes as "command".
type Command interface {
	Name() string
	Path() string
	// Invoke decodes args into the command's parameter type and performs the
	// call. Unknown or ill-typed args yield a *ParamError before any request.
	Invoke(ctx context.Context, c *Client, args map[string]any) (Response, error)
}

// ParamError reports arguments that do not fit a command's parameters.
type ParamError struct {
	Command string
	Err     error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameters for %s: %v", e.Command, e.Err)
}

func (e *ParamError) Unwrap() error { return e.Err }

type querier interface {
	Values() url.Values
}

// endpoint binds a parameter type P and an item type T to a REST path.
type endpoint[P querier, T any] struct {
	name string
	path string
}

func (e endpoint[P, T]) Name() string { return e.name }
func (e endpoint[P, T]) Path() string { return e.path }

func (e endpoint[P, T]) Invoke(ctx context.Context, c *Client, args map[string]any) (Response, error) {
	var p P
	if err := decodeParams(args, &p); err != nil {
		return nil, &ParamError{Command: e.name, Err: err}
	}
	return get[T](ctx, c, e.path, p.Values())
}

func decodeParams(args map[string]any, dst any) error {
	if len(args) == 0 {
		return nil
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

var registry = newRegistry(
	endpoint[ListParams, Array]{name: "get_arrays", path: "arrays"},
	endpoint[SpaceParams, ArraySpace]{name: "get_arrays_space", path: "arrays/space"},
	endpoint[PerformanceParams, ArrayPerformance]{name: "get_arrays_performance", path: "arrays/performance"},
	endpoint[ListParams, Blade]{name: "get_blades", path: "blades"},
	endpoint[ListParams, Bucket]{name: "get_buckets", path: "buckets"},
	endpoint[ListParams, FileSystem]{name: "get_file_systems", path: "file-systems"},
	endpoint[ListParams, FileSystemSnapshot]{name: "get_file_system_snapshots", path: "file-system-snapshots"},
	endpoint[ListParams, ObjectStoreAccount]{name: "get_object_store_accounts", path: "object-store-accounts"},
	endpoint[ListParams, Alert]{name: "get_alerts", path: "alerts"},
	endpoint[ListParams, Hardware]{name: "get_hardware", path: "hardware"},
	endpoint[ListParams, NetworkInterface]{name: "get_network_interfaces", path: "network-interfaces"},
)

func newRegistry(cmds ...Command) map[string]Command {
	m := make(map[string]Command, len(cmds))
	for _, c := range cmds {
		m[c.Name()] = c
	}
	return m
}

// LookupCommand returns the allow-listed command with the given name.
func LookupCommand(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// Commands returns the allow-listed command names, sorted.
func Commands() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
