package server

import "errors"

// Request-shape errors. They fail the tool call itself.
var (
	ErrUnknownTool        = errors.New("unknown tool")
	ErrMissingArguments   = errors.New("missing arguments")
	ErrMissingCredentials = errors.New("missing host or api_token")
	ErrMissingCommand     = errors.New("missing command")
)

// ErrInvalidParameters is reported in an error result when pure-fb
// parameters are not an object.
var ErrInvalidParameters = errors.New("parameters must be an object")

// ErrUnknownCommand is recorded in a Result when the command is not on the
// allow-list.
var ErrUnknownCommand = errors.New("unknown command")
