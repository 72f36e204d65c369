package server

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	ToolPureFB    = "pure-fb"
	ToolArrayFull = "get-array-full"
)

// Credentials address one array for the duration of one tool call.
type Credentials struct {
	Host     string
	APIToken string
}

func credentialProperties() map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"host":      {Type: "string", Description: "IP address of array management endpoint"},
		"api_token": {Type: "string", Description: "API token for array management user"},
	}
}

// Tools returns the static tool registry. Listing it performs no I/O.
func Tools() []*mcp.Tool {
	pureProps := credentialProperties()
	pureProps["command"] = &jsonschema.Schema{Type: "string", Description: "SDK call to run against the array"}
	pureProps["parameters"] = &jsonschema.Schema{
		Type:                 "object",
		Description:          "Optional parameters to pass to the SDK call",
		AdditionalProperties: &jsonschema.Schema{},
	}

	return []*mcp.Tool{
		{
			Name:        ToolPureFB,
			Description: "Run a command against a given FlashBlade",
			InputSchema: &jsonschema.Schema{
				Type:       "object",
				Properties: pureProps,
				Required:   []string{"host", "api_token", "command"},
			},
		},
		{
			Name:        ToolArrayFull,
			Description: "Get array full information, space and 7 days performance",
			InputSchema: &jsonschema.Schema{
				Type:       "object",
				Properties: credentialProperties(),
				Required:   []string{"host", "api_token"},
			},
		},
	}
}
