package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"fb-mcp/internal/flashblade"
	"fb-mcp/internal/server"
)

type commandEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool registry and allowed commands with their REST paths as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var commands []commandEntry
			for _, name := range flashblade.Commands() {
				c, _ := flashblade.LookupCommand(name)
				commands = append(commands, commandEntry{Name: c.Name(), Path: c.Path()})
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"tools":    server.Tools(),
				"commands": commands,
			})
		},
	}
}
