package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thirteen37/crudcfg/internal/crud"
)

var updateCmd = &cobra.Command{
	Use:   "update <file> [path...] <key> <value>",
	Short: "Overwrite an existing entry in a table or array",
	Long: `Replace the value under key in the container at path. The key (or
index) must already exist; use create to add new entries.

Example:
  crudcfg update -i pyproject.toml project name '"crudini"'`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, request{
			op:       crud.OpUpdate,
			file:     args[0],
			segments: args[1 : len(args)-2],
			key:      args[len(args)-2],
			value:    args[len(args)-1],
		})
	},
}
