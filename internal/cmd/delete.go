package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thirteen37/crudcfg/internal/crud"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <file> [path...] <key>",
	Short: "Remove an entry from a table or array",
	Long: `Remove the entry under key from the container at path. Removing an
array element shifts the later elements down.

Example:
  crudcfg delete -i pyproject.toml project name`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, request{
			op:       crud.OpDelete,
			file:     args[0],
			segments: args[1 : len(args)-1],
			key:      args[len(args)-1],
		})
	},
}
