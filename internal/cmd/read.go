package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thirteen37/crudcfg/internal/crud"
)

var readCmd = &cobra.Command{
	Use:   "read <file> [path...]",
	Short: "Print the value at a path",
	Long: `Print the node at path. With no path the whole document is printed,
which round-trips the input byte for byte. Use --raw for shell-friendly
output instead of document syntax.

Example:
  crudcfg read pyproject.toml project name`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, request{
			op:       crud.OpRead,
			file:     args[0],
			segments: args[1:],
		})
	},
}
