package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thirteen37/crudcfg/internal/crud"
)

var createCmd = &cobra.Command{
	Use:   "create <file> [path...] <key> <value>",
	Short: "Insert a new entry into a table or array",
	Long: `Insert value under key in the container at path. The key must not
already exist in a table; for an array, the key is a zero-based index that
either overwrites an existing element or, when equal to the array's length,
appends. Missing tables along the path are created.

Example:
  crudcfg create -i pyproject.toml project dob 2023-05-23`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, request{
			op:       crud.OpCreate,
			file:     args[0],
			segments: args[1 : len(args)-2],
			key:      args[len(args)-2],
			value:    args[len(args)-1],
		})
	},
}
