// Package cmd provides the CLI commands for crudcfg.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/thirteen37/crudcfg/internal/diag"
)

var (
	flagInPlace bool
	flagRaw     bool
	flagVerbose bool
	flagFormat  string
	flagPath    string
)

var reporter *diag.Reporter

var rootCmd = &cobra.Command{
	Use:   "crudcfg",
	Short: "Perform CRUD operations on structured configuration files",
	Long: `crudcfg reads a configuration document (TOML, JSON, INI or plain text),
applies a single create, read, update or delete operation at a path inside
it, and writes the result back out with the original formatting intact.

Paths are given as positional segments: table keys by name, array elements
by zero-based index. Pass - as the file to read from standard input.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		reporter = diag.NewReporter(cmd.ErrOrStderr(), flagVerbose)
	},
}

// Execute runs the root command, reporting any failure on stderr and
// mapping it to a non-zero exit status.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if reporter == nil {
			reporter = diag.NewReporter(os.Stderr, false)
		}
		reporter.Errorf("%v", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagInPlace, "in-place", "i", false, "write the result back to the input file")
	pf.BoolVarP(&flagRaw, "raw", "r", false, "flatten output for shell consumption instead of re-serializing")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "report path resolution steps on stderr")
	pf.StringVarP(&flagFormat, "format", "f", "auto", "input format (auto, toml, json, ini, plaintext)")
	pf.StringVarP(&flagPath, "path", "p", "", "target path as a JSON array, e.g. '[\"project\", \"authors\", \"0\"]'")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
}
