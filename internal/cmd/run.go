package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/thirteen37/crudcfg/internal/crud"
	"github.com/thirteen37/crudcfg/internal/format"
	"github.com/thirteen37/crudcfg/internal/format/ini"
	"github.com/thirteen37/crudcfg/internal/format/json"
	"github.com/thirteen37/crudcfg/internal/format/plaintext"
	"github.com/thirteen37/crudcfg/internal/format/toml"
	"github.com/thirteen37/crudcfg/internal/path"
	"github.com/thirteen37/crudcfg/internal/rawfmt"
	"github.com/thirteen37/crudcfg/internal/tree"
)

// registry holds the supported formats. TOML is first so it doubles as the
// fallback when nothing else is selected.
var registry = format.NewRegistry(toml.New(), json.New(), ini.New(), plaintext.New())

// request is one CRUD invocation: the operation, the input selector ("-"
// for standard input), the path to the target container, and for mutating
// operations the final key plus, for create/update, the value literal.
type request struct {
	op       crud.Kind
	file     string
	segments []string
	key      string
	value    string
}

// run drives the whole pipeline: read, parse, resolve, execute, emit. Any
// failure surfaces before output is produced or the input file reopened, so
// the input is never left truncated or half-updated.
func run(cmd *cobra.Command, req request) error {
	if req.file == "-" && flagInPlace {
		return errors.New("cannot edit standard input in place")
	}

	data, err := readInput(cmd, req.file)
	if err != nil {
		return err
	}

	h, err := pickHandler(req.file)
	if err != nil {
		return err
	}
	reporter.Debugf("parsing %s as %s", inputName(req.file), h.Name())

	doc, err := h.Parse(data)
	if err != nil {
		return err
	}

	p, err := requestPath(req)
	if err != nil {
		return err
	}

	res, err := crud.Resolve(doc.Root(), p, req.op == crud.OpCreate, reporter)
	if err != nil {
		return err
	}

	op := crud.Op{Kind: req.op, Key: req.key}
	if req.op == crud.OpCreate || req.op == crud.OpUpdate {
		op.Value, err = h.ParseValue(req.value)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", req.value, err)
		}
	}

	result, err := crud.Execute(doc.Root(), res, op)
	if err != nil {
		return err
	}

	if req.op == crud.OpRead {
		return emitNode(cmd, doc, result)
	}
	return emitDocument(cmd, req.file, doc)
}

// requestPath builds the target path from the positional segments or, when
// --path is given, from its JSON-array form. The two are mutually exclusive.
func requestPath(req request) (path.Path, error) {
	if flagPath == "" {
		return path.NewArrayPath(req.segments), nil
	}
	if len(req.segments) > 0 {
		return nil, errors.New("cannot combine --path with positional path segments")
	}
	return path.ParseArrayPath(flagPath)
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("cannot read standard input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// pickHandler selects a format by the --format flag, then by file
// extension, then falls back to TOML (which also covers standard input).
func pickHandler(file string) (format.Handler, error) {
	if flagFormat != "" && flagFormat != "auto" {
		return registry.ByName(flagFormat)
	}
	if file != "-" {
		if h := registry.ByPath(file); h != nil {
			return h, nil
		}
	}
	return registry.ByName("toml")
}

func inputName(file string) string {
	if file == "-" {
		return "standard input"
	}
	return file
}

// emitNode prints a read result to the output stream. The rendered bytes go
// out verbatim: padding them would break the root read of a document that
// has no trailing newline.
func emitNode(cmd *cobra.Command, doc format.Document, n tree.Node) error {
	out := cmd.OutOrStdout()
	if flagRaw {
		_, err := fmt.Fprintln(out, rawfmt.Format(n))
		return err
	}
	rendered, err := doc.Render(n)
	if err != nil {
		return err
	}
	_, err = out.Write(rendered)
	return err
}

// emitDocument writes the mutated document: back over the input file when
// in-place mode is on, to the output stream otherwise. Serialization happens
// first either way, so an unserializable result never truncates the file.
func emitDocument(cmd *cobra.Command, file string, doc format.Document) error {
	var out []byte
	if flagRaw {
		out = []byte(rawfmt.Format(doc.Root()) + "\n")
	} else {
		var err error
		out, err = doc.Serialize()
		if err != nil {
			return err
		}
	}

	if !flagInPlace {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(file); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(file, out, mode)
}
