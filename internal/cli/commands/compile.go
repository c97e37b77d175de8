package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/triptjs/internal/cli/config"
	"github.com/leapstack-labs/triptjs/internal/cli/output"
	"github.com/leapstack-labs/triptjs/pkg/driver"
	"github.com/leapstack-labs/triptjs/pkg/tript"
	"github.com/spf13/cobra"
)

// stdinName is the file argument that reads from standard input.
const stdinName = "-"

// CompileOptions holds options for the compile command.
type CompileOptions struct {
	Watch bool
}

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	opts := &CompileOptions{}
	cmd := &cobra.Command{
		Use:   "compile [file...]",
		Short: "Compile tript ASTs to JavaScript",
		Long: `Compile one or more tript ASTs to JavaScript.

Each file holds a single "_type"-tagged node tree in JSON or YAML. Files are
compiled concurrently. With no arguments, or with "-", the tree is read from
standard input.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Compile a file
  triptjs compile expr.json

  # Target ES5 and suffix reserved names instead of prefixing them
  triptjs compile --dialect es5 --reconcile suffix expr.json

  # Emit the Shift-style JSON AST
  triptjs compile --emit ast expr.yaml

  # Minify and check the generated code, recompiling on change
  triptjs compile --minify --verify --watch exprs/*.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args, opts)
		},
	}

	cmd.Flags().String("emit", "", "What to print: js or ast")
	cmd.Flags().Bool("minify", false, "Minify the generated code with esbuild")
	cmd.Flags().Bool("verify", false, "Parse the generated code with esbuild and fail on syntax errors")
	cmd.Flags().Bool("evaluate", false, "Fold closed expressions to a literal before compiling")
	cmd.Flags().Int("concurrency", 0, "Maximum files compiled at once (default: GOMAXPROCS)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Recompile files when they change")

	_ = cmd.RegisterFlagCompletionFunc("emit", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.EmitJS, config.EmitAST}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// fileResult is the JSON form of one compiled file.
type fileResult struct {
	File        string             `json:"file"`
	Code        string             `json:"code,omitempty"`
	AST         any                `json:"ast,omitempty"`
	Diagnostics driver.Diagnostics `json:"diagnostics,omitempty"`
	Error       string             `json:"error,omitempty"`
}

func runCompile(cmd *cobra.Command, args []string, opts *CompileOptions) error {
	cmdCtx := NewCommandContext(cmd)

	if len(args) == 0 {
		args = []string{stdinName}
	}
	if opts.Watch {
		for _, a := range args {
			if a == stdinName {
				return fmt.Errorf("--watch needs file arguments, not standard input")
			}
		}
	}

	d, err := cmdCtx.Driver()
	if err != nil {
		return err
	}

	c := &compiler{
		cmdCtx: cmdCtx,
		driver: d,
		stdin:  cmd.InOrStdin(),
	}

	failed := c.compileFiles(cmd.Context(), args)
	if opts.Watch {
		return c.watch(cmd.Context(), args)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed to compile", failed, len(args))
	}
	return nil
}

type compiler struct {
	cmdCtx *CommandContext
	driver *driver.Driver
	stdin  io.Reader
}

// compileFiles compiles and renders files, returning how many failed.
func (c *compiler) compileFiles(ctx context.Context, files []string) int {
	results := make([]fileResult, len(files))
	inputs := make([]driver.Input, 0, len(files))
	index := make([]int, 0, len(files))

	for i, name := range files {
		results[i].File = name
		node, err := c.load(name)
		if err != nil {
			results[i].Error = err.Error()
			continue
		}
		inputs = append(inputs, driver.Input{Name: name, Node: node})
		index = append(index, i)
	}

	batch, err := c.driver.CompileAll(ctx, inputs)
	if err != nil {
		c.cmdCtx.Logger.Debug("batch interrupted", "error", err)
	}
	for j, res := range batch {
		r := &results[index[j]]
		switch {
		case res.Err != nil:
			r.Error = res.Err.Error()
		case len(res.Output.Diagnostics) > 0:
			r.Diagnostics = res.Output.Diagnostics
		case c.cmdCtx.Cfg.Emit == config.EmitAST:
			r.AST = res.Output.AST
		default:
			r.Code = res.Output.Code
		}
	}

	c.render(results)

	failed := 0
	for _, r := range results {
		if r.Error != "" || len(r.Diagnostics) > 0 {
			failed++
		}
	}
	return failed
}

func (c *compiler) load(name string) (tript.Node, error) {
	var (
		data []byte
		err  error
	)
	if name == stdinName {
		data, err = io.ReadAll(c.stdin)
	} else {
		data, err = os.ReadFile(name) //nolint:gosec // G304: reading user-named input files is the purpose of the command
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return decodeSource(name, data)
}

// decodeSource decodes by file extension, sniffing the content when the
// extension says nothing.
func decodeSource(name string, data []byte) (tript.Node, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return tript.DecodeYAML(data)
	case ".json":
		return tript.Decode(data)
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return tript.Decode(data)
	}
	return tript.DecodeYAML(data)
}

func (c *compiler) render(results []fileResult) {
	r := c.cmdCtx.Renderer

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(results); err != nil {
			r.Error(fmt.Sprintf("failed to encode results: %v", err))
		}
		return
	}

	lang := "js"
	if c.cmdCtx.Cfg.Emit == config.EmitAST {
		lang = "json"
	}
	multi := len(results) > 1

	for _, res := range results {
		if multi {
			r.Header(2, res.File)
		}
		switch {
		case res.Error != "":
			r.Error(prefixed(multi, res.File, res.Error))
		case len(res.Diagnostics) > 0:
			for _, d := range res.Diagnostics {
				r.Error(prefixed(multi, res.File, d.String()))
			}
		case res.AST != nil:
			data, err := json.MarshalIndent(res.AST, "", "  ")
			if err != nil {
				r.Error(prefixed(multi, res.File, err.Error()))
				continue
			}
			r.CodeBlock(lang, string(data))
		default:
			r.CodeBlock(lang, res.Code)
		}
		if multi {
			r.Println()
		}
	}
}

func prefixed(multi bool, file, msg string) string {
	if !multi {
		return msg
	}
	return file + ": " + msg
}
