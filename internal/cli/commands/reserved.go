package commands

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-set/v2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/leapstack-labs/triptjs/internal/cli/output"
	"github.com/leapstack-labs/triptjs/pkg/identifier"
	"github.com/leapstack-labs/triptjs/pkg/reserved"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status of a word in one edition.
const (
	statusReserved = "reserved"
	statusStrict   = "strict"
)

// wordInfo is the JSON form of one row of the reserved command.
type wordInfo struct {
	Word      string            `json:"word"`
	Editions  map[string]string `json:"editions"`
	Sanitized string            `json:"sanitized,omitempty"`
}

// NewReservedCommand creates the reserved command.
func NewReservedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reserved [word...]",
		Short: "Show reserved words per ECMAScript dialect",
		Long: `Show which words are reserved in each ECMAScript dialect.

Without arguments every reserved word of every dialect is listed. With
arguments only those words are shown, together with the name each one is
rewritten to under the current configuration.

A word marked "strict" is reserved only in strict mode code.`,
		Example: `  # List every reserved word
  triptjs reserved

  # Check some names against ES5 with the suffix strategy
  triptjs reserved --dialect es5 --reconcile suffix await class public`,
		RunE: runReserved,
	}
	return cmd
}

func runReserved(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	editions := reserved.List()

	words := args
	var ids *identifier.Options
	if len(words) == 0 {
		words = allWords(editions)
	} else {
		opts, err := cmdCtx.Cfg.IdentifierOptions(cmdCtx.Logger)
		if err != nil {
			return err
		}
		ids = &opts
	}

	rows := make([]wordInfo, 0, len(words))
	for _, w := range words {
		info := wordInfo{Word: w, Editions: make(map[string]string, len(editions))}
		for _, e := range editions {
			switch {
			case e.IsReserved(w, false):
				info.Editions[e.Name] = statusReserved
			case e.IsReserved(w, true):
				info.Editions[e.Name] = statusStrict
			}
		}
		if ids != nil {
			info.Sanitized = identifier.Sanitize(w, *ids)
		}
		rows = append(rows, info)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rows)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	t.SetStyle(style)

	upper := cases.Upper(language.English)
	header := table.Row{"Word"}
	for _, e := range editions {
		header = append(header, upper.String(e.Name))
	}
	if ids != nil {
		header = append(header, fmt.Sprintf("Sanitized (%s)", upper.String(ids.Dialect.String())))
	}
	t.AppendHeader(header)

	for _, info := range rows {
		row := table.Row{info.Word}
		for _, e := range editions {
			row = append(row, info.Editions[e.Name])
		}
		if ids != nil {
			row = append(row, info.Sanitized)
		}
		t.AppendRow(row)
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	return nil
}

// allWords returns the union of every edition's reserved words, sorted.
func allWords(editions []*reserved.Edition) []string {
	all := set.New[string](64)
	for _, e := range editions {
		all.InsertSlice(e.Words(true))
	}
	out := all.Slice()
	sort.Strings(out)
	return out
}
