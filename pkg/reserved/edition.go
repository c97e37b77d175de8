package reserved

import (
	"sort"

	"github.com/hashicorp/go-set/v2"
)

// Edition is the reserved-word table of one ECMAScript dialect.
type Edition struct {
	Dialect Dialect
	Name    string
	Aliases []string

	words  *set.Set[string] // reserved in every mode
	strict *set.Set[string] // reserved only in strict mode code
}

// IsReserved reports whether word is reserved in this edition. Membership is
// case-sensitive, as ECMAScript identifiers are.
func (e *Edition) IsReserved(word string, strict bool) bool {
	if e.words.Contains(word) {
		return true
	}
	return strict && e.strict.Contains(word)
}

// Words returns the reserved words of the edition in sorted order. When
// strict is true the strict-mode-only words are included.
func (e *Edition) Words(strict bool) []string {
	out := e.words.Slice()
	if strict {
		out = append(out, e.strict.Slice()...)
	}
	sort.Strings(out)
	return out
}

// StrictOnly returns the words reserved only in strict mode, sorted.
func (e *Edition) StrictOnly() []string {
	out := e.strict.Slice()
	sort.Strings(out)
	return out
}

// Builder constructs an Edition.
type Builder struct {
	edition *Edition
}

// NewEdition starts building the edition for dialect d.
func NewEdition(d Dialect, name string) *Builder {
	return &Builder{
		edition: &Edition{
			Dialect: d,
			Name:    name,
			words:   set.New[string](64),
			strict:  set.New[string](16),
		},
	}
}

// Extends copies every word of base into the edition being built.
func (b *Builder) Extends(base *Edition) *Builder {
	b.edition.words.InsertSlice(base.words.Slice())
	b.edition.strict.InsertSlice(base.strict.Slice())
	return b
}

// Keywords registers words reserved in every mode.
func (b *Builder) Keywords(words ...string) *Builder {
	b.edition.words.InsertSlice(words)
	return b
}

// StrictKeywords registers words reserved only in strict mode code.
func (b *Builder) StrictKeywords(words ...string) *Builder {
	b.edition.strict.InsertSlice(words)
	return b
}

// Drop removes words that a later edition no longer reserves.
func (b *Builder) Drop(words ...string) *Builder {
	for _, w := range words {
		b.edition.words.Remove(w)
		b.edition.strict.Remove(w)
	}
	return b
}

// Aliases registers additional lookup names for the edition.
func (b *Builder) Aliases(names ...string) *Builder {
	b.edition.Aliases = append(b.edition.Aliases, names...)
	return b
}

// Build returns the finished edition. A word present in both sets is kept
// only in the always-reserved set.
func (b *Builder) Build() *Edition {
	for _, w := range b.edition.words.Slice() {
		b.edition.strict.Remove(w)
	}
	return b.edition
}
