// Package terms builds the ranked term lists used to classify business names.
package terms

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrInvalidDictionary is wrapped by every dictionary validation failure.
var ErrInvalidDictionary = eris.New("invalid term dictionary")

// Entry pairs a category key with one literal term.
type Entry struct {
	Key  string `json:"key" yaml:"key"`
	Term string `json:"term" yaml:"term"`
}

// Composite reports whether the term spans more than one word.
func (e Entry) Composite() bool {
	return strings.Contains(e.Term, " ")
}

// List is a sequence of entries ordered by descending term length.
type List []Entry

// Category is one dictionary key and its literal terms, in source order.
type Category struct {
	Key   string
	Terms []string
}

// Dictionary is an ordered set of categories.
type Dictionary []Category

// Dictionaries holds the three raw term dictionaries.
type Dictionaries struct {
	Types      Dictionary
	Countries  Dictionary
	Industries Dictionary
}

// Index holds the ranked lists derived from Dictionaries. It is never
// mutated after Build and is safe for concurrent readers.
type Index struct {
	Types      List
	Countries  List
	Industries List
	// Suffixes is Types ++ Countries re-ranked by length.
	Suffixes List
	// All is Suffixes ++ Industries; the industry order is kept as ranked.
	All List
}

// Build flattens and ranks the dictionaries.
func Build(d Dictionaries) (*Index, error) {
	types, err := flatten("types", d.Types)
	if err != nil {
		return nil, err
	}
	countries, err := flatten("countries", d.Countries)
	if err != nil {
		return nil, err
	}
	industries, err := flatten("industries", d.Industries)
	if err != nil {
		return nil, err
	}

	idx := &Index{
		Types:      rank(types),
		Countries:  rank(countries),
		Industries: rank(industries),
	}
	idx.Suffixes = rank(slices.Concat(idx.Types, idx.Countries))
	idx.All = slices.Concat(idx.Suffixes, idx.Industries)

	zap.L().Debug("terms: index built",
		zap.Int("types", len(idx.Types)),
		zap.Int("countries", len(idx.Countries)),
		zap.Int("industries", len(idx.Industries)),
		zap.Int("suffixes", len(idx.Suffixes)),
	)

	return idx, nil
}

// List returns the named list: types, countries, industries, suffixes or all.
func (idx *Index) List(name string) (List, bool) {
	switch name {
	case "types":
		return idx.Types, true
	case "countries":
		return idx.Countries, true
	case "industries":
		return idx.Industries, true
	case "suffixes":
		return idx.Suffixes, true
	case "all":
		return idx.All, true
	}
	return nil, false
}

func flatten(name string, d Dictionary) (List, error) {
	seen := make(map[string]struct{}, len(d))
	var out List
	for i, c := range d {
		if strings.TrimSpace(c.Key) == "" {
			return nil, eris.Wrapf(ErrInvalidDictionary, "terms: %s category %d has an empty key", name, i)
		}
		if _, dup := seen[c.Key]; dup {
			return nil, eris.Wrapf(ErrInvalidDictionary, "terms: %s category %q is defined twice", name, c.Key)
		}
		seen[c.Key] = struct{}{}

		for _, term := range c.Terms {
			out = append(out, Entry{Key: c.Key, Term: term})
		}
	}
	return out, nil
}

// rank returns a copy of l sorted by descending term length in runes.
// Ties keep their input order.
func rank(l List) List {
	out := slices.Clone(l)
	slices.SortStableFunc(out, func(a, b Entry) int {
		return utf8.RuneCountInString(b.Term) - utf8.RuneCountInString(a.Term)
	})
	return out
}
