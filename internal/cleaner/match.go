package cleaner

import (
	"slices"
	"strings"

	"github.com/sells-group/cleancorp/internal/terms"
)

// matches applies the term rule to a sanitized name. Composite terms match
// when their first occurrence starts after index 0; a composite term that
// opens the name is never matched, even if it occurs again later. Single
// word terms must equal a whole token.
func matches(name string, tokens []string, e terms.Entry) bool {
	if e.Composite() {
		return strings.Index(name, e.Term) > 0
	}
	return slices.Contains(tokens, e.Term)
}

// Match returns the distinct category keys of every entry in list that
// matches the sanitized name, sorted in descending key order. It returns
// nil when nothing matched.
func Match(name string, list terms.List) []string {
	tokens := strings.Fields(name)
	seen := make(map[string]struct{})
	var keys []string
	for _, e := range list {
		if _, ok := seen[e.Key]; ok {
			continue
		}
		if matches(name, tokens, e) {
			seen[e.Key] = struct{}{}
			keys = append(keys, e.Key)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	slices.Sort(keys)
	slices.Reverse(keys)
	return keys
}

// Explain returns every entry in list that matches the sanitized name, in
// ranked order.
func Explain(name string, list terms.List) []terms.Entry {
	tokens := strings.Fields(name)
	var out []terms.Entry
	for _, e := range list {
		if matches(name, tokens, e) {
			out = append(out, e)
		}
	}
	return out
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Remove strips every entry of list from the sanitized name in ranked order
// and collapses the remaining whitespace. Entries are tested against the
// name as it stands after the longer entries were removed.
func Remove(name string, list terms.List) string {
	name = collapse(name)
	for _, e := range list {
		tokens := strings.Fields(name)
		if !matches(name, tokens, e) {
			continue
		}
		if e.Composite() {
			name = collapse(strings.ReplaceAll(name, e.Term, ""))
			continue
		}
		name = strings.Join(slices.DeleteFunc(tokens, func(tok string) bool {
			return tok == e.Term
		}), " ")
	}
	return name
}
