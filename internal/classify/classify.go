// Package classify derives a clean name, entity type, country and industry
// from a raw legal business name.
package classify

import (
	"slices"
	"sync"

	"github.com/sells-group/cleancorp/internal/cleaner"
	"github.com/sells-group/cleancorp/internal/terms"
)

// Unknown is the entity type reported when only industry evidence exists,
// and the industry key dropped when a concrete industry also matched.
const Unknown = "Unknown"

// Classifier produces BusinessName values that share one term index.
type Classifier struct {
	index *terms.Index
	fold  bool
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithFold enables NFKC and width folding before sanitizing.
func WithFold(fold bool) Option {
	return func(c *Classifier) { c.fold = fold }
}

// New returns a Classifier over idx.
func New(idx *terms.Index, opts ...Option) *Classifier {
	c := &Classifier{index: idx}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Index returns the term index the classifier matches against.
func (c *Classifier) Index() *terms.Index { return c.index }

// Classify wraps a raw name. Derived fields are computed on first use.
func (c *Classifier) Classify(raw string) *BusinessName {
	b := &BusinessName{original: raw}

	b.sanitized = sync.OnceValue(func() string {
		s := raw
		if c.fold {
			s = cleaner.Fold(s)
		}
		return cleaner.Sanitize(s)
	})
	b.clean = sync.OnceValue(func() string {
		return cleaner.Remove(b.Sanitized(), c.index.Suffixes)
	})
	b.industry = sync.OnceValue(func() []string {
		keys := cleaner.Match(b.Sanitized(), c.index.Industries)
		if len(keys) > 1 && slices.Contains(keys, Unknown) {
			keys = slices.DeleteFunc(keys, func(k string) bool { return k == Unknown })
		}
		return keys
	})
	b.entityType = sync.OnceValue(func() []string {
		keys := cleaner.Match(b.Sanitized(), c.index.Types)
		if keys == nil && b.Industry() != nil {
			return []string{Unknown}
		}
		return keys
	})
	b.country = sync.OnceValue(func() []string {
		return cleaner.Match(b.Sanitized(), c.index.Countries)
	})
	b.explain = sync.OnceValue(func() []terms.Entry {
		return cleaner.Explain(b.Sanitized(), c.index.All)
	})

	return b
}

// Record is the serializable view of a classified name. Absent sets are nil.
type Record struct {
	IsCompany    bool     `json:"is_company"`
	OriginalName string   `json:"original_name"`
	CleanName    string   `json:"clean_name"`
	EntityType   []string `json:"entity_type"`
	Industry     []string `json:"industry"`
	Country      []string `json:"country"`
}

// BusinessName is an immutable raw name with lazily cached derived fields.
// It is safe for concurrent use.
type BusinessName struct {
	original string

	sanitized  func() string
	clean      func() string
	entityType func() []string
	country    func() []string
	industry   func() []string
	explain    func() []terms.Entry
}

// Original returns the raw input.
func (b *BusinessName) Original() string { return b.original }

// Sanitized returns the normalized matching form of the name.
func (b *BusinessName) Sanitized() string { return b.sanitized() }

// CleanName returns the sanitized name with type and country terms removed.
func (b *BusinessName) CleanName() string { return b.clean() }

// EntityType returns the matched type keys. When no type term matched but an
// industry did, it returns [Unknown]. Returns nil otherwise.
func (b *BusinessName) EntityType() []string { return slices.Clone(b.entityType()) }

// Country returns the matched country keys, or nil.
func (b *BusinessName) Country() []string { return slices.Clone(b.country()) }

// Industry returns the matched industry keys, or nil. Unknown is dropped
// when any other industry matched.
func (b *BusinessName) Industry() []string { return slices.Clone(b.industry()) }

// IsCompany reports whether an entity type, including Unknown, was derived.
func (b *BusinessName) IsCompany() bool { return len(b.entityType()) > 0 }

// Explain lists every type, country and industry entry that matched.
func (b *BusinessName) Explain() []terms.Entry { return slices.Clone(b.explain()) }

// Record returns all derived fields alongside the original name.
func (b *BusinessName) Record() Record {
	return Record{
		IsCompany:    b.IsCompany(),
		OriginalName: b.original,
		CleanName:    b.CleanName(),
		EntityType:   b.EntityType(),
		Industry:     b.Industry(),
		Country:      b.Country(),
	}
}
