package batch

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/cleancorp/internal/classify"
	"github.com/sells-group/cleancorp/internal/terms"
)

// Result is the classification of one input row.
type Result struct {
	Line int `json:"line"`
	classify.Record
	MatchedTerms []terms.Entry `json:"matched_terms,omitempty"`
}

// Stats summarizes a run.
type Stats struct {
	Total     int `json:"total"`
	Unique    int `json:"unique"`
	Companies int `json:"companies"`
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	Concurrency int
	CacheTTL    time.Duration
	Explain     bool
}

// Runner classifies rows concurrently. Identical raw names are classified
// once per run and served from a cache afterwards.
type Runner struct {
	classifier *classify.Classifier
	opts       RunnerOptions
}

type cached struct {
	record  classify.Record
	matched []terms.Entry
}

// NewRunner returns a Runner backed by c.
func NewRunner(c *classify.Classifier, opts RunnerOptions) *Runner {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = gocache.NoExpiration
	}
	return &Runner{classifier: c, opts: opts}
}

// Run drains rows and errs, then classifies every row. Results keep the
// input order.
func (r *Runner) Run(ctx context.Context, rows <-chan Row, errs <-chan error) ([]Result, Stats, error) {
	var input []Row
	for row := range rows {
		input = append(input, row)
	}
	for err := range errs {
		if err != nil {
			return nil, Stats{}, eris.Wrap(err, "batch: read input")
		}
	}

	cache := gocache.New(r.opts.CacheTTL, 2*r.opts.CacheTTL)
	results := make([]Result, len(input))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)

	for i, row := range input {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return eris.Wrap(err, "batch: context cancelled")
			}
			c := r.lookup(cache, row.Name)
			results[i] = Result{Line: row.Line, Record: c.record, MatchedTerms: c.matched}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{Total: len(results)}
	seen := make(map[string]struct{}, len(input))
	for i, res := range results {
		if _, ok := seen[input[i].Name]; !ok {
			seen[input[i].Name] = struct{}{}
			stats.Unique++
		}
		if res.IsCompany {
			stats.Companies++
		}
	}

	zap.L().Info("batch: run complete",
		zap.Int("total", stats.Total),
		zap.Int("unique", stats.Unique),
		zap.Int("companies", stats.Companies),
	)

	return results, stats, nil
}

func (r *Runner) lookup(cache *gocache.Cache, raw string) cached {
	if v, ok := cache.Get(raw); ok {
		return v.(cached)
	}

	b := r.classifier.Classify(raw)
	c := cached{record: b.Record()}
	if r.opts.Explain {
		c.matched = b.Explain()
	}
	// Concurrent misses for one name compute identical values.
	cache.SetDefault(raw, c)
	return c
}
