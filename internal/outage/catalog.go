package outage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/ceb-outages/internal/logger"
	"github.com/pfrederiksen/ceb-outages/internal/observability"
)

var (
	// ErrDecode is returned when the input is not a JSON object of strings.
	ErrDecode = errors.New("decoding region data")
	// ErrNotFound is returned by Lookup for an unknown region.
	ErrNotFound = errors.New("region not found")
)

// RegionError reports a region whose table could not be parsed.
type RegionError struct {
	Region string
	Err    error
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("parsing region %q: %v", e.Region, e.Err)
}

func (e *RegionError) Unwrap() error {
	return e.Err
}

// Policy decides what Build does when a region fails to parse.
type Policy int

const (
	// Strict aborts the build on any region failure.
	Strict Policy = iota
	// Lenient drops failing regions and keeps the rest.
	Lenient
)

// ParsePolicy converts "strict" or "lenient" into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	default:
		return 0, fmt.Errorf("unknown policy: %q (must be 'strict' or 'lenient')", s)
	}
}

func (p Policy) String() string {
	if p == Lenient {
		return "lenient"
	}
	return "strict"
}

type buildOptions struct {
	policy  Policy
	workers int
	metrics *observability.Metrics
}

// Option configures Build.
type Option func(*buildOptions)

// WithPolicy sets the failure policy. The default is Strict.
func WithPolicy(p Policy) Option {
	return func(o *buildOptions) { o.policy = p }
}

// WithWorkers sets how many regions are parsed concurrently. Values below 1
// mean one.
func WithWorkers(n int) Option {
	return func(o *buildOptions) { o.workers = n }
}

// WithMetrics records parse outcomes on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *buildOptions) { o.metrics = m }
}

// Catalog maps region names to their parsed outages. It is read-only once
// built and safe for concurrent use.
type Catalog struct {
	regions  map[string]Region
	failures []*RegionError
}

// Build decodes a JSON object of region name to HTML fragment and parses
// every region.
//
// Under Strict, any failing region aborts the build and no catalog is
// returned. The error is a *RegionError for the first failing region in name
// order, so the result does not depend on scheduling.
func Build(jsonText string, opts ...Option) (*Catalog, error) {
	o := buildOptions{policy: Strict, workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}

	var fragments map[string]string
	if err := json.Unmarshal([]byte(jsonText), &fragments); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if fragments == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrDecode)
	}

	names := make([]string, 0, len(fragments))
	for name := range fragments {
		names = append(names, name)
	}
	sort.Strings(names)

	type result struct {
		region Region
		err    error
	}
	results := make([]result, len(names))

	var g errgroup.Group
	g.SetLimit(o.workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			region, err := parseRegion(name, fragments[name], o.metrics)
			results[i] = result{region: region, err: err}
			return nil
		})
	}
	_ = g.Wait()

	c := &Catalog{regions: make(map[string]Region, len(names))}
	for i, name := range names {
		res := results[i]
		if res.err != nil {
			o.metrics.RegionFailed()
			c.failures = append(c.failures, &RegionError{Region: name, Err: res.err})
			continue
		}
		o.metrics.RegionParsed(res.region.Len())
		c.regions[name] = res.region
	}

	if len(c.failures) > 0 {
		if o.policy == Strict {
			return nil, c.failures[0]
		}
		for _, f := range c.failures {
			logger.Error("dropping region", logger.Fields{"region": f.Region}, f.Err)
		}
	}

	return c, nil
}

// Lookup returns a copy of the named region. Names are matched exactly.
func (c *Catalog) Lookup(name string) (Region, error) {
	region, ok := c.regions[name]
	if !ok {
		return Region{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return region.clone(), nil
}

// Len returns the number of parsed regions.
func (c *Catalog) Len() int {
	return len(c.regions)
}

// Names returns the parsed region names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.regions))
	for name := range c.regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Failures lists the regions dropped by a Lenient build, in name order.
func (c *Catalog) Failures() []*RegionError {
	return append([]*RegionError(nil), c.failures...)
}
