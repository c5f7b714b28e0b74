// Package assembly runs the one-shot pipeline that turns a raw configuration
// document into a frozen, fully wired component registry.
package assembly

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/boga881/drupalextension/src/binder"
	"github.com/boga881/drupalextension/src/config"
	"github.com/boga881/drupalextension/src/container"
	"github.com/boga881/drupalextension/src/driver"
)

// DefaultRules binds drivers, event subscribers and context readers to the
// components that consume them.
func DefaultRules() []binder.Rule {
	return []binder.Rule{
		{Tag: driver.TagDriver, Target: driver.ComponentDrupal, Operation: "registerDriver"},
		{Tag: driver.TagEventSubscriber, Target: driver.ComponentEventDispatcher, Operation: "addSubscriber"},
		{Tag: driver.TagContextReader, Target: driver.ComponentEnvReader, Operation: "registerContextReader"},
	}
}

// Result is a completed assembly run.
type Result struct {
	RunID    string
	Record   *config.Record
	Registry *container.Registry
	Drivers  []string
	Warnings []string
}

// Pipeline assembles registries. A Pipeline holds no per-run state and may
// be reused; every Assemble call gets its own registry.
type Pipeline struct {
	log        zerolog.Logger
	components []container.Definition
	rules      []binder.Rule
	resolver   *driver.Resolver
	observer   func(State)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Stage transitions are logged at debug level.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = log }
}

// WithComponents registers host components before resolution, typically
// external members of the bound tags.
func WithComponents(defs ...container.Definition) Option {
	return func(p *Pipeline) { p.components = append(p.components, defs...) }
}

// WithRules replaces the binding rules.
func WithRules(rules ...binder.Rule) Option {
	return func(p *Pipeline) { p.rules = rules }
}

// WithResolver replaces the driver resolver.
func WithResolver(r *driver.Resolver) Option {
	return func(p *Pipeline) { p.resolver = r }
}

// WithObserver is called each time the pipeline enters a state.
func WithObserver(fn func(State)) Option {
	return func(p *Pipeline) { p.observer = fn }
}

// New returns a pipeline with the default rules and the full driver catalog.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		log:   zerolog.Nop(),
		rules: DefaultRules(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.resolver == nil {
		p.resolver = driver.NewResolver()
	}
	return p
}

// Assemble runs the pipeline with opts over raw.
func Assemble(raw any, opts ...Option) (*Result, error) {
	return New(opts...).Assemble(raw)
}

// run is the state of one Assemble call.
type run struct {
	raw        any
	log        zerolog.Logger
	registry   *container.Registry
	record     *config.Record
	resolution *driver.Resolution
}

type stage struct {
	state State
	fn    func(*Pipeline, *run) error
}

var stages = []stage{
	{Loading, (*Pipeline).load},
	{Normalizing, (*Pipeline).normalize},
	{Resolving, (*Pipeline).resolve},
	{Binding, (*Pipeline).bind},
	{Frozen, (*Pipeline).freeze},
}

// Assemble runs every stage in order. The first failing stage aborts the
// run and its error is returned as is; no partial result is exposed.
func (p *Pipeline) Assemble(raw any) (*Result, error) {
	id := uuid.NewString()
	r := &run{raw: raw, log: p.log.With().Str("run", id).Logger()}

	for _, s := range stages {
		if p.observer != nil {
			p.observer(s.state)
		}
		r.log.Debug().Stringer("state", s.state).Msg("entering state")
		if err := s.fn(p, r); err != nil {
			r.log.Debug().Stringer("state", s.state).Err(err).Msg("assembly aborted")
			return nil, err
		}
	}

	r.log.Debug().
		Int("components", r.registry.Len()).
		Strs("drivers", r.resolution.Drivers).
		Msg("assembly complete")

	return &Result{
		RunID:    id,
		Record:   r.record,
		Registry: r.registry,
		Drivers:  r.resolution.Drivers,
		Warnings: r.resolution.Warnings,
	}, nil
}

func (p *Pipeline) load(r *run) error {
	r.registry = container.New()
	return r.registry.Merge(p.components)
}

func (p *Pipeline) normalize(r *run) error {
	rec, err := config.Normalize(r.raw)
	if err != nil {
		return err
	}
	r.record = rec
	return nil
}

func (p *Pipeline) resolve(r *run) error {
	res, err := p.resolver.Resolve(r.record)
	if err != nil {
		return err
	}
	if err := res.Apply(r.registry); err != nil {
		return err
	}
	for _, name := range res.Drivers {
		r.log.Debug().Str("driver", name).Msg("driver activated")
	}
	for _, w := range res.Warnings {
		r.log.Debug().Str("warning", w).Msg("driver selection")
	}
	r.resolution = res
	return nil
}

func (p *Pipeline) bind(r *run) error {
	return binder.BindAll(r.registry, p.rules...)
}

func (p *Pipeline) freeze(r *run) error {
	r.registry.Freeze()
	return nil
}
