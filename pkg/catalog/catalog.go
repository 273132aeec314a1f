package catalog

import (
	"time"

	"github.com/stamp-dev/stamp/pkg/errors"
	"github.com/stamp-dev/stamp/pkg/logging"
	"github.com/stamp-dev/stamp/pkg/registry"
	"github.com/stamp-dev/stamp/pkg/schema"
	"github.com/stamp-dev/stamp/pkg/template"
	"github.com/stamp-dev/stamp/pkg/template/compile"
	"github.com/stamp-dev/stamp/pkg/template/engine"
	"github.com/stamp-dev/stamp/pkg/template/expression"
)

// Config carries the explicit dependencies a Manager needs. Cache and
// engine instances are constructed once at startup and passed by reference
// into every call site; there is no process-wide default instance.
type Config struct {
	// Root is the directory scanned for template definitions.
	Root string

	// CacheTTL bounds how long a compiled renderer stays valid.
	CacheTTL time.Duration

	// Engine configures the substitution behavior for Substitute calls.
	Engine engine.Options
}

// Manager orchestrates the template registry, on-disk discovery and the
// compilation cache for one catalog root.
type Manager struct {
	registry    registry.Registry[*Template]
	cache       *compile.Cache
	engine      *engine.Engine
	root        string
	initialized bool
}

// NewManager constructs a Manager. Init must be called before any other
// method.
func NewManager(cfg Config) *Manager {
	return &Manager{
		registry: registry.New[*Template](),
		cache:    compile.NewCache(cfg.CacheTTL),
		engine:   engine.New(cfg.Engine),
		root:     cfg.Root,
	}
}

// Init runs the initial discovery pass. Discovery failures are logged, not
// returned: the catalog stays usable registry-only, and a later Reload can
// retry the scan.
func (m *Manager) Init() {
	logger := logging.GetLogger("catalog")

	templates, err := Discover(m.root)
	if err != nil {
		logger.Warn().Err(err).Str("root", m.root).Msg("initial discovery failed, catalog is registry-only")
	}
	for _, t := range templates {
		if err := m.registry.Put(t.Name, t); err != nil {
			logger.Warn().Err(err).Str("template", t.Name).Msg("cannot register template")
		}
	}

	m.initialized = true
	logger.Info().Int("templates", m.registry.Count()).Msg("catalog initialized")
}

// Reload re-runs discovery. Unlike Init, a failed scan is the caller's
// problem: the error propagates and the registry keeps its previous state.
func (m *Manager) Reload() error {
	if err := m.ensureInitialized(); err != nil {
		return err
	}

	templates, err := Discover(m.root)
	if err != nil {
		return err
	}

	m.registry.Clear()
	for _, t := range templates {
		if err := m.registry.Put(t.Name, t); err != nil {
			return err
		}
	}
	return nil
}

// Register adds a template programmatically, outside discovery.
func (m *Manager) Register(t *Template) error {
	if err := m.ensureInitialized(); err != nil {
		return err
	}
	if t == nil || t.Name == "" {
		return errors.New(errors.ErrInvalidInput, "template must have a name")
	}
	if t.Hash == "" {
		t.Hash = compile.HashTemplate(t.Body)
	}
	return m.registry.Register(t.Name, t)
}

// Get returns a template by name.
func (m *Manager) Get(name string) (*Template, error) {
	if err := m.ensureInitialized(); err != nil {
		return nil, err
	}

	t, err := m.registry.Get(name)
	if err != nil {
		return nil, errors.Newf(errors.ErrTemplateNotFound, "template '%s' not found in catalog", name)
	}
	return t, nil
}

// GetAll returns every registered template, ordered by name.
func (m *Manager) GetAll() ([]*Template, error) {
	if err := m.ensureInitialized(); err != nil {
		return nil, err
	}

	names := m.registry.List()
	templates := make([]*Template, 0, len(names))
	for _, name := range names {
		if t, err := m.registry.Get(name); err == nil {
			templates = append(templates, t)
		}
	}
	return templates, nil
}

// Substitute renders the named template against the context: block
// directives are expanded by the compiled renderer, and the validation
// report is computed over the original body, so usedVariableNames covers
// every placeholder regardless of which branches rendered.
func (m *Manager) Substitute(name string, ctx template.Context, s schema.Schema) (template.SubstitutionResult, error) {
	t, err := m.Get(name)
	if err != nil {
		return template.SubstitutionResult{}, err
	}

	if s == nil {
		s = t.Variables
	}

	result, err := m.engine.Substitute(t.Body, ctx, s)
	if err != nil {
		return template.SubstitutionResult{}, err
	}

	compiled := m.cache.GetOrCreate(t.Hash, t.Body)
	result.RenderedText = compiled.RenderWith(m.engine, ctx)
	return result, nil
}

// Evaluate evaluates a directive condition against a context.
func (m *Manager) Evaluate(expr string, ctx template.Context) bool {
	return expression.Evaluate(expr, ctx)
}

// GetOrCreateCompiled returns the cached renderer for the named template,
// compiling it on first use or after expiry.
func (m *Manager) GetOrCreateCompiled(name string) (*compile.Compiled, error) {
	t, err := m.Get(name)
	if err != nil {
		return nil, err
	}
	return m.cache.GetOrCreate(t.Hash, t.Body), nil
}

// CacheStats reports the compilation cache counters.
func (m *Manager) CacheStats() compile.Stats {
	return m.cache.Stats()
}

// ClearCache drops all compiled renderers. Lifetime counters survive.
func (m *Manager) ClearCache() {
	m.cache.Clear()
}

// SweepCache proactively removes expired renderers and reports the count.
func (m *Manager) SweepCache() int {
	return m.cache.Sweep()
}

func (m *Manager) ensureInitialized() error {
	if !m.initialized {
		return errors.New(errors.ErrNotInitialized, "catalog accessed before Init")
	}
	return nil
}
