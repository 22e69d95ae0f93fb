package units

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Definition declares a unit in terms of units already known to a registry,
// for example {Name: "furlong", Definition: "660 ft"}.
type Definition struct {
	Name       string   `json:"name" yaml:"name" mapstructure:"name"`
	Definition string   `json:"definition" yaml:"definition" mapstructure:"definition"`
	Aliases    []string `json:"aliases,omitempty" yaml:"aliases,omitempty" mapstructure:"aliases"`
	Prefixable bool     `json:"prefixable,omitempty" yaml:"prefixable,omitempty" mapstructure:"prefixable"`
}

// Info describes a named unit known to a registry.
type Info struct {
	Name       string
	Aliases    []string
	Prefixable bool
	Unit       Unit
}

// Registry is a table of named units. It parses unit expressions, builds
// tagged values, and converts between compatible units.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	names  map[string]*Info // name or alias -> unit
	cache  map[string]Unit  // expression -> parsed unit
	gen    uint64           // bumped by Define; cache writes from older parses are dropped
	logger *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for definition events.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry returns a registry preloaded with the built-in units and SI
// prefixes.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		names:  make(map[string]*Info),
		cache:  make(map[string]Unit),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, b := range builtinBase {
		info := &Info{Name: b.unit.Symbol, Aliases: b.aliases, Prefixable: b.prefixable, Unit: b.unit}
		r.insertLocked(info)
	}
	for _, def := range builtinDerived {
		if err := r.Define(def); err != nil {
			panic(fmt.Sprintf("units: builtin %q: %v", def.Name, err))
		}
	}
	return r
}

var defaultRegistry = sync.OnceValue(func() *Registry { return NewRegistry() })

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry()
}

// Define registers a new unit. The definition expression is parsed against
// the units already known to r.
func (r *Registry) Define(def Definition) error {
	name := strings.TrimSpace(def.Name)
	if name == "" || !isIdentifier(name) {
		return fmt.Errorf("define %q: name must be a single identifier: %w", def.Name, ErrInvalidDefinition)
	}
	if strings.TrimSpace(def.Definition) == "" {
		return fmt.Errorf("define %q: empty definition: %w", name, ErrInvalidDefinition)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range append([]string{name}, def.Aliases...) {
		if _, ok := r.names[n]; ok {
			return fmt.Errorf("define %q: %q: %w", name, n, ErrDuplicateUnit)
		}
	}
	u, err := parseExpression(def.Definition, r.lookupLocked)
	if err != nil {
		return fmt.Errorf("define %q: %w", name, err)
	}
	u.Symbol = name

	r.insertLocked(&Info{Name: name, Aliases: def.Aliases, Prefixable: def.Prefixable, Unit: u})
	clear(r.cache)
	r.gen++
	r.logger.Debug("unit defined",
		zap.String("name", name),
		zap.String("definition", def.Definition),
		zap.Float64("scale", u.Scale),
		zap.Stringer("dimension", u.Dim))
	return nil
}

func (r *Registry) insertLocked(info *Info) {
	r.names[info.Name] = info
	for _, a := range info.Aliases {
		r.names[a] = info
	}
}

// lookupLocked resolves a single identifier: exact names and aliases first,
// then an SI prefix followed by a prefixable unit. The caller must hold r.mu.
func (r *Registry) lookupLocked(name string) (Unit, error) {
	if info, ok := r.names[name]; ok {
		u := info.Unit
		u.Symbol = name
		return u, nil
	}
	for _, p := range prefixesByLength {
		rest, ok := strings.CutPrefix(name, p.spelling)
		if !ok || rest == "" {
			continue
		}
		info, ok := r.names[rest]
		if !ok || !info.Prefixable {
			continue
		}
		u := info.Unit
		u.Symbol = name
		u.Scale *= p.factor
		return u, nil
	}
	return Unit{}, fmt.Errorf("%q: %w", name, ErrUnknownUnit)
}

// Parse parses a unit expression such as "kg", "ft/s", "N*m" or "kg/m³".
// An empty expression is dimensionless.
func (r *Registry) Parse(expr string) (Unit, error) {
	key := strings.TrimSpace(expr)
	if key == "" {
		return dimensionless, nil
	}

	u, gen, cached, err := r.parseShared(key)
	if err != nil {
		return Unit{}, fmt.Errorf("parse unit %q: %w", key, err)
	}
	if !cached {
		r.storeParsed(key, u, gen)
	}
	return u, nil
}

// parseShared resolves key under the read lock, from the cache when
// possible. It returns the generation the result was computed against.
func (r *Registry) parseShared(key string) (u Unit, gen uint64, cached bool, err error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.cache[key]; ok {
		return u, r.gen, true, nil
	}
	u, err = parseExpression(key, r.lookupLocked)
	return u, r.gen, false, err
}

// storeParsed caches u unless a Define ran since it was parsed.
func (r *Registry) storeParsed(key string, u Unit, gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen == gen {
		r.cache[key] = u
	}
}

// New returns a scalar value tagged with the unit expression.
func (r *Registry) New(x float64, expr string) (Value, error) {
	u, err := r.Parse(expr)
	if err != nil {
		return Value{}, err
	}
	return Scalar(x, u), nil
}

// NewVector returns a vector value tagged with the unit expression.
func (r *Registry) NewVector(xs []float64, expr string) (Value, error) {
	u, err := r.Parse(expr)
	if err != nil {
		return Value{}, err
	}
	return Vector(xs, u), nil
}

// Convert returns v expressed in the unit expression.
// It fails with a *DimensionalityError if the units are incompatible.
func (r *Registry) Convert(v Value, expr string) (Value, error) {
	u, err := r.Parse(expr)
	if err != nil {
		return Value{}, err
	}
	return v.To(u)
}

// List returns the named units sorted by name. Aliases are not listed
// separately.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[*Info]bool, len(r.names))
	out := make([]Info, 0, len(r.names))
	for _, info := range r.names {
		if seen[info] {
			continue
		}
		seen[info] = true
		cp := *info
		cp.Aliases = append([]string(nil), info.Aliases...)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the named unit registered under name or one of its
// aliases. Prefixed spellings are not resolved.
func (r *Registry) Lookup(name string) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.names[name]
	if !ok {
		return Info{}, false
	}
	cp := *info
	cp.Aliases = append([]string(nil), info.Aliases...)
	return cp, true
}

type prefixSpelling struct {
	spelling string
	factor   float64
}

// prefixesByLength holds every prefix spelling, longest first.
var prefixesByLength = func() []prefixSpelling {
	var out []prefixSpelling
	for _, p := range siPrefixes {
		out = append(out, prefixSpelling{p.symbol, p.factor}, prefixSpelling{p.name, p.factor})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].spelling) > len(out[j].spelling)
	})
	return out
}()

// isIdentifier reports whether s lexes as a single identifier.
func isIdentifier(s string) bool {
	for _, r := range s {
		if !isIdentRune(r) {
			return false
		}
	}
	return s != ""
}
