package emit

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/skeletongen/internal/graph"
)

// Func emits the fragment for one node of a known subtype.
type Func func(n graph.Node) Fragment

// Registry maps subtypes to their emitters. It is filled at init and only
// read afterwards.
type Registry struct {
	emitters map[graph.Subtype]Func
}

func newRegistry() *Registry {
	return &Registry{emitters: make(map[graph.Subtype]Func)}
}

func (r *Registry) register(s graph.Subtype, fn Func) {
	if _, exists := r.emitters[s]; exists {
		panic(fmt.Sprintf("emitter for subtype '%s' already registered", s))
	}
	r.emitters[s] = fn
}

// Lookup returns the emitter for a subtype.
func (r *Registry) Lookup(s graph.Subtype) (Func, bool) {
	fn, ok := r.emitters[s]
	return fn, ok
}

// Validate checks that every subtype in the graph table has an emitter and
// that no emitter is registered for an unknown subtype.
func (r *Registry) Validate() error {
	var errs []string
	for _, s := range graph.Subtypes() {
		if _, ok := r.emitters[s]; !ok {
			errs = append(errs, fmt.Sprintf("subtype '%s' has no emitter", s))
		}
	}
	for s := range r.emitters {
		if _, ok := graph.Lookup(s); !ok {
			errs = append(errs, fmt.Sprintf("emitter registered for unknown subtype '%s'", s))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("emitter registry is inconsistent:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

var defaultRegistry = func() *Registry {
	r := newRegistry()
	registerVariables(r)
	registerLogic(r)
	registerIntegrations(r)
	registerTemplates(r)
	if err := r.Validate(); err != nil {
		panic(err)
	}
	return r
}()

// Emit produces the fragment for a node. Unknown subtypes become a comment
// so that generation can continue.
func Emit(n graph.Node) Fragment {
	if fn, ok := defaultRegistry.Lookup(n.Subtype); ok {
		return fn(n)
	}
	b := newBuilder(n)
	b.linef("// Unsupported node %s (%s)", n.ID, strings.TrimSpace(string(n.Subtype)))
	return b.done()
}
