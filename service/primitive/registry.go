package primitive

import (
	"fmt"
	"strings"
	"sync"

	"github.com/viant/mdflow/model/ident"
	"github.com/viant/mdflow/model/types"
)

// Module maps member names to values; members that are not types.Kind fail
// resolution with ErrPrimitiveNotPrimitive.
type Module map[string]interface{}

// Loader produces a module on first use. A failing loader makes the module
// not importable.
type Loader func() (Module, error)

type resolution struct {
	kind types.Kind
	err  error
}

// Registry resolves kinds by identifier. Resolutions, failed ones included,
// are memoized until the next registration.
type Registry struct {
	loaders map[string]Loader
	modules map[string]Module
	cache   map[string]*resolution
	mux     sync.RWMutex
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		loaders: map[string]Loader{},
		modules: map[string]Module{},
		cache:   map[string]*resolution{},
	}
}

// Register installs a module under a dotted path.
func (r *Registry) Register(path string, module Module) {
	r.RegisterLoader(path, func() (Module, error) { return module, nil })
}

// RegisterLoader installs a lazily loaded module under a dotted path.
func (r *Registry) RegisterLoader(path string, loader Loader) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.loaders[path] = loader
	delete(r.modules, path)
	r.cache = map[string]*resolution{}
}

// Modules returns registered module paths.
func (r *Registry) Modules() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret := make([]string, 0, len(r.loaders))
	for path := range r.loaders {
		ret = append(ret, path)
	}
	return ret
}

// Resolve returns the kind registered under id.
func (r *Registry) Resolve(id string) (types.Kind, error) {
	r.mux.RLock()
	cached, ok := r.cache[id]
	r.mux.RUnlock()
	if ok {
		return cached.kind, cached.err
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	if cached, ok = r.cache[id]; ok {
		return cached.kind, cached.err
	}
	kind, err := r.resolve(id)
	r.cache[id] = &resolution{kind: kind, err: err}
	return kind, err
}

func (r *Registry) resolve(id string) (types.Kind, error) {
	index := strings.LastIndexByte(id, '.')
	if index <= 0 || index == len(id)-1 {
		return nil, &Error{Err: ErrPrimitiveModuleNotImportable, ID: id, Detail: "expected <module>.<name>"}
	}
	path, name := id[:index], id[index+1:]
	for _, segment := range strings.Split(path, ".") {
		if !ident.IsIdentifier(segment) {
			return nil, &Error{Err: ErrPrimitiveModuleNotImportable, ID: id, Detail: fmt.Sprintf("invalid module path %q", path)}
		}
	}
	module, err := r.module(path)
	if err != nil {
		return nil, &Error{Err: ErrPrimitiveModuleNotImportable, ID: id, Detail: err.Error()}
	}
	value, ok := module[name]
	if !ok || value == nil {
		return nil, &Error{Err: ErrPrimitiveNotAvailable, ID: id}
	}
	kind, ok := value.(types.Kind)
	if !ok {
		return nil, &Error{Err: ErrPrimitiveNotPrimitive, ID: id, Detail: fmt.Sprintf("%T is not a kind", value)}
	}
	return kind, nil
}

// module loads a module; the caller holds the write lock.
func (r *Registry) module(path string) (Module, error) {
	if module, ok := r.modules[path]; ok {
		return module, nil
	}
	loader, ok := r.loaders[path]
	if !ok {
		return nil, fmt.Errorf("module %q is not registered", path)
	}
	module, err := loader()
	if err != nil {
		return nil, err
	}
	r.modules[path] = module
	return module, nil
}

// ArtifactKind resolves an artifact kind.
func (r *Registry) ArtifactKind(id string) (types.ArtifactKind, error) {
	kind, err := r.Resolve(id)
	if err != nil {
		return nil, err
	}
	ret, ok := kind.(types.ArtifactKind)
	if !ok || kind.Capability() != types.CapabilityArtifact {
		return nil, &Error{Err: ErrPrimitiveNotPrimitive, ID: id, Detail: fmt.Sprintf("expected artifact kind, got %v", kind.Capability())}
	}
	return ret, nil
}

// SectionKind resolves a section kind; operation kinds qualify.
func (r *Registry) SectionKind(id string) (types.SectionKind, error) {
	kind, err := r.Resolve(id)
	if err != nil {
		return nil, err
	}
	ret, ok := kind.(types.SectionKind)
	capability := kind.Capability()
	if !ok || (capability != types.CapabilitySection && capability != types.CapabilityOperation) {
		return nil, &Error{Err: ErrPrimitiveNotPrimitive, ID: id, Detail: fmt.Sprintf("expected section kind, got %v", capability)}
	}
	return ret, nil
}

// OperationKind resolves an operation kind.
func (r *Registry) OperationKind(id string) (types.OperationKind, error) {
	kind, err := r.Resolve(id)
	if err != nil {
		return nil, err
	}
	ret, ok := kind.(types.OperationKind)
	if !ok || kind.Capability() != types.CapabilityOperation {
		return nil, &Error{Err: ErrPrimitiveNotPrimitive, ID: id, Detail: fmt.Sprintf("expected operation kind, got %v", kind.Capability())}
	}
	return ret, nil
}
