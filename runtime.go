package avg

import (
	"fmt"
	"log/slog"
)

// RuntimeConfig configures a Runtime. Zero values select defaults.
type RuntimeConfig struct {
	// Textures resolves "src" and "frames" names. May be nil.
	Textures TextureSource
	// Logger receives warnings; defaults to slog.Default().
	Logger *slog.Logger
	// Reconciler replaces the keyed child reconciler.
	Reconciler ChildReconciler
	// Bus receives lifecycle notifications; a fresh one is created if nil.
	Bus *Bus
}

// Runtime is the shared context every mounted component reaches: property
// setters, the lifecycle bus, transactions and the child reconciler.
type Runtime struct {
	Props        *PropertyRegistry
	Bus          *Bus
	Transactions *TransactionPool
	Reconciler   ChildReconciler
	Middleware   *Middleware
	Logger       *slog.Logger

	plugins map[string]any
}

// NewRuntime creates a runtime from cfg.
func NewRuntime(cfg RuntimeConfig) *Runtime {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rt := &Runtime{
		Props:        NewPropertyRegistry(cfg.Textures, logger),
		Bus:          cfg.Bus,
		Transactions: NewTransactionPool(),
		Reconciler:   cfg.Reconciler,
		Middleware:   NewMiddleware(logger),
		Logger:       logger.With("component", "lifecycle"),
		plugins:      make(map[string]any),
	}
	if rt.Bus == nil {
		rt.Bus = NewBus()
	}
	if rt.Reconciler == nil {
		rt.Reconciler = &keyedReconciler{rt: rt}
	}
	registerBuiltinProps(rt.Props)
	return rt
}

// Install builds a plugin with the runtime and keeps it under name. An empty
// name builds the plugin without keeping it. Installing over a taken name
// replaces the previous plugin with a warning.
func (rt *Runtime) Install(name string, build func(rt *Runtime) any) any {
	p := build(rt)
	if name == "" {
		return p
	}
	if _, exists := rt.plugins[name]; exists {
		rt.Logger.Warn("plugin replaced", "name", name)
	}
	rt.plugins[name] = p
	return p
}

// Plugin returns the plugin installed under name.
func (rt *Runtime) Plugin(name string) (any, bool) {
	p, ok := rt.plugins[name]
	return p, ok
}

// instantiate creates and constructs the instance for el.
func (rt *Runtime) instantiate(el *Element) Mountable {
	if el == nil {
		panic("avg: cannot instantiate nil element")
	}
	var inst Mountable
	switch t := el.Type.(type) {
	case *ComponentType:
		inst = &Component{typ: t, hostContainer: hostContainer{rt: rt}}
	case *ViewType, *FuncType:
		inst = &composite{rt: rt}
	default:
		panic(fmt.Sprintf("avg: unknown element type %T", el.Type))
	}
	inst.Construct(el)
	return inst
}
