package observability

import (
	"fmt"
	"log/slog"
	"sync"
)

// Names accepted in configuration without prior registration.
const (
	NameNoOp = "noop"
	NameSlog = "slog"
)

var (
	namedMu sync.RWMutex
	named   = map[string]Observer{
		NameNoOp: NoOpObserver{},
		NameSlog: NewSlogObserver(slog.Default()),
	}
)

// Register binds name to observer, replacing any earlier binding. The
// command replaces NameSlog with a logger writing to stderr.
func Register(name string, observer Observer) {
	namedMu.Lock()
	defer namedMu.Unlock()
	named[name] = observer
}

// Lookup returns the observer bound to name.
func Lookup(name string) (Observer, error) {
	namedMu.RLock()
	defer namedMu.RUnlock()

	obs, ok := named[name]
	if !ok {
		return nil, fmt.Errorf("unknown observer: %s", name)
	}
	return obs, nil
}

// Resolve looks up each name and combines the results. No names resolves to
// NoOpObserver.
func Resolve(names ...string) (Observer, error) {
	switch len(names) {
	case 0:
		return NoOpObserver{}, nil
	case 1:
		return Lookup(names[0])
	}

	resolved := make([]Observer, 0, len(names))
	for _, name := range names {
		obs, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, obs)
	}
	return NewMultiObserver(resolved...), nil
}
