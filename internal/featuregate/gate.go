// Package featuregate holds the process-wide switch consulted before every
// mutating financial operation. The gate is injected into the engine so tests
// can toggle it per case instead of reading ambient global state.
package featuregate

import "sync/atomic"

type Gate struct {
	enabled atomic.Bool
}

func New(enabled bool) *Gate {
	g := &Gate{}
	g.enabled.Store(enabled)
	return g
}

func (g *Gate) IsEnabled() bool {
	return g.enabled.Load()
}

func (g *Gate) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}
