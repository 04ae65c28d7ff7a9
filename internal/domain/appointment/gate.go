package appointment

import (
	"sync/atomic"

	"github.com/perfectlysalon/admin-api/internal/httperr"
)

// MutationGate serializes manual status transitions: one in-flight
// mutation at a time across the whole engine, not per appointment.
// Write concurrency here is a single admin clicking buttons, so a
// coarse guard is enough and keeps overlapping writes impossible.
type MutationGate struct {
	busy atomic.Bool
}

func NewMutationGate() *MutationGate {
	return &MutationGate{}
}

func (g *MutationGate) Acquire() error {
	if !g.busy.CompareAndSwap(false, true) {
		return httperr.ErrBusinessMsg(httperr.CodeUpdateInProgress, "another update is still in progress")
	}
	return nil
}

func (g *MutationGate) Release() {
	g.busy.Store(false)
}
