package todo

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out item identifiers. Values must be unique for the
// lifetime of the session that owns the generator.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator returns random (v4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// CounterGenerator returns prefix-1, prefix-2, ... in order.
type CounterGenerator struct {
	Prefix string
	n      atomic.Uint64
}

func (g *CounterGenerator) NewID() string {
	prefix := g.Prefix
	if prefix == "" {
		prefix = "item"
	}
	return prefix + "-" + strconv.FormatUint(g.n.Add(1), 10)
}
