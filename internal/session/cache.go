package session

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sync"

	"github.com/vanshika/fintrace/investigator/internal/domain"
	"github.com/vanshika/fintrace/investigator/internal/flowgraph"
)

// ModelCache memoizes laid-out models by payload digest. It is safe for concurrent use.
type ModelCache struct {
	mu     sync.Mutex
	layout flowgraph.Layout
	models map[string]*flowgraph.Model
	hits   int
	misses int
}

// NewModelCache creates a cache that positions models with layout (the default grid when nil).
func NewModelCache(layout flowgraph.Layout) *ModelCache {
	return &ModelCache{
		layout: layout,
		models: make(map[string]*flowgraph.Model),
	}
}

// Get returns the model for (edges, focal), building it on first use.
func (c *ModelCache) Get(edges []domain.FlowEdge, focal string) *flowgraph.Model {
	key := Digest(edges, focal)

	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.models[key]; ok {
		c.hits++
		return m
	}
	c.misses++
	m := flowgraph.Assemble(edges, focal, c.layout)
	c.models[key] = m
	return m
}

// Stats reports cache hits and misses.
func (c *ModelCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len is the number of cached models.
func (c *ModelCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.models)
}

// Digest identifies a graph input. Edge order is significant since it drives layout.
func Digest(edges []domain.FlowEdge, focal string) string {
	h := sha256.New()
	writeString := func(s string) {
		var n [8]byte
		binary.BigEndian.PutUint64(n[:], uint64(len(s)))
		h.Write(n[:])
		h.Write([]byte(s))
	}
	writeString(focal)
	for _, e := range edges {
		writeString(e.From)
		writeString(e.To)
		var amount [8]byte
		binary.BigEndian.PutUint64(amount[:], math.Float64bits(e.Amount))
		h.Write(amount[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
