// uuid simple generator that allows mocking
package uuid

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator is an interface for generating identifiers
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements the Generator interface using Google's UUID package
type GoogleUUIDGenerator struct{}

// New generates a new UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// SequentialGenerator generates predictable IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequentialGenerator creates a generator that emits prefix-1, prefix-2, ...
func NewSequentialGenerator(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// New generates the next sequential ID
func (g *SequentialGenerator) New() string {
	n := atomic.AddUint64(&g.counter, 1)
	return fmt.Sprintf("%s-%d", g.prefix, n)
}
