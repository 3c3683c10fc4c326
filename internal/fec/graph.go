package fec

import (
	"github.com/ddritzenhoff/ltcode/internal/protocol"
)

// A checkNode is an XOR constraint over source symbols that are not known yet.
// value is the packet's XOR with every member resolved so far XORed back out.
type checkNode struct {
	sourceNodes map[protocol.SymbolIndex]struct{}
	value       []byte
}

type resolved struct {
	index protocol.SymbolIndex
	value []byte
}

// A Graph is a peeling decoder. It stores one check node per packet that could not be
// resolved yet and resolves symbols as soon as a constraint is reduced to a single member.
//
// A live check node never references an eliminated symbol.
type Graph struct {
	numSymbols int
	// checks maps a symbol to the check nodes that still contain it.
	checks     map[protocol.SymbolIndex][]*checkNode
	eliminated map[protocol.SymbolIndex][]byte
}

// NewGraph creates a graph over numSymbols source symbols.
func NewGraph(numSymbols int) *Graph {
	return &Graph{
		numSymbols: numSymbols,
		checks:     make(map[protocol.SymbolIndex][]*checkNode),
		eliminated: make(map[protocol.SymbolIndex][]byte, numSymbols),
	}
}

// AddConstraint records that the symbols at indices XOR to value.
// It reports whether every symbol has been resolved. Neither argument is retained.
func (g *Graph) AddConstraint(indices []protocol.SymbolIndex, value []byte) bool {
	nodes := make(map[protocol.SymbolIndex]struct{}, len(indices))
	for _, idx := range indices {
		nodes[idx] = struct{}{}
	}
	data := make([]byte, len(value))
	copy(data, value)

	// Rewrite the constraint over the symbols that are still unknown.
	for idx := range nodes {
		if known, ok := g.eliminated[idx]; ok {
			xor(data, known)
			delete(nodes, idx)
		}
	}

	switch len(nodes) {
	case 0:
		// all members were known already, nothing new
	case 1:
		for idx := range nodes {
			g.eliminate(idx, data)
		}
	default:
		check := &checkNode{sourceNodes: nodes, value: data}
		for idx := range nodes {
			g.checks[idx] = append(g.checks[idx], check)
		}
	}
	return g.IsComplete()
}

// eliminate resolves idx and cascades through every check node that drops to a single member.
func (g *Graph) eliminate(idx protocol.SymbolIndex, value []byte) {
	worklist := []resolved{{index: idx, value: value}}
	for len(worklist) > 0 {
		next := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if _, ok := g.eliminated[next.index]; ok {
			continue
		}
		g.eliminated[next.index] = next.value

		checks := g.checks[next.index]
		delete(g.checks, next.index)
		for _, check := range checks {
			xor(check.value, next.value)
			delete(check.sourceNodes, next.index)
			if len(check.sourceNodes) != 1 {
				continue
			}
			for other := range check.sourceNodes {
				// the check node is zeroed once other is processed, so hand over a copy
				value := make([]byte, len(check.value))
				copy(value, check.value)
				worklist = append(worklist, resolved{index: other, value: value})
			}
		}
	}
}

// IsComplete says if every source symbol has been resolved.
func (g *Graph) IsComplete() bool {
	return len(g.eliminated) >= g.numSymbols
}

// NumEliminated returns the number of resolved symbols.
func (g *Graph) NumEliminated() int {
	return len(g.eliminated)
}

// NumSymbols returns the number of source symbols the graph was created for.
func (g *Graph) NumSymbols() int {
	return g.numSymbols
}

// Eliminated returns the resolved symbols. The map must not be modified.
func (g *Graph) Eliminated() map[protocol.SymbolIndex][]byte {
	return g.eliminated
}
