package services

import (
	"pipeline-backend/domain/core/aggregates"
)

// Per-node traversal state. A gray node sits on the active DFS path; reaching
// a gray neighbor means a back-edge, which is the cycle signature.
const (
	white uint8 = iota // unvisited
	gray               // in progress
	black              // done, proven cycle-free
)

// CycleDetector decides whether a built graph contains a directed cycle.
// The traversal uses an explicit frame stack instead of native recursion, so
// call-stack depth stays constant regardless of how deep the graph is.
type CycleDetector struct{}

// NewCycleDetector creates a new cycle detector
func NewCycleDetector() *CycleDetector {
	return &CycleDetector{}
}

// frame tracks one node on the DFS path and how many of its neighbors have
// been dispatched so far.
type frame struct {
	node int
	next int
}

// IsAcyclic reports whether the graph is a DAG. It is a total function over
// graphs produced by the pipeline validator and never modifies the graph, so
// repeated calls yield the same result. An empty graph is acyclic.
func (d *CycleDetector) IsAcyclic(g *aggregates.Graph) bool {
	n := g.NodeCount()
	if n == 0 {
		return true
	}

	colors := make([]uint8, n)
	stack := make([]frame, 0, 16)

	// Every node is tried as a root, in registration order, so disconnected
	// components are all covered.
	for root := 0; root < n; root++ {
		if colors[root] != white {
			continue
		}

		colors[root] = gray
		stack = append(stack[:0], frame{node: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors := g.Neighbors(top.node)

			if top.next < len(neighbors) {
				neighbor := neighbors[top.next]
				top.next++

				switch colors[neighbor] {
				case gray:
					// Back-edge: the neighbor is still on the active path.
					// Covers self-loops, where neighbor == top.node.
					return false
				case white:
					colors[neighbor] = gray
					stack = append(stack, frame{node: neighbor})
				}
				// black neighbors are already proven cycle-free
			} else {
				colors[top.node] = black
				stack = stack[:len(stack)-1]
			}
		}
	}

	return true
}
