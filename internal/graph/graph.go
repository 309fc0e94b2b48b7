// Package graph models the station network as a static undirected weighted
// graph and answers minimum-travel-time queries against it.  The graph is
// built once at startup and never mutated afterwards, so it can be shared
// between request handlers without synchronization.
package graph

import (
	"math"
	"sort"
)

// Unreachable is returned by MinTravelTime when no path exists between two
// known stations.  It is large enough that any elapsed-time comparison
// against it fails.
const Unreachable = math.MaxInt32

// Graph holds the adjacency map of the station network.  Keys are station
// names; values map each direct neighbour to the travel time in minutes.
type Graph struct {
	adj map[string]map[string]int
}

// New returns an empty graph.  Populate it with AddRoute before use.
func New() *Graph {
	return &Graph{adj: make(map[string]map[string]int)}
}

// AddRoute inserts a symmetric route between two stations with the given
// travel time in minutes.  Inserting the same unordered pair twice keeps the
// last weight.
func (g *Graph) AddRoute(a, b string, minutes int) {
	if g.adj[a] == nil {
		g.adj[a] = make(map[string]int)
	}
	if g.adj[b] == nil {
		g.adj[b] = make(map[string]int)
	}
	g.adj[a][b] = minutes
	g.adj[b][a] = minutes
}

// Has reports whether the station is part of the network.
func (g *Graph) Has(station string) bool {
	_, ok := g.adj[station]
	return ok
}

// IsAdjacent reports whether two stations are directly connected by a single
// route leg.  Single-leg tickets can only be sold for adjacent stations.
func (g *Graph) IsAdjacent(a, b string) bool {
	_, ok := g.adj[a][b]
	return ok
}

// Neighbors returns the directly connected stations of the given station in
// sorted order.  It returns nil for unknown stations.
func (g *Graph) Neighbors(station string) []string {
	edges, ok := g.adj[station]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(edges))
	for name := range edges {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Routes returns the full network as a map from every station to its sorted
// list of direct neighbours.
func (g *Graph) Routes() map[string][]string {
	out := make(map[string][]string, len(g.adj))
	for station := range g.adj {
		out[station] = g.Neighbors(station)
	}
	return out
}

// MinTravelTime returns the minimum travel time in minutes between two
// stations.  It returns 0 when both stations are equal, and 0 when either
// station is unknown: travel involving a station the network knows nothing
// about cannot be validated, so it is treated as unconstrained.  When both
// stations are known but no path connects them, Unreachable is returned.
//
// Edges carry non-uniform positive weights, so a plain level-order BFS would
// be wrong.  The queue-based search below relaxes the accumulated cost per
// station and re-enqueues a station whenever a strictly cheaper path to it
// is found.
func (g *Graph) MinTravelTime(from, to string) int {
	if from == to {
		return 0
	}
	if !g.Has(from) || !g.Has(to) {
		return 0
	}

	best := map[string]int{from: 0}
	queue := []string{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for neighbor, minutes := range g.adj[current] {
			candidate := best[current] + minutes
			if known, seen := best[neighbor]; !seen || candidate < known {
				best[neighbor] = candidate
				queue = append(queue, neighbor)
			}
		}
	}

	if minutes, ok := best[to]; ok {
		return minutes
	}
	return Unreachable
}
