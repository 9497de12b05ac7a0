package geos

import (
	"container/heap"
	"math"
	"sort"
)

// DefaultNodeCapacity is the STR-tree fanout used when the caller does not
// choose one.
const DefaultNodeCapacity = 10

// STRtree is a packed spatial index built once from a fixed set of items.
//
// Usage is a one-shot construction protocol: Insert all items, then Build
// (the first query builds implicitly). Items are opaque int tags; the tree
// never owns the objects they refer to. Inserting after the tree is built is
// an error.
//
// The tree is not safe for concurrent mutation; concurrent queries after
// Build are fine.
type STRtree struct {
	nodeCapacity int
	built        bool
	entries      []strEntry
	root         *strNode
}

type strEntry struct {
	env  Envelope
	item int
}

type strNode struct {
	env      Envelope
	children []*strNode // nil for leaf nodes
	items    []strEntry // set for leaf nodes
}

// NewSTRtree creates an empty tree with the given node capacity. Capacities
// below 2 fall back to DefaultNodeCapacity.
func NewSTRtree(nodeCapacity int) *STRtree {
	if nodeCapacity < 2 {
		nodeCapacity = DefaultNodeCapacity
	}
	return &STRtree{nodeCapacity: nodeCapacity}
}

// Insert adds an item with its envelope. Items with null envelopes (empty
// geometries) are accepted but never reported by queries.
func (t *STRtree) Insert(env Envelope, item int) error {
	if t.built {
		return Error("strtree: insert after build")
	}
	if env.IsNull() {
		return nil
	}
	t.entries = append(t.entries, strEntry{env: env, item: item})
	return nil
}

// Build packs the inserted items into the static tree. Building an already
// built tree is a no-op.
func (t *STRtree) Build() {
	if t.built {
		return
	}
	t.built = true
	if len(t.entries) == 0 {
		return
	}

	leaves := t.packLeaves(t.entries)
	for len(leaves) > 1 {
		leaves = t.packNodes(leaves)
	}
	t.root = leaves[0]
}

// packLeaves runs one STR tiling pass over the entries: sort by center X,
// cut into vertical slices, sort each slice by center Y and chunk into leaf
// nodes of nodeCapacity entries.
func (t *STRtree) packLeaves(entries []strEntry) []*strNode {
	sorted := make([]strEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].env.CenterX() < sorted[j].env.CenterX()
	})

	sliceSize := t.sliceSize(len(sorted))
	var nodes []*strNode
	for start := 0; start < len(sorted); start += sliceSize {
		end := min(start+sliceSize, len(sorted))
		slice := sorted[start:end]
		sort.SliceStable(slice, func(i, j int) bool {
			return slice[i].env.CenterY() < slice[j].env.CenterY()
		})
		for s := 0; s < len(slice); s += t.nodeCapacity {
			e := min(s+t.nodeCapacity, len(slice))
			node := &strNode{env: NullEnvelope(), items: slice[s:e]}
			for _, entry := range node.items {
				node.env = node.env.Union(entry.env)
			}
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// packNodes builds one upper level over child nodes with the same tiling.
func (t *STRtree) packNodes(children []*strNode) []*strNode {
	sorted := make([]*strNode, len(children))
	copy(sorted, children)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].env.CenterX() < sorted[j].env.CenterX()
	})

	sliceSize := t.sliceSize(len(sorted))
	var nodes []*strNode
	for start := 0; start < len(sorted); start += sliceSize {
		end := min(start+sliceSize, len(sorted))
		slice := sorted[start:end]
		sort.SliceStable(slice, func(i, j int) bool {
			return slice[i].env.CenterY() < slice[j].env.CenterY()
		})
		for s := 0; s < len(slice); s += t.nodeCapacity {
			e := min(s+t.nodeCapacity, len(slice))
			node := &strNode{env: NullEnvelope(), children: slice[s:e]}
			for _, child := range node.children {
				node.env = node.env.Union(child.env)
			}
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// sliceSize returns the number of entries per vertical STR slice for n
// entries: ceil(n / ceil(sqrt(nodeCount))) entries, nodeCount = ceil(n/cap).
func (t *STRtree) sliceSize(n int) int {
	nodeCount := (n + t.nodeCapacity - 1) / t.nodeCapacity
	sliceCount := int(math.Ceil(math.Sqrt(float64(nodeCount))))
	if sliceCount < 1 {
		sliceCount = 1
	}
	return (n + sliceCount - 1) / sliceCount
}

// Query visits every item whose envelope intersects env, in traversal order.
// Builds the tree if it has not been built yet.
func (t *STRtree) Query(env Envelope, visit func(item int)) {
	t.Build()
	if t.root == nil || env.IsNull() {
		return
	}
	t.root.query(env, visit)
}

func (n *strNode) query(env Envelope, visit func(item int)) {
	if !n.env.Intersects(env) {
		return
	}
	if n.children == nil {
		for _, entry := range n.items {
			if entry.env.Intersects(env) {
				visit(entry.item)
			}
		}
		return
	}
	for _, child := range n.children {
		child.query(env, visit)
	}
}

// NearestGeneric finds the item minimizing the caller-supplied distance
// callback, best-first over envelope distances to queryEnv.
//
// The envelope distance is used only as a lower bound for pruning, and the
// pruning is strict: a subtree whose envelope distance equals the current
// best reported distance is still explored. Callers exploit this by
// reporting a slightly inflated distance for ties, which keeps the search
// alive without disturbing which item wins.
//
// Returns the item whose reported distance was smallest, or found=false for
// an empty tree. A callback error aborts the search.
func (t *STRtree) NearestGeneric(queryEnv Envelope, itemDist func(item int) (float64, error)) (int, bool, error) {
	t.Build()
	if t.root == nil || queryEnv.IsNull() {
		return 0, false, nil
	}

	pq := nearestQueue{{node: t.root, dist: t.root.env.Distance(queryEnv)}}
	best := math.Inf(1)
	bestItem := 0
	found := false

	for len(pq) > 0 {
		head := heap.Pop(&pq).(nearestHead)
		if head.dist > best {
			// Everything still queued is at least this far away.
			break
		}
		if head.node == nil {
			d, err := itemDist(head.item)
			if err != nil {
				return 0, false, err
			}
			if d < best || !found {
				best = d
				bestItem = head.item
				found = true
			}
			continue
		}
		if head.node.children == nil {
			for _, entry := range head.node.items {
				heap.Push(&pq, nearestHead{item: entry.item, dist: entry.env.Distance(queryEnv)})
			}
			continue
		}
		for _, child := range head.node.children {
			heap.Push(&pq, nearestHead{node: child, dist: child.env.Distance(queryEnv)})
		}
	}
	return bestItem, found, nil
}

// nearestHead is a frontier element: an internal node, a leaf node, or a
// single item awaiting its exact distance callback.
type nearestHead struct {
	node *strNode
	item int
	dist float64
}

type nearestQueue []nearestHead

func (q nearestQueue) Len() int           { return len(q) }
func (q nearestQueue) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q nearestQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *nearestQueue) Push(x any)        { *q = append(*q, x.(nearestHead)) }

func (q *nearestQueue) Pop() any {
	old := *q
	n := len(old)
	head := old[n-1]
	*q = old[:n-1]
	return head
}
