package tree

// This implementation is adapted from github.com/viant/gds/tree/cover.

import (
	"container/heap"
	"math"
	"sort"
	"sync"
)

// pruneSlack is the relative float32 rounding tolerance applied to
// distances, scaled by the largest coordinate magnitude seen.
const pruneSlack = 1e-5

// Tree represents a cover tree for euclidean kNN queries.
type Tree struct {
	root          *Node
	base          float32
	distanceFunc  DistanceFunc
	points        []*Point
	scale         float32
	version       uint64
	boundStrategy BoundStrategy
	mu            sync.RWMutex
}

// BoundStrategy selects which lower-bound radius to use when pruning.
type BoundStrategy int

const (
	// BoundPerNode uses cached per-node subtree radius (tighter pruning).
	BoundPerNode BoundStrategy = iota
	// BoundLevel uses a geometric bound derived from the node level. It
	// assumes the covering invariant holds and may miss neighbors when it
	// does not.
	BoundLevel
)

// NewTree constructs a cover tree with the provided base and distance
// metric. A base <= 1 falls back to 1.3; an unknown metric falls back to
// Euclidean.
func NewTree(base float32, distanceFn DistanceFunction) *Tree {
	if base <= 1 {
		base = 1.3
	}
	fn := distanceFn.Function()
	if fn == nil {
		fn = EuclideanDistance
	}
	return &Tree{
		base:          base,
		distanceFunc:  fn,
		boundStrategy: BoundPerNode,
	}
}

// SetBoundStrategy switches the pruning strategy.
func (t *Tree) SetBoundStrategy(s BoundStrategy) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.boundStrategy = s
}

// Len returns the number of inserted points.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.points)
}

// Insert adds a point to the tree and returns its insertion index.
func (t *Tree) Insert(point *Point) int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	point.index = int32(len(t.points))
	t.points = append(t.points, point)
	t.scale = max(t.scale, point.scale())
	if t.root == nil {
		node := NewNode(point, 0, t.base)
		t.root = &node
	} else {
		t.insert(t.root, point, 0)
	}
	t.version++
	return point.index
}

func (t *Tree) insert(node *Node, point *Point, level int32) {
	for {
		baseLevel := float32(math.Pow(float64(t.base), float64(level)))
		distance := t.distanceFunc(point, node.point)
		if distance < baseLevel {
			inserted := false
			for i := range node.children {
				child := &node.children[i]
				if t.distanceFunc(point, child.point) < baseLevel {
					node = child
					level--
					inserted = true
					break
				}
			}
			if !inserted {
				node.children = append(node.children, NewNode(point, level-1, t.base))
				return
			}
		} else {
			level++
			if level > node.level {
				newRoot := NewNode(point, level, t.base)
				newRoot.children = append(newRoot.children, *t.root)
				t.root = &newRoot
				return
			}
		}
	}
}

// KNearestNeighbors runs a depth-first kNN search and returns up to k
// neighbors ordered by ascending distance, ties by insertion index.
func (t *Tree) KNearestNeighbors(point *Point, k int) []*Neighbor {
	t.lock()
	defer t.unlock()
	if t.root == nil || k <= 0 {
		return nil
	}
	h := &Neighbors{}
	heap.Init(h)
	t.kNearestNeighbors(t.root, point, point.scale(), k, h)
	return drain(h)
}

func (t *Tree) kNearestNeighbors(node *Node, point *Point, qscale float32, k int, h *Neighbors) {
	offer(h, k, Neighbor{Point: node.point, Distance: t.distanceFunc(point, node.point)})
	if len(node.children) == 0 {
		return
	}
	type childDist struct {
		child *Node
		dist  float32
	}
	cds := make([]childDist, 0, len(node.children))
	for i := range node.children {
		child := &node.children[i]
		cds = append(cds, childDist{child: child, dist: t.distanceFunc(point, child.point)})
	}
	sort.Slice(cds, func(i, j int) bool { return cds[i].dist < cds[j].dist })
	for _, cd := range cds {
		if t.prunable(h, k, cd.dist-t.boundRadius(cd.child), qscale) {
			continue
		}
		t.kNearestNeighbors(cd.child, point, qscale, k, h)
	}
}

// KNearestNeighborsBestFirst performs a best-first search with a node
// priority queue. Results match KNearestNeighbors.
func (t *Tree) KNearestNeighborsBestFirst(point *Point, k int) []*Neighbor {
	t.lock()
	defer t.unlock()
	if t.root == nil || k <= 0 {
		return nil
	}
	qscale := point.scale()
	nh := &Neighbors{}
	heap.Init(nh)
	pq := &nodeQueue{}
	heap.Init(pq)
	rootDist := t.distanceFunc(point, t.root.point)
	heap.Push(pq, nodeItem{node: t.root, lb: rootDist - t.boundRadius(t.root), centerDist: rootDist})

	for pq.Len() > 0 {
		top := heap.Pop(pq).(nodeItem)
		if t.prunable(nh, k, top.lb, qscale) {
			break
		}
		offer(nh, k, Neighbor{Point: top.node.point, Distance: top.centerDist})
		for i := range top.node.children {
			child := &top.node.children[i]
			cd := t.distanceFunc(point, child.point)
			lb := cd - t.boundRadius(child)
			if t.prunable(nh, k, lb, qscale) {
				continue
			}
			heap.Push(pq, nodeItem{node: child, lb: lb, centerDist: cd})
		}
	}
	return drain(nh)
}

// Within returns every point whose distance to point is at most radius,
// widened by the rounding tolerance, ordered by distance then insertion
// index.
func (t *Tree) Within(point *Point, radius float32) []*Neighbor {
	t.lock()
	defer t.unlock()
	if t.root == nil || radius < 0 {
		return nil
	}
	limit := radius + t.tolerance(radius, point.scale())
	var found []Neighbor
	t.within(t.root, point, t.distanceFunc(point, t.root.point), limit, &found)
	sort.Slice(found, func(i, j int) bool { return found[i].closer(found[j]) })
	result := make([]*Neighbor, len(found))
	for i := range found {
		result[i] = &found[i]
	}
	return result
}

func (t *Tree) within(node *Node, point *Point, dist, limit float32, found *[]Neighbor) {
	if dist <= limit {
		*found = append(*found, Neighbor{Point: node.point, Distance: dist})
	}
	for i := range node.children {
		child := &node.children[i]
		cd := t.distanceFunc(point, child.point)
		if cd-t.boundRadius(child) > limit {
			continue
		}
		t.within(child, point, cd, limit, found)
	}
}

// prunable reports whether a subtree whose points are at least lb away can
// be skipped.
func (t *Tree) prunable(h *Neighbors, k int, lb, qscale float32) bool {
	if h.Len() < k {
		return false
	}
	worst := (*h)[0].Distance
	return lb > worst+t.tolerance(worst, qscale)
}

func (t *Tree) tolerance(d, qscale float32) float32 {
	return pruneSlack * max(1, d, t.scale, qscale)
}

func offer(h *Neighbors, k int, n Neighbor) {
	if h.Len() < k {
		heap.Push(h, n)
		return
	}
	if n.closer((*h)[0]) {
		(*h)[0] = n
		heap.Fix(h, 0)
	}
}

func drain(h *Neighbors) []*Neighbor {
	result := make([]*Neighbor, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		n := heap.Pop(h).(Neighbor)
		result[i] = &n
	}
	return result
}

// lock takes the write lock when per-node radii may be recomputed.
func (t *Tree) lock() {
	if t.boundStrategy == BoundPerNode {
		t.mu.Lock()
		return
	}
	t.mu.RLock()
}

func (t *Tree) unlock() {
	if t.boundStrategy == BoundPerNode {
		t.mu.Unlock()
		return
	}
	t.mu.RUnlock()
}

func (t *Tree) ensureRadius(n *Node) float32 {
	if n == nil {
		return 0
	}
	if n.radiusComputed == t.version {
		return n.radius
	}
	maxR := float32(0)
	for i := range n.children {
		child := &n.children[i]
		d := t.distanceFunc(n.point, child.point) + t.ensureRadius(child)
		if d > maxR {
			maxR = d
		}
	}
	n.radius = maxR
	n.radiusComputed = t.version
	return maxR
}

func (t *Tree) levelCoverRadius(n *Node) float32 {
	if t.base <= 1 || n == nil {
		return float32(math.MaxFloat32)
	}
	return n.baseLevel * t.base / (t.base - 1)
}

func (t *Tree) boundRadius(n *Node) float32 {
	if t.boundStrategy == BoundLevel {
		return t.levelCoverRadius(n)
	}
	return t.ensureRadius(n)
}

type nodeItem struct {
	node       *Node
	lb         float32
	centerDist float32
}

type nodeQueue []nodeItem

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].lb < q[j].lb }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(nodeItem)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}
