package geowire

import (
	"math"

	"github.com/beetlebugorg/geowire/pkg/geos"
)

// tieBreakEpsilon is the distance nudge used only by nearest-all queries.
//
// The kernel's nearest search prunes subtrees once a candidate distance is
// established, so after the first item at the true minimum it would stop
// exploring branches that could hold an equally close item. Reporting a tied
// candidate's distance as minimum+epsilon keeps those branches alive. The
// nudge is applied only to the value fed back to the search's pruning
// comparator; the running minimum and the stored results always use the true
// distance. (Technique taken from shapely.)
const tieBreakEpsilon = 1e-6

// Index provides queries over a packed spatial index of geometries.
//
// The index is built once from a fixed geometry slice and holds only
// positions into it; the slice remains the owner of every geometry and must
// outlive the index.
type Index struct {
	tree  *geos.STRtree
	geoms []geos.Geometry
}

// BuildIndex bulk-loads an index over geoms. nodeCapacity selects the tree
// fanout; values below 2 use geos.DefaultNodeCapacity. Empty geometries are
// indexed but never returned by queries (they have no extent).
func BuildIndex(geoms []geos.Geometry, nodeCapacity int) *Index {
	tree := geos.NewSTRtree(nodeCapacity)
	for i, g := range geoms {
		// Insert never fails before the tree is built.
		_ = tree.Insert(g.Envelope(), i)
	}
	tree.Build()
	return &Index{tree: tree, geoms: geoms}
}

// Count returns the number of geometries the index was built over.
func (ix *Index) Count() int {
	return len(ix.geoms)
}

// Query returns the positions of all stored geometries whose bounding boxes
// may interact with the query geometry's bounding box. The results are
// candidates in traversal order, not exact matches and not sorted; callers
// needing exactness run a real predicate over them.
func (ix *Index) Query(query geos.Geometry) []int {
	var matches []int
	ix.tree.Query(query.Envelope(), func(item int) {
		matches = append(matches, item)
	})
	return matches
}

// NearestOne returns the position of the stored geometry closest to the
// query geometry, and the number of stored geometries tied at that distance.
// Among ties the first one found during traversal wins, which is not
// necessarily the lowest position. found is false when the index is empty.
func (ix *Index) NearestOne(query geos.Geometry) (pos int, matches int, found bool, err error) {
	s := nearestState{index: ix, query: query}
	if err := s.search(); err != nil {
		return 0, 0, false, err
	}
	if len(s.matches) == 0 {
		return 0, 0, false, nil
	}
	return s.matches[0], len(s.matches), true, nil
}

// NearestAll returns the positions of every stored geometry tied at the
// global minimum distance to the query geometry, independent of traversal
// order.
func (ix *Index) NearestAll(query geos.Geometry) ([]int, error) {
	s := nearestState{index: ix, query: query, allMatches: true}
	if err := s.search(); err != nil {
		return nil, err
	}
	return s.matches, nil
}

// nearestState accumulates nearest candidates during one search.
//
// Every candidate strictly below the running minimum resets the result set;
// a candidate exactly at the minimum is appended; anything above is
// discarded. In allMatches mode the distance reported back to the kernel's
// pruning comparator for an exact tie is nudged by tieBreakEpsilon.
type nearestState struct {
	index      *Index
	query      geos.Geometry
	allMatches bool
	minDist    float64
	matches    []int
}

func (s *nearestState) search() error {
	s.minDist = math.Inf(1)
	s.matches = s.matches[:0]
	if s.query == nil || s.query.IsEmpty() {
		if s.index.Count() == 0 {
			return nil
		}
		// The kernel cannot measure distance from an empty query; the tree
		// would never invoke the callback for a null envelope, so the error
		// is raised here.
		_, err := geos.Distance(s.query, s.index.geoms[0])
		return &ErrDistanceComputation{Index: -1, Err: err}
	}
	_, _, err := s.index.tree.NearestGeneric(s.query.Envelope(), s.distanceTo)
	return err
}

// distanceTo is the kernel's item-distance callback.
func (s *nearestState) distanceTo(item int) (float64, error) {
	dist, err := geos.Distance(s.query, s.index.geoms[item])
	if err != nil {
		return 0, &ErrDistanceComputation{Index: item, Err: err}
	}
	if dist < s.minDist {
		s.minDist = dist
		s.matches = s.matches[:0]
	}
	if dist == s.minDist {
		s.matches = append(s.matches, item)
		if s.allMatches {
			return dist + tieBreakEpsilon, nil
		}
	}
	return dist, nil
}
