package ds

import (
	art "github.com/plar/go-adaptive-radix-tree"

	"locktable/util"
)

// ReferenceMap is a sequential uint64→int64 map over an adaptive radix
// tree. It is not safe for concurrent use; it exists as the oracle that
// concurrent table runs are compared against.
type ReferenceMap struct {
	tree art.Tree
}

func NewReferenceMap() *ReferenceMap {
	return &ReferenceMap{tree: art.New()}
}

func (m *ReferenceMap) Put(key uint64, val int64) (updated bool) {
	_, updated = m.tree.Insert(util.KeyToBytes(key), val)
	return updated
}

func (m *ReferenceMap) Get(key uint64) (int64, bool) {
	val, ok := m.tree.Search(util.KeyToBytes(key))
	if !ok {
		return 0, false
	}
	return val.(int64), true
}

func (m *ReferenceMap) Size() int {
	return m.tree.Size()
}

// Each visits every key/value pair in ascending key order. Returning false
// from fn stops the walk.
func (m *ReferenceMap) Each(fn func(key uint64, val int64) bool) {
	m.tree.ForEach(func(node art.Node) bool {
		if node.Kind() != art.Leaf {
			return true
		}
		return fn(util.BytesToKey(node.Key()), node.Value().(int64))
	})
}
