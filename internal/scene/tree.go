// Package scene holds the presentation-side structure a viewer builds from
// a record list: the folder tree, the type color palette, scene-space
// positions, and orientation marker placement. It is pure computation with
// no rendering dependencies.
package scene

import (
	"sort"

	"github.com/bhrm-tools/npced/internal/model"
	"github.com/bhrm-tools/npced/internal/util"
)

// PointRef links a tree leaf back to its index in the session record list.
type PointRef struct {
	Index int
	Order int
}

// Node is one folder in the display tree. Children are sorted by name and
// points by order, matching how the editor's tree view lays them out.
type Node struct {
	Name     string
	Children []*Node
	Points   []PointRef
}

// BuildTree arranges records into a folder tree keyed by their slash paths.
// The root node has an empty name; records with an empty path attach to it
// directly.
func BuildTree(points []model.Point) *Node {
	root := &Node{}
	index := map[*Node]map[string]*Node{}

	child := func(n *Node, name string) *Node {
		m := index[n]
		if m == nil {
			m = map[string]*Node{}
			index[n] = m
		}
		if c, ok := m[name]; ok {
			return c
		}
		c := &Node{Name: name}
		m[name] = c
		n.Children = append(n.Children, c)
		return c
	}

	for i, pt := range points {
		node := root
		for _, part := range util.SplitPath(pt.Path) {
			node = child(node, part)
		}
		node.Points = append(node.Points, PointRef{Index: i, Order: pt.Order})
	}

	sortTree(root)
	return root
}

func sortTree(n *Node) {
	sort.Slice(n.Children, func(i, j int) bool { return n.Children[i].Name < n.Children[j].Name })
	sort.SliceStable(n.Points, func(i, j int) bool { return n.Points[i].Order < n.Points[j].Order })
	for _, c := range n.Children {
		sortTree(c)
	}
}

// FolderPaths collects every folder in the tree as a segment slice, parents
// before children. The serializer uses this to keep empty folders alive
// across a save.
func (n *Node) FolderPaths() [][]string {
	var out [][]string
	var walk func(node *Node, prefix []string)
	walk = func(node *Node, prefix []string) {
		for _, c := range node.Children {
			path := append(append([]string{}, prefix...), c.Name)
			out = append(out, path)
			walk(c, path)
		}
	}
	walk(n, nil)
	return out
}

// PointCount returns the number of points in this node and all descendants.
func (n *Node) PointCount() int {
	total := len(n.Points)
	for _, c := range n.Children {
		total += c.PointCount()
	}
	return total
}
