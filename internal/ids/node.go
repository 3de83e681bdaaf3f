package ids

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is a typed record in the schema tree. Fields hold scalars,
// nested Nodes, NodeArrays or FieldArrays. The parent references are
// non-owning and exist only for upward traversal; ownership is
// strictly top-down.
type Node struct {
	name        string
	loc         string // explicit location for standalone nodes
	root        bool
	globalTime  float64
	parentNode  *Node
	parentArray *NodeArray
	fields      map[string]any
}

// NodeArray is an ordered, resizable sequence of Nodes of one element
// type, itself addressable through its parent Node.
type NodeArray struct {
	name   string
	parent *Node
	elems  []*Node
}

// NewRoot creates the absolute tree root (the dd-like container that
// IDS nodes hang off).
func NewRoot() *Node {
	return &Node{root: true, fields: map[string]any{}}
}

// NewNode creates a standalone node at the given canonical schema
// location, e.g. "equilibrium.time_slice[:].profiles_1d".
func NewNode(location string) *Node {
	segs := strings.Split(location, ".")
	name := strings.TrimSuffix(segs[len(segs)-1], "[:]")
	return &Node{name: name, loc: location, fields: map[string]any{}}
}

func (n *Node) Name() string  { return n.name }
func (n *Node) IsRoot() bool  { return n.root }
func (a *NodeArray) Len() int { return len(a.elems) }

// At returns element i of the array.
func (a *NodeArray) At(i int) *Node { return a.elems[i] }

// Elements returns the backing element slice (shared, not copied).
func (a *NodeArray) Elements() []*Node { return a.elems }

// up walks one schema segment toward the root. A NodeArray and its
// owning field count as a single segment.
func (n *Node) up() *Node {
	if n.parentArray != nil {
		return n.parentArray.parent
	}
	return n.parentNode
}

// Location returns the canonical schema location of the node, with
// array hops rendered as [:].
func (n *Node) Location() string {
	if n.root {
		return ""
	}
	if n.parentArray != nil {
		return n.parentArray.Location() + "[:]"
	}
	if n.parentNode != nil {
		return locJoin(n.parentNode.Location(), n.name)
	}
	if n.loc != "" {
		return n.loc
	}
	return n.name
}

func (a *NodeArray) Location() string {
	if a.parent != nil {
		return locJoin(a.parent.Location(), a.name)
	}
	return a.name
}

func locJoin(parent, field string) string {
	if parent == "" {
		return field
	}
	return parent + "." + field
}

// Path returns the fully indexed path of the node from the tree root.
// An element whose identity cannot be found in its owning array (a
// standalone structure) is rendered with index 0.
func (n *Node) Path() string {
	if n.root {
		return ""
	}
	if n.parentArray != nil {
		return fmt.Sprintf("%s[%d]", n.parentArray.Path(), n.parentArray.indexOf(n))
	}
	if n.parentNode != nil {
		return locJoin(n.parentNode.Path(), n.name)
	}
	if n.loc != "" {
		return strings.ReplaceAll(n.loc, "[:]", "[0]")
	}
	return n.name
}

func (a *NodeArray) Path() string {
	if a.parent != nil {
		return locJoin(a.parent.Path(), a.name)
	}
	return a.name
}

func (a *NodeArray) indexOf(n *Node) int {
	for i, e := range a.elems {
		if e == n {
			return i
		}
	}
	return 0
}

// Top walks the parent references upward and returns the nearest
// enclosing top-level IDS container. Calling it on the absolute root
// fails with TopLevelReachedError.
func (n *Node) Top() (*Node, error) {
	if n.root {
		return nil, TopLevelReachedError{Path: n.Path()}
	}
	cur := n
	for {
		up := cur.up()
		if up == nil || up.root {
			return cur, nil
		}
		cur = up
	}
}

// TopRoot walks all the way to the absolute tree root, or to the
// topmost ancestor for a standalone subtree.
func (n *Node) TopRoot() *Node {
	cur := n
	for {
		up := cur.up()
		if up == nil {
			return cur
		}
		cur = up
	}
}

// Get returns the raw value of a field and whether it is set.
func (n *Node) Get(field string) (any, bool) {
	v, ok := n.fields[field]
	return v, ok
}

// Child returns the nested Node stored at field, or nil.
func (n *Node) Child(field string) *Node {
	if v, ok := n.fields[field]; ok {
		if c, ok := v.(*Node); ok {
			return c
		}
	}
	return nil
}

// EnsureChild returns the nested Node stored at field, creating an
// empty one with correct parent linkage when unset.
func (n *Node) EnsureChild(field string) *Node {
	if c := n.Child(field); c != nil {
		return c
	}
	c := &Node{name: field, parentNode: n, fields: map[string]any{}}
	n.fields[field] = c
	return c
}

// StructArray returns the NodeArray stored at field, or nil.
func (n *Node) StructArray(field string) *NodeArray {
	if v, ok := n.fields[field]; ok {
		if a, ok := v.(*NodeArray); ok {
			return a
		}
	}
	return nil
}

// EnsureStructArray returns the NodeArray stored at field, creating an
// empty one when unset.
func (n *Node) EnsureStructArray(field string) *NodeArray {
	if a := n.StructArray(field); a != nil {
		return a
	}
	a := &NodeArray{name: field, parent: n}
	n.fields[field] = a
	return a
}

// Array returns the FieldArray stored at field, or nil.
func (n *Node) Array(field string) *FieldArray {
	if v, ok := n.fields[field]; ok {
		if a, ok := v.(*FieldArray); ok {
			return a
		}
	}
	return nil
}

// Floats returns the values of the FieldArray stored at field, or nil.
func (n *Node) Floats(field string) []float64 {
	if a := n.Array(field); a != nil {
		return a.Values()
	}
	return nil
}

// Float returns the scalar float stored at field.
func (n *Node) Float(field string) (float64, bool) {
	if v, ok := n.fields[field]; ok {
		switch x := v.(type) {
		case float64:
			return x, true
		case int:
			return float64(x), true
		}
	}
	return 0, false
}

// Str returns the string stored at field.
func (n *Node) Str(field string) (string, bool) {
	if v, ok := n.fields[field]; ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

// Resize grows or shrinks the array to n elements. New elements are
// default-constructed with their parent reference pointing at the
// array; shrinking discards trailing elements.
func (a *NodeArray) Resize(n int) {
	for len(a.elems) < n {
		a.elems = append(a.elems, &Node{parentArray: a, fields: map[string]any{}})
	}
	if n < len(a.elems) {
		a.elems = a.elems[:n]
	}
}

// Condition is one (sub-path, value) equality requirement for
// ResizeWhere.
type Condition struct {
	Path  string
	Value any
}

// ResizeWhere scans the array for the unique element whose sub-paths
// all equal the given values. It returns the match if exactly one
// exists, appends and returns a fresh element with the sub-paths
// pre-set if none does, and fails with AmbiguousMatchError if more
// than one matches.
func (a *NodeArray) ResizeWhere(conds ...Condition) (*Node, error) {
	var match *Node
	matches := 0
	for _, e := range a.elems {
		all := true
		for _, c := range conds {
			v, ok := e.getAtPath(c.Path)
			if !ok || !valueEqual(v, c.Value) {
				all = false
				break
			}
		}
		if all {
			match = e
			matches++
		}
	}
	if matches > 1 {
		return nil, AmbiguousMatchError{Path: a.Path(), Matches: matches}
	}
	if matches == 1 {
		return match, nil
	}
	a.Resize(len(a.elems) + 1)
	fresh := a.elems[len(a.elems)-1]
	for _, c := range conds {
		if err := fresh.setAtPath(c.Path, c.Value); err != nil {
			return nil, err
		}
	}
	return fresh, nil
}

func valueEqual(a, b any) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	}
	return 0, false
}

func (n *Node) getAtPath(path string) (any, bool) {
	segs, err := parsePath(path)
	if err != nil {
		return nil, false
	}
	var cur any = n
	for _, s := range segs {
		node, ok := cur.(*Node)
		if !ok {
			return nil, false
		}
		v, ok := node.fields[s.name]
		if !ok {
			return nil, false
		}
		if s.hasIdx {
			arr, ok := v.(*NodeArray)
			if !ok || s.idx >= arr.Len() {
				return nil, false
			}
			cur = arr.At(s.idx)
		} else {
			cur = v
		}
	}
	return cur, true
}

func (n *Node) setAtPath(path string, value any) error {
	segs, err := parsePath(path)
	if err != nil {
		return err
	}
	cur := n
	for _, s := range segs[:len(segs)-1] {
		if s.hasIdx {
			return fmt.Errorf("ids: array index not supported in condition path %q", path)
		}
		cur = cur.EnsureChild(s.name)
	}
	return cur.Set(segs[len(segs)-1].name, value)
}

type pathSeg struct {
	name   string
	idx    int
	hasIdx bool
}

func parsePath(path string) ([]pathSeg, error) {
	parts := strings.Split(path, ".")
	segs := make([]pathSeg, 0, len(parts))
	for _, p := range parts {
		if i := strings.IndexByte(p, '['); i >= 0 {
			if !strings.HasSuffix(p, "]") {
				return nil, fmt.Errorf("ids: malformed path segment %q", p)
			}
			idx, err := strconv.Atoi(p[i+1 : len(p)-1])
			if err != nil {
				return nil, fmt.Errorf("ids: malformed index in segment %q", p)
			}
			segs = append(segs, pathSeg{name: p[:i], idx: idx, hasIdx: true})
		} else {
			segs = append(segs, pathSeg{name: p})
		}
	}
	return segs, nil
}

// At resolves a fully indexed path from root, returning whatever value
// lives there (*Node, *NodeArray, *FieldArray or a scalar).
func At(root *Node, path string) (any, error) {
	segs, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	var cur any = root
	for _, s := range segs {
		node, ok := cur.(*Node)
		if !ok {
			return nil, fmt.Errorf("ids: %q: cannot descend into %s", path, s.name)
		}
		v, ok := node.fields[s.name]
		if !ok {
			return nil, fmt.Errorf("ids: %q: field %s is not set", path, s.name)
		}
		if s.hasIdx {
			arr, ok := v.(*NodeArray)
			if !ok {
				return nil, fmt.Errorf("ids: %q: %s is not an array of structures", path, s.name)
			}
			if s.idx < 0 || s.idx >= arr.Len() {
				return nil, fmt.Errorf("ids: %q: index %d out of range (len %d)", path, s.idx, arr.Len())
			}
			cur = arr.At(s.idx)
		} else {
			cur = v
		}
	}
	return cur, nil
}
