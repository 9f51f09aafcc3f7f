package naming

// Node is a hierarchy record with its stored derived names. Children are
// the loaded records directly below it.
type Node struct {
	Kind     Kind
	ID       uint
	Segment  string
	Override *string

	// IsVariety is set by the client on crossings and derived below.
	IsVariety bool

	FullName       string
	DisplayName    string
	CultivarID     uint
	CultivarName   string
	PlantGroupName string

	Children []*Node
}

// Context is what a node inherits from its parent.
type Context struct {
	FullName       string
	IsVariety      bool
	CultivarID     uint
	CultivarName   string
	PlantGroupName string
}

// Cascade recomputes the derived fields of root and every node below it,
// given the context of root's parent. It returns the nodes whose derived
// fields changed. Running it twice returns nothing the second time.
func Cascade(root *Node, parent Context) []*Node {
	var res []*Node
	var walk func(n *Node, ctx Context)
	walk = func(n *Node, ctx Context) {
		if n.resolve(ctx) {
			res = append(res, n)
		}
		next := n.Context(ctx)
		for _, c := range n.Children {
			walk(c, next)
		}
	}
	walk(root, parent)
	return res
}

// Context returns the context that children of n inherit, given the
// context of n's parent.
func (n *Node) Context(parent Context) Context {
	switch n.Kind {
	case Crossing, Lot:
		return Context{FullName: n.FullName, IsVariety: n.IsVariety}
	case Cultivar:
		return Context{
			FullName:     n.FullName,
			IsVariety:    n.IsVariety,
			CultivarID:   n.ID,
			CultivarName: n.DisplayName,
		}
	case PlantGroup:
		res := parent
		res.FullName = n.FullName
		res.IsVariety = n.IsVariety
		res.PlantGroupName = n.DisplayName
		return res
	default:
		return parent
	}
}

// resolve updates the derived fields of n and reports whether anything
// changed.
func (n *Node) resolve(ctx Context) bool {
	old := *n

	switch n.Kind {
	case Crossing:
		n.FullName = n.Segment
		n.DisplayName = n.FullName
	case Lot, Cultivar:
		n.FullName = JoinName(ctx.FullName, n.Segment)
		n.DisplayName = DisplayName(n.FullName, n.Override)
		n.IsVariety = ctx.IsVariety
	case PlantGroup:
		n.FullName = JoinName(ctx.FullName, n.Segment)
		n.DisplayName = DisplayName(n.FullName, n.Override)
		n.IsVariety = ctx.IsVariety
		n.CultivarName = ctx.CultivarName
	case Plant:
		n.IsVariety = ctx.IsVariety
		n.CultivarID = ctx.CultivarID
		n.CultivarName = ctx.CultivarName
		n.PlantGroupName = ctx.PlantGroupName
	case Tree:
		n.CultivarID = ctx.CultivarID
		n.CultivarName = ctx.CultivarName
	}

	return old.FullName != n.FullName ||
		old.DisplayName != n.DisplayName ||
		old.IsVariety != n.IsVariety ||
		old.CultivarID != n.CultivarID ||
		old.CultivarName != n.CultivarName ||
		old.PlantGroupName != n.PlantGroupName
}

// Walk calls fn for n and every node below it.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
