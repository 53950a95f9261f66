package quarkgl

// Node is one element of a transform hierarchy.
//
// A node's world transform is its parent's world transform multiplied by Local.
// Nodes that reference a mesh slot (MeshID >= 0) push their world transform into
// the scene on Apply; grouping nodes use MeshID -1.
type Node struct {
	Name     string
	Local    Mat4
	MeshID   int
	Children []*Node
}

// NewNode returns a grouping node with an identity local transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Local: Mat4Identity(), MeshID: -1}
}

// NewMeshNode returns a node bound to a scene mesh slot.
func NewMeshNode(name string, meshID int, local Mat4) *Node {
	return &Node{Name: name, Local: local, MeshID: meshID}
}

// Add appends children and returns n for chaining.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Find returns the first node named name in depth-first order.
func (n *Node) Find(name string) *Node {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}

// Apply composes world transforms below parent and writes them into the scene.
func (n *Node) Apply(s *Scene, parent Mat4) {
	n.Walk(parent, func(node *Node, world Mat4) {
		if node.MeshID >= 0 {
			s.UpdateMeshTransform(node.MeshID, world)
		}
	})
}

// Walk visits every node with its composed world transform, parents first.
func (n *Node) Walk(parent Mat4, fn func(node *Node, world Mat4)) {
	if n == nil {
		return
	}
	if parent == (Mat4{}) {
		parent = Mat4Identity()
	}
	local := n.Local
	if local == (Mat4{}) {
		local = Mat4Identity()
	}
	world := Mat4Mul(parent, local)
	fn(n, world)
	for _, c := range n.Children {
		c.Walk(world, fn)
	}
}

// Transform chains fixed-function style operations: each call post-multiplies,
// so Translate(...).RotateDeg(...).Scale(...) reads in glTranslate/glRotate/
// glScale order.
type Transform struct {
	m Mat4
}

// Identity starts a new transform chain.
func Identity() Transform { return Transform{m: Mat4Identity()} }

func (t Transform) Translate(x, y, z Scalar) Transform {
	return Transform{m: Mat4Mul(t.m, Mat4Translate(V3(x, y, z)))}
}

func (t Transform) RotateDeg(deg, x, y, z Scalar) Transform {
	return Transform{m: Mat4Mul(t.m, Mat4RotateDeg(deg, V3(x, y, z)))}
}

func (t Transform) Scale(x, y, z Scalar) Transform {
	return Transform{m: Mat4Mul(t.m, Mat4Scale(V3(x, y, z)))}
}

// Mat4 returns the accumulated matrix.
func (t Transform) Mat4() Mat4 {
	if t.m == (Mat4{}) {
		return Mat4Identity()
	}
	return t.m
}
