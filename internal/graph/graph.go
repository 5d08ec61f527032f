package graph

import "fmt"

// The graph is built sea-of-nodes style: Regions form the control-flow
// skeleton and Nodes are value-producing operations hanging off it. Both are
// created through a per-parse Graph arena so identifiers stay unique and
// strictly increasing within a single parse.

// OpKind identifies the operation a node performs.
type OpKind int

const (
	OpConst OpKind = iota
	OpAdd
	OpSub
	OpMul
	OpLess
	OpGreater
	OpReadInput
	OpReturn
	OpPhi
)

func (k OpKind) String() string {
	switch k {
	case OpConst:
		return "const"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpLess:
		return "lt"
	case OpGreater:
		return "gt"
	case OpReadInput:
		return "read"
	case OpReturn:
		return "return"
	case OpPhi:
		return "phi"
	default:
		return fmt.Sprintf("op(%d)", int(k))
	}
}

// Value is a compile-time constant carried by a node. Arithmetic produces
// integers, comparisons produce booleans.
type Value struct {
	Int    int64
	Bool   bool
	IsBool bool
}

func IntValue(v int64) *Value { return &Value{Int: v} }
func BoolValue(b bool) *Value { return &Value{Bool: b, IsBool: true} }

// Truthy reports whether the value selects the true branch of a condition.
func (v *Value) Truthy() bool {
	if v.IsBool {
		return v.Bool
	}
	return v.Int != 0
}

func (v *Value) String() string {
	if v.IsBool {
		return fmt.Sprintf("%t", v.Bool)
	}
	return fmt.Sprintf("%d", v.Int)
}

// Node is a value-producing operation. Inputs are the operand nodes. For a
// phi node From holds one region per input, the predecessor path that value
// arrives from; for every other node From holds the single region that was
// current when the node was built, kept for traversal and debugging only.
type Node struct {
	ID     int
	Op     OpKind
	Inputs []*Node
	From   []*Region
	Const  *Value

	symbol string
}

// Tag attaches the originating variable name for display. The first tag
// wins; later calls leave the node unchanged.
func (n *Node) Tag(name string) {
	if n.symbol == "" {
		n.symbol = name
	}
}

// Symbol returns the variable name the node was tagged with, if any.
func (n *Node) Symbol() string { return n.symbol }

// Region is a control-flow block. Predecessors are fixed at construction.
// The outgoing sides, output nodes and successor regions, are each settable
// exactly once; a second finalize is a wiring bug and is rejected with an
// InvariantViolation.
type Region struct {
	ID    int
	Label string
	Preds []*Region

	nodes    []*Node
	nodesSet bool
	succs    []*Region
	succsSet bool
}

// InvariantViolation reports an internal graph-construction bug such as
// finalizing a write-once edge list twice.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Reason
}

// FinalizeNodes records the region's output nodes. Callable once.
func (r *Region) FinalizeNodes(nodes []*Node) error {
	if r.nodesSet {
		return &InvariantViolation{Reason: fmt.Sprintf("output nodes of region r%d finalized twice", r.ID)}
	}
	r.nodes = nodes
	r.nodesSet = true
	return nil
}

// FinalizeSuccessors records the region's successor regions. Callable once.
func (r *Region) FinalizeSuccessors(succs []*Region) error {
	if r.succsSet {
		return &InvariantViolation{Reason: fmt.Sprintf("successors of region r%d finalized twice", r.ID)}
	}
	r.succs = succs
	r.succsSet = true
	return nil
}

// Nodes returns the finalized output nodes; ok is false while unset.
func (r *Region) Nodes() (nodes []*Node, ok bool) {
	return r.nodes, r.nodesSet
}

// Successors returns the finalized successor regions; ok is false while unset.
func (r *Region) Successors() (succs []*Region, ok bool) {
	return r.succs, r.succsSet
}

// Graph is the per-parse arena. A single counter feeds both node and region
// identifiers so no two entities of any kind share one.
type Graph struct {
	nextID int
}

func New() *Graph {
	return &Graph{}
}

func (g *Graph) allocID() int {
	id := g.nextID
	g.nextID++
	return id
}

// NewRegion creates a region with the given predecessors. The new region is
// not linked as anyone's successor; that wiring is the caller's job.
func (g *Graph) NewRegion(label string, preds ...*Region) *Region {
	return &Region{
		ID:    g.allocID(),
		Label: label,
		Preds: preds,
	}
}

// NewNode creates a non-phi node in the given region.
func (g *Graph) NewNode(op OpKind, in *Region, inputs ...*Node) *Node {
	return &Node{
		ID:     g.allocID(),
		Op:     op,
		Inputs: inputs,
		From:   []*Region{in},
	}
}

// NewConst creates a literal node carrying a known value. It has no inputs,
// which is what folding relies on.
func (g *Graph) NewConst(v *Value, in *Region) *Node {
	n := g.NewNode(OpConst, in)
	n.Const = v
	return n
}

// NewPhi creates a merge node. inputs[i] is the value arriving from from[i].
func (g *Graph) NewPhi(inputs []*Node, from []*Region) *Node {
	return &Node{
		ID:     g.allocID(),
		Op:     OpPhi,
		Inputs: inputs,
		From:   from,
	}
}
