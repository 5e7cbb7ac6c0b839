package scene

import (
	"fmt"
	"reflect"

	"github.com/go-drift/scene/pkg/errors"
)

// State is the lifecycle state of a node.
type State uint8

const (
	// StateLive is the state of a node that can be attached and mutated.
	StateLive State = iota
	// StateDestroying is the state of a node whose children are being detached.
	StateDestroying
	// StateDestroyed is the final state. The node must not be used again.
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateLive:
		return "live"
	case StateDestroying:
		return "destroying"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Node is an object of the scene graph.
type Node interface {
	fmt.Stringer
	ID() uint64
	Name() string
	SetName(name string)
	node() *nodeBase
	teardown()
}

var nextNodeID uint64

// nodeBase holds the ownership state shared by every node.
type nodeBase struct {
	self    Node
	id      uint64
	name    string
	parents []*Element
	handles int
	state   State
	frozen  bool
}

func (n *nodeBase) init(self Node) {
	nextNodeID++
	n.self = self
	n.id = nextNodeID
}

func (n *nodeBase) node() *nodeBase { return n }

// ID returns a process-unique identifier, used in diagnostics.
func (n *nodeBase) ID() uint64 { return n.id }

// Name returns the debug name set with SetName.
func (n *nodeBase) Name() string { return n.name }

// SetName sets a debug name shown in diagnostics.
func (n *nodeBase) SetName(name string) { n.name = name }

// ParentCount returns the number of parent lists holding the node. A node
// added twice to the same parent counts twice.
func (n *nodeBase) ParentCount() int { return len(n.parents) }

// Parents returns the elements holding the node, one entry per attachment.
func (n *nodeBase) Parents() []*Element {
	out := make([]*Element, len(n.parents))
	copy(out, n.parents)
	return out
}

// HandleCount returns the number of outstanding handles.
func (n *nodeBase) HandleCount() int { return n.handles }

// State returns the lifecycle state.
func (n *nodeBase) State() State { return n.state }

// Destroyed reports whether destruction has started.
func (n *nodeBase) Destroyed() bool { return n.state != StateLive }

// Frozen reports whether the node is a constant.
func (n *nodeBase) Frozen() bool { return n.frozen }

// Freeze turns the node into a constant. Every later mutation is rejected
// with errors.ErrConstant.
func (n *nodeBase) Freeze() { n.frozen = true }

// label returns the diagnostic name of the node.
func (n *nodeBase) label(kind string) string {
	if n.name != "" {
		return fmt.Sprintf("%s#%d(%s)", kind, n.id, n.name)
	}
	return fmt.Sprintf("%s#%d", kind, n.id)
}

// checkMutable reports an error when the node cannot be modified.
func (n *nodeBase) checkMutable(op string) error {
	if n.frozen {
		return errors.Report(&errors.SceneError{
			Op:       op,
			Kind:     errors.KindUsage,
			Severity: errors.SeverityFatal,
			Object:   n.self.String(),
			Err:      errors.ErrConstant,
		})
	}
	if n.state != StateLive {
		return errors.Fail(op, errors.KindOwnership, n.self, errors.ErrDestroyed)
	}
	return nil
}

// removeParent drops one attachment to p.
func (n *nodeBase) removeParent(p *Element) bool {
	for i, q := range n.parents {
		if q == p {
			n.parents = append(n.parents[:i], n.parents[i+1:]...)
			return true
		}
	}
	return false
}

// maybeDestroy destroys the node once it has neither parents nor handles.
func (n *nodeBase) maybeDestroy() {
	if n.state != StateLive || len(n.parents) > 0 || n.handles > 0 {
		return
	}
	n.state = StateDestroying
	n.self.teardown()
	n.state = StateDestroyed
}

// baseOf returns the node state of n, or nil for nil and typed-nil nodes.
func baseOf(n Node) *nodeBase {
	if n == nil {
		return nil
	}
	if v := reflect.ValueOf(n); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}
	return n.node()
}

// Handle is an external reference that keeps a node alive while it is
// detached from the graph.
type Handle[T Node] struct {
	node     T
	released bool
}

// Retain returns a new handle on n, incrementing its handle count.
func Retain[T Node](n T) (*Handle[T], error) {
	const op = "scene.Retain"
	b := baseOf(n)
	if b == nil {
		return nil, errors.Fail(op, errors.KindUsage, nil, errors.ErrNilNode)
	}
	if b.state != StateLive {
		return nil, errors.Fail(op, errors.KindOwnership, n, errors.ErrDestroyed)
	}
	b.handles++
	return &Handle[T]{node: n}, nil
}

// Get returns the node. It returns the zero value once the handle is released.
func (h *Handle[T]) Get() T {
	var zero T
	if h == nil || h.released {
		return zero
	}
	return h.node
}

// Released reports whether Release was called.
func (h *Handle[T]) Released() bool {
	return h == nil || h.released
}

// Release drops the handle. The node is destroyed if it has no parents and
// no other handles. Releasing twice is a no-op.
func (h *Handle[T]) Release() {
	if h == nil || h.released {
		return
	}
	h.released = true
	b := h.node.node()
	b.handles--
	b.maybeDestroy()
}
