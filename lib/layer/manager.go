package layer

import "fmt"

// Unordered marks a layer whose sibling order is assigned on attach.
const Unordered = -1

// Patch is a partial update of a layer's display fields. Nil fields are
// left alone. Identity and tree structure cannot be patched.
type Patch struct {
	Name    *string
	Type    *string
	Visible *bool
	Order   *int
	Data    map[string]any
}

// Entry is one element of a flattened traversal.
type Entry struct {
	Layer *Layer
	Depth int
}

// Manager owns the scene tree. It is not safe for concurrent use; the
// host serialises all calls onto its frame loop.
type Manager struct {
	root *Layer

	listener     map[string][]registeredListener
	nextListener ListenerID
}

func NewManager() *Manager {
	root := NewGroup(RootID, "Root")
	root.Order = 0
	return &Manager{
		root:     root,
		listener: make(map[string][]registeredListener),
	}
}

func (m *Manager) Root() *Layer {
	return m.root
}

// AddLayer attaches l under parentID ("" means the root). A layer with
// Unordered (or any negative) order is appended after its siblings, and so
// is an order of 0 when the parent already has children.
func (m *Manager) AddLayer(l *Layer, parentID string) bool {
	if l == nil || l.ID == "" {
		return false
	}
	if parentID == "" {
		parentID = RootID
	}
	parent := m.root.find(parentID)
	if parent == nil {
		return false
	}
	// the id space must stay unique across the attached subtree too
	clash := false
	l.walk(func(n *Layer) {
		if m.root.contains(n.ID) {
			clash = true
		}
	})
	if clash {
		return false
	}

	if l.Order < 0 || (l.Order == 0 && len(parent.Children) > 0) {
		if maxOrder, ok := parent.maxChildOrder(); ok {
			l.Order = maxOrder + 1
		} else {
			l.Order = 0
		}
	}
	parent.attach(l)
	l.walk(func(n *Layer) {
		for _, c := range n.Children {
			c.ParentID = n.ID
		}
	})
	m.invoke(EventNameAdd, EventAdd{Layer: l, ParentID: parent.ID})
	return true
}

func (m *Manager) RemoveLayer(id string) bool {
	if id == RootID {
		return false
	}
	l := m.root.find(id)
	if l == nil {
		return false
	}
	parent := m.root.find(l.ParentID)
	if parent == nil || !parent.detach(l) {
		return false
	}
	m.invoke(EventNameRemove, EventRemove{ID: id, ParentID: parent.ID})
	return true
}

// MoveLayer re-parents id under newParentID. A negative order places the
// layer last. Moves that would create a cycle are rejected and leave the
// tree untouched.
func (m *Manager) MoveLayer(id string, newParentID string, order int) bool {
	if id == RootID {
		return false
	}
	if newParentID == "" {
		newParentID = RootID
	}
	l := m.root.find(id)
	if l == nil {
		return false
	}
	newParent := m.root.find(newParentID)
	if newParent == nil || l.contains(newParentID) {
		return false
	}
	oldParent := m.root.find(l.ParentID)
	if oldParent == nil || !oldParent.detach(l) {
		return false
	}

	if order < 0 {
		maxOrder, _ := newParent.maxChildOrder()
		order = max(0, maxOrder) + 1
	}
	l.Order = order
	newParent.attach(l)
	m.invoke(EventNameReorder, EventReorder{ID: id, ParentID: newParent.ID, Order: order})
	return true
}

func (m *Manager) UpdateLayer(id string, patch Patch) bool {
	l := m.root.find(id)
	if l == nil {
		return false
	}
	if patch.Name != nil {
		l.Name = *patch.Name
	}
	if patch.Type != nil && id != RootID {
		l.Type = *patch.Type
	}
	if patch.Data != nil {
		l.Data = patch.Data
	}
	reordered := false
	if patch.Order != nil && *patch.Order != l.Order {
		l.Order = *patch.Order
		reordered = true
	}
	if patch.Visible != nil {
		m.setVisibility(l, *patch.Visible, true)
	}
	m.invoke(EventNameUpdate, EventUpdate{ID: id, Patch: patch})
	if reordered {
		m.invoke(EventNameReorder, EventReorder{ID: id, ParentID: l.ParentID, Order: l.Order})
	}
	return true
}

// SetLayerVisibility toggles a layer. For groups with recursive set the
// new value is pushed down to every descendant.
func (m *Manager) SetLayerVisibility(id string, visible bool, recursive bool) bool {
	l := m.root.find(id)
	if l == nil {
		return false
	}
	m.setVisibility(l, visible, recursive)
	visibleCopy := visible
	m.invoke(EventNameUpdate, EventUpdate{ID: id, Patch: Patch{Visible: &visibleCopy}})
	return true
}

func (m *Manager) setVisibility(l *Layer, visible bool, recursive bool) {
	if l.IsGroup() && recursive {
		l.walk(func(n *Layer) {
			n.Visible = visible
		})
		return
	}
	l.Visible = visible
}

// ClearAll drops every layer except the root.
func (m *Manager) ClearAll() {
	removed := 0
	for _, c := range m.root.Children {
		c.walk(func(*Layer) { removed++ })
		c.ParentID = ""
	}
	m.root.Children = nil
	m.invoke(EventNameClear, EventClear{Removed: removed})
}

func (m *Manager) FindLayer(id string) *Layer {
	return m.root.find(id)
}

func (m *Manager) FindParent(id string) *Layer {
	l := m.root.find(id)
	if l == nil || l.ParentID == "" {
		return nil
	}
	return m.root.find(l.ParentID)
}

// GetAllLayers flattens the tree depth-first in sibling order. The root
// itself is not part of the result; its children have depth 0. With
// visibleOnly, hidden layers and everything below them are skipped.
func (m *Manager) GetAllLayers(visibleOnly bool) []Entry {
	var out []Entry
	var visit func(l *Layer, depth int)
	visit = func(l *Layer, depth int) {
		for _, c := range l.sortedChildren() {
			if visibleOnly && !c.Visible {
				continue
			}
			out = append(out, Entry{Layer: c, Depth: depth})
			visit(c, depth+1)
		}
	}
	visit(m.root, 0)
	return out
}

// GetRenderableLayers is the visible traversal without group nodes.
func (m *Manager) GetRenderableLayers() []*Layer {
	var out []*Layer
	for _, e := range m.GetAllLayers(true) {
		if !e.Layer.IsGroup() {
			out = append(out, e.Layer)
		}
	}
	return out
}

func (m *Manager) GetLayersByType(typ string) []*Layer {
	return m.FindLayers(func(l *Layer) bool {
		return l.Type == typ
	})
}

func (m *Manager) FindLayers(pred func(*Layer) bool) []*Layer {
	var out []*Layer
	for _, e := range m.GetAllLayers(false) {
		if pred(e.Layer) {
			out = append(out, e.Layer)
		}
	}
	return out
}

// Count returns the number of attached layers, root excluded.
func (m *Manager) Count() int {
	n := -1
	m.root.walk(func(*Layer) { n++ })
	return n
}

// Adopt builds a Manager around an already assembled tree, as produced by
// a document import. The tree is checked, not repaired: a wrong root id,
// an empty or duplicated id, or a ParentID that disagrees with the owning
// node is an error and no Manager is returned.
func Adopt(root *Layer) (*Manager, error) {
	if root == nil {
		return nil, fmt.Errorf("missing root layer")
	}
	if root.ID != RootID {
		return nil, fmt.Errorf("root layer must have id %q, got %q", RootID, root.ID)
	}
	if root.ParentID != "" {
		return nil, fmt.Errorf("root layer cannot have a parent (got %q)", root.ParentID)
	}
	seen := make(map[string]struct{})
	var check func(l *Layer) error
	check = func(l *Layer) error {
		if l.ID == "" {
			return fmt.Errorf("layer %q under %q has no id", l.Name, l.ParentID)
		}
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("duplicate layer id %q", l.ID)
		}
		seen[l.ID] = struct{}{}
		if l.Data == nil {
			l.Data = make(map[string]any)
		}
		for _, c := range l.Children {
			if c == nil {
				return fmt.Errorf("layer %q has a nil child", l.ID)
			}
			if c.ParentID != l.ID {
				return fmt.Errorf("layer %q claims parent %q but is owned by %q", c.ID, c.ParentID, l.ID)
			}
			if err := check(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check(root); err != nil {
		return nil, err
	}
	return &Manager{
		root:     root,
		listener: make(map[string][]registeredListener),
	}, nil
}
