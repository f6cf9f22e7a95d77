package layer

import (
	"crypto/rand"
	"encoding/hex"
	"slices"
)

const (
	RootID    = "root"
	TypeGroup = "group"

	// ProgressKey is stashed in Data while an animated layer is being drawn.
	ProgressKey = "animationProgress"
)

// Layer is one node of the scene tree. A layer exclusively owns its
// children; ParentID is a plain back-reference that the Manager rewrites
// on every attach and detach.
type Layer struct {
	ID       string
	Name     string
	Type     string
	Visible  bool
	Order    int
	ParentID string
	Children []*Layer
	Data     map[string]any
}

// New makes a detached, visible layer. An empty id is replaced by a random one.
func New(id string, name string, typ string, data map[string]any) *Layer {
	if id == "" {
		id = randomID()
	}
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		ID:      id,
		Name:    name,
		Type:    typ,
		Visible: true,
		Order:   Unordered,
		Data:    data,
	}
}

func NewGroup(id string, name string) *Layer {
	return New(id, name, TypeGroup, nil)
}

func (l *Layer) IsGroup() bool {
	return l.Type == TypeGroup
}

func (l *Layer) maxChildOrder() (int, bool) {
	if len(l.Children) == 0 {
		return 0, false
	}
	m := l.Children[0].Order
	for _, c := range l.Children[1:] {
		if c.Order > m {
			m = c.Order
		}
	}
	return m, true
}

func (l *Layer) attach(child *Layer) {
	child.ParentID = l.ID
	l.Children = append(l.Children, child)
}

func (l *Layer) detach(child *Layer) bool {
	idx := slices.Index(l.Children, child)
	if idx < 0 {
		return false
	}
	l.Children = slices.Delete(l.Children, idx, idx+1)
	if len(l.Children) == 0 {
		l.Children = nil
	}
	child.ParentID = ""
	return true
}

// sortedChildren returns the children in sibling order without touching
// the owned slice.
func (l *Layer) sortedChildren() []*Layer {
	out := slices.Clone(l.Children)
	slices.SortStableFunc(out, func(a, b *Layer) int {
		return a.Order - b.Order
	})
	return out
}

func (l *Layer) find(id string) *Layer {
	if l.ID == id {
		return l
	}
	for _, c := range l.Children {
		if found := c.find(id); found != nil {
			return found
		}
	}
	return nil
}

func (l *Layer) contains(id string) bool {
	return l.find(id) != nil
}

func (l *Layer) walk(fn func(*Layer)) {
	fn(l)
	for _, c := range l.Children {
		c.walk(fn)
	}
}

func randomID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
