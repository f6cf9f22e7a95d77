package layer

const (
	EventNameAdd     = "add"
	EventNameRemove  = "remove"
	EventNameUpdate  = "update"
	EventNameReorder = "reorder"
	EventNameClear   = "clear"
)

type EventListener func(m *Manager, data interface{})

type ListenerID uint64

type EventAdd struct {
	Layer    *Layer
	ParentID string
}

type EventRemove struct {
	ID       string
	ParentID string
}

type EventUpdate struct {
	ID    string
	Patch Patch
}

type EventReorder struct {
	ID       string
	ParentID string
	Order    int
}

type EventClear struct {
	Removed int
}

type registeredListener struct {
	id ListenerID
	fn EventListener
}

// On registers a listener for one of the event names above. The returned
// id is needed to unregister it again.
func (m *Manager) On(event string, callback EventListener) ListenerID {
	m.nextListener++
	id := m.nextListener
	m.listener[event] = append(m.listener[event], registeredListener{id: id, fn: callback})
	return id
}

func (m *Manager) Off(event string, id ListenerID) bool {
	listeners := m.listener[event]
	for i, l := range listeners {
		if l.id == id {
			m.listener[event] = append(listeners[:i:i], listeners[i+1:]...)
			return true
		}
	}
	return false
}

// invoke runs listeners synchronously; the engine has a single owner
// goroutine and observers expect to see the change before the next tick.
func (m *Manager) invoke(event string, data interface{}) {
	for _, l := range m.listener[event] {
		l.fn(m, data)
	}
}
