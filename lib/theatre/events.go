package theatre

const (
	EventNameFrame   = "frame"
	EventNameRestore = "restore"
)

// EventListener runs synchronously on the frame goroutine, so it must
// not block.
type EventListener func(theatre *Theatre, data interface{})

type EventFrame struct {
	Scene       string
	CurrentTime float64
	LayersDrawn int
}

type EventRestore struct {
	Tables   int
	Features map[string]bool
}

func (t *Theatre) AddEventListener(event string, callback EventListener) {
	t.listener[event] = append(t.listener[event], callback)
}

func (t *Theatre) invoke(event string, data interface{}) {
	for _, listener := range t.listener[event] {
		listener(t, data)
	}
}
