package theatre

import (
	"time"
)

type Stats struct {
	FramesRendered uint64  `json:"frames_rendered"`
	LayersDrawn    uint64  `json:"layers_drawn"`
	LastFrame      int     `json:"last_frame_layers"`
	Uptime         float64 `json:"uptime"`
	FPS            uint64  `json:"fps"`
	WsClients      int     `json:"ws_clients"`

	frameCounter uint64
	frameTimer   time.Time
	start        time.Time
}

func NewStats() *Stats {
	s := &Stats{}
	s.start = time.Now()
	s.frameTimer = s.start
	return s
}

func (s *Stats) Update(drawn int) {
	s.FramesRendered++
	s.LayersDrawn += uint64(drawn)
	s.LastFrame = drawn

	s.frameCounter++
	if time.Since(s.frameTimer) > 1*time.Second {
		s.FPS = s.frameCounter
		s.frameCounter = 0
		s.frameTimer = time.Now()
	}

	s.Uptime = float64(time.Since(s.start).Nanoseconds()) / 1e9
}
