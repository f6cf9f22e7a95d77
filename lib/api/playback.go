package api

import (
	"encoding/json"
	"net/http"

	"github.com/tallyframe/tallyframe/lib/theatre"
)

type PlaybackState struct {
	State       string  `json:"state" example:"playing"`
	CurrentTime float64 `json:"currentTime" example:"1250"`
	Duration    float64 `json:"duration" example:"4200"`
	Speed       float64 `json:"speed" example:"1"`
	Loop        bool    `json:"loop"`
}

type SeekReq struct {
	Time     *float64 `json:"time,omitempty" example:"1500"`
	Progress *float64 `json:"progress,omitempty" example:"0.5"`
}

type PlaybackSettingsReq struct {
	Speed *float64 `json:"speed,omitempty" example:"2"`
	Loop  *bool    `json:"loop,omitempty"`
}

// playbackState reads the chart timeline. It must run on the frame loop.
func playbackState(t *theatre.Theatre) PlaybackState {
	tl := t.Chart.Timeline
	return PlaybackState{
		State:       tl.State().String(),
		CurrentTime: tl.CurrentTime(),
		Duration:    tl.Duration(),
		Speed:       tl.Speed(),
		Loop:        tl.Loop(),
	}
}

// @Summary	Current playback state of the chart
// @Router		/api/state [get]
// @Tags		playback
// @Produce	json
// @Success	200	{object}	PlaybackState
func (a *Api) getState(w http.ResponseWriter, req *http.Request) {
	var st PlaybackState
	if err := a.do(req, func() { st = playbackState(a.mixer.Theatre) }); err != nil {
		a.unavailable(w, err)
		return
	}
	writeJSON(w, st)
}

// @Summary	Play, pause or stop every scene
// @Router		/api/playback/{action} [post]
// @Tags		playback
// @Param		action	path	string	true	"play, pause or stop"	Enums(play, pause, stop)
// @Produce	json
// @Success	200	{object}	PlaybackState
// @Failure	400	{string}	string	"Unknown action"
func (a *Api) handlePlayback(w http.ResponseWriter, req *http.Request) {
	action := req.PathValue("action")
	var fn func(*theatre.Theatre)
	switch action {
	case "play":
		fn = (*theatre.Theatre).Play
	case "pause":
		fn = (*theatre.Theatre).Pause
	case "stop":
		fn = (*theatre.Theatre).Stop
	default:
		reject(w, "playback", http.StatusBadRequest, "unknown playback action %q", action)
		return
	}

	var st PlaybackState
	err := a.do(req, func() {
		fn(a.mixer.Theatre)
		st = playbackState(a.mixer.Theatre)
	})
	if err != nil {
		a.unavailable(w, err)
		return
	}
	writeJSON(w, st)
}

// @Summary	Change playback speed or looping
// @Router		/api/playback [put]
// @Tags		playback
// @Param		settings	body	PlaybackSettingsReq	true	"Settings to change"
// @Accept		json
// @Produce	json
// @Success	200	{object}	PlaybackState
// @Failure	400	{string}	string	"Invalid settings"
func (a *Api) handlePlaybackSettings(w http.ResponseWriter, req *http.Request) {
	var settings PlaybackSettingsReq
	if err := json.NewDecoder(req.Body).Decode(&settings); err != nil {
		reject(w, "playback", http.StatusBadRequest, "could not decode json request: %s", err)
		return
	}

	var st PlaybackState
	var setErr error
	err := a.do(req, func() {
		if settings.Speed != nil {
			setErr = a.mixer.Theatre.SetSpeed(*settings.Speed)
			if setErr != nil {
				return
			}
		}
		if settings.Loop != nil {
			a.mixer.Theatre.SetLoop(*settings.Loop)
		}
		st = playbackState(a.mixer.Theatre)
	})
	if err != nil {
		a.unavailable(w, err)
		return
	}
	if setErr != nil {
		reject(w, "playback", http.StatusBadRequest, "%s", setErr)
		return
	}
	writeJSON(w, st)
}

// @Summary	Seek every scene to a time or a fraction of the chart duration
// @Router		/api/seek [post]
// @Tags		playback
// @Param		seek	body	SeekReq	true	"Exactly one of time (ms) or progress (0..1)"
// @Accept		json
// @Produce	json
// @Success	200	{object}	PlaybackState
// @Failure	400	{string}	string	"Could not decode json request"
func (a *Api) handleSeek(w http.ResponseWriter, req *http.Request) {
	var seek SeekReq
	if err := json.NewDecoder(req.Body).Decode(&seek); err != nil {
		reject(w, "seek", http.StatusBadRequest, "could not decode json request: %s", err)
		return
	}
	if (seek.Time == nil) == (seek.Progress == nil) {
		reject(w, "seek", http.StatusBadRequest, "exactly one of time or progress must be given")
		return
	}

	var st PlaybackState
	err := a.do(req, func() {
		if seek.Time != nil {
			a.mixer.Theatre.SeekTo(*seek.Time)
		} else {
			a.mixer.Theatre.SeekToProgress(*seek.Progress)
		}
		st = playbackState(a.mixer.Theatre)
	})
	if err != nil {
		a.unavailable(w, err)
		return
	}
	writeJSON(w, st)
}
