package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/pprof"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/tallyframe/tallyframe/lib/api/docs"
	"github.com/tallyframe/tallyframe/lib/config"
	"github.com/tallyframe/tallyframe/lib/layer"
	"github.com/tallyframe/tallyframe/lib/metrics"
	"github.com/tallyframe/tallyframe/lib/mixer"
	"github.com/tallyframe/tallyframe/lib/theatre"
)

// jobTimeout bounds how long a request waits for the frame loop.
const jobTimeout = 5 * time.Second

//	@title			tallyframe
//	@version		1.0
//	@description	Control and preview of an animated statistics chart.
//	@BasePath		/

type Api struct {
	srv   http.Server
	mux   *http.ServeMux
	cfg   *config.ApiCfg
	mixer *mixer.Mixer

	hub *Hub
	// layer manager whose events are forwarded to the hub
	watched *layer.Manager
}

// New builds the API and hooks it into the theatre. It must be called
// before the frame loop starts or from the frame goroutine.
func New(cfg *config.ApiCfg, m *mixer.Mixer) *Api {
	a := &Api{}
	a.cfg = cfg
	a.mux = http.NewServeMux()
	a.mixer = m
	a.srv.Addr = cfg.Bind
	a.srv.Handler = a.mux
	a.hub = NewHub()

	a.watchTheatre(m.Theatre)
	a.routes()
	return a
}

func (a *Api) routes() {
	if a.cfg.EnableProfiler {
		a.mux.HandleFunc("GET /prof", a.profileCPU)
	}
	a.mux.HandleFunc("POST /api/shutdown", a.shutdown)
	a.mux.HandleFunc("GET /api/stats", a.getStats)
	a.mux.HandleFunc("GET /api/state", a.getState)

	a.mux.HandleFunc("GET /api/document", a.getDocument)
	a.mux.HandleFunc("PUT /api/document", a.putDocument)

	a.mux.HandleFunc("POST /api/playback/{action}", a.handlePlayback)
	a.mux.HandleFunc("PUT /api/playback", a.handlePlaybackSettings)
	a.mux.HandleFunc("POST /api/seek", a.handleSeek)

	a.mux.HandleFunc("GET /api/layers", a.getLayers)
	a.mux.HandleFunc("PATCH /api/layers/{id}", a.patchLayer)
	a.mux.HandleFunc("DELETE /api/layers/{id}", a.deleteLayer)
	a.mux.HandleFunc("PUT /api/animations/{id}", a.putAnimation)
	a.mux.HandleFunc("DELETE /api/animations/{id}", a.deleteAnimation)

	a.mux.HandleFunc("GET /api/frame", a.getFrame)
	a.mux.HandleFunc("GET /api/frame/{format}", a.getFrame)
	a.mux.HandleFunc("GET /api/ws", a.handleWebsocket)

	a.mux.Handle("GET /metrics", metrics.Handler())
	a.mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
}

func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	return a.srv.ListenAndServe()
}

func (a *Api) Close(ctx context.Context) error {
	a.hub.Close()
	return a.srv.Shutdown(ctx)
}

// do runs fn on the frame loop on behalf of req.
func (a *Api) do(req *http.Request, fn func()) error {
	ctx, cancel := context.WithTimeout(req.Context(), jobTimeout)
	defer cancel()
	return a.mixer.Do(ctx, fn)
}

func (a *Api) unavailable(w http.ResponseWriter, err error) {
	status := http.StatusServiceUnavailable
	if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}
	http.Error(w, fmt.Sprintf("frame loop unavailable: %s", err), status)
}

func reject(w http.ResponseWriter, op string, status int, format string, args ...any) {
	metrics.MutationsRejected.WithLabelValues(op).Inc()
	http.Error(w, fmt.Sprintf(format, args...), status)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Warn("could not write response", slog.String("module", "api"), slog.String("error", err.Error()))
	}
}

// sceneFor resolves the scene query parameter; empty means the chart.
// It must run on the frame loop.
func sceneFor(t *theatre.Theatre, req *http.Request) *theatre.Scene {
	return t.Scene(req.URL.Query().Get("scene"))
}

// @Summary	Stop the frame loop and exit
// @Router		/api/shutdown [post]
// @Tags		base
// @Success	200
func (a *Api) shutdown(w http.ResponseWriter, _ *http.Request) {
	slog.Info("shutting down as per api request", slog.String("module", "api"))
	a.mixer.Shutdown()
	writeJSON(w, "ok")
}

// @Summary	Render statistics
// @Router		/api/stats [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	theatre.Stats
func (a *Api) getStats(w http.ResponseWriter, req *http.Request) {
	var stats theatre.Stats
	err := a.do(req, func() {
		stats = *a.mixer.Theatre.Stats
	})
	if err != nil {
		a.unavailable(w, err)
		return
	}
	stats.WsClients = a.hub.Count()
	writeJSON(w, &stats)
}

func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}

func ServeInBackground(m *mixer.Mixer, cfg *config.ApiCfg) *Api {
	if cfg == nil {
		return nil
	}
	theApi := New(cfg, m)

	slog.Info("starting web server", slog.String("module", "api"), slog.String("bind", cfg.Bind))
	go func() {
		err := theApi.Serve()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("web server failed", slog.String("module", "api"), slog.String("error", err.Error()))
			m.Shutdown()
		}
	}()
	return theApi
}
