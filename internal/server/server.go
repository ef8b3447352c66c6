// Package server serves a live reveal over HTTP.
//
// Routes:
//
//	GET  /                 preview page
//	GET  /frame.png        current frame
//	GET  /stream           MJPEG stream (multipart/x-mixed-replace)
//	GET  /animation.gif    one exported loop with the current settings
//	GET  /state            player state as JSON
//	GET  /phases.svg       phase loop diagram with the current phase highlighted
//	GET  /metrics          Prometheus metrics, when a Gatherer is set
//	POST /slices/{n}       set the slice count
//	POST /theme/{name}     dark, light or toggle
//	POST /direction/{name} vertical, horizontal or toggle
//	POST /pause            pause or resume the loop
//	POST /image            replace the image (raw encoded body)
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/slicereveal/pkg/buildinfo"
	"github.com/matzehuels/slicereveal/pkg/errors"
	"github.com/matzehuels/slicereveal/pkg/pipeline"
	"github.com/matzehuels/slicereveal/pkg/render"
	"github.com/matzehuels/slicereveal/pkg/render/diagram"
)

// boundary separates parts of the MJPEG stream.
const boundary = "frame"

// Server exposes one Player.
type Server struct {
	Runner *pipeline.Runner
	Player *pipeline.Player
	Logger *log.Logger

	// Options are the settings the player was created with; exports start
	// from them and pick up the player's current slices, theme and direction.
	Options pipeline.Options

	// FrameInterval paces /stream.
	FrameInterval time.Duration

	// JPEGQuality is used for /stream frames.
	JPEGQuality int

	// Gatherer, if set, is served on /metrics.
	Gatherer prometheus.Gatherer

	mu  sync.Mutex
	src *pipeline.Source
}

// New returns a server for player, which was created from src with opts.
func New(runner *pipeline.Runner, player *pipeline.Player, src *pipeline.Source, opts pipeline.Options) *Server {
	interval := 40 * time.Millisecond
	if opts.FPS > 0 {
		interval = time.Second / time.Duration(opts.FPS)
	}
	return &Server{
		Runner:        runner,
		Player:        player,
		Logger:        runner.Logger,
		Options:       opts,
		FrameInterval: interval,
		JPEGQuality:   85,
		src:           src,
	}
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(serverHeader)

	r.Get("/", s.index)
	r.Get("/frame.png", s.frame)
	r.Get("/stream", s.stream)
	r.Get("/animation.gif", s.animation)
	r.Get("/state", s.state)
	r.Get("/phases.svg", s.phases)
	if s.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Post("/slices/{n}", s.setSlices)
	r.Post("/theme/{name}", s.setTheme)
	r.Post("/direction/{name}", s.setDirection)
	r.Post("/pause", s.pause)
	r.Post("/image", s.setImage)

	return r
}

func serverHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", buildinfo.UserAgent())
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs each request with its status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, indexHTML)
}

func (s *Server) frame(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.Player.Frame()); err != nil {
		s.fail(w, errors.Wrap(errors.ErrCodeInternal, err, "encode frame"))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// stream writes JPEG frames until the client goes away. The optional
// "frames" query parameter ends the stream after that many frames.
func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("frames"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.fail(w, errors.New(errors.ErrCodeInvalidInput, "frames must be a positive integer, got %q", v))
			return
		}
		limit = n
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+boundary)
	w.Header().Set("Cache-Control", "no-store")
	rc := http.NewResponseController(w)

	ticker := time.NewTicker(s.FrameInterval)
	defer ticker.Stop()

	var buf bytes.Buffer
	for sent := 1; ; sent++ {
		buf.Reset()
		if err := jpeg.Encode(&buf, s.Player.Frame(), &jpeg.Options{Quality: s.JPEGQuality}); err != nil {
			s.Logger.Warn("encode stream frame", "error", err)
			return
		}
		if _, err := fmt.Fprintf(w, "--%s\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", boundary, buf.Len()); err != nil {
			return
		}
		buf.WriteString("\r\n")
		if _, err := w.Write(buf.Bytes()); err != nil {
			return
		}
		if err := rc.Flush(); err != nil {
			s.Logger.Debug("stream flush", "error", err)
		}

		if sent == limit {
			return
		}
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

// animation exports one loop of the current image with the current settings.
func (s *Server) animation(w http.ResponseWriter, r *http.Request) {
	st := s.Player.State()
	opts := s.Options
	opts.Slices = st.Slices
	opts.Theme = st.Theme
	opts.Direction = st.Direction
	opts.Formats = []string{pipeline.FormatGIF}
	opts.Cycles = 1

	s.mu.Lock()
	src := s.src
	s.mu.Unlock()

	result, err := s.Runner.Export(r.Context(), src, opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/gif")
	w.Write(result.Artifacts[pipeline.FormatGIF])
}

func (s *Server) phases(w http.ResponseWriter, r *http.Request) {
	opts := s.Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.fail(w, err)
		return
	}
	st := s.Player.State()
	theme, err := render.ParseTheme(st.Theme)
	if err != nil {
		s.fail(w, errors.Wrap(errors.ErrCodeInternal, err, "player theme"))
		return
	}
	svg, err := diagram.Render(r.Context(), diagram.Options{
		Timing:  opts.SequencerTiming(),
		Theme:   theme,
		Current: st.Phase,
	}, diagram.FormatSVG)
	if err != nil {
		s.fail(w, errors.Wrap(errors.ErrCodeInternal, err, "phase diagram"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(svg)
}

// stateResponse is the JSON form of the player state.
type stateResponse struct {
	ID        string `json:"id"`
	Slices    int    `json:"slices"`
	Theme     string `json:"theme"`
	Direction string `json:"direction"`
	Running   bool   `json:"running"`
	Phase     string `json:"phase"`
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	s.writeState(w)
}

func (s *Server) writeState(w http.ResponseWriter) {
	st := s.Player.State()
	resp := stateResponse{
		ID:        st.ID,
		Slices:    st.Slices,
		Theme:     st.Theme,
		Direction: st.Direction,
		Running:   st.Running,
		Phase:     st.Phase.String(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.Logger.Warn("encode state", "error", err)
	}
}

func (s *Server) setSlices(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "n")
	n, err := strconv.Atoi(raw)
	if err != nil {
		s.fail(w, errors.New(errors.ErrCodeInvalidInput, "slices must be an integer, got %q", raw))
		return
	}
	if err := s.Player.SetSlices(n); err != nil {
		s.fail(w, err)
		return
	}
	s.writeState(w)
}

func (s *Server) setTheme(w http.ResponseWriter, r *http.Request) {
	var err error
	if name := chi.URLParam(r, "name"); name == "toggle" {
		err = s.Player.ToggleTheme(r.Context())
	} else {
		err = s.Player.SetTheme(r.Context(), name)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeState(w)
}

func (s *Server) setDirection(w http.ResponseWriter, r *http.Request) {
	if name := chi.URLParam(r, "name"); name == "toggle" {
		s.Player.ToggleDirection()
	} else if err := s.Player.SetDirection(name); err != nil {
		s.fail(w, err)
		return
	}
	s.writeState(w)
}

func (s *Server) pause(w http.ResponseWriter, r *http.Request) {
	s.Player.TogglePause()
	s.writeState(w)
}

func (s *Server) setImage(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, pipeline.MaxImageBytes))
	if err != nil {
		s.fail(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read image"))
		return
	}
	src, err := s.Runner.Decode(r.Context(), data)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.Player.SetImage(r.Context(), src); err != nil {
		s.fail(w, err)
		return
	}
	s.mu.Lock()
	s.src = src
	s.mu.Unlock()
	s.Logger.Info("image replaced", "format", src.Format, "hash", src.Hash[:12])
	s.writeState(w)
}

// fail writes err with a status derived from its code.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	}
	http.Error(w, errors.UserMessage(err), status)
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeDecode:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
