// Package server exposes the layout, traversal and reveal algorithms over a
// small JSON API so a web front-end can preview a page document without the
// desktop renderer.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/phanxgames/folio/content"
	"github.com/phanxgames/folio/internal/logging"
	"github.com/phanxgames/folio/motionpath"
	"github.com/phanxgames/folio/reveal"
	"github.com/phanxgames/folio/scatter"
)

// Limits on query parameters.
const (
	maxDimension = 16384
	maxCount     = scatter.MaxCount
)

// pathTolerance is the flattening tolerance for returned polylines.
const pathTolerance = 0.5

// Config configures a Server.
type Config struct {
	// Doc is the served document. Nil serves content.Default.
	Doc *content.Document
	// Path tunes the traversal controller.
	Path motionpath.Options
	// Reveal tunes reveal plans.
	Reveal reveal.Options
	// Logger receives request logs. Nil uses the logger set with
	// folio.SetLogger.
	Logger *slog.Logger
}

// Server is the preview API. Handlers are safe for concurrent use: a served
// document is never mutated and every request builds its own scheduler and
// controller.
type Server struct {
	doc    atomic.Pointer[content.Document]
	cfg    Config
	log    *slog.Logger
	engine *gin.Engine
}

// New builds the routes.
func New(cfg Config) *Server {
	s := &Server{cfg: cfg, log: cfg.Logger}
	if s.log == nil {
		s.log = logging.Get()
	}
	doc := cfg.Doc
	if doc == nil {
		doc = content.Default()
	}
	s.SetDocument(doc)

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.GET("/healthz", s.health)
	api := r.Group("/api")
	api.GET("/page", s.page)
	api.GET("/doodles", s.doodles)
	api.GET("/path", s.path)
	api.GET("/reveal/:block", s.revealBlock)
	api.GET("/panels/:id", s.revealPanel)
	s.engine = r
	return s
}

// SetDocument replaces the served document. Requests in flight finish with
// the previous one.
func (s *Server) SetDocument(doc *content.Document) {
	// Fragment trees are built lazily; build them now so handlers only read.
	for i := range doc.Sections {
		for j := range doc.Sections[i].Blocks {
			doc.Sections[i].Blocks[j].Fragments()
		}
	}
	for i := range doc.Timeline.Markers {
		doc.Timeline.Markers[i].Fragments()
	}
	s.doc.Store(doc)
}

// Document returns the served document.
func (s *Server) Document() *content.Document {
	return s.doc.Load()
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", slog.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("took", time.Since(start)))
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) page(c *gin.Context) {
	c.JSON(http.StatusOK, s.Document())
}

// DoodlesResponse is the body of GET /api/doodles.
type DoodlesResponse struct {
	Width  float64              `json:"width"`
	Height float64              `json:"height"`
	Seed   uint64               `json:"seed"`
	Count  int                  `json:"count"`
	Items  []scatter.PlacedItem `json:"items"`
}

func (s *Server) doodles(c *gin.Context) {
	w, h, ok := dimensions(c)
	if !ok {
		return
	}
	cfg := s.Document().Doodles.Config()
	cfg.Count = scatter.CountForWidth(w, cfg.Count)
	if v := c.Query("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxCount {
			badRequest(c, fmt.Sprintf("count must be an integer in [0, %d]", maxCount))
			return
		}
		cfg.Count = n
	}
	seed := rand.Uint64()
	if v := c.Query("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			badRequest(c, "seed must be an unsigned integer")
			return
		}
		seed = n
	}

	items := scatter.Scatter(w, h, cfg, scatter.NewSeededRand(seed))
	if items == nil {
		items = []scatter.PlacedItem{}
	}
	c.JSON(http.StatusOK, DoodlesResponse{Width: w, Height: h, Seed: seed, Count: cfg.Count, Items: items})
}

// PathResponse is the body of GET /api/path.
type PathResponse struct {
	Width   float64                   `json:"width"`
	Height  float64                   `json:"height"`
	Length  float64                   `json:"length"`
	Origin  motionpath.Point          `json:"origin"`
	Markers []motionpath.Marker       `json:"markers"`
	Curve   []motionpath.Point        `json:"curve"`
	Trail   []motionpath.Point        `json:"trail"`
	State   motionpath.TraversalState `json:"state"`
}

func (s *Server) path(c *gin.Context) {
	w, h, ok := dimensions(c)
	if !ok {
		return
	}
	progress := 0.0
	if v := c.Query("progress"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			badRequest(c, "progress must be a number")
			return
		}
		progress = motionpath.Clamp01(p)
	}

	origin, markers := s.Document().Timeline.Resolve(w, h)
	ctrl := motionpath.NewController(motionpath.Size{Width: w, Height: h}, origin, markers, s.cfg.Path)
	state := ctrl.Update(progress)
	curve := ctrl.Curve()
	c.JSON(http.StatusOK, PathResponse{
		Width:   w,
		Height:  h,
		Length:  curve.Length(),
		Origin:  origin,
		Markers: markers,
		Curve:   nonNil(curve.Polyline(1, pathTolerance)),
		Trail:   nonNil(curve.Polyline(progress, pathTolerance)),
		State:   state,
	})
}

// RevealResponse is the body of the reveal endpoints.
type RevealResponse struct {
	ID   string      `json:"id"`
	Text string      `json:"text"`
	Fast bool        `json:"fast"`
	Plan reveal.Plan `json:"plan"`
}

func (s *Server) revealBlock(c *gin.Context) {
	id := c.Param("block")
	b, ok := s.Document().Block(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("block %q not found", id)})
		return
	}
	fast := b.Fast
	if v := c.Query("fast"); v != "" {
		f, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(c, "fast must be a boolean")
			return
		}
		fast = f
	}
	sched, ok := s.scheduler(c)
	if !ok {
		return
	}
	var plan reveal.Plan
	if fast {
		plan, _ = sched.TriggerFast(b.Fragments(), b.Delay)
	} else {
		plan, _ = sched.Trigger(b.Fragments(), b.Delay, 0)
	}
	c.JSON(http.StatusOK, RevealResponse{ID: id, Text: b.Text(), Fast: fast, Plan: normalize(plan)})
}

func (s *Server) revealPanel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "marker id must be an integer")
		return
	}
	m, ok := s.Document().Marker(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("marker %d not found", id)})
		return
	}
	sched, ok := s.scheduler(c)
	if !ok {
		return
	}
	plan, _ := sched.Trigger(m.Fragments(), 0, 0)
	c.JSON(http.StatusOK, RevealResponse{ID: c.Param("id"), Text: m.Fragments().PlainText(), Plan: normalize(plan)})
}

// scheduler returns a fresh scheduler honoring the reduced query flag.
func (s *Server) scheduler(c *gin.Context) (*reveal.Scheduler, bool) {
	opts := s.cfg.Reveal
	if v := c.Query("reduced"); v != "" {
		r, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(c, "reduced must be a boolean")
			return nil, false
		}
		opts.ReducedMotion = r
	}
	return reveal.NewScheduler(opts), true
}

// dimensions parses the required w and h query parameters.
func dimensions(c *gin.Context) (w, h float64, ok bool) {
	w, errW := strconv.ParseFloat(c.Query("w"), 64)
	h, errH := strconv.ParseFloat(c.Query("h"), 64)
	if errW != nil || errH != nil || !(w > 0) || !(h > 0) || w > maxDimension || h > maxDimension {
		badRequest(c, fmt.Sprintf("w and h must be numbers in (0, %d]", maxDimension))
		return 0, 0, false
	}
	return w, h, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func nonNil(pts []motionpath.Point) []motionpath.Point {
	if pts == nil {
		return []motionpath.Point{}
	}
	return pts
}

// normalize replaces nil slices so they encode as empty arrays.
func normalize(p reveal.Plan) reveal.Plan {
	if p.Units == nil {
		p.Units = []reveal.Unit{}
	}
	if p.Tokens == nil {
		p.Tokens = []reveal.Token{}
	}
	return p
}
