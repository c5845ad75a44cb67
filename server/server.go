// Package server exposes a simulation over HTTP: the chart page, a JSON snapshot and
// a websocket that applies control changes and answers with the new field summary.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/websocket"

	ifc "github.com/martinha-ssv/NX-422-project"
	"github.com/martinha-ssv/NX-422-project/debug"
	"github.com/martinha-ssv/NX-422-project/field"
	"github.com/martinha-ssv/NX-422-project/types"
)

// Update control change for one pair; omitted fields keep their value
type Update struct {
	Pair   int      `json:"pair"`
	Angle  *float64 `json:"angle,omitempty"` // degrees
	Weight *float64 `json:"weight,omitempty"`
	Steer  *float64 `json:"steer,omitempty"`
}

// Summary field figures sent after every recompute
type Summary struct {
	Peak      float64          `json:"peak"` // raw AM maximum (V)
	Mean      float64          `json:"mean"`
	Coverage  float64          `json:"coverage"` // share of the disk at or above half maximum
	Centroid  [2]float64       `json:"centroid"` // mm
	Pairs     []debug.PairInfo `json:"pairs"`
	ElapsedMs float64          `json:"elapsed_ms"`
}

// Reply websocket answer, exactly one field is set
type Reply struct {
	Summary *Summary `json:"summary,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Server owns the simulation; every access goes through mu
type Server struct {
	// OnUpdate runs after each successful recompute while the lock is held
	OnUpdate func(sim *ifc.Simulation, f *field.AMField, summary Summary)

	mu       sync.Mutex
	sim      *ifc.Simulation
	field    *field.AMField
	summary  *Summary
	hub      *hub
	upgrader websocket.Upgrader
}

// New evaluates the initial field of sim
func New(sim *ifc.Simulation) (*Server, error) {
	s := &Server{
		sim: sim,
		hub: newHub(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	if err := s.recompute(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) recompute() error {
	start := time.Now()
	f, err := s.sim.Field()
	if err != nil {
		return err
	}
	s.field = f
	s.summary = summarize(s.sim, f, time.Since(start))
	return nil
}

func summarize(sim *ifc.Simulation, f *field.AMField, elapsed time.Duration) *Summary {
	var r debug.Record
	r.SetPairs(sim.Pairs)
	_, mean, _ := f.Stats()
	x, y := f.Centroid()
	return &Summary{
		Peak:      f.Peak,
		Mean:      mean,
		Coverage:  f.Coverage(0.5),
		Centroid:  [2]float64{x * 1e3, y * 1e3},
		Pairs:     r.Pairs,
		ElapsedMs: float64(elapsed.Microseconds()) / 1e3,
	}
}

// Summary figures of the current field
func (s *Server) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.summary
}

// Apply changes one pair and recomputes the field. On failure the pair is restored.
func (s *Server) Apply(u Update) (*Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.Pair < 0 || u.Pair >= len(s.sim.Pairs) {
		return nil, fmt.Errorf("pair %d of %d: %w", u.Pair, len(s.sim.Pairs), types.ErrInvalidPair)
	}
	old := s.sim.Pairs[u.Pair]
	angle, weight, steer := merge(old, u)
	if err := s.sim.Update(u.Pair, angle, weight, steer); err != nil {
		return nil, err
	}
	if err := s.recompute(); err != nil {
		s.sim.Pairs[u.Pair] = old
		return nil, err
	}
	if s.OnUpdate != nil {
		s.OnUpdate(s.sim, s.field, *s.summary)
	}
	slog.Info("field updated",
		"pair", u.Pair,
		"peak", s.summary.Peak,
		"coverage", s.summary.Coverage,
		"elapsed_ms", s.summary.ElapsedMs,
	)
	summary := *s.summary
	return &summary, nil
}

func merge(p types.ElectrodePair, u Update) (angle, weight, steer float64) {
	angle, weight, steer = types.Rad2Deg(p.Angle), p.Weight, p.Steer
	if u.Angle != nil {
		angle = *u.Angle
	}
	if u.Weight != nil {
		weight = *u.Weight
	}
	if u.Steer != nil {
		steer = *u.Steer
	}
	return
}

// Handler routes /, /field.json, /summary.json and /ws
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.page)
	mux.HandleFunc("/field.json", s.snapshot)
	mux.HandleFunc("/summary.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s.Summary())
	})
	mux.HandleFunc("/ws", s.websocket)
	return mux
}

func (s *Server) record(waves bool) (*debug.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &debug.Record{}
	r.SetPairs(s.sim.Pairs)
	r.SetField(s.field)
	if waves {
		m, err := s.sim.Waveforms(0)
		if err != nil {
			return nil, err
		}
		r.SetWaveforms(m, s.sim.ElectrodeLabels())
		pairs, err := s.sim.EffectivePairs()
		if err != nil {
			return nil, err
		}
		r.SetEnvelopes(pairs, s.sim.TotalI)
	}
	return r, nil
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	rec, err := s.record(true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	c := debug.Charts{Record: *rec}
	c.Handler(w, r)
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) {
	rec, err := s.record(r.URL.Query().Get("waves") != "")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := rec.Render(w); err != nil {
		slog.Error("field snapshot", "error", err)
	}
}

func (s *Server) websocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn}
	s.hub.add(c)
	slog.Info("viewer connected", "remote", r.RemoteAddr, "viewers", s.hub.len())
	defer func() {
		s.hub.remove(c)
		conn.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var reply Reply
		var u Update
		if err := json.Unmarshal(msg, &u); err != nil {
			reply.Error = fmt.Sprintf("decode update: %v", err)
		} else if summary, err := s.Apply(u); err != nil {
			reply.Error = err.Error()
		} else {
			reply.Summary = summary
		}
		b, _ := json.Marshal(reply)
		if err := c.write(b); err != nil {
			break
		}
		if reply.Summary != nil {
			s.hub.broadcast(b, c)
		}
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	s.mu.Lock()
	g := s.field.Grid
	s.mu.Unlock()
	errc := make(chan error, 1)
	go func() {
		slog.Info("server running",
			"addr", addr,
			"grid", fmt.Sprintf("%d×%d", g.N, g.N),
			"points", humanize.Comma(int64(g.Inside())),
		)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdown)
	if e := <-errc; e != nil && !errors.Is(e, http.ErrServerClosed) && err == nil {
		err = e
	}
	slog.Info("server stopped")
	return err
}
