// Package stream serves live simulation frames over websockets. Each
// client that connects to /ws gets its own simulation, advanced at a
// fixed wall-clock interval and streamed as JSON frames. The core stays
// pure; this is an outer surface over System.Advance.
package stream

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/orrery/internal/nbody"
)

type BodyState struct {
	Name string     `json:"name"`
	Pos  [3]float64 `json:"pos"`
	Vel  [3]float64 `json:"vel"`
}

type Frame struct {
	Step   int         `json:"step"`
	Time   float64     `json:"time"`
	Energy float64     `json:"energy"`
	Bodies []BodyState `json:"bodies"`
}

type Options struct {
	Addr          string
	Dt            float64
	Steps         int
	StepsPerFrame int
	Interval      time.Duration
}

type Server struct {
	opts     Options
	source   func() nbody.System
	upgrader websocket.Upgrader
}

// New creates a streaming server; source builds a fresh initial system
// per client connection.
func New(opts Options, source func() nbody.System) *Server {
	if opts.StepsPerFrame < 1 {
		opts.StepsPerFrame = 1
	}
	if opts.Interval <= 0 {
		opts.Interval = 50 * time.Millisecond
	}
	return &Server{
		opts:   opts,
		source: source,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.opts.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	// Drain the client so control frames are processed; any read error
	// means the peer is gone.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	sys := s.source()
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	step := 0
	for step < s.opts.Steps {
		select {
		case <-closed:
			return
		case <-ticker.C:
		}

		for i := 0; i < s.opts.StepsPerFrame && step < s.opts.Steps; i++ {
			sys = sys.Advance(s.opts.Dt)
			step++
		}

		if err := conn.WriteJSON(makeFrame(sys, step, float64(step)*s.opts.Dt)); err != nil {
			return
		}
	}

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "run complete"))
}

func makeFrame(sys nbody.System, step int, t float64) Frame {
	frame := Frame{
		Step:   step,
		Time:   t,
		Energy: sys.Energy(),
		Bodies: make([]BodyState, len(sys.Bodies)),
	}
	for i, b := range sys.Bodies {
		frame.Bodies[i] = BodyState{
			Name: b.Name,
			Pos:  [3]float64{b.Pos.X, b.Pos.Y, b.Pos.Z},
			Vel:  [3]float64{b.Vel.X, b.Vel.Y, b.Vel.Z},
		}
	}
	return frame
}
