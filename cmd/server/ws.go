package main

import (
	"bytes"
	"context"
	"image/png"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	celtic "github.com/marben/celtic_explorer"
)

// handleSession upgrades the connection and runs one explorer session on it.
func handleSession(cfg *Config, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			logger.Warn("websocket accept failed", "error", err)
			return
		}

		ex := celtic.NewExplorer(cfg.View())
		ex.SetFormula(celtic.Formula(cfg.Formula))
		ex.SetBudgets(cfg.MaxIter, cfg.MaxOrbit)
		ex.SetEpsilon(cfg.Epsilon)
		ex.SetWorkers(cfg.Workers)

		s := &session{
			conn:       c,
			ex:         ex,
			palette:    celtic.Palette(cfg.Palette),
			log:        logger.With("remote", r.RemoteAddr),
			lastPeriod: celtic.NoPeriod,
		}
		s.run(r.Context())
	}
}

// session is one live explorer connection. Commands arrive as JSON text
// messages; raster frames leave as binary PNG messages and everything else
// as JSON state frames.
type session struct {
	conn    *websocket.Conn
	ex      *celtic.Explorer
	palette celtic.Palette
	log     *slog.Logger

	writeMu sync.Mutex // serializes frame and state writes

	recomputeMu sync.Mutex
	cancel      context.CancelFunc // in-flight raster compute, may be nil

	lastPeriod int // change-only period logging
}

func (s *session) run(ctx context.Context) {
	defer s.conn.Close(websocket.StatusNormalClosure, "")
	defer s.cancelRecompute()

	s.log.Info("session started")

	// Initial frame.
	s.recompute(ctx)
	s.sendState(celtic.Snapshot(s.ex, celtic.Analysis{}, false))

	for {
		var cmd celtic.Command
		if err := wsjson.Read(ctx, s.conn, &cmd); err != nil {
			s.log.Info("session closed", "reason", err)
			return
		}
		s.apply(ctx, cmd)
	}
}

func (s *session) apply(ctx context.Context, cmd celtic.Command) {
	switch cmd.Op {
	case celtic.OpZoom:
		s.ex.ZoomAt(cmd.X, cmd.Y, cmd.Factor)
		s.recompute(ctx)

	case celtic.OpPan:
		s.ex.Pan(cmd.DX, cmd.DY)
		s.recompute(ctx)

	case celtic.OpFormula:
		f := celtic.Formula(cmd.Formula)
		if !f.Valid() {
			return
		}
		s.ex.SetFormula(f)
		s.log.Info("formula switched", "formula", f.String())
		s.recompute(ctx)
		s.sendState(celtic.Snapshot(s.ex, celtic.Analysis{}, false))

	case celtic.OpJulia:
		if cmd.On {
			s.ex.EnterJulia(cmd.X, cmd.Y)
		} else {
			s.ex.LeaveJulia()
		}
		s.recompute(ctx)
		s.sendState(celtic.Snapshot(s.ex, celtic.Analysis{}, false))

	case celtic.OpProbe:
		a, ok := s.ex.AnalyzeAt(cmd.X, cmd.Y)
		s.logPeriod(a, ok)
		s.sendState(celtic.Snapshot(s.ex, a, ok))

	case celtic.OpEpsilon:
		s.ex.SetEpsilon(cmd.Epsilon)

	default:
		s.log.Warn("unknown command", "op", cmd.Op)
	}
}

// recompute starts a raster compute for the current parameters, superseding
// any compute still in flight. Only a compute whose parameters are still
// current publishes and sends a frame, so the client never sees a stale or
// partial raster.
func (s *session) recompute(ctx context.Context) {
	s.recomputeMu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	rctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.recomputeMu.Unlock()

	go func() {
		defer cancel()
		ras, err := s.ex.Recompute(rctx)
		if err != nil || ras == nil {
			return // cancelled or superseded
		}
		s.sendRaster(rctx, ras)
	}()
}

func (s *session) cancelRecompute() {
	s.recomputeMu.Lock()
	defer s.recomputeMu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *session) sendRaster(ctx context.Context, ras *celtic.Raster) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, ras.Image(s.palette)); err != nil {
		s.log.Error("png encode failed", "error", err)
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.Write(ctx, websocket.MessageBinary, buf.Bytes()); err != nil {
		s.log.Info("raster frame write failed", "error", err)
	}
}

func (s *session) sendState(frame celtic.StateFrame) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := wsjson.Write(context.Background(), s.conn, frame); err != nil {
		s.log.Info("state frame write failed", "error", err)
	}
}

// logPeriod mirrors the console diagnostics of the interactive explorer:
// the period is logged only when it changes.
func (s *session) logPeriod(a celtic.Analysis, ok bool) {
	period := celtic.NoPeriod
	if ok {
		period = a.Period
	}
	if period == s.lastPeriod {
		return
	}
	s.lastPeriod = period

	if !ok {
		return
	}
	mode := s.ex.Mode()
	if mode.Julia {
		s.log.Info("orbit period",
			"period", period,
			"outcome", a.Outcome.String(),
			"julia_re", real(mode.JuliaC),
			"julia_im", imag(mode.JuliaC))
	} else {
		s.log.Info("orbit period", "period", period, "outcome", a.Outcome.String())
	}
}
