package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/pefman/gridfire/internal/combat"
	"github.com/pefman/gridfire/internal/grid"
	"github.com/pefman/gridfire/internal/models"
	"github.com/pefman/gridfire/internal/stats"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

var _ combat.Notifier = (*Server)(nil)

// StateFunc supplies the current battle state snapshot for /api/state.
type StateFunc func() any

// Server exposes the battle over HTTP: a JSON state snapshot, the daily
// leaderboard and a websocket event feed. It implements combat.Notifier by
// broadcasting typed messages to every subscriber.
type Server struct {
	log   zerolog.Logger
	store *stats.Store
	state StateFunc

	mu   sync.Mutex
	subs map[*websocket.Conn]bool
}

func New(log zerolog.Logger, store *stats.Store, state StateFunc) *Server {
	return &Server{
		log:   log,
		store: store,
		state: state,
		subs:  make(map[*websocket.Conn]bool),
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/state", s.handleState).Methods(http.MethodGet)
	r.HandleFunc("/api/attacks/today", s.handleBestAttack).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWS)
	return r
}

// ListenAndServe blocks serving the router on the given port.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.log.Info().Str("addr", addr).Msg("serving battle feed")
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if s.state == nil {
		http.Error(w, "no battle running", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, s.state())
}

func (s *Server) handleBestAttack(w http.ResponseWriter, r *http.Request) {
	best, err := s.store.BestAttackToday()
	if err != nil {
		s.log.Error().Err(err).Msg("leaderboard query failed")
		http.Error(w, "leaderboard unavailable", http.StatusInternalServerError)
		return
	}
	if best == nil {
		writeJSON(w, map[string]any{})
		return
	}
	writeJSON(w, best)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}

	s.mu.Lock()
	s.subs[conn] = true
	n := len(s.subs)
	s.mu.Unlock()
	s.log.Debug().Int("subscribers", n).Msg("ws subscriber joined")

	// Drain (and discard) client frames; the feed is one-way. Read failure
	// means the client is gone.
	go func() {
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.subs, conn)
	s.mu.Unlock()
	_ = conn.Close()
}

// Broadcast sends one message to every subscriber, dropping any connection
// that fails to take the write.
func (s *Server) Broadcast(m models.WsMsg) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.subs))
	for c := range s.subs {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteJSON(m); err != nil {
			s.log.Debug().Err(err).Msg("ws write failed, dropping subscriber")
			s.drop(c)
		}
	}
}

// ========================= combat.Notifier =========================

func (s *Server) AttackPerformed(attacker, weapon string, target grid.Point) {
	s.Broadcast(models.WsMsg{Type: "attack", Data: map[string]any{
		"attacker": attacker, "weapon": weapon, "target": target,
	}})
}

func (s *Server) EntityDamaged(name string, damage int, killed bool) {
	s.Broadcast(models.WsMsg{Type: "entity_damaged", Data: map[string]any{
		"name": name, "damage": damage, "killed": killed,
	}})
}

func (s *Server) TileDestroyed(p grid.Point) {
	s.Broadcast(models.WsMsg{Type: "tile_destroyed", Data: p})
}

func (s *Server) TileIgnited(p grid.Point) {
	s.Broadcast(models.WsMsg{Type: "tile_ignited", Data: p})
}

func (s *Server) ExplosionTriggered(center grid.Point, radius int) {
	s.Broadcast(models.WsMsg{Type: "explosion", Data: map[string]any{
		"center": center, "radius": radius,
	}})
}

func (s *Server) SeekerHit(id int, target string, damage int) {
	s.Broadcast(models.WsMsg{Type: "seeker_hit", Data: map[string]any{
		"seeker": id, "target": target, "damage": damage,
	}})
}

func (s *Server) SeekerLost(id int, lastKnown grid.Point) {
	s.Broadcast(models.WsMsg{Type: "seeker_lost", Data: map[string]any{
		"seeker": id, "last_known": lastKnown,
	}})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
