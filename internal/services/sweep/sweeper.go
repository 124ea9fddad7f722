package sweep

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cardtable/cardtable/internal/dependencies/clock"
	"github.com/cardtable/cardtable/internal/model"
	"github.com/cardtable/cardtable/internal/storage"
)

// Config holds sweeper timing configuration
type Config struct {
	// Interval is how often a sweep runs
	Interval time.Duration
	// InactiveAfter is how long a room may go without activity before it is
	// deleted
	InactiveAfter time.Duration
}

// DefaultConfig returns the default sweep timings
func DefaultConfig() Config {
	return Config{
		Interval:      15 * time.Minute,
		InactiveAfter: 60 * time.Minute,
	}
}

// Sweeper periodically deletes abandoned rooms: rooms with no seated
// players, and rooms whose last activity is older than the configured
// window.
type Sweeper struct {
	storage storage.RoomStore
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// New creates a new sweeper
func New(storage storage.RoomStore, clk clock.Clock, cfg Config, logger *slog.Logger) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.InactiveAfter <= 0 {
		cfg.InactiveAfter = DefaultConfig().InactiveAfter
	}
	return &Sweeper{
		storage: storage,
		clock:   clk,
		cfg:     cfg,
		logger:  logger,
	}
}

// Run sweeps on the configured interval until the context is cancelled
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deletedEmpty, deletedInactive, err := s.SweepOnce(ctx)
			if err != nil {
				s.logger.Error("room sweep failed", "error", err)
				continue
			}
			if deletedEmpty+deletedInactive > 0 {
				s.logger.Info("room sweep",
					"deleted_empty", deletedEmpty,
					"deleted_inactive", deletedInactive,
				)
			}
		}
	}
}

// SweepOnce runs a single sweep pass and reports how many rooms were
// deleted in each category
func (s *Sweeper) SweepOnce(ctx context.Context) (deletedEmpty, deletedInactive int, err error) {
	empty, err := s.storage.ListEmptyRooms(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, room := range empty {
		if s.deleteRoom(ctx, room.ID, "empty") {
			deletedEmpty++
		}
	}

	cutoff := s.clock.Now().Add(-s.cfg.InactiveAfter)
	inactive, err := s.storage.ListInactiveRooms(ctx, cutoff)
	if err != nil {
		return deletedEmpty, 0, err
	}
	for _, room := range inactive {
		if s.deleteRoom(ctx, room.ID, "inactive") {
			deletedInactive++
		}
	}

	return deletedEmpty, deletedInactive, nil
}

// deleteRoom deletes one room, tolerating a concurrent delete
func (s *Sweeper) deleteRoom(ctx context.Context, id model.RoomID, reason string) bool {
	err := s.storage.DeleteRoom(ctx, id)
	if errors.Is(err, model.ErrRoomNotFound) {
		return false
	}
	if err != nil {
		s.logger.Error("deleting room", "room_id", id, "reason", reason, "error", err)
		return false
	}
	s.logger.Info("deleted room", "room_id", id, "reason", reason)
	return true
}
