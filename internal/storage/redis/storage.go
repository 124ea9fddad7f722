package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cardtable/cardtable/internal/dependencies/clock"
	"github.com/cardtable/cardtable/internal/model"
	"github.com/cardtable/cardtable/internal/storage"
)

// Storage is a Redis-backed implementation of the RoomStore interface.
// Rooms are stored as JSON values; two ZSET indexes order them by creation
// time (listing) and last activity (sweep). UpdateRoom runs as a WATCH/MULTI
// compare-and-swap so a losing concurrent writer reloads and retries instead
// of overwriting.
type Storage struct {
	client *redis.Client
	cfg    Config
	clock  clock.Clock
}

// New creates a new Redis room store
func New(cfg Config, clk clock.Clock) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg, clock: clk}, nil
}

// NewWithClient creates a Redis room store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, clk clock.Clock) *Storage {
	return &Storage{client: client, cfg: cfg, clock: clk}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.RoomStore = (*Storage)(nil)

func (s *Storage) CreateRoom(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	// SETNX rejects a duplicate code even when two generators race
	ok, err := s.client.SetNX(ctx, roomKey(room.ID), data, s.cfg.RoomTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrRoomExists
	}

	pipe := s.client.Pipeline()
	pipe.ZAdd(ctx, roomsByCreatedKey(), redis.Z{
		Score:  float64(room.CreatedAt.UnixMilli()),
		Member: string(room.ID),
	})
	pipe.ZAdd(ctx, roomsByActivityKey(), redis.Z{
		Score:  float64(room.LastActivity.UnixMilli()),
		Member: string(room.ID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	data, err := s.client.Get(ctx, roomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}
	return unmarshalRoom(data)
}

func (s *Storage) ListRooms(ctx context.Context, skip, limit int) ([]*model.Room, error) {
	if skip < 0 {
		skip = 0
	}
	stop := int64(-1)
	if limit > 0 {
		stop = int64(skip + limit - 1)
	}

	ids, err := s.client.ZRevRange(ctx, roomsByCreatedKey(), int64(skip), stop).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchRooms(ctx, ids)
}

func (s *Storage) DeleteRoom(ctx context.Context, id model.RoomID) error {
	deleted, err := s.client.Del(ctx, roomKey(id)).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.ZRem(ctx, roomsByCreatedKey(), string(id))
	pipe.ZRem(ctx, roomsByActivityKey(), string(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	if deleted == 0 {
		return model.ErrRoomNotFound
	}
	return nil
}

func (s *Storage) RoomExists(ctx context.Context, id model.RoomID) (bool, error) {
	exists, err := s.client.Exists(ctx, roomKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) UpdateRoom(ctx context.Context, id model.RoomID, fn storage.UpdateFunc) (*model.Room, error) {
	key := roomKey(id)
	var updated *model.Room

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrRoomNotFound
			}
			return err
		}

		room, err := unmarshalRoom(data)
		if err != nil {
			return err
		}

		if err := fn(room); err != nil {
			return err
		}
		now := s.clock.Now()
		room.UpdatedAt = now
		room.LastActivity = now

		out, err := json.Marshal(room)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, s.cfg.RoomTTL)
			pipe.ZAdd(ctx, roomsByActivityKey(), redis.Z{
				Score:  float64(room.LastActivity.UnixMilli()),
				Member: string(room.ID),
			})
			return nil
		})
		if err != nil {
			return err
		}

		updated = room
		return nil
	}

	retries := s.cfg.TxRetries
	if retries <= 0 {
		retries = 1
	}
	for i := 0; i < retries; i++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			// Lost the race; reload and retry
			continue
		}
		return nil, err
	}
	return nil, redis.TxFailedErr
}

func (s *Storage) ListEmptyRooms(ctx context.Context) ([]*model.Room, error) {
	ids, err := s.client.ZRange(ctx, roomsByCreatedKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	rooms, err := s.fetchRooms(ctx, ids)
	if err != nil {
		return nil, err
	}
	var empty []*model.Room
	for _, room := range rooms {
		if len(room.Players) == 0 {
			empty = append(empty, room)
		}
	}
	return empty, nil
}

func (s *Storage) ListInactiveRooms(ctx context.Context, cutoff time.Time) ([]*model.Room, error) {
	ids, err := s.client.ZRangeByScore(ctx, roomsByActivityKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(cutoff.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchRooms(ctx, ids)
}

// fetchRooms loads rooms by id, skipping entries whose value has expired but
// whose index entry has not been cleaned up yet
func (s *Storage) fetchRooms(ctx context.Context, ids []string) ([]*model.Room, error) {
	rooms := make([]*model.Room, 0, len(ids))
	for _, id := range ids {
		room, err := s.GetRoom(ctx, model.RoomID(id))
		if errors.Is(err, model.ErrRoomNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func unmarshalRoom(data []byte) (*model.Room, error) {
	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}
