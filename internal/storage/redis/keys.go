package redis

import (
	"fmt"

	"github.com/cardtable/cardtable/internal/model"
)

// Key prefix for all room data
const keyPrefix = "cardtable"

// roomKey returns the Redis key for a Room
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}

// roomsByCreatedKey returns the ZSET indexing room ids by creation time,
// used for newest-first listing
func roomsByCreatedKey() string {
	return fmt.Sprintf("%s:idx:rooms_by_created", keyPrefix)
}

// roomsByActivityKey returns the ZSET indexing room ids by last activity,
// used by the idle-room sweep
func roomsByActivityKey() string {
	return fmt.Sprintf("%s:idx:rooms_by_activity", keyPrefix)
}
