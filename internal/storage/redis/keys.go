package redis

import (
	"fmt"

	"github.com/questlab/questmaster/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "questmaster"

// lobbyKey returns the Redis key for a lobby aggregate
func lobbyKey(pin model.PIN) string {
	return fmt.Sprintf("%s:lobby:%s", keyPrefix, pin)
}
