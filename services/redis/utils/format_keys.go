package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format spec every time, potentially confusing the key format.
 */

import "fmt"

func FormatRoomSnapshotKey(roomID string) string {
	return fmt.Sprintf("room:%s:snapshot", roomID)
}

func FormatPhraseCacheKey(roomID string) string {
	return fmt.Sprintf("room:%s:phrases", roomID)
}

// SnapshotKeyPattern matches every room snapshot key, used by the debug
// listing.
const SnapshotKeyPattern = "room:*:snapshot"
