package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%d"
	MemoryKeyPrefix = "memory:%d"
)

const (
	UserTTL   = 5 * time.Minute
	MemoryTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func MemoryKey(memoryID uint) string {
	return fmt.Sprintf(MemoryKeyPrefix, memoryID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateMemory(ctx context.Context, memoryID uint) {
	Invalidate(ctx, MemoryKey(memoryID))
}
