package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserExternalKeyPrefix = "user:ext:%s"
	UserKeyPrefix         = "user:%d"
	PostKeyPrefix         = "post:%d"
	ProfileKeyPrefix      = "profile:%s"
)

const (
	UserTTL    = 5 * time.Minute
	PostTTL    = 2 * time.Minute
	ProfileTTL = 5 * time.Minute
)

// UserExternalKey caches the local user resolved from a provider identity id.
func UserExternalKey(externalID string) string {
	return fmt.Sprintf(UserExternalKeyPrefix, externalID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func ProfileKey(username string) string {
	return fmt.Sprintf(ProfileKeyPrefix, username)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint, externalID, username string) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, UserExternalKey(externalID))
	Invalidate(ctx, ProfileKey(username))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}
