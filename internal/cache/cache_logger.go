package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern invalidates a pattern, logging instead of failing the
// caller. Cache invalidation must never break a write path.
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes keys, logging instead of failing the caller.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateQuizCache drops everything derived from one quiz document,
// including its join-code entry when the code is known.
func InvalidateQuizCache(ctx context.Context, cm *CacheManager, quizID uint, accessCode *string) {
	SafeDelete(ctx, cm.Quiz, fmt.Sprintf("id:%d", quizID))
	SafeInvalidatePattern(ctx, cm.Quiz, "course:*")
	if accessCode != nil {
		SafeDelete(ctx, cm.Code, *accessCode)
	}
	SafeInvalidatePattern(ctx, cm.Stats, "dashboard*")
}

// InvalidateCourseCache drops one course document and the derived lists.
func InvalidateCourseCache(ctx context.Context, cm *CacheManager, courseID uint) {
	SafeDelete(ctx, cm.Course, fmt.Sprintf("id:%d", courseID))
	SafeInvalidatePattern(ctx, cm.Course, "list:*")
	SafeInvalidatePattern(ctx, cm.Stats, "dashboard*")
}
