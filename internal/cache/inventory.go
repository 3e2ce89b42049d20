package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%d"
	CircleKeyPrefix = "circle:%d"
	CourseKeyPrefix = "course:%d"
)

const (
	UserTTL   = 5 * time.Minute
	CircleTTL = 2 * time.Minute
	CourseTTL = 5 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func CircleKey(circleID uint) string {
	return fmt.Sprintf(CircleKeyPrefix, circleID)
}

func CourseKey(courseID uint) string {
	return fmt.Sprintf(CourseKeyPrefix, courseID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateCircle(ctx context.Context, circleID uint) {
	Invalidate(ctx, CircleKey(circleID))
}

func InvalidateCourse(ctx context.Context, courseID uint) {
	Invalidate(ctx, CourseKey(courseID))
}
