package mocks

import (
	"context"
	"schedly/shared/cache"
)

// inertCache is a cache that never hits and never fails. Service tests use it
// so that async invalidation goroutines cannot race test teardown.
type inertCache struct {
}

// Clear implements cache.RedisCache.
func (c *inertCache) Clear(_ context.Context, _ string) error {
	return nil
}

// Delete implements cache.RedisCache.
func (c *inertCache) Delete(_ context.Context, _ string) error {
	return nil
}

// Get implements cache.RedisCache.
func (c *inertCache) Get(_ context.Context, _ string, _ any) error {
	return cache.Nil
}

// Save implements cache.RedisCache.
func (c *inertCache) Save(_ context.Context, _ string, _ any, _ int) error {
	return nil
}

func NewInertCache() cache.RedisCache {
	return &inertCache{}
}
