// Package redis provides the Redis connection and the Redis-backed stats
// cache. The cache is optional; services fall back to a no-op cache when no
// Redis URL is configured.
package redis
