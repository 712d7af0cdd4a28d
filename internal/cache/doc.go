// Package cache keeps recent synthesis payloads in memory so an identical
// prompt and persona replay without another remote round trip. The cache is
// bounded by total payload bytes with LRU eviction; nothing is persisted to
// disk.
package cache
