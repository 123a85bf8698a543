// Package cache provides a small generic LRU cache.
//
//	c := cache.New[sfnt.GlyphIndex, sfnt.Segments](256)
//	c.Put(gid, segs)
//	segs, ok := c.Get(gid)
//
// LRU is safe for concurrent use. It must not be copied after creation.
package cache
