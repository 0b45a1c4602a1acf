// Package scene caches the static source meshes a brush can paint from.
package scene

import (
	"moss-painter/internal/logging"
	"moss-painter/internal/mathutil"
)

// Cache holds the eligible source objects and their lazily baked world-space
// geometry. It is owned by the foreground loop and not safe for concurrent use.
type Cache struct {
	objects []*Object
	baked   []*Baked // nil until first touched
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Configure replaces the source set with every object that is not self, is
// static, has a mesh, and has a renderer with a material. All bakes start empty.
// Returns the number of sources kept.
func (c *Cache) Configure(objects []*Object, self *Object) int {
	c.objects = c.objects[:0]
	for _, obj := range objects {
		if obj == nil || obj == self {
			continue
		}
		if obj.Mesh == nil || !obj.Static {
			continue
		}
		if obj.Renderer == nil || obj.Renderer.Material() == "" {
			continue
		}
		c.objects = append(c.objects, obj)
	}
	c.baked = make([]*Baked, len(c.objects))

	logging.For("scene").Debug("sources configured", "offered", len(objects), "kept", len(c.objects))
	return len(c.objects)
}

// Len returns the number of configured sources.
func (c *Cache) Len() int {
	return len(c.objects)
}

// Object returns source i.
func (c *Cache) Object(i int) *Object {
	return c.objects[i]
}

// Reset drops every cached bake; sources stay configured.
func (c *Cache) Reset() {
	for i := range c.baked {
		c.baked[i] = nil
	}
}

// Scanned reports whether source i has been baked.
func (c *Cache) Scanned(i int) bool {
	return c.baked[i] != nil
}

// EnsureScanned bakes source i on first use and returns the cached result.
// ok is false when the source's mesh has vanished or cannot be baked; such
// sources are skipped, never reported as errors.
func (c *Cache) EnsureScanned(i int) (b *Baked, ok bool) {
	if b := c.baked[i]; b != nil {
		return b, true
	}
	obj := c.objects[i]
	if obj == nil || obj.Mesh == nil {
		return nil, false
	}
	b, err := Bake(obj.Mesh, obj.Transform)
	if err != nil {
		logging.For("scene").Warn("source skipped", "name", obj.Name, "err", err)
		return nil, false
	}
	c.baked[i] = b
	logging.For("scene").Debug("source scanned", "name", obj.Name, "triangles", b.TriangleCount())
	return b, true
}

// SourceBounds returns the live world-space bounds of source i.
func (c *Cache) SourceBounds(i int) (mathutil.Box, bool) {
	r := c.objects[i].Renderer
	if r == nil || !r.Alive() {
		return mathutil.Box{}, false
	}
	return r.Bounds(), true
}

// QueryBoundsOverlap appends to buf the index of every source whose bounds
// intersect box, in cache order. Destroyed or missing renderers are skipped.
func (c *Cache) QueryBoundsOverlap(box mathutil.Box, buf []int) []int {
	for i := range c.objects {
		b, ok := c.SourceBounds(i)
		if !ok {
			continue
		}
		if mathutil.Overlaps(b, box) {
			buf = append(buf, i)
		}
	}
	return buf
}
