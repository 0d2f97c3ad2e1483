package pulse

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

type uniformKey struct {
	program uint32
	name    string
}

// UniformCache remembers uniform locations per program. Locations are stable
// once a program is linked, so they only need to be looked up once.
type UniformCache struct {
	dev   Device
	cache *lru.Cache[uniformKey, int32]
}

func NewUniformCache(dev Device) *UniformCache {
	cache, _ := lru.New[uniformKey, int32](16)

	return &UniformCache{
		dev:   dev,
		cache: cache,
	}
}

// Location returns the location of the named uniform in the program,
// or -1 if the program has no such active uniform.
func (c *UniformCache) Location(program uint32, name string) int32 {
	key := uniformKey{program: program, name: name}

	location, ok := c.cache.Get(key)
	if ok {
		return location
	}

	location = c.dev.GetUniformLocation(program, name)
	if location < 0 {
		slog.Warn("Uniform not found in program",
			slog.String("name", name),
			slog.Int("program", int(program)),
		)
	}

	c.cache.Add(key, location)

	return location
}

// Forget drops all cached locations of the given program. Must be called
// before a program is deleted, as the driver may reuse its name.
func (c *UniformCache) Forget(program uint32) {
	for _, key := range c.cache.Keys() {
		if key.program == program {
			c.cache.Remove(key)
		}
	}
}
