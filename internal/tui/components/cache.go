package components

import (
	"github.com/mitchellh/hashstructure/v2"
)

// renderCache remembers the last rendering of a panel keyed by a hash
// of everything that went into it. Panels are redrawn on every tick, so
// unchanged lists skip the layout work.
type renderCache struct {
	key  uint64
	view string
	ok   bool
}

// get returns the cached view for input or renders and stores a new
// one. Inputs that cannot be hashed are always rendered.
func (c *renderCache) get(input any, render func() string) string {
	key, err := hashstructure.Hash(input, hashstructure.FormatV2, nil)
	if err != nil {
		return render()
	}
	if c.ok && c.key == key {
		return c.view
	}
	c.key, c.view, c.ok = key, render(), true
	return c.view
}
