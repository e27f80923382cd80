// Package catalog holds the ordered, read-only set of prompt-writing
// challenges.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrIndexOutOfRange is returned by Get for an index outside the catalog.
var ErrIndexOutOfRange = errors.New("challenge index out of range")

// Challenge is a single exercise with its rubric.
type Challenge struct {
	ID          string   `yaml:"id" validate:"required"`
	Level       int      `yaml:"level" validate:"min=1"`
	Number      int      `yaml:"number" validate:"min=1"`
	Title       string   `yaml:"title" validate:"required"`
	Description string   `yaml:"description" validate:"required"`
	Criteria    []string `yaml:"criteria" validate:"min=1,dive,required"`
	Hint        string   `yaml:"hint"`
	Example     string   `yaml:"example"`
	Tags        []string `yaml:"tags" validate:"dive,required"`
}

// HasTag reports whether the challenge declares tag.
func (c Challenge) HasTag(tag string) bool {
	return slices.Contains(c.Tags, tag)
}

func (c Challenge) clone() Challenge {
	c.Criteria = slices.Clone(c.Criteria)
	c.Tags = slices.Clone(c.Tags)
	return c
}

// Catalog is an immutable, ordered sequence of challenges. It is safe for
// concurrent use.
type Catalog struct {
	challenges []Challenge
	byID       map[string]int
}

// New builds a catalog from challenges in the given order. Every record is
// field-checked and ids must be unique.
func New(challenges []Challenge) (*Catalog, error) {
	if err := validateChallenges(challenges); err != nil {
		return nil, err
	}

	c := &Catalog{
		challenges: make([]Challenge, len(challenges)),
		byID:       make(map[string]int, len(challenges)),
	}
	for i, ch := range challenges {
		c.challenges[i] = ch.clone()
		c.byID[ch.ID] = i
	}
	return c, nil
}

// Len returns the number of challenges.
func (c *Catalog) Len() int {
	return len(c.challenges)
}

// Get returns the challenge at index i.
func (c *Catalog) Get(i int) (Challenge, error) {
	if i < 0 || i >= len(c.challenges) {
		return Challenge{}, fmt.Errorf("%w: %d (catalog has %d)", ErrIndexOutOfRange, i, len(c.challenges))
	}
	return c.challenges[i].clone(), nil
}

// ByID returns the challenge with the given id.
func (c *Catalog) ByID(id string) (Challenge, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Challenge{}, false
	}
	return c.challenges[i].clone(), true
}

// IndexOf returns the position of the challenge with the given id, or -1.
func (c *Catalog) IndexOf(id string) int {
	if i, ok := c.byID[id]; ok {
		return i
	}
	return -1
}

// All returns a copy of every challenge in order.
func (c *Catalog) All() []Challenge {
	out := make([]Challenge, len(c.challenges))
	for i, ch := range c.challenges {
		out[i] = ch.clone()
	}
	return out
}

//go:embed challenges.yaml
var challengesYAML []byte

// Default returns the catalog built from the embedded dataset. The dataset
// ships with the binary, so a failure to load it panics.
var Default = sync.OnceValue(func() *Catalog {
	c, err := Load(challengesYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded dataset: %v", err))
	}
	return c
})
