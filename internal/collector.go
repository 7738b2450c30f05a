package internal

import (
	"slices"
	"strings"
)

// MainContent is the slot filled by Add.
const MainContent = "MainContent"

// Collector accumulates the fragments and title produced by the controllers
// of one request. Fragments keep insertion order per slot; the title is last
// write wins. A Collector is owned by a single request and is not safe for
// concurrent use.
type Collector struct {
	slots map[string][]string
	names []string
	title string
}

func NewCollector() *Collector {
	return &Collector{slots: make(map[string][]string)}
}

// Add appends data to the main slot.
func (c *Collector) Add(data string) {
	c.AddTo(MainContent, data)
}

// AddTo appends data to a named slot. An empty slot name means MainContent.
func (c *Collector) AddTo(slot, data string) {
	if slot == "" {
		slot = MainContent
	}
	if _, ok := c.slots[slot]; !ok {
		c.names = append(c.names, slot)
	}
	c.slots[slot] = append(c.slots[slot], data)
}

// AddTitle sets the page title, replacing any earlier one.
func (c *Collector) AddTitle(title string) {
	c.title = title
}

// Title returns the page title, or "" if none was set.
func (c *Collector) Title() string {
	return c.title
}

// Slot returns a copy of the fragments in slot.
func (c *Collector) Slot(name string) []string {
	return slices.Clone(c.slots[name])
}

// Main returns a copy of the main slot.
func (c *Collector) Main() []string {
	return c.Slot(MainContent)
}

// SlotNames returns slot names in first-use order.
func (c *Collector) SlotNames() []string {
	return slices.Clone(c.names)
}

// Join concatenates a slot's fragments.
func (c *Collector) Join(slot string) string {
	return strings.Join(c.slots[slot], "")
}

// Len returns the total number of fragments across slots.
func (c *Collector) Len() int {
	n := 0
	for _, s := range c.slots {
		n += len(s)
	}
	return n
}

// Empty reports whether nothing was collected, title included.
func (c *Collector) Empty() bool {
	return c.Len() == 0 && c.title == ""
}
