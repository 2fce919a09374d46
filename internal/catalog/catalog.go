// Package catalog holds the mutable in-memory reference data of car
// makes, models and their suspension types. The catalog is built once
// at startup and passed by reference to whoever needs lookups; new
// entries added at runtime live until the process exits.
package catalog

import (
	"sort"
	"strings"
	"sync"
)

// Entry describes one car model and its factory suspension layout.
type Entry struct {
	Make            string `json:"make"`
	Model           string `json:"model"`
	YearStart       int    `json:"yearStart,omitempty"`
	YearEnd         int    `json:"yearEnd,omitempty"`
	FrontSuspension string `json:"frontSuspension"`
	RearSuspension  string `json:"rearSuspension"`
}

// SuspensionType is a selectable suspension kind with its display label.
type SuspensionType struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FrontSuspensionTypes lists the selectable front suspension kinds.
var FrontSuspensionTypes = []SuspensionType{
	{Value: "mcpherson", Label: "McPherson"},
	{Value: "independent", Label: "Независимая"},
	{Value: "dependent", Label: "Зависимая"},
	{Value: "double-wishbone", Label: "Двухрычажная"},
	{Value: "multi-link", Label: "Многорычажная"},
}

// RearSuspensionTypes lists the selectable rear suspension kinds.
var RearSuspensionTypes = []SuspensionType{
	{Value: "independent", Label: "Независимая"},
	{Value: "dependent", Label: "Зависимая"},
	{Value: "multi-link", Label: "Многорычажная"},
	{Value: "torsion-beam", Label: "Торсионная балка"},
	{Value: "leaf-spring", Label: "Рессорная"},
}

// SuspensionLabel resolves a suspension type value to its label.
func SuspensionLabel(value string) string {
	for _, t := range append(FrontSuspensionTypes, RearSuspensionTypes...) {
		if t.Value == value {
			return t.Label
		}
	}
	if value == "" {
		return "-"
	}
	return value
}

// Catalog is a thread-safe, process-lifetime car reference store.
type Catalog struct {
	mu      sync.RWMutex
	entries []Entry
}

// New creates a catalog pre-filled with the given entries.
func New(entries []Entry) *Catalog {
	c := &Catalog{}
	c.entries = append(c.entries, entries...)
	return c
}

// Makes returns all known makes, sorted alphabetically.
func (c *Catalog) Makes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var makes []string
	for _, e := range c.entries {
		if !seen[e.Make] {
			seen[e.Make] = true
			makes = append(makes, e.Make)
		}
	}
	sort.Strings(makes)
	return makes
}

// ModelsByMake returns all models of one make (case-insensitive).
func (c *Catalog) ModelsByMake(make string) []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var models []Entry
	for _, e := range c.entries {
		if strings.EqualFold(e.Make, make) {
			models = append(models, e)
		}
	}
	return models
}

// Find looks up one model by make and model name (case-insensitive).
// Returns nil when the catalog has no such entry.
func (c *Catalog) Find(make, model string) *Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, e := range c.entries {
		if strings.EqualFold(e.Make, make) && strings.EqualFold(e.Model, model) {
			found := e
			return &found
		}
	}
	return nil
}

// Add inserts a new entry at runtime. A model that already exists
// under its make (case-insensitive) is left untouched.
func (c *Catalog) Add(entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if strings.EqualFold(e.Make, entry.Make) && strings.EqualFold(e.Model, entry.Model) {
			return
		}
	}
	c.entries = append(c.entries, entry)
}

// Search returns up to limit entries whose make or model contains the
// query, case-insensitive. A non-positive limit means no cap.
func (c *Catalog) Search(query string, limit int) []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	q := strings.ToLower(query)
	var results []Entry
	for _, e := range c.entries {
		if strings.Contains(strings.ToLower(e.Make), q) ||
			strings.Contains(strings.ToLower(e.Model), q) {
			results = append(results, e)
			if limit > 0 && len(results) >= limit {
				break
			}
		}
	}
	return results
}
