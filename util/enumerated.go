package util

import (
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
)

// EnumSet maps string values to dense indexes in insertion order.
type EnumSet struct {
	mu     sync.RWMutex
	Enum   map[string]int
	Index  []string
	Frozen bool
}

func (e *EnumSet) Add(value string) (int, bool) {
	if e.Frozen {
		panic("Cannot add value to frozen enum set")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	enum, exists := e.Enum[value]
	if exists {
		return enum, false
	}
	enum = len(e.Index)
	e.Enum[value] = enum
	e.Index = append(e.Index, value)
	return enum, true
}

func (e *EnumSet) IndexOf(value string) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	enum, exists := e.Enum[value]
	return enum, exists
}

func (e *EnumSet) ValueOf(index int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if index < 0 || len(e.Index) <= index {
		panic("Unknown index requested: " + fmt.Sprintf("%v of %v", index, len(e.Index)))
	}
	return e.Index[index]
}

func (e *EnumSet) Contains(value string) bool {
	_, exists := e.IndexOf(value)
	return exists
}

func (e *EnumSet) Len() int {
	if e == nil {
		return 0
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.Index)
}

// Values returns a copy of the values in index order.
func (e *EnumSet) Values() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.Index)
}

func NewEnumSet(capacity int) *EnumSet {
	e := &EnumSet{
		sync.RWMutex{},
		make(map[string]int, capacity),
		make([]string, 0, capacity),
		false,
	}
	return e
}

// NewSortedEnumSet indexes the distinct values in lexicographic order and
// freezes the set.
func NewSortedEnumSet(values []string) *EnumSet {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	e := NewEnumSet(len(sorted))
	for _, v := range sorted {
		e.Add(v)
	}
	e.Frozen = true
	return e
}
