package items

import (
	"sort"
	"sync"
)

// Memory implements a simple in-memory version of a Store. It is intended
// mainly for testing and for running a development server with no AWS
// resources at hand.
type Memory struct {
	m     sync.RWMutex
	table map[string]Item
}

var _ Store = &Memory{}

// NewMemory returns a new, empty memory store.
func NewMemory() *Memory {
	return &Memory{table: make(map[string]Item)}
}

func (ms *Memory) Insert(item *Item) error {
	ms.m.Lock()
	ms.table[item.ID] = *item
	ms.m.Unlock()
	return nil
}

func (ms *Memory) Item(id string) (*Item, error) {
	ms.m.RLock()
	item, ok := ms.table[id]
	ms.m.RUnlock()
	if !ok {
		return nil, ErrNoItem
	}
	return &item, nil
}

func (ms *Memory) Delete(id string) error {
	ms.m.Lock()
	delete(ms.table, id)
	ms.m.Unlock()
	return nil
}

func (ms *Memory) All() ([]*Item, error) {
	ms.m.RLock()
	result := make([]*Item, 0, len(ms.table))
	for _, item := range ms.table {
		dup := item
		result = append(result, &dup)
	}
	ms.m.RUnlock()
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt < result[j].CreatedAt
	})
	return result, nil
}

// Public mimics the secondary index: only records explicitly marked PUBLIC
// are returned, ordered by creation time, in the reduced projection.
func (ms *Memory) Public() ([]*PublicItem, error) {
	all, _ := ms.All()
	var result []*PublicItem
	for _, item := range all {
		if !item.IsPublic() {
			continue
		}
		result = append(result, &PublicItem{
			ID:        item.ID,
			Title:     item.Title,
			Latitude:  item.Latitude,
			Longitude: item.Longitude,
			Category:  item.Category,
		})
	}
	return result, nil
}
