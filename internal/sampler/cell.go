package sampler

import "sync"

// Cell хранит последнюю отметку. Пишет только сэмплер, читать могут все.
// Changed возвращает канал, который закрывается при следующей записи.
type Cell struct {
	mu      sync.RWMutex
	sample  *Sample
	version uint64
	changed chan struct{}
}

func NewCell() *Cell {
	return &Cell{changed: make(chan struct{})}
}

// Store записывает новую отметку и будит всех ожидающих
func (c *Cell) Store(s Sample) {
	c.mu.Lock()
	c.sample = &s
	c.version++
	close(c.changed)
	c.changed = make(chan struct{})
	c.mu.Unlock()
}

// Load возвращает копию последней отметки
func (c *Cell) Load() (Sample, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.sample == nil {
		return Sample{}, false
	}
	return *c.sample, true
}

// Version - число записей с момента создания
func (c *Cell) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

func (c *Cell) Changed() <-chan struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.changed
}
