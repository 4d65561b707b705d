// Package cache contiene cachés acotadas en memoria usadas delante de los repositorios.
package cache

import (
	"container/list"
	"sync"
)

// LRI es una caché de capacidad fija que, al llenarse, descarta la entrada insertada hace más tiempo.
// Las lecturas no cambian el orden de desalojo. Segura para uso concurrente.
type LRI[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // frente = inserción más antigua
	entries  map[K]*list.Element
}

type lriEntry[K comparable, V any] struct {
	key   K
	value V
}

// NewLRI crea la caché. capacity <= 0 deshabilita el almacenamiento (toda lectura falla).
func NewLRI[K comparable, V any](capacity int) *LRI[K, V] {
	return &LRI[K, V]{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[K]*list.Element),
	}
}

// Get devuelve el valor y si estaba presente.
func (c *LRI[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		return el.Value.(*lriEntry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Put inserta o reemplaza. Reemplazar una clave existente no la rejuvenece.
func (c *LRI[K, V]) Put(key K, value V) {
	if c.capacity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		el.Value.(*lriEntry[K, V]).value = value
		return
	}
	for c.order.Len() >= c.capacity {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*lriEntry[K, V]).key)
	}
	c.entries[key] = c.order.PushBack(&lriEntry[K, V]{key: key, value: value})
}

// Delete elimina la clave si existe.
func (c *LRI[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.order.Remove(el)
		delete(c.entries, key)
	}
}

// Len número de entradas.
func (c *LRI[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
