// Package refdata carga las tablas de referencia del motor (tarifas ICA por CIIU, pares de
// cuentas por pagar y catálogo PUC) desde CSV o XLSX y las memoiza por ruta.
package refdata

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Loader carga una tabla desde una ruta.
type Loader[T any] func(ctx context.Context, path string) (T, error)

// Cache memoiza tablas de solo lectura por ruta durante la vida del proceso. Accesos
// concurrentes a una ruta aún no cargada comparten una sola carga; los errores no se
// memoizan y el siguiente acceso reintenta.
type Cache[T any] struct {
	load  Loader[T]
	group singleflight.Group

	mu    sync.RWMutex
	items map[string]T
}

// NewCache crea una caché vacía.
func NewCache[T any](load Loader[T]) *Cache[T] {
	return &Cache[T]{load: load, items: make(map[string]T)}
}

// Get devuelve la tabla de path, cargándola la primera vez.
func (c *Cache[T]) Get(ctx context.Context, path string) (T, error) {
	if v, ok := c.cached(path); ok {
		return v, nil
	}
	v, err, _ := c.group.Do(path, func() (any, error) {
		if v, ok := c.cached(path); ok {
			return v, nil
		}
		v, err := c.load(ctx, path)
		if err != nil {
			return v, err
		}
		c.mu.Lock()
		c.items[path] = v
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (c *Cache[T]) cached(path string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[path]
	return v, ok
}
