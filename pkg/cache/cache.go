// Package cache implementa una caché en memoria con TTL fijo y semántica
// single-flight: varias peticiones concurrentes con la misma clave comparten
// un único cómputo en vez de duplicar el trabajo contra la base de datos.
package cache

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// entry valor cacheado con su instante de expiración.
type entry struct {
	value     any
	expiresAt time.Time
}

// Cache instancia inyectable (no hay estado a nivel de paquete, así los tests
// construyen cachés aisladas). Las entradas expiradas se reemplazan de forma
// perezosa en el siguiente Fetch; no hay barrido en segundo plano.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group

	// now es reemplazable en tests para verificar la expiración sin dormir.
	now func() time.Time
}

// New construye una caché vacía.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// get devuelve el valor vivo para key, si existe y no ha expirado.
func (c *Cache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// set almacena value con expiresAt = now + ttl.
func (c *Cache) set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Fetch devuelve el valor cacheado para key o ejecuta compute para obtenerlo.
//
//   - Entrada viva: se devuelve sin invocar compute.
//   - Cómputo en vuelo para la misma key: se espera y comparte su resultado
//     (single-flight), nunca se lanza un segundo cómputo.
//   - Si no: se ejecuta compute, se guarda el resultado con el TTL dado y se
//     devuelve. Un compute que falla no se cachea; la siguiente llamada
//     reintenta desde cero.
func Fetch[T any](c *Cache, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	if v, ok := c.get(key); ok {
		return v.(T), nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Segunda comprobación dentro del vuelo: otro caller pudo haber
		// completado y cacheado mientras esperábamos el turno del grupo.
		if v, ok := c.get(key); ok {
			return v, nil
		}
		value, err := compute()
		if err != nil {
			return nil, err
		}
		c.set(key, value, ttl)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Key construye una clave determinista a partir de un prefijo y un mapa de
// parámetros. Es independiente del orden de inserción (las claves se ordenan)
// y un valor nil equivale a la ausencia de la clave, de modo que dos
// peticiones lógicamente iguales producen la misma clave de caché.
func Key(prefix string, params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(prefix)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fmt.Sprintf("%v", params[k]))
	}
	return b.String()
}
