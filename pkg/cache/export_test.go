package cache

import "time"

// SetNowFunc reemplaza el reloj de la caché; solo para tests.
func SetNowFunc(c *Cache, now func() time.Time) {
	c.now = now
}
