package entity

import "strings"

// Platform marketplace soportado por el panel.
type Platform string

const (
	PlatformShopee Platform = "Shopee"
	PlatformTikTok Platform = "TikTok"
	PlatformLazada Platform = "Lazada"
)

// Platforms las tres plataformas canónicas, en el orden fijo de los slots
// del dashboard.
var Platforms = [3]Platform{PlatformShopee, PlatformTikTok, PlatformLazada}

// NormalizePlatform convierte una etiqueta libre en la plataforma canónica,
// sin distinguir mayúsculas. "tik tok" es una grafía habitual en los exports
// de TikTok Shop. Devuelve ok=false si la etiqueta no se reconoce; el caller
// decide descartarla (nunca es fatal).
func NormalizePlatform(label string) (Platform, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "shopee":
		return PlatformShopee, true
	case "tiktok", "tik tok":
		return PlatformTikTok, true
	case "lazada":
		return PlatformLazada, true
	default:
		return "", false
	}
}

// PlatformFilter filtro de plataforma explícito: o todas, o una concreta.
// El sentinel "all" del query string se traduce a/desde este tipo únicamente
// en el borde HTTP; el resto del código nunca compara strings mágicos.
type PlatformFilter struct {
	all  bool
	name Platform
}

// AllPlatforms filtro que no restringe por plataforma.
func AllPlatforms() PlatformFilter {
	return PlatformFilter{all: true}
}

// OnePlatform filtro restringido a una plataforma canónica.
func OnePlatform(p Platform) PlatformFilter {
	return PlatformFilter{name: p}
}

// ParsePlatformFilter interpreta el valor del query string. Vacío o "all"
// significa todas; cualquier otra cosa debe normalizar a una plataforma
// canónica.
func ParsePlatformFilter(raw string) (PlatformFilter, bool) {
	if raw == "" || strings.EqualFold(raw, "all") {
		return AllPlatforms(), true
	}
	p, ok := NormalizePlatform(raw)
	if !ok {
		return PlatformFilter{}, false
	}
	return OnePlatform(p), true
}

// IsAll indica si el filtro abarca todas las plataformas.
func (f PlatformFilter) IsAll() bool { return f.all }

// Matches indica si la plataforma dada pasa el filtro.
func (f PlatformFilter) Matches(p Platform) bool {
	return f.all || f.name == p
}

// Param devuelve el valor a pasar a las consultas rollup: nil cuando el
// filtro es "todas", el nombre canónico en caso contrario.
func (f PlatformFilter) Param() *string {
	if f.all {
		return nil
	}
	s := string(f.name)
	return &s
}

// String representación wire del filtro ("all" o el nombre canónico).
func (f PlatformFilter) String() string {
	if f.all {
		return "all"
	}
	return string(f.name)
}
