// Package analytics contiene los casos de uso del panel de ventas:
// rankings top-N, avance de metas y comparación mes a mes.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/seller-dashboard/internal/application/dto"
	"github.com/jhoicas/seller-dashboard/internal/domain"
	"github.com/jhoicas/seller-dashboard/internal/domain/entity"
	"github.com/jhoicas/seller-dashboard/internal/domain/repository"
	"github.com/jhoicas/seller-dashboard/pkg/cache"
	"github.com/jhoicas/seller-dashboard/pkg/logger"
)

const (
	topN         = 5                // entradas por ranking en el dashboard
	topCacheTTL  = 60 * time.Second // mismo max-age que anuncia el endpoint
	queryTimeout = 5 * time.Second  // por consulta rollup / búsqueda de imágenes

	topCachePrefix = "dashboard:top"
)

// TopUseCase orquesta el fetch agregado del dashboard: tres consultas rollup
// independientes en paralelo, memoizadas tras la caché por combinación de
// filtros, más el enriquecimiento de imágenes en lote.
//
// Productos y provincias son obligatorios; las tarjetas por plataforma son
// suplementarias y degradan sin abortar la petición.
type TopUseCase struct {
	rollupRepo repository.RollupRepository
	cache      *cache.Cache
	log        *logger.Logger
}

// NewTopUseCase construye el caso de uso.
func NewTopUseCase(rollupRepo repository.RollupRepository, c *cache.Cache, log *logger.Logger) *TopUseCase {
	return &TopUseCase{rollupRepo: rollupRepo, cache: c, log: log}
}

// GetTop devuelve los rankings del dashboard para el filtro dado, sirviendo
// de la caché cuando la misma combinación se repite dentro del TTL.
func (uc *TopUseCase) GetTop(
	ctx context.Context,
	filter entity.PlatformFilter,
	start, end *time.Time,
) (*dto.DashboardTopDTO, error) {
	key := cache.Key(topCachePrefix, map[string]any{
		"platform": filterParam(filter),
		"start":    dateParam(start),
		"end":      dateParam(end),
	})

	return cache.Fetch(uc.cache, key, topCacheTTL, func() (*dto.DashboardTopDTO, error) {
		return uc.fetch(ctx, filter, start, end)
	})
}

// fetch es el cómputo protegido por la caché: el fan-out real contra la DB.
func (uc *TopUseCase) fetch(
	ctx context.Context,
	filter entity.PlatformFilter,
	start, end *time.Time,
) (*dto.DashboardTopDTO, error) {
	platform := filter.Param()

	// ── Tres consultas rollup en paralelo (sin dependencia entre sí) ──────────
	type productsResult struct {
		rows []repository.TopProductRow
		err  error
	}
	type provincesResult struct {
		rows []repository.TopProvinceRow
		err  error
	}
	type platformsResult struct {
		rows []repository.TopPlatformRow
		err  error
	}

	prodCh := make(chan productsResult, 1)
	provCh := make(chan provincesResult, 1)
	platCh := make(chan platformsResult, 1)

	go func() {
		qctx, cancel := context.WithTimeout(ctx, queryTimeout)
		defer cancel()
		rows, err := uc.rollupRepo.TopProducts(qctx, platform, start, end)
		prodCh <- productsResult{rows, err}
	}()
	go func() {
		qctx, cancel := context.WithTimeout(ctx, queryTimeout)
		defer cancel()
		rows, err := uc.rollupRepo.TopProvinces(qctx, platform, start, end)
		provCh <- provincesResult{rows, err}
	}()
	go func() {
		qctx, cancel := context.WithTimeout(ctx, queryTimeout)
		defer cancel()
		rows, err := uc.rollupRepo.TopPlatforms(qctx, platform, start, end)
		platCh <- platformsResult{rows, err}
	}()

	prod := <-prodCh
	prov := <-provCh
	plat := <-platCh

	// Productos y provincias son obligatorios: su fallo aborta la petición.
	if prod.err != nil {
		return nil, fmt.Errorf("%w: top productos: %v", domain.ErrAggregation, prod.err)
	}
	if prov.err != nil {
		return nil, fmt.Errorf("%w: top provincias: %v", domain.ErrAggregation, prov.err)
	}

	// Las tarjetas por plataforma son suplementarias: se degrada sin fallar.
	var platformRows []repository.TopPlatformRow
	if plat.err != nil {
		uc.log.Warn().Err(plat.err).Msg("top plataformas falló; el dashboard continúa sin tarjetas")
	} else {
		platformRows = plat.rows
	}

	// ── Top 5 (las consultas ya vienen ordenadas por revenue desc) ────────────
	products := truncateProducts(prod.rows)
	provinces := truncateProvinces(prov.rows)

	// ── Imágenes en lote (una consulta para todo el batch) ────────────────────
	uc.enrichImages(ctx, products)

	return &dto.DashboardTopDTO{
		OK:           true,
		TopProducts:  products,
		TopProvinces: provinces,
		Platforms:    platformSlots(platformRows),
	}, nil
}

// enrichImages completa ImageURL de cada producto con una única búsqueda por
// lote. Un nombre sin imagen queda con ImageURL nil; un fallo de la búsqueda
// completa también degrada a nil, nunca aborta la petición.
func (uc *TopUseCase) enrichImages(ctx context.Context, products []dto.TopProductDTO) {
	if len(products) == 0 {
		return
	}
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}

	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	rows, err := uc.rollupRepo.ProductImages(qctx, names)
	if err != nil {
		uc.log.Warn().Err(err).Msg("búsqueda de imágenes falló; productos sin imagen")
		return
	}

	byName := make(map[string]string, len(rows))
	for _, r := range rows {
		if r.ImageURL != "" {
			byName[r.Name] = r.ImageURL
		}
	}
	for i := range products {
		if url, ok := byName[products[i].Name]; ok {
			u := url
			products[i].ImageURL = &u
		}
	}
}

// truncateProducts convierte y recorta a topN, normalizando las etiquetas de
// plataforma (las no reconocidas se descartan del campo, nunca son fatales).
func truncateProducts(rows []repository.TopProductRow) []dto.TopProductDTO {
	if len(rows) > topN {
		rows = rows[:topN]
	}
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{
			Name:      r.Name,
			Variant:   r.Variant,
			Revenue:   r.Revenue,
			Qty:       r.Qty,
			Returned:  r.Returned,
			Platforms: normalizeLabels(r.Platforms),
			ImageURL:  nil,
		})
	}
	return out
}

func truncateProvinces(rows []repository.TopProvinceRow) []dto.TopProvinceDTO {
	if len(rows) > topN {
		rows = rows[:topN]
	}
	out := make([]dto.TopProvinceDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProvinceDTO{Name: r.Name, Revenue: r.Revenue, Qty: r.Qty})
	}
	return out
}

// platformSlots construye el resultado uniforme de 3 slots en orden Shopee,
// TikTok, Lazada. Un slot sin fila correspondiente queda en nil para que el
// cliente renderice "sin datos" en vez de omitirlo.
func platformSlots(rows []repository.TopPlatformRow) [3]*dto.TopPlatformDTO {
	var slots [3]*dto.TopPlatformDTO
	for i, canonical := range entity.Platforms {
		for _, r := range rows {
			p, ok := entity.NormalizePlatform(r.Platform)
			if !ok || p != canonical {
				continue
			}
			slots[i] = &dto.TopPlatformDTO{
				Platform: string(canonical),
				Variant:  r.Variant,
				Revenue:  r.Revenue,
				Qty:      r.Qty,
			}
			break
		}
	}
	return slots
}

// normalizeLabels mapea etiquetas libres a nombres canónicos, descartando las
// no reconocidas y los duplicados.
func normalizeLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[entity.Platform]bool, len(labels))
	for _, l := range labels {
		p, ok := entity.NormalizePlatform(l)
		if !ok || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, string(p))
	}
	return out
}

// filterParam valor del filtro para la clave de caché: nil cuando es "todas".
func filterParam(f entity.PlatformFilter) any {
	if f.IsAll() {
		return nil
	}
	return f.String()
}

// dateParam fecha para la clave de caché: nil cuando no hay límite.
func dateParam(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}
