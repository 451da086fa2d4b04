package polygon

import (
	"math"
	"math/rand"

	"chosenoffset.com/astrolight/internal/core/geometry"
)

// DestructionRules control when and how finely a polygon breaks apart
type DestructionRules struct {
	// MinArea is the area below which a polygon no longer splits
	MinArea float64 `json:"min_area"`
	// MinVertices is the vertex count below which a polygon no longer splits
	MinVertices int `json:"min_vertices"`
	// AreaPerSite adds one fragment per this much area
	AreaPerSite float64 `json:"area_per_site"`
	// ImpactPull is the smallest factor a random site keeps of its distance
	// to the impact. Lower values crowd fragments around the impact.
	ImpactPull float64 `json:"impact_pull"`
}

// DefaultDestructionRules returns the rules used by the asteroid field
func DefaultDestructionRules() DestructionRules {
	return DestructionRules{
		MinArea:     0.75,
		MinVertices: 3,
		AreaPerSite: 6,
		ImpactPull:  0.35,
	}
}

const maxSampleAttempts = 32

// Deconstruct breaks the polygon into convex fragments around a local-space
// impact point using the default rules. A single returned polygon means the
// polygon was too small to split and is the input itself.
func (p Polygon) Deconstruct(impact geometry.Point, sites int, rng *rand.Rand) []Polygon {
	return p.DeconstructWith(DefaultDestructionRules(), impact, sites, rng)
}

// DeconstructWith is Deconstruct with explicit rules
func (p Polygon) DeconstructWith(rules DestructionRules, impact geometry.Point, sites int, rng *rand.Rand) []Polygon {
	minVertices := rules.MinVertices
	if minVertices < 3 {
		minVertices = 3
	}
	area := p.Area()
	if len(p.Points) < minVertices || sites < 2 || area < rules.MinArea || area < geometry.Eps*geometry.Eps {
		return []Polygon{p}
	}

	count := 2 + rng.Intn(3) - 1
	if rules.AreaPerSite > 0 {
		count += int(area / rules.AreaPerSite)
	}
	if count < 2 {
		count = 2
	}
	if count > sites {
		count = sites
	}

	seeds := p.destructionSites(rules, impact, count, rng)
	if len(seeds) < 2 {
		return []Polygon{p}
	}

	fragments := make([]Polygon, 0, len(seeds))
	for i := range seeds {
		cell := voronoiCell(p.Points, seeds, i)
		if len(cell) < 3 || math.Abs(geometry.SignedArea(cell)) < geometry.Eps*geometry.Eps {
			continue
		}
		fragments = append(fragments, New(cell))
	}
	if len(fragments) < 2 {
		return []Polygon{p}
	}
	return fragments
}

// destructionSites places count sites inside the polygon. The first is the
// impact itself; the rest are drawn toward it.
func (p Polygon) destructionSites(rules DestructionRules, impact geometry.Point, count int, rng *rand.Rand) []geometry.Point {
	center := p.Centroid()
	origin := p.pullInside(impact, center)

	pull := math.Min(math.Max(rules.ImpactPull, 0), 1)
	seeds := make([]geometry.Point, 0, count)
	seeds = append(seeds, origin)
	for attempt := 0; len(seeds) < count && attempt < count*maxSampleAttempts; attempt++ {
		sample, ok := p.samplePoint(rng)
		if !ok {
			break
		}
		factor := pull + rng.Float64()*(1-pull)
		site := geometry.Lerp(origin, sample, factor)

		duplicate := false
		for _, s := range seeds {
			if geometry.EqPoint(s, site) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			seeds = append(seeds, site)
		}
	}
	return seeds
}

// pullInside walks pt toward center until it lies strictly inside
func (p Polygon) pullInside(pt, center geometry.Point) geometry.Point {
	for step := 0; step < 10; step++ {
		candidate := geometry.Lerp(center, pt, 1-float64(step)/10)
		if p.Contains(candidate) {
			return candidate
		}
	}
	return center
}

// samplePoint draws a uniform point inside the polygon by rejection
func (p Polygon) samplePoint(rng *rand.Rand) (geometry.Point, bool) {
	b := p.Bounds()
	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		pt := geometry.Pt(
			b.Min.X+rng.Float64()*b.Width(),
			b.Min.Y+rng.Float64()*b.Height(),
		)
		if p.Contains(pt) {
			return pt, true
		}
	}
	return geometry.Point{}, false
}

// voronoiCell clips the polygon down to the points closer to seeds[i] than to
// any other seed
func voronoiCell(points []geometry.Point, seeds []geometry.Point, i int) []geometry.Point {
	cell := append([]geometry.Point(nil), points...)
	for j, other := range seeds {
		if j == i {
			continue
		}
		mid := geometry.Lerp(seeds[i], other, 0.5)
		cell = geometry.ClipHalfPlane(cell, mid, other.Minus(seeds[i]))
		if len(cell) < 3 {
			return nil
		}
	}
	return geometry.Dedupe(cell)
}
