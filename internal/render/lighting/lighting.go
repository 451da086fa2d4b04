package lighting

import (
	"image/color"
	"log"
	"math"
	"sort"

	"github.com/google/uuid"

	"chosenoffset.com/astrolight/internal/core/geometry"
	"chosenoffset.com/astrolight/internal/core/shadows"
)

// LightSource represents a single light source in the game world
type LightSource struct {
	ID        uuid.UUID
	Position  geometry.Point // World position
	Radius    float64        // Half size of the lit rectangle
	Intensity float64        // Light intensity (0.0 to 1.0)
	Color     color.NRGBA    // Light color
}

// Occluder is something in the world that blocks light
type Occluder struct {
	Shape    shadows.Occluder
	Position geometry.Point
	Rotation float64
}

// Visibility is the lit region of one light for one frame
type Visibility struct {
	Light   LightSource
	Polygon *shadows.LightningPolygon
}

// Manager handles all light sources in the game
type Manager struct {
	ambientLight  float64 // Global ambient light level (0.0 = pitch black, 1.0 = fully lit)
	playerLight   *LightSource
	playerLightOn bool
	lights        map[uuid.UUID]*LightSource
	debug         bool
}

// NewManager creates a new lighting manager
func NewManager() *Manager {
	return &Manager{
		ambientLight:  0.15,
		playerLightOn: true,
		lights:        make(map[uuid.UUID]*LightSource),
	}
}

// SetDebug enables per-light log output
func (m *Manager) SetDebug(debug bool) {
	m.debug = debug
}

// SetAmbientLight sets the global ambient light level
func (m *Manager) SetAmbientLight(level float64) {
	m.ambientLight = math.Min(math.Max(level, 0), 1)
}

// GetAmbientLight returns the current ambient light level
func (m *Manager) GetAmbientLight() float64 {
	return m.ambientLight
}

// SetPlayerLight configures the light the player carries
func (m *Manager) SetPlayerLight(position geometry.Point, radius, intensity float64, col color.NRGBA) {
	if m.playerLight == nil {
		m.playerLight = &LightSource{ID: uuid.New()}
	}
	m.playerLight.Position = position
	m.playerLight.Radius = radius
	m.playerLight.Intensity = intensity
	m.playerLight.Color = col
}

// EnablePlayerLight turns on/off the player's light source
func (m *Manager) EnablePlayerLight(enabled bool) {
	m.playerLightOn = enabled
}

// IsPlayerLightOn returns whether the player's light is currently on
func (m *Manager) IsPlayerLightOn() bool {
	return m.playerLightOn
}

// UpdatePlayerLightPosition moves the player's light (called each frame)
func (m *Manager) UpdatePlayerLightPosition(position geometry.Point) {
	if m.playerLight != nil {
		m.playerLight.Position = position
	}
}

// AddLight registers a static light and returns its ID
func (m *Manager) AddLight(position geometry.Point, radius, intensity float64, col color.NRGBA) uuid.UUID {
	light := &LightSource{
		ID:        uuid.New(),
		Position:  position,
		Radius:    radius,
		Intensity: intensity,
		Color:     col,
	}
	m.lights[light.ID] = light
	if m.debug {
		log.Printf("lighting: added light %s at (%.1f, %.1f) radius=%.1f intensity=%.2f",
			light.ID, position.X, position.Y, radius, intensity)
	}
	return light.ID
}

// MoveLight places a light at a new position. Returns false for an unknown ID.
func (m *Manager) MoveLight(id uuid.UUID, position geometry.Point) bool {
	light, ok := m.lights[id]
	if !ok {
		return false
	}
	light.Position = position
	return true
}

// RemoveLight removes a light source
func (m *Manager) RemoveLight(id uuid.UUID) {
	delete(m.lights, id)
}

// ClearLights removes every light except the player's
func (m *Manager) ClearLights() {
	m.lights = make(map[uuid.UUID]*LightSource)
}

// GetAllLights returns all active light sources, player light first
func (m *Manager) GetAllLights() []LightSource {
	lights := make([]LightSource, 0, len(m.lights)+1)

	if m.playerLightOn && m.playerLight != nil {
		lights = append(lights, *m.playerLight)
	}

	static := make([]LightSource, 0, len(m.lights))
	for _, light := range m.lights {
		static = append(static, *light)
	}
	// Map order is random; keep the draw order stable between frames
	sort.Slice(static, func(i, j int) bool {
		return static[i].ID.String() < static[j].ID.String()
	})

	return append(lights, static...)
}

// VisibilityPolygons builds the lit region of every active light. Each light
// gets its own polygon, clipped against the occluders that reach into its
// rectangle.
func (m *Manager) VisibilityPolygons(occluders []Occluder) []Visibility {
	lights := m.GetAllLights()
	result := make([]Visibility, 0, len(lights))
	for _, light := range lights {
		result = append(result, Visibility{Light: light, Polygon: Compute(light, occluders)})
	}
	return result
}

// Compute clips a fresh rectangle around the light against occluders
func Compute(light LightSource, occluders []Occluder) *shadows.LightningPolygon {
	c := light.Position
	r := light.Radius
	poly := shadows.NewRectangle(c.X-r, c.Y-r, c.X+r, c.Y+r, c)
	for _, o := range occluders {
		if !inRange(light, o) {
			continue
		}
		poly.ClipOneRotated(o.Shape, o.Position, o.Rotation)
	}
	return poly
}

// inRange checks the occluder's bounding circle against the light rectangle
func inRange(light LightSource, o Occluder) bool {
	reach := light.Radius + shadows.BoundingRadius(o.Shape)
	return math.Abs(o.Position.X-light.Position.X) <= reach &&
		math.Abs(o.Position.Y-light.Position.Y) <= reach
}

// IsLit reports whether a point is inside any of the lit regions
func IsLit(p geometry.Point, visible []Visibility) bool {
	for _, v := range visible {
		if geometry.PointInPolygon(p, v.Polygon.Points) {
			return true
		}
	}
	return false
}

// LightLevel returns the brightness at a point: ambient plus the strongest
// light that sees it, capped at 1
func (m *Manager) LightLevel(p geometry.Point, visible []Visibility) float64 {
	level := m.ambientLight
	best := 0.0
	for _, v := range visible {
		if geometry.PointInPolygon(p, v.Polygon.Points) {
			best = math.Max(best, v.Light.Intensity)
		}
	}
	return math.Min(level+best, 1)
}
