package weapons

import (
	"github.com/solarlune/resolv"

	"github.com/gridfire/client/gamemath"
)

const crateTag = "crate"

// CrateField answers proximity queries against the weapon crates in the
// arena, backed by a resolv space. Queries before Init are a no-op (not an
// error): the first crate data may arrive before the scene finished setup.
type CrateField struct {
	space  *resolv.Space
	crates map[string]*resolv.Object
}

func NewCrateField() *CrateField {
	return &CrateField{crates: make(map[string]*resolv.Object)}
}

// Init builds the spatial index for an arena of the given size.
func (f *CrateField) Init(width, height int) {
	f.space = resolv.NewSpace(width, height, 16, 16)
	f.crates = make(map[string]*resolv.Object)
}

// Add registers a crate of the given size centered on pos. Replaces any
// crate with the same id.
func (f *CrateField) Add(id string, pos gamemath.Vec2, size float64) {
	if f.space == nil {
		return
	}
	f.RemoveCrate(id)
	obj := resolv.NewObject(pos.X-size/2, pos.Y-size/2, size, size, crateTag)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	obj.Data = id
	f.space.Add(obj)
	f.crates[id] = obj
}

// RemoveCrate drops a crate, e.g. after pickup.
func (f *CrateField) RemoveCrate(id string) {
	obj, ok := f.crates[id]
	if !ok {
		return
	}
	f.space.Remove(obj)
	delete(f.crates, id)
}

// Nearby returns the id of the closest crate whose center lies within
// radius of pos. ok is false when none is in range or the field is not
// initialized yet.
func (f *CrateField) Nearby(pos gamemath.Vec2, radius float64) (string, bool) {
	if f.space == nil || len(f.crates) == 0 {
		return "", false
	}

	// Probe the cells the query circle's bounding box covers, then
	// distance-filter against crate centers.
	probe := resolv.NewObject(pos.X-radius, pos.Y-radius, radius*2, radius*2)
	f.space.Add(probe)
	defer f.space.Remove(probe)

	bestID := ""
	bestDist := radius
	if check := probe.Check(0, 0, crateTag); check != nil {
		for _, obj := range check.ObjectsByTags(crateTag) {
			center := gamemath.Vec2{X: obj.X + obj.W/2, Y: obj.Y + obj.H/2}
			if d := pos.Dist(center); d <= bestDist {
				bestDist = d
				bestID, _ = obj.Data.(string)
			}
		}
	}
	if bestID == "" {
		return "", false
	}
	return bestID, true
}

// Len reports the number of registered crates.
func (f *CrateField) Len() int { return len(f.crates) }
