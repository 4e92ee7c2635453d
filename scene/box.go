package scene

import "github.com/phanxgames/inkwell"

// Box is a host element whose bounds are placed explicitly by a scene's
// Layout. It has no layout until the first Place.
type Box struct {
	b      inkwell.Bounds
	placed bool
}

// Place sets the box's layout.
func (x *Box) Place(b inkwell.Bounds) {
	x.b = b
	x.placed = true
}

// Clear drops the layout, as if the element were detached.
func (x *Box) Clear() {
	x.b = inkwell.Bounds{}
	x.placed = false
}

// Bounds implements inkwell.Element.
func (x *Box) Bounds() (inkwell.Bounds, bool) { return x.b, x.placed }
