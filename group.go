package inkwell

// Group advances several animations together and copies bound values into
// plain float64 fields after each update, so render code can read struct
// fields instead of querying values. A Group is done when every member is.
//
// There is no global animation manager: the owner calls Update each frame,
// directly or by handing the Group to a Runtime or Presence.
type Group struct {
	members []Animation
	fields  []*float64
	sources []*Value
}

// NewGroup creates a group of the given animations.
func NewGroup(anims ...Animation) *Group {
	g := &Group{}
	for _, a := range anims {
		g.Add(a)
	}
	return g
}

// Add appends an animation. Nil animations are ignored.
func (g *Group) Add(a Animation) {
	if a == nil {
		return
	}
	g.members = append(g.members, a)
}

// Bind adds v as a member and writes its value into field on every update.
// The field is written immediately so it never shows a stale zero.
func (g *Group) Bind(field *float64, v *Value) {
	g.Add(v)
	g.fields = append(g.fields, field)
	g.sources = append(g.sources, v)
	*field = v.Get()
}

// Len returns the number of members.
func (g *Group) Len() int { return len(g.members) }

// Update advances every member with the same frame, then writes bound
// fields.
func (g *Group) Update(f Frame) {
	for _, a := range g.members {
		a.Update(f)
	}
	for i, field := range g.fields {
		*field = g.sources[i].Get()
	}
}

// Done implements Animation. An empty group is done.
func (g *Group) Done() bool {
	for _, a := range g.members {
		if !a.Done() {
			return false
		}
	}
	return true
}
