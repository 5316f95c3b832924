package lineage

// Eligibility restricts which vertices take part in a layout run, e.g. a
// user selection. It must answer consistently for the whole run.
type Eligibility func(*Vertex) bool

// All admits every vertex.
func All(*Vertex) bool { return true }

// Allows reports whether v is eligible. A nil Eligibility admits everything.
func (e Eligibility) Allows(v *Vertex) bool {
	return e == nil || e(v)
}

// Selection admits only the vertices whose IDs are listed.
// An empty selection admits every vertex, matching "no selection active".
func Selection(ids ...string) Eligibility {
	if len(ids) == 0 {
		return All
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(v *Vertex) bool {
		_, ok := set[v.ID]
		return ok
	}
}

// Filter returns the members of vs admitted by e, preserving order.
func (e Eligibility) Filter(vs []*Vertex) []*Vertex {
	out := make([]*Vertex, 0, len(vs))
	for _, v := range vs {
		if e.Allows(v) {
			out = append(out, v)
		}
	}
	return out
}
