package signal

// Bindings is the complete set of actions for a scope of joins.
// A join absent from the set is unbound.
type Bindings map[Join]Action

// Bound reports whether join has an action in the set.
func (b Bindings) Bound(join Join) bool {
	_, ok := b[join]
	return ok
}

// Joins returns the bound joins in scope order.
func (b Bindings) Joins(scope []Join) []Join {
	var out []Join
	for _, j := range scope {
		if b.Bound(j) {
			out = append(out, j)
		}
	}
	return out
}

// Swap installs next on s. Every join in scope is cleared first; joins
// present in next are then bound. Joins in next outside scope are ignored.
func Swap(s Surface, scope []Join, next Bindings) {
	for _, j := range scope {
		s.ClearBoolAction(j)
	}
	for _, j := range scope {
		if a, ok := next[j]; ok && a != nil {
			s.SetBoolAction(j, a)
		}
	}
}
