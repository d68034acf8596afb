package ast

// NewUnion builds a union over the given members, applying the normalization
// invariants:
//
//   - nested unions are flattened
//   - never members are discarded
//   - any/unknown collapse the union to that member
//   - structural duplicates are removed, first occurrence wins
//   - zero members yield never; one member yields that member unwrapped
func NewUnion(members ...AST) AST {
	flat := make([]AST, 0, len(members))
	for _, m := range members {
		flat = appendMember(flat, m)
	}
	out := make([]AST, 0, len(flat))
	for _, m := range flat {
		if IsAny(m) || IsUnknown(m) {
			return m
		}
		if IsNever(m) {
			continue
		}
		dup := false
		for _, seen := range out {
			if Equal(seen, m) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, m)
		}
	}
	switch len(out) {
	case 0:
		return NeverKeyword
	case 1:
		return out[0]
	}
	return &Union{Members: out}
}

func appendMember(dst []AST, m AST) []AST {
	if u, ok := m.(*Union); ok {
		for _, inner := range u.Members {
			dst = appendMember(dst, inner)
		}
		return dst
	}
	return append(dst, m)
}
