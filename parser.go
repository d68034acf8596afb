package schema

import (
	"context"
	"encoding/json"
	"math/big"
	"reflect"
	"regexp"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/brandenbyers/schema/ast"
)

// direction selects which side of Transform nodes an interpretation runs.
type direction int

const (
	dirDecode direction = iota
	dirEncode
)

// parseFunc is the compiled form of a node. Both directions are compiled in
// a single traversal; dir swaps the branch taken at Transform nodes.
type parseFunc func(ctx context.Context, v any, opts ParseOptions, dir direction) (any, []ParseError)

// compiler carries the per-compilation memo table for lazy nodes, keyed by
// node identity. Tables are local to one compile call; the only process-wide
// state is the template-literal regex cache below.
type compiler struct {
	memo map[*ast.Lazy]parseFunc
}

func compile(node ast.AST) parseFunc {
	c := &compiler{memo: make(map[*ast.Lazy]parseFunc)}
	return c.compile(node)
}

// templateRegexes caches compiled template-literal patterns across
// compilations; patterns are pure functions of their source.
var templateRegexes, _ = lru.New[string, *regexp.Regexp](256)

func templateRegex(t *ast.TemplateLiteral) *regexp.Regexp {
	pat := t.Pattern()
	if re, ok := templateRegexes.Get(pat); ok {
		return re
	}
	re := regexp.MustCompile(pat)
	templateRegexes.Add(pat, re)
	return re
}

func (c *compiler) compile(node ast.AST) parseFunc {
	switch n := node.(type) {
	case *ast.Keyword:
		return compileKeyword(n)
	case *ast.Literal:
		return func(ctx context.Context, v any, opts ParseOptions, dir direction) (any, []ParseError) {
			if got, ok := matchConstant(n.Value, v); ok {
				return got, nil
			}
			return nil, []ParseError{TypeError{Expected: n, Actual: v}}
		}
	case *ast.UniqueSymbol:
		return func(ctx context.Context, v any, opts ParseOptions, dir direction) (any, []ParseError) {
			if s, ok := v.(*ast.Symbol); ok && s == n.Symbol {
				return s, nil
			}
			return nil, []ParseError{TypeError{Expected: n, Actual: v}}
		}
	case *ast.TemplateLiteral:
		re := templateRegex(n)
		return func(ctx context.Context, v any, opts ParseOptions, dir direction) (any, []ParseError) {
			if s, ok := v.(string); ok && re.MatchString(s) {
				return s, nil
			}
			return nil, []ParseError{TypeError{Expected: n, Actual: v}}
		}
	case *ast.Enums:
		return func(ctx context.Context, v any, opts ParseOptions, dir direction) (any, []ParseError) {
			for _, m := range n.Members {
				if got, ok := matchConstant(m.Value, v); ok {
					return got, nil
				}
			}
			return nil, []ParseError{TypeError{Expected: n, Actual: v}}
		}
	case *ast.Refinement:
		return c.compileRefinement(n)
	case *ast.Transform:
		return c.compileTransform(n)
	case *ast.Tuple:
		return c.compileTuple(n)
	case *ast.TypeLiteral:
		return c.compileTypeLiteral(n)
	case *ast.Union:
		return c.compileUnion(n)
	case *ast.Lazy:
		return c.compileLazy(n)
	case *ast.TypeAlias:
		inner := c.compile(n.Type)
		alias := n
		return func(ctx context.Context, v any, opts ParseOptions, dir direction) (any, []ParseError) {
			out, errs := inner(ctx, v, opts, dir)
			if len(errs) == 1 {
				// surface the alias (and its annotations) instead of the
				// anonymous underlying node in top-level type failures
				if te, ok := errs[0].(TypeError); ok && te.Expected == alias.Type {
					return nil, []ParseError{TypeError{Expected: alias, Actual: te.Actual}}
				}
			}
			return out, errs
		}
	}
	panic("schema: unreachable AST kind " + node.Kind().String())
}

// ---- keywords ----

func compileKeyword(n *ast.Keyword) parseFunc {
	kind := n.Kind()
	return func(ctx context.Context, v any, opts ParseOptions, dir direction) (any, []ParseError) {
		switch kind {
		case ast.KindUnknown, ast.KindAny:
			return v, nil
		case ast.KindNever:
			// falls through to the failure below
		case ast.KindVoid, ast.KindUndefined:
			if v == nil {
				return nil, nil
			}
		case ast.KindString:
			if s, ok := v.(string); ok {
				return s, nil
			}
		case ast.KindNumber:
			if f, ok := normalizeNumber(v); ok {
				return f, nil
			}
		case ast.KindBoolean:
			if b, ok := v.(bool); ok {
				return b, nil
			}
		case ast.KindBigInt:
			if b, ok := v.(*big.Int); ok {
				return b, nil
			}
		case ast.KindSymbol:
			if s, ok := v.(*ast.Symbol); ok {
				return s, nil
			}
		case ast.KindObject:
			if isObjectLike(v) {
				return v, nil
			}
		}
		return nil, []ParseError{TypeError{Expected: n, Actual: v}}
	}
}

// normalizeNumber widens any host numeric kind to float64.
func normalizeNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}

func isObjectLike(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer, reflect.Func:
		return true
	}
	return false
}

// matchConstant compares a declared constant against an input value,
// widening numeric inputs so 1 matches the literal 1.0.
func matchConstant(want, v any) (any, bool) {
	if b, ok := want.(*big.Int); ok {
		vb, ok := v.(*big.Int)
		if ok && b.Cmp(vb) == 0 {
			return vb, true
		}
		return nil, false
	}
	if f, ok := want.(float64); ok {
		vf, ok := normalizeNumber(v)
		if ok && vf == f {
			return vf, true
		}
		return nil, false
	}
	if want == nil {
		return nil, v == nil
	}
	if want == v {
		return v, true
	}
	return nil, false
}

// ---- refinement ----

func (c *compiler) compileRefinement(n *ast.Refinement) parseFunc {
	from := c.compile(n.From)
	return func(ctx context.Context, v any, opts ParseOptions, dir direction) (any, []ParseError) {
		out, errs := from(ctx, v, opts, dir)
		if len(errs) > 0 {
			return nil, []ParseError{RefinementError{Node: n, Actual: v, Kind: RefinementFrom, Errors: errs}}
		}
		// The predicate re-runs on the encode side too so encoded output
		// passes the full chain.
		if !n.Predicate(out) {
			return nil, []ParseError{RefinementError{Node: n, Actual: out, Kind: RefinementPredicate}}
		}
		return out, nil
	}
}

// ---- transform ----

func (c *compiler) compileTransform(n *ast.Transform) parseFunc {
	from := c.compile(n.From)
	to := c.compile(n.To)
	return func(ctx context.Context, v any, opts ParseOptions, dir direction) (any, []ParseError) {
		if dir == dirDecode {
			mid, errs := from(ctx, v, opts, dirDecode)
			if len(errs) > 0 {
				return nil, []ParseError{TransformError{Node: n, Actual: v, Kind: TransformFrom, Errors: errs}}
			}
			out, err := n.Decode(ctx, mid)
			if err != nil {
				return nil, []ParseError{transformationError(n, mid, err)}
			}
			return out, nil
		}
		mid, errs := to(ctx, v, opts, dirEncode)
		if len(errs) > 0 {
			return nil, []ParseError{TransformError{Node: n, Actual: v, Kind: TransformTo, Errors: errs}}
		}
		enc, err := n.Encode(ctx, mid)
		if err != nil {
			return nil, []ParseError{transformationError(n, mid, err)}
		}
		// chain into the source side so nested transforms encode too
		out, errs := from(ctx, enc, opts, dirEncode)
		if len(errs) > 0 {
			return nil, []ParseError{TransformError{Node: n, Actual: enc, Kind: TransformFrom, Errors: errs}}
		}
		return out, nil
	}
}

func transformationError(n *ast.Transform, actual any, err error) TransformError {
	te := TransformError{Node: n, Actual: actual, Kind: Transformation, Cause: err}
	if f, ok := AsFailure(err); ok {
		te.Errors = f.Errors
	}
	return te
}

// ---- tuple ----

func (c *compiler) compileTuple(n *ast.Tuple) parseFunc {
	elements := make([]parseFunc, len(n.Elements))
	for i, e := range n.Elements {
		elements[i] = c.compile(e.Type)
	}
	var restHead parseFunc
	trailing := make([]parseFunc, 0)
	if n.Rest != nil {
		restHead = c.compile(n.Rest[0])
		for _, t := range n.Rest[1:] {
			trailing = append(trailing, c.compile(t))
		}
	}
	node := n
	return func(ctx context.Context, v any, opts ParseOptions, dir direction) (any, []ParseError) {
		arr, ok := toSlice(v)
		if !ok {
			return nil, []ParseError{TypeError{Expected: node, Actual: v}}
		}
		var errs []ParseError
		out := make([]any, 0, len(arr))

		decodeAt := func(i int, fn parseFunc) bool {
			ev, es := fn(ctx, arr[i], opts, dir)
			if len(es) > 0 {
				errs = append(errs, IndexError{Index: i, Errors: es})
				return !opts.AllErrors
			}
			out = append(out, ev)
			return false
		}

		if node.Rest == nil {
			for i, e := range node.Elements {
				if i >= len(arr) {
					if e.Optional {
						break
					}
					errs = append(errs, IndexError{Index: i, Errors: []ParseError{MissingError{}}})
					if !opts.AllErrors {
						return nil, errs
					}
					continue
				}
				if decodeAt(i, elements[i]) {
					return nil, errs
				}
			}
			for i := len(node.Elements); i < len(arr); i++ {
				if opts.IsUnexpectedAllowed {
					break
				}
				errs = append(errs, IndexError{Index: i, Errors: []ParseError{UnexpectedError{Actual: arr[i]}}})
				if !opts.AllErrors {
					return nil, errs
				}
			}
			if len(errs) > 0 {
				return nil, errs
			}
			return out, nil
		}

		required := 0
		for _, e := range node.Elements {
			if !e.Optional {
				required++
			}
		}
		minLen := required + len(trailing)
		if len(arr) < minLen {
			for i := len(arr); i < minLen; i++ {
				errs = append(errs, IndexError{Index: i, Errors: []ParseError{MissingError{}}})
				if !opts.AllErrors {
					return nil, errs
				}
			}
			return nil, errs
		}
		// leading values fill fixed elements; absent optionals shift the
		// middle into the rest element
		avail := len(arr) - len(trailing)
		fixed := len(node.Elements)
		if avail < fixed {
			fixed = avail
		}
		for i := 0; i < fixed; i++ {
			if decodeAt(i, elements[i]) {
				return nil, errs
			}
		}
		for i := fixed; i < avail; i++ {
			if decodeAt(i, restHead) {
				return nil, errs
			}
		}
		for j := range trailing {
			if decodeAt(avail+j, trailing[j]) {
				return nil, errs
			}
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return out, nil
	}
}

func toSlice(v any) ([]any, bool) {
	if arr, ok := v.([]any); ok {
		return arr, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// ---- type literal ----

type indexMatcher struct {
	accepts func(key any) bool
	decode  parseFunc
}

func (c *compiler) compileTypeLiteral(n *ast.TypeLiteral) parseFunc {
	props := make([]parseFunc, len(n.Properties))
	for i, p := range n.Properties {
		props[i] = c.compile(p.Type)
	}
	indexes := make([]indexMatcher, len(n.Indexes))
	for i, ix := range n.Indexes {
		indexes[i] = indexMatcher{
			accepts: c.compileIndexParameter(ix.Parameter),
			decode:  c.compile(ix.Type),
		}
	}
	symbolic := hasSymbolKeys(n)
	node := n
	return func(ctx context.Context, v any, opts ParseOptions, dir direction) (any, []ParseError) {
		obj, ok := toObject(v)
		if !ok {
			return nil, []ParseError{TypeError{Expected: node, Actual: v}}
		}
		var errs []ParseError
		outKeys := make([]any, 0, len(node.Properties))
		outVals := make([]any, 0, len(node.Properties))
		declared := make(map[any]struct{}, len(node.Properties))

		for i, p := range node.Properties {
			declared[p.Name] = struct{}{}
			val, present := obj.get(p.Name)
			if !present {
				if p.Optional {
					continue
				}
				errs = append(errs, KeyError{Key: p.Name, Errors: []ParseError{MissingError{}}})
				if !opts.AllErrors {
					return nil, errs
				}
				continue
			}
			pv, es := props[i](ctx, val, opts, dir)
			if len(es) > 0 {
				errs = append(errs, KeyError{Key: p.Name, Errors: es})
				if !opts.AllErrors {
					return nil, errs
				}
				continue
			}
			outKeys = append(outKeys, p.Name)
			outVals = append(outVals, pv)
		}

		for _, k := range obj.sortedKeys() {
			if _, ok := declared[k]; ok {
				continue
			}
			val, _ := obj.get(k)
			matched := false
			for _, ix := range indexes {
				if !ix.accepts(k) {
					continue
				}
				matched = true
				iv, es := ix.decode(ctx, val, opts, dir)
				if len(es) > 0 {
					errs = append(errs, KeyError{Key: k, Errors: es})
					if !opts.AllErrors {
						return nil, errs
					}
					break
				}
				outKeys = append(outKeys, k)
				outVals = append(outVals, iv)
				break
			}
			if matched {
				continue
			}
			if opts.IsUnexpectedAllowed || opts.OnExcessProperty == ExcessIgnore {
				continue
			}
			errs = append(errs, KeyError{Key: k, Errors: []ParseError{UnexpectedError{Actual: val}}})
			if !opts.AllErrors {
				return nil, errs
			}
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return materializeObject(symbolic, outKeys, outVals), nil
	}
}

// hasSymbolKeys reports whether the literal can accept symbol keys; if so,
// the decoded shape is any-keyed regardless of the keys actually present.
func hasSymbolKeys(n *ast.TypeLiteral) bool {
	for _, p := range n.Properties {
		if _, ok := p.Name.(string); !ok {
			return true
		}
	}
	for _, ix := range n.Indexes {
		param := ix.Parameter
		for {
			if r, ok := param.(*ast.Refinement); ok {
				param = r.From
				continue
			}
			break
		}
		if ast.IsSymbol(param) {
			return true
		}
	}
	return false
}

func (c *compiler) compileIndexParameter(param ast.AST) func(key any) bool {
	switch p := param.(type) {
	case *ast.Keyword:
		if ast.IsString(p) {
			return func(key any) bool { _, ok := key.(string); return ok }
		}
		return func(key any) bool { _, ok := key.(*ast.Symbol); return ok }
	case *ast.TemplateLiteral:
		re := templateRegex(p)
		return func(key any) bool {
			s, ok := key.(string)
			return ok && re.MatchString(s)
		}
	case *ast.Refinement:
		base := c.compileIndexParameter(p.From)
		return func(key any) bool { return base(key) && p.Predicate(key) }
	}
	panic("schema: invalid index signature parameter " + param.Kind().String())
}

// object abstracts the two host map shapes a struct decode accepts.
type object struct {
	str map[string]any
	any map[any]any
}

func toObject(v any) (object, bool) {
	switch m := v.(type) {
	case map[string]any:
		return object{str: m}, true
	case map[any]any:
		return object{any: m}, true
	}
	return object{}, false
}

func (o object) get(key any) (any, bool) {
	if o.str != nil {
		s, ok := key.(string)
		if !ok {
			return nil, false
		}
		v, ok := o.str[s]
		return v, ok
	}
	v, ok := o.any[key]
	return v, ok
}

// sortedKeys returns own keys in a deterministic order: strings sorted
// lexicographically, then symbols by description.
func (o object) sortedKeys() []any {
	var strs []string
	var syms []*ast.Symbol
	if o.str != nil {
		for k := range o.str {
			strs = append(strs, k)
		}
	} else {
		for k := range o.any {
			switch x := k.(type) {
			case string:
				strs = append(strs, x)
			case *ast.Symbol:
				syms = append(syms, x)
			}
		}
	}
	sort.Strings(strs)
	sort.Slice(syms, func(i, j int) bool { return syms[i].String() < syms[j].String() })
	out := make([]any, 0, len(strs)+len(syms))
	for _, k := range strs {
		out = append(out, k)
	}
	for _, k := range syms {
		out = append(out, k)
	}
	return out
}

// materializeObject builds a fresh map containing only accepted keys. The
// result is map[string]any unless the schema admits symbol keys.
func materializeObject(symbolic bool, keys []any, vals []any) any {
	if symbolic {
		out := make(map[any]any, len(keys))
		for i, k := range keys {
			out[k] = vals[i]
		}
		return out
	}
	out := make(map[string]any, len(keys))
	for i, k := range keys {
		out[k.(string)] = vals[i]
	}
	return out
}

// ---- union ----

func (c *compiler) compileUnion(n *ast.Union) parseFunc {
	members := make([]parseFunc, len(n.Members))
	for i, m := range n.Members {
		members[i] = c.compile(m)
	}
	tagKey, table := discriminator(n)
	node := n
	return func(ctx context.Context, v any, opts ParseOptions, dir direction) (any, []ParseError) {
		if table != nil {
			if obj, ok := toObject(v); ok {
				if tag, ok := obj.get(tagKey); ok {
					if idx, ok := lookupTag(table, tag); ok {
						out, errs := members[idx](ctx, v, opts, dir)
						if len(errs) == 0 {
							return out, nil
						}
						return nil, []ParseError{UnionError{Node: node, Actual: v, Members: []MemberError{{Errors: errs}}}}
					}
				}
				// unknown or missing tag: fall through to the full trial so
				// refinements and transforms still get their chance
			}
		}
		branches := make([]MemberError, 0, len(members))
		for _, fn := range members {
			out, errs := fn(ctx, v, opts, dir)
			if len(errs) == 0 {
				return out, nil
			}
			branches = append(branches, MemberError{Errors: errs})
		}
		return nil, []ParseError{UnionError{Node: node, Actual: v, Members: branches}}
	}
}

type tagEntry struct {
	value  any
	member int
}

// discriminator detects the O(1) routing shape: every member is a
// TypeLiteral sharing a property whose type is a Literal with pairwise
// distinct values.
func discriminator(n *ast.Union) (any, []tagEntry) {
	first, ok := n.Members[0].(*ast.TypeLiteral)
	if !ok {
		return nil, nil
	}
candidates:
	for _, cand := range first.Properties {
		if !ast.IsLiteral(cand.Type) || cand.Optional {
			continue
		}
		table := make([]tagEntry, 0, len(n.Members))
		for i, m := range n.Members {
			tl, ok := m.(*ast.TypeLiteral)
			if !ok {
				return nil, nil
			}
			found := false
			for _, p := range tl.Properties {
				if p.Name != cand.Name || p.Optional {
					continue
				}
				lit, ok := p.Type.(*ast.Literal)
				if !ok {
					continue candidates
				}
				for _, e := range table {
					if _, same := matchConstant(e.value, lit.Value); same {
						continue candidates // ambiguous tag values
					}
				}
				table = append(table, tagEntry{value: lit.Value, member: i})
				found = true
				break
			}
			if !found {
				continue candidates
			}
		}
		return cand.Name, table
	}
	return nil, nil
}

func lookupTag(table []tagEntry, tag any) (int, bool) {
	for _, e := range table {
		if _, ok := matchConstant(e.value, tag); ok {
			return e.member, true
		}
	}
	return 0, false
}

// ---- lazy ----

func (c *compiler) compileLazy(n *ast.Lazy) parseFunc {
	if fn, ok := c.memo[n]; ok {
		return fn
	}
	var inner parseFunc
	fn := func(ctx context.Context, v any, opts ParseOptions, dir direction) (any, []ParseError) {
		return inner(ctx, v, opts, dir)
	}
	// register before forcing so self-references resolve to this wrapper;
	// compiling here leaves nothing to write when decode runs
	c.memo[n] = fn
	inner = c.compile(n.Force())
	return fn
}
