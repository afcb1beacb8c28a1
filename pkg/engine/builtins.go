package engine

import (
	"fmt"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/ballast-cad/ballast/pkg/weight"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource transforms schedule source code before passing it to
// zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal).
//     This avoids registering keyword symbols as globals, which would
//     conflict with user-defined variables of the same name.
//
//  2. ; line comments become // comments, which is what zygomys expects.
//
// Both transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword". := is preserved.
		if b[i] == ':' && i+1 < len(b) && b[i+1] != '=' && isLetter(b[i+1]) {
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			result = append(result, '"')
			result = append(result, []byte(kwPrefix)...)
			result = append(result, b[i+1:j]...)
			result = append(result, '"')
			i = j
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_' || c == '-'
}

// ---------------------------------------------------------------------------
// Sexp wrapper types
// ---------------------------------------------------------------------------

// sexpVec3 wraps a position vector.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpWeight wraps a *weight.Weight so it can be passed between
// builtins.
type sexpWeight struct {
	w *weight.Weight
}

func (s *sexpWeight) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s)", s.w)
}
func (s *sexpWeight) Type() *zygo.RegisteredType { return nil }

// sexpCollection wraps a *weight.Collection.
type sexpCollection struct {
	c *weight.Collection
}

func (s *sexpCollection) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(collection of %d)", s.c.Len())
}
func (s *sexpCollection) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string. Returns the
// keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword
// argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during
// preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: a flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a v3.Vec from a sexpVec3.
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toMember extracts a weight.PointMass from a sexpWeight or
// sexpCollection.
func toMember(s zygo.Sexp) (weight.PointMass, error) {
	switch v := s.(type) {
	case *sexpWeight:
		return v.w, nil
	case *sexpCollection:
		return v.c, nil
	}
	return nil, fmt.Errorf("expected weight or collection, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the schedule DSL builtins into a zygomys
// environment. The builtins operate on the provided collection,
// populating it during evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable
// string literals.
func registerBuiltins(env *zygo.Zlisp, schedule *weight.Collection) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		var coords [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: argument %d: %w", i+1, err)
			}
			coords[i] = f
		}

		return &sexpVec3{vec: v3.Vec{X: coords[0], Y: coords[1], Z: coords[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (weight :mass 2.5 :at (vec3 0 0 -0.2) :name "keel")
	// -----------------------------------------------------------------------
	env.AddFunction("weight", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		v, ok := pa.kw["mass"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("weight requires a :mass argument")
		}
		mass, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("weight: mass: %w", err)
		}

		var at v3.Vec
		if v, ok := pa.kw["at"]; ok {
			at, err = toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("weight: at: %w", err)
			}
		}

		var wName string
		if v, ok := pa.kw["name"]; ok {
			wName, err = toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("weight: name: %w", err)
			}
		}

		w, err := weight.New(mass, at, wName)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("weight: %w", err)
		}
		return &sexpWeight{w: w}, nil
	})

	// -----------------------------------------------------------------------
	// (collection w1 w2 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("collection", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		col := weight.NewCollection()
		for i, a := range pa.positional {
			m, err := toMember(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("collection: member %d: %w", i+1, err)
			}
			col.Add(m)
		}
		return &sexpCollection{c: col}, nil
	})

	// -----------------------------------------------------------------------
	// (add x ...) — append weights or sub-collections to the schedule
	// -----------------------------------------------------------------------
	env.AddFunction("add", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) == 0 {
			return zygo.SexpNull, fmt.Errorf("add requires at least one weight or collection")
		}

		var last zygo.Sexp = zygo.SexpNull
		for i, a := range pa.positional {
			m, err := toMember(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("add: argument %d: %w", i+1, err)
			}
			schedule.Add(m)
			last = a
		}
		return last, nil
	})
}
