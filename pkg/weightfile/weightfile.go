// Package weightfile reads and writes weights files: line-oriented CSV
// describing a weight schedule. The format is
//
//	# comment
//	mass_unit, position_unit
//	mass, x, y, z[, name]
//	...
//
// Comment lines and blank lines are ignored. Lines containing "{{" are
// template placeholders, kept in the file for later substitution but
// skipped when loading: this lets a partially filled template report
// how much weight is already committed.
//
// On load, masses are always normalized to kilograms. Positions keep
// the file's unit unless Options.PositionsToMetres is set.
package weightfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/ballast-cad/ballast/pkg/units"
	"github.com/ballast-cad/ballast/pkg/weight"
)

var (
	// ErrBadFormat is returned for a structurally invalid weights file.
	ErrBadFormat = errors.New("malformed weights file")

	// ErrUnsupportedMember is returned by Write for a member that is
	// neither a *weight.Weight nor a *weight.Collection.
	ErrUnsupportedMember = errors.New("member cannot be written to a weights file")
)

// Options controls how a weights file is loaded.
type Options struct {
	// PositionsToMetres converts the XYZ coordinates from the file's
	// position unit to metres.
	PositionsToMetres bool
}

// File is a loaded weights file: the collection plus the units the
// file declared.
type File struct {
	Weights      *weight.Collection
	MassUnit     string
	PositionUnit string
}

// Load reads a weights file. Masses are converted to kilograms using
// the declared mass unit; positions are converted to metres when
// opts.PositionsToMetres is set, otherwise left in the declared unit.
func Load(path string, opts Options) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		massUnit, posUnit string
		haveUnits         bool
		col               = weight.NewCollection()
		lineNo            int
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !haveUnits {
			// First data line declares the units.
			parts := strings.Split(line, ",")
			if len(parts) != 2 {
				return nil, fmt.Errorf("%w: line %d: expected \"mass_unit, position_unit\", got %q",
					ErrBadFormat, lineNo, line)
			}
			massUnit = strings.TrimSpace(parts[0])
			posUnit = strings.TrimSpace(parts[1])
			haveUnits = true
			continue
		}

		// Template placeholder lines are not part of the schedule yet.
		if strings.Contains(line, "{{") {
			continue
		}

		w, err := parseEntry(line, massUnit, posUnit, opts)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		col.Add(w)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !haveUnits {
		return nil, fmt.Errorf("%w: missing units line", ErrBadFormat)
	}

	return &File{Weights: col, MassUnit: massUnit, PositionUnit: posUnit}, nil
}

// parseEntry parses a "mass, x, y, z[, name]" line into a Weight.
func parseEntry(line, massUnit, posUnit string, opts Options) (*weight.Weight, error) {
	parts := strings.Split(line, ",")
	if len(parts) < 4 {
		return nil, fmt.Errorf("%w: expected \"mass, x, y, z[, name]\", got %q", ErrBadFormat, line)
	}

	var vals [4]float64
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: field %d: %v", ErrBadFormat, i+1, err)
		}
		vals[i] = v
	}
	var name string
	if len(parts) > 4 {
		name = strings.TrimSpace(parts[4])
	}

	massKg, err := units.ToKilograms(vals[0], massUnit)
	if err != nil {
		return nil, err
	}

	pos := v3.Vec{X: vals[1], Y: vals[2], Z: vals[3]}
	if opts.PositionsToMetres {
		for _, c := range [3]*float64{&pos.X, &pos.Y, &pos.Z} {
			m, err := units.ToMetres(*c, posUnit)
			if err != nil {
				return nil, err
			}
			*c = m
		}
	}

	return weight.New(massKg, pos, name)
}

// Write writes a collection to a weights file, converting masses from
// kilograms to massUnit and positions from metres to posUnit. Nested
// collections are flattened to their leaf weights.
func Write(path string, c *weight.Collection, massUnit, posUnit string) error {
	var b strings.Builder
	b.WriteString("# mass_unit, position_unit\n")
	b.WriteString("# mass, x, y, z, name\n")
	fmt.Fprintf(&b, "%s, %s\n", massUnit, posUnit)

	if err := writeMembers(&b, c, massUnit, posUnit); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// writeMembers appends one line per leaf weight, recursing into nested
// collections.
func writeMembers(b *strings.Builder, c *weight.Collection, massUnit, posUnit string) error {
	for _, m := range c.Members() {
		switch v := m.(type) {
		case *weight.Weight:
			mass, err := units.Convert(v.Mass(), "kg", massUnit)
			if err != nil {
				return err
			}
			cg, _ := v.CG()
			x, err := units.Convert(cg.X, "m", posUnit)
			if err != nil {
				return err
			}
			y, err := units.Convert(cg.Y, "m", posUnit)
			if err != nil {
				return err
			}
			z, err := units.Convert(cg.Z, "m", posUnit)
			if err != nil {
				return err
			}
			fmt.Fprintf(b, "%s, %s, %s, %s, %s\n",
				formatFloat(mass), formatFloat(x), formatFloat(y), formatFloat(z), v.Name())

		case *weight.Collection:
			if err := writeMembers(b, v, massUnit, posUnit); err != nil {
				return err
			}

		default:
			return fmt.Errorf("%w: %T", ErrUnsupportedMember, m)
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
