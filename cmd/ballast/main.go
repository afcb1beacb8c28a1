// Command ballast loads a weight schedule from a weights CSV file or a
// schedule script and reports its mass properties: total mass, centre
// of gravity and weight under standard gravity.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/ballast-cad/ballast/pkg/engine"
	"github.com/ballast-cad/ballast/pkg/force"
	"github.com/ballast-cad/ballast/pkg/weight"
	"github.com/ballast-cad/ballast/pkg/weightfile"
)

func main() {
	var (
		script   = flag.Bool("script", false, "treat the input as a schedule script instead of a weights CSV")
		toMetres = flag.Bool("metres", true, "convert CSV positions to metres on load")
		out      = flag.String("out", "", "rewrite the schedule to this weights CSV file")
		massUnit = flag.String("mass-unit", "kg", "mass unit used with -out")
		posUnit  = flag.String("pos-unit", "m", "position unit used with -out")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ballast: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	if flag.NArg() != 1 {
		log.Error("expected exactly one input file")
		fmt.Fprintln(os.Stderr, "usage: ballast [flags] <weights-file>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	col, err := load(path, *script, *toMetres)
	if err != nil {
		log.Errorw("failed to load schedule", "path", path, "error", err)
		os.Exit(1)
	}

	report(col)

	if *out != "" {
		if err := weightfile.Write(*out, col, *massUnit, *posUnit); err != nil {
			log.Errorw("failed to write schedule", "path", *out, "error", err)
			os.Exit(1)
		}
		log.Infow("schedule written", "path", *out, "mass_unit", *massUnit, "pos_unit", *posUnit)
	}
}

// load reads the schedule either from a weights CSV or, with script
// set, by evaluating a schedule script.
func load(path string, script, toMetres bool) (*weight.Collection, error) {
	if !script {
		f, err := weightfile.Load(path, weightfile.Options{PositionsToMetres: toMetres})
		if err != nil {
			return nil, err
		}
		return f.Weights, nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	col, evalErrs, err := engine.NewEngine().Evaluate(string(source))
	if err != nil {
		return nil, err
	}
	if len(evalErrs) > 0 {
		msgs := make([]string, len(evalErrs))
		for i, e := range evalErrs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("script errors: %s", strings.Join(msgs, "; "))
	}
	return col, nil
}

// report prints each entry and the aggregate mass properties.
func report(col *weight.Collection) {
	for _, m := range col.Members() {
		printMember(m, "")
	}

	fmt.Printf("total mass: %.6g [kg]\n", col.Mass())
	fmt.Printf("weight:     %.6g [N]\n", force.WeightN(col))

	cg, err := col.CG()
	switch {
	case errors.Is(err, weight.ErrEmptyCollection):
		fmt.Println("cg:         undefined (no entries)")
	case errors.Is(err, weight.ErrZeroTotalMass):
		fmt.Println("cg:         undefined (total mass is zero)")
	case err != nil:
		fmt.Printf("cg:         undefined (%v)\n", err)
	default:
		fmt.Printf("cg:         %.6g, %.6g, %.6g [m]\n", cg.X, cg.Y, cg.Z)
	}
}

func printMember(m weight.PointMass, indent string) {
	switch v := m.(type) {
	case *weight.Weight:
		cg, _ := v.CG()
		name := v.Name()
		if name == "" {
			name = "-"
		}
		fmt.Printf("%s%-20s %10.6g [kg] @ %.6g, %.6g, %.6g\n",
			indent, name, v.Mass(), cg.X, cg.Y, cg.Z)
	case *weight.Collection:
		fmt.Printf("%ssub-assembly (%d entries, %.6g [kg])\n", indent, v.Len(), v.Mass())
		for _, sub := range v.Members() {
			printMember(sub, indent+"  ")
		}
	default:
		fmt.Printf("%s%-20s %10.6g [kg]\n", indent, fmt.Sprintf("%T", m), m.Mass())
	}
}
