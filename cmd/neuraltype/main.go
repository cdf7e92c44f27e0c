// Package main provides the neuraltype CLI for inspecting neural types and
// checking contract catalogs.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/born-ml/neuraltype/internal/neural"
	"github.com/born-ml/neuraltype/internal/typecheck"
)

const version = "v0.0.1-dev"

var errUsage = errors.New("usage")

func main() {
	log.SetFlags(0)
	log.SetPrefix("neuraltype: ")

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			usage(os.Stderr)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, w io.Writer) error {
	if len(args) == 0 {
		usage(w)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(w, "neuraltype %s\n", version)
		return nil
	case "compare":
		if len(args) != 3 {
			return errUsage
		}
		return compare(w, args[1], args[2])
	case "check":
		if len(args) < 2 {
			return errUsage
		}
		return check(w, args[1], args[2:])
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "neuraltype - runtime neural type checking")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version                      Show version")
	fmt.Fprintln(w, "  compare <actual> <expected>  Compare two type literals, e.g. \"(B,D):Logits\"")
	fmt.Fprintln(w, "  check <file> [pipeline...]   Check the pipelines of a contract catalog")
}

func compare(w io.Writer, actual, expected string) error {
	a, err := neural.Parse(actual)
	if err != nil {
		return err
	}
	e, err := neural.Parse(expected)
	if err != nil {
		return err
	}
	r := neural.Compare(a, e)
	fmt.Fprintf(w, "%s vs %s: %s\n", a, e, r)
	if !r.Accepted() {
		return fmt.Errorf("%s is not accepted where %s is expected", a, e)
	}
	return nil
}

func check(w io.Writer, path string, pipelines []string) error {
	catalog, err := typecheck.LoadContractFile(path)
	if err != nil {
		return err
	}
	if len(pipelines) == 0 {
		pipelines = catalog.Pipelines()
	}

	failed := 0
	for _, name := range pipelines {
		if err := catalog.CheckPipeline(name); err != nil {
			log.Print(err)
			failed++
			continue
		}
		fmt.Fprintf(w, "ok   %s\n", name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d pipelines failed", failed, len(pipelines))
	}
	return nil
}
