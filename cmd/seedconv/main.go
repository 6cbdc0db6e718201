// seedconv converts a YAML seed world into a snapshot JSON file, validating
// the seed along the way. Useful for checking authored content without a
// database, and for producing fixtures.
//
// Usage:
//
//	go run ./cmd/seedconv [-seed path] [-out path] [-pretty]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mythforge/server/internal/data"
)

func main() {
	seedPath := flag.String("seed", "data/world.yaml", "seed world YAML file")
	outPath := flag.String("out", "", "output JSON file (default stdout)")
	pretty := flag.Bool("pretty", true, "indent the JSON output")
	flag.Parse()

	if err := run(*seedPath, *outPath, *pretty); err != nil {
		fmt.Fprintf(os.Stderr, "seedconv: %v\n", err)
		os.Exit(1)
	}
}

func run(seedPath, outPath string, pretty bool) error {
	state, err := data.LoadWorld(seedPath)
	if err != nil {
		return err
	}

	var out []byte
	if pretty {
		out, err = json.MarshalIndent(state, "", "  ")
	} else {
		out, err = json.Marshal(state)
	}
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	out = append(out, '\n')

	if outPath == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d locations, %d npcs, %d factions)\n",
		outPath, len(state.Locations), len(state.NPCs), len(state.Factions))
	return nil
}
