package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/isaacphi/promptcheck/internal/config"
	"github.com/isaacphi/promptcheck/internal/toolchoice"
)

func main() {
	var outFile, target string
	var strict bool
	flag.StringVar(&outFile, "out", "schema.json", "Output file path")
	flag.StringVar(&target, "target", "toolchoice", "Schema to generate (toolchoice, config)")
	flag.BoolVar(&strict, "strict", false, "Disallow undeclared tool-choice properties")
	flag.Parse()

	// Convert to absolute path if relative
	if !filepath.IsAbs(outFile) {
		// Get the directory where the tool is being run from
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
			os.Exit(1)
		}
		outFile = filepath.Join(wd, outFile)
	}

	var schema *jsonschema.Schema
	switch target {
	case "toolchoice":
		schema = toolchoice.JSONSchema(strict)
	case "config":
		var err error
		if schema, err = config.GenerateJSONSchema(); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating schema: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown target %q (expected toolchoice or config)\n", target)
		os.Exit(2)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling schema: %v\n", err)
		os.Exit(1)
	}

	// Ensure the directory exists
	dir := filepath.Dir(outFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory %s: %v\n", dir, err)
		os.Exit(1)
	}

	if err := os.WriteFile(outFile, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing schema to %s: %v\n", outFile, err)
		os.Exit(1)
	}
	fmt.Printf("Schema written to %s\n", outFile)
}
