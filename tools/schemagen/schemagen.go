// Package main generates JSON schemas for the locmeta JSON outputs.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sumatoshi-tech/locmeta/pkg/schema"
)

var outputDir string

func main() {
	flag.StringVar(&outputDir, "o", "docs/schemas", "Output directory for schemas")
	flag.Parse()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	for _, name := range schema.Names() {
		if err := writeSchema(name); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing schema for %s: %v\n", name, err)
			os.Exit(1)
		}

		fmt.Printf("Generated schema for %s\n", name)
	}

	fmt.Println("All schemas generated successfully")
}

func writeSchema(name string) error {
	s, err := schema.For(name)
	if err != nil {
		return err
	}

	data, err := schema.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(outputDir, name+".json"), data, 0o644)
}
