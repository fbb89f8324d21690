//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Generate runs the teaching team for the topic in $TOPIC and writes the
// learning package under output/. Set $MODEL to override the configured model.
func Generate() error {
	mg.Deps(Init)
	topic := os.Getenv("TOPIC")
	if topic == "" {
		return fmt.Errorf("TOPIC is required, e.g. TOPIC=\"Rust ownership\" mage generate")
	}
	args := []string{"run", cmdPkg, "generate", "--topic", topic}
	if model := os.Getenv("MODEL"); model != "" {
		args = append(args, "--model", model)
	}
	return sh.RunV("go", args...)
}

// Models lists the models available on the local Ollama runtime.
func Models() error {
	return sh.RunV("go", "run", cmdPkg, "models")
}

// Test runs the unit tests for every package, including these targets.
func Test() error {
	return sh.RunV("go", "test", "-tags", "mage", "./...")
}
