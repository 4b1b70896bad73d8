//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

type example struct {
	name string
	path string
}

var examples = []example{
	{name: "demo", path: "examples/demo.go"},
	{name: "scenes", path: "examples/scene_switch.go"},
}

// Runs the single-scene demo.
func (Run) Demo() error {
	return runExample(examples[0])
}

// Runs the scene switching demo (keys 1 to 4).
func (Run) Scenes() error {
	return runExample(examples[1])
}

func runExample(e example) error {
	if err := buildShaders(); err != nil {
		return err
	}
	fmt.Printf("Run %s...\n", e.name)
	if _, err := executeCmd("go", withArgs("run", e.path), withStream()); err != nil {
		return err
	}
	return nil
}
