//go:build mage

package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-demo/engine/scene"
	"github.com/gogpu/naga"
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Compiles every package, then each example program into bin/.
func (Build) All() error {
	mg.Deps(Build.Shaders)
	if _, err := executeCmd("go", withArgs("build", "./..."), withStream()); err != nil {
		return err
	}
	for _, example := range examples {
		if _, err := executeCmd("go", withArgs("build", "-o", "bin/"+example.name, example.path), withStream()); err != nil {
			return err
		}
	}
	return nil
}

// Validates the embedded WGSL shaders with naga.
func (Build) Shaders() error {
	return buildShaders()
}

func buildShaders() error {
	shaders := map[string]func() (string, error){
		"basic": scene.BasicShaderSource,
	}
	for name, load := range shaders {
		source, err := load()
		if err != nil {
			return fmt.Errorf("shader %s: %w", name, err)
		}
		if _, err := naga.Compile(source); err != nil {
			return fmt.Errorf("shader %s: %w", name, err)
		}
		fmt.Printf("shader %s ok\n", name)
	}
	return nil
}
