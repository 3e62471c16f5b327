//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed with the config.toml in the repository root.
func (Run) Testbed() error {
	fmt.Println("Run testbed...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "config.toml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Builds the testbed binary, then runs it.
func (Run) Binary() error {
	mg.Deps(Build.Testbed)
	if _, err := executeCmd("./bin/rtscam", withArgs("-config", "config.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
