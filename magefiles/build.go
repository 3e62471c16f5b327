//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Downloads the modules and builds the testbed binary into bin/.
func (Build) Testbed() error {
	if _, err := executeCmd("go", withArgs("mod", "download")); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/rtscam", "."), withStream()); err != nil {
		return err
	}
	return nil
}

type Test mg.Namespace

// Runs every package test.
func (Test) All() error {
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the camera and settings tests, which need no window system.
func (Test) Camera() error {
	if _, err := executeCmd("go", withArgs("test", "-v", "./engine/components/...", "./engine/math/...", "./engine/assets/loaders/..."), withStream()); err != nil {
		return err
	}
	return nil
}
