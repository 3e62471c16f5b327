package engine

import (
	"github.com/spaghettifunk/rtscam/engine/systems"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	// Set by the engine once the systems are created.
	SystemManager *systems.SystemManager
	State         interface{}
	FnInitialize  Initialize
	FnUpdate      Update
	FnOnResize    OnResize
	FnShutdown    Shutdown
}

type Initialize func() error

// Update runs once per frame, after every camera has been updated.
type Update func(deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
