package core

import (
	"errors"
)

var (
	ErrInvalidRange        = errors.New("range minimum is greater than its maximum")
	ErrNegativeMagnitude   = errors.New("magnitude must not be negative")
	ErrCameraNotFound      = errors.New("camera not found")
	ErrCameraAlreadyExists = errors.New("camera already registered")
	ErrCameraLimitReached  = errors.New("camera limit reached")
	ErrUnknownKey          = errors.New("unknown key name")
	ErrAssetNotFound       = errors.New("asset not found")
	ErrNoLoader            = errors.New("no loader registered for asset type")
	ErrAssetManagerClosed  = errors.New("asset manager already closed")
)
