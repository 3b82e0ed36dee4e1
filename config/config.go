// Package config contains client configuration: static defaults compiled
// in, plus user settings persisted locally between runs.
package config

import "image/color"

// WindowConfig sizes the game window.
type WindowConfig struct {
	Width  int
	Height int
	Title  string
}

// NetworkConfig carries connection defaults.
type NetworkConfig struct {
	Address         string
	DialTimeoutSecs int
	LogFile         string
}

// PlayerConfig holds presentation values for player entities. Movement
// speed itself lives in the prediction package: it must match the server
// and is not user-tunable.
type PlayerConfig struct {
	Size         float64 // rendered square edge, world units
	PickupRadius float64 // crate interaction distance
}

var (
	Window = WindowConfig{Width: 960, Height: 540, Title: "gridfire"}

	Network = NetworkConfig{
		Address:         "ws://localhost:8080/ws",
		DialTimeoutSecs: 10,
		LogFile:         "gridfire.log",
	}

	Player = PlayerConfig{Size: 24, PickupRadius: 32}
)

// Palette for the rect-based renderer.
var (
	White       = color.RGBA{255, 255, 255, 255}
	BrightGreen = color.RGBA{64, 255, 64, 255}
	LightGrey   = color.RGBA{180, 180, 180, 255}
	Red         = color.RGBA{255, 64, 64, 255}
	Yellow      = color.RGBA{255, 224, 64, 255}
)
