// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/lookalike/internal/adapters/config"
	_ "go.trai.ch/lookalike/internal/adapters/dhash"
	_ "go.trai.ch/lookalike/internal/adapters/fs"
	_ "go.trai.ch/lookalike/internal/adapters/logger"
	// Register app nodes.
	_ "go.trai.ch/lookalike/internal/app"
)
