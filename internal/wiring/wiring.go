// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pakt/internal/adapters/config"
	_ "go.trai.ch/pakt/internal/adapters/logger"
	_ "go.trai.ch/pakt/internal/adapters/shell"
	_ "go.trai.ch/pakt/internal/adapters/tarball"
	_ "go.trai.ch/pakt/internal/adapters/telemetry/progrock"
	// Register the app node.
	_ "go.trai.ch/pakt/internal/app"
)
