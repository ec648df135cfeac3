package ports

import "github.com/grindlemire/graft"

// Well-known graft node IDs. Adapters register under these and dependents
// declare them, so the wiring contract lives next to the port interfaces.
const (
	LoggerNodeID       graft.ID = "adapter.logger"
	ConfigLoaderNodeID graft.ID = "adapter.config_loader"
	ExtractorNodeID    graft.ID = "adapter.tarball"
	ScriptRunnerNodeID graft.ID = "adapter.script_runner"
	TelemetryNodeID    graft.ID = "adapter.telemetry"
)
