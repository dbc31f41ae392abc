package errors

// Well-known error codes. The full set lives in the registry below;
// these constants cover the codes raised from library code.
const (
	ErrInternal       = "T001"
	ErrEffectPanic    = "T002"
	ErrRecursiveFlush = "T003"
	ErrDuplicateKey   = "T020"
	ErrTeleportTarget = "T021"
	ErrStaticMismatch = "T022"
	ErrDecodeFrame    = "T040"
	ErrFrameTooLarge  = "T041"
	ErrUnknownEvent   = "T042"
	ErrSessionClosed  = "T043"
	ErrBadConfig      = "T060"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (T001-T019)
	// ============================================

	ErrInternal: {
		Category: CategoryRuntime,
		Message:  "Internal runtime error",
		Detail:   "An unexpected error escaped an effect or render function.",
		DocURL:   "https://tideui.dev/docs/errors/T001",
	},
	ErrEffectPanic: {
		Category: CategoryRuntime,
		Message:  "Effect panicked",
		Detail:   "An effect function panicked during a flush. The remaining queued effects still ran.",
		DocURL:   "https://tideui.dev/docs/errors/T002",
	},
	ErrRecursiveFlush: {
		Category: CategoryRuntime,
		Message:  "Flush did not settle",
		Detail:   "Effects kept scheduling each other across flush passes. Check for a write inside an effect that re-triggers the same effect without AllowRecurse.",
		DocURL:   "https://tideui.dev/docs/errors/T003",
	},
	"T004": {
		Category: CategoryRuntime,
		Message:  "Owner disposed",
		Detail:   "A signal or effect was used after its owning component unmounted.",
		DocURL:   "https://tideui.dev/docs/errors/T004",
	},

	// ============================================
	// Reconcile Errors (T020-T039)
	// ============================================

	ErrDuplicateKey: {
		Category: CategoryReconcile,
		Message:  "Duplicate key in keyed fragment",
		Detail:   "Two siblings in the same fragment carry the same key. The second falls back to positional matching, which defeats move detection.",
		DocURL:   "https://tideui.dev/docs/errors/T020",
	},
	ErrTeleportTarget: {
		Category: CategoryReconcile,
		Message:  "Teleport target not found",
		Detail:   "The teleport target selector matched no host node. Children were mounted in place instead.",
		DocURL:   "https://tideui.dev/docs/errors/T021",
	},
	ErrStaticMismatch: {
		Category: CategoryReconcile,
		Message:  "Static content mismatch",
		Detail:   "A hoisted static node's content hash changed between renders. Static nodes must be created once and reused.",
		DocURL:   "https://tideui.dev/docs/errors/T022",
	},
	"T023": {
		Category: CategoryReconcile,
		Message:  "Host operation failed",
		Detail:   "The host backend rejected a tree mutation.",
		DocURL:   "https://tideui.dev/docs/errors/T023",
	},

	// ============================================
	// Protocol Errors (T040-T059)
	// ============================================

	ErrDecodeFrame: {
		Category: CategoryProtocol,
		Message:  "Invalid frame",
		Detail:   "The received frame could not be decoded. The protocol version may be mismatched.",
		DocURL:   "https://tideui.dev/docs/errors/T040",
	},
	ErrFrameTooLarge: {
		Category: CategoryProtocol,
		Message:  "Frame exceeds size limit",
		Detail:   "The frame payload is larger than the configured maximum.",
		DocURL:   "https://tideui.dev/docs/errors/T041",
	},
	ErrUnknownEvent: {
		Category: CategoryProtocol,
		Message:  "Unknown event target",
		Detail:   "The event references a node ID or handler that no longer exists. The tree may have been patched since the client sent the event.",
		DocURL:   "https://tideui.dev/docs/errors/T042",
	},
	ErrSessionClosed: {
		Category: CategoryProtocol,
		Message:  "Session closed",
		Detail:   "The session ID is invalid or the session has been closed.",
		DocURL:   "https://tideui.dev/docs/errors/T043",
	},
	"T044": {
		Category: CategoryProtocol,
		Message:  "Protocol version mismatch",
		Detail:   "The client and server are using incompatible protocol versions.",
		DocURL:   "https://tideui.dev/docs/errors/T044",
	},

	// ============================================
	// Configuration Errors (T060-T079)
	// ============================================

	ErrBadConfig: {
		Category: CategoryConfig,
		Message:  "Invalid tide.json",
		Detail:   "The tide.json configuration file is malformed.",
		DocURL:   "https://tideui.dev/docs/errors/T060",
	},
	"T061": {
		Category: CategoryConfig,
		Message:  "Missing required configuration",
		Detail:   "A required configuration value is not set.",
		DocURL:   "https://tideui.dev/docs/errors/T061",
	},
	"T062": {
		Category: CategoryConfig,
		Message:  "Invalid listen address",
		Detail:   "The configured listen address could not be parsed.",
		DocURL:   "https://tideui.dev/docs/errors/T062",
	},

	// ============================================
	// CLI Errors (T080-T099)
	// ============================================

	"T080": {
		Category: CategoryCLI,
		Message:  "Not a Tide project",
		Detail:   "The current directory has no tide.json. Run this command from a project root.",
		DocURL:   "https://tideui.dev/docs/errors/T080",
	},
	"T081": {
		Category: CategoryCLI,
		Message:  "Benchmark failed",
		Detail:   "The benchmark scenario returned an error before completing.",
		DocURL:   "https://tideui.dev/docs/errors/T081",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
