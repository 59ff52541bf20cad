package domain

type RiskLevel string

const (
	RiskOnTrack  RiskLevel = "on_track"
	RiskAtRisk   RiskLevel = "at_risk"
	RiskCritical RiskLevel = "critical"
)

// EventMode identifies the channel a progress report came through.
type EventMode string

const (
	ModeManual    EventMode = "manual"
	ModeChecklist EventMode = "checklist"
	ModeSnapshot  EventMode = "snapshot"
	ModeImport    EventMode = "import"
	ModeUnknown   EventMode = ""
)

// ValidEventModes is the canonical set of accepted mode strings.
var ValidEventModes = map[string]bool{
	"manual": true, "checklist": true, "snapshot": true, "import": true,
}

// ProgressSource names which input a reconciled percentage came from.
type ProgressSource string

const (
	SourceChecklist ProgressSource = "checklist"
	SourceManual    ProgressSource = "manual"
)

// Scope is the aggregation level of a curve.
type Scope string

const (
	ScopeService    Scope = "service"
	ScopeSubpackage Scope = "subpackage"
	ScopePackage    Scope = "package"
)
