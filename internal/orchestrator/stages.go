package orchestrator

// Stage is one step of the remediation state machine. Stages run strictly in
// order; a failure in any stage moves the run to StageFailed and aborts.
type Stage int

const (
	StageInit Stage = iota
	StageDriftDetecting
	StageDeciding
	StageCheckpointSaved
	StageRetained
	StageReferencesResolved
	StageRemoved
	StageImported
	StageRestored
	StageDone
	StageFailed
)

var stageNames = map[Stage]string{
	StageInit:               "Init",
	StageDriftDetecting:     "DriftDetecting",
	StageDeciding:           "Deciding",
	StageCheckpointSaved:    "CheckpointSaved",
	StageRetained:           "Retained",
	StageReferencesResolved: "ReferencesResolved",
	StageRemoved:            "Removed",
	StageImported:           "Imported",
	StageRestored:           "Restored",
	StageDone:               "Done",
	StageFailed:             "Failed",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "Unknown"
}
