package assetpack

// ProgressStage identifies the current phase of an operation.
type ProgressStage int

const (
	// StageResolving indicates source files are being read.
	StageResolving ProgressStage = iota

	// StagePacking indicates entries are being framed and appended.
	StagePacking

	// StageUnpacking indicates entries are being extracted.
	StageUnpacking
)

// ProgressEvent represents a progress update during resolve, pack, or
// unpack operations.
type ProgressEvent struct {
	Stage ProgressStage

	// Name is the asset the event refers to.
	Name string

	// Offset is the entry's tag position in the payload region. Zero
	// during StageResolving, where no layout exists yet.
	Offset uint32

	// Size is the asset's payload length in bytes.
	Size uint32

	// Done and Total count entries processed so far and overall.
	Done  int
	Total int
}

// ProgressFunc receives progress updates during operations.
// Implementations must be safe for concurrent calls.
type ProgressFunc func(ProgressEvent)
