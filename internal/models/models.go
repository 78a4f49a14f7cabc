package models

// Frame represents one candidate slide image in natural capture order
type Frame struct {
	Path  string `json:"path"`
	Index int    `json:"index"`
}

// Warning records a frame that was skipped instead of aborting the run
type Warning struct {
	Frame  string `json:"frame"`
	Reason string `json:"reason"`
}

// Status is the overall outcome of one run
type Status string

const (
	StatusSuccess    Status = "success"
	StatusEmptyInput Status = "empty_input"
	StatusPartial    Status = "partial"
	StatusFailed     Status = "failed"
)

// RunReport summarizes one deduplication run for callers (CLI, status bar)
type RunReport struct {
	InputDir   string    `json:"input_dir"`
	OutputFile string    `json:"output_file"`
	Algorithm  string    `json:"algorithm"`
	Threshold  int       `json:"threshold"`
	Total      int       `json:"total_frames"`
	Retained   int       `json:"retained_frames"`
	Skipped    int       `json:"skipped_frames"`
	Warnings   []Warning `json:"warnings,omitempty"`
	Status     Status    `json:"status"`
}
