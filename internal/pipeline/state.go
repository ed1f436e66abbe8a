package pipeline

import "fmt"

// State accumulates per-document results across the pipeline stages.
// A fresh State is created for every conversion call.
type State struct {
	Title    string
	Preamble string
	Warnings []string
}

// Warnf records a non-fatal diagnostic for this document.
func (s *State) Warnf(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}
