package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Port accepted / sample recorded
	SymbolFail     = "✗" // Port rejected / operation failed
	SymbolPending  = "○" // Candidate not yet probed
	SymbolProgress = "◐" // Probe in progress
)
