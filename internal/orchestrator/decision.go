package orchestrator

import "os"

// Outcome is the generation decision for one statement destination.
type Outcome int

const (
	// WouldGenerate means no statement exists at the destination yet.
	WouldGenerate Outcome = iota
	// WouldSkip means the destination already exists and is never
	// overwritten.
	WouldSkip
)

// StatFunc abstracts os.Stat so decisions are testable without a
// filesystem.
type StatFunc func(string) (os.FileInfo, error)

// Decide returns the idempotence decision for path. Existing statements
// are skipped; anything else (including stat errors for missing files)
// means generate.
func Decide(path string, stat StatFunc) Outcome {
	if stat == nil {
		stat = os.Stat
	}
	if info, err := stat(path); err == nil && !info.IsDir() {
		return WouldSkip
	}
	return WouldGenerate
}
