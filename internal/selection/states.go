// Package selection tracks which changed file of a commit is selected and
// whether its diff is loading, ready or failed.
package selection

import "commitview/internal/domain"

// State is the diff state for the current selection
type State interface {
	isState()
}

// NoFileSelected is the state of a commit without changed files
type NoFileSelected struct{}

// LoadingDiff waits for the diff of the file at Index
type LoadingDiff struct {
	Index int
}

// DiffReady holds the loaded diff of the file at Index
type DiffReady struct {
	Index   int
	Content domain.FileDiffContent
}

// DiffLoadFailed records why the diff of the file at Index could not be loaded
type DiffLoadFailed struct {
	Index int
	Err   error
}

func (NoFileSelected) isState() {}
func (LoadingDiff) isState()    {}
func (DiffReady) isState()      {}
func (DiffLoadFailed) isState() {}
