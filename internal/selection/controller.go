package selection

import (
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"commitview/internal/domain"
	"commitview/internal/sequence"
)

// ErrIndexOutOfRange is returned by Select for an index outside the file list
var ErrIndexOutOfRange = errors.New("file index out of range")

// Request asks for the diff of one file. Ticket identifies it among every
// request the controller has issued.
type Request struct {
	Index    int
	FileName string
	Ticket   sequence.Ticket
}

// Result answers a Request with either content or an error
type Result struct {
	Request Request
	Content domain.FileDiffContent
	Err     error
}

// Controller owns the selected index and the diff state. It issues one
// Request per selection and applies only the answer to the latest one.
// It is driven from a single event loop and is not safe for concurrent use.
type Controller struct {
	files    []domain.ChangedFile
	selected int
	state    State
	seq      sequence.Sequencer
}

// NewController returns a controller with no files
func NewController() *Controller {
	return &Controller{selected: -1, state: NoFileSelected{}}
}

// Load replaces the file list. A non-empty list selects the first file and
// returns the request for it.
func (c *Controller) Load(files []domain.ChangedFile) (Request, bool) {
	c.files = files
	c.seq.Invalidate()
	if len(files) == 0 {
		c.selected = -1
		c.state = NoFileSelected{}
		return Request{}, false
	}
	req, _ := c.Select(0)
	return req, true
}

// Select moves the selection to index and starts loading it, superseding
// any outstanding request. Reselecting the current index reloads it.
func (c *Controller) Select(index int) (Request, error) {
	if index < 0 || index >= len(c.files) {
		return Request{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(c.files))
	}
	c.selected = index
	c.state = LoadingDiff{Index: index}
	req := Request{
		Index:    index,
		FileName: c.files[index].FileName,
		Ticket:   c.seq.Next(),
	}
	logger.Debugf("[selection] select %d (%s) ticket %d", index, req.FileName, req.Ticket)
	return req, nil
}

// Resolve applies res if it answers the latest request and reports whether
// it did. Stale results are dropped.
func (c *Controller) Resolve(res Result) bool {
	if !c.seq.Current(res.Request.Ticket) || res.Request.Index != c.selected {
		logger.Debugf("[selection] discard stale result for %d ticket %d", res.Request.Index, res.Request.Ticket)
		return false
	}
	if res.Err != nil {
		c.state = DiffLoadFailed{Index: res.Request.Index, Err: res.Err}
	} else {
		c.state = DiffReady{Index: res.Request.Index, Content: res.Content}
	}
	return true
}

// Reset drops the files and ignores every outstanding request
func (c *Controller) Reset() {
	c.Load(nil)
}

// State returns the current diff state
func (c *Controller) State() State {
	return c.state
}

// Selected returns the selected index, or -1 when nothing is selected
func (c *Controller) Selected() int {
	return c.selected
}

// SelectedFile returns the selected file
func (c *Controller) SelectedFile() (domain.ChangedFile, bool) {
	if c.selected < 0 || c.selected >= len(c.files) {
		return domain.ChangedFile{}, false
	}
	return c.files[c.selected], true
}

// Files returns the loaded file list
func (c *Controller) Files() []domain.ChangedFile {
	return c.files
}

// Next selects the following file, staying on the last one
func (c *Controller) Next() (Request, bool) {
	return c.step(1)
}

// Prev selects the preceding file, staying on the first one
func (c *Controller) Prev() (Request, bool) {
	return c.step(-1)
}

func (c *Controller) step(delta int) (Request, bool) {
	target := c.selected + delta
	if target < 0 || target >= len(c.files) || target == c.selected {
		return Request{}, false
	}
	req, err := c.Select(target)
	return req, err == nil
}
