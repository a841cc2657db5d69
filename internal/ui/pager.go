package ui

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
	logger "github.com/sirupsen/logrus"
)

var errNoProgram = errors.New("program not set")

// RunPager shows content in ov and blocks until the user quits it. The
// screen is left as it was: ov neither prints the content on exit nor
// writes the original lines back.
func RunPager(content string) error {
	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}
	ovConfig := oviewer.NewConfig()
	ovConfig.IsWriteOnExit = false
	ovConfig.IsWriteOriginal = false
	root.SetConfig(ovConfig)
	return root.Run()
}

// PagerOps hands the terminal from the running program to ov and back
type PagerOps struct {
	program *tea.Program
}

// NewPagerOps creates pager operations bound to program
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{program: program}
}

// Show releases the terminal, runs the pager over content and restores
// the terminal even when ov fails.
func (o *PagerOps) Show(content string) error {
	if o == nil || o.program == nil {
		return errNoProgram
	}
	if err := o.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// ov needs a moment to give the tty back
		time.Sleep(100 * time.Millisecond)
		if err := o.program.RestoreTerminal(); err != nil {
			logger.Warnf("[ui] failed to restore terminal: %v", err)
		}
	}()
	return RunPager(content)
}

// showInPager returns a command that pauses rendering, runs the pager and
// resumes once it exits.
func (m *Model) showInPager(content string) tea.Cmd {
	pager := m.pager
	program := m.program
	return func() tea.Msg {
		if program == nil {
			return pagerMsg{err: errNoProgram}
		}
		program.Send(pauseRenderingMsg{})
		err := pager.Show(content)
		program.Send(resumeRenderingMsg{})
		if err != nil {
			logger.Warnf("[ui] pager failed: %v", err)
		}
		return pagerMsg{err: err}
	}
}
