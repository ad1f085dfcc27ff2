package handler

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Report describes one finished iteration.
type Report struct {
	Index       int
	Elapsed     time.Duration
	Description string
}

// Resume describes an existing run picked up by this invocation.
type Resume struct {
	Folder string
	Files  int
	Start  int
}

// Reporter tells the operator about a resumed run and finished iterations.
type Reporter interface {
	Resume(Resume) error
	Report(Report) error
}

// TextReporter prints a banner with the iteration and its timing followed by the
// description.
type TextReporter struct {
	W io.Writer
}

func (r *TextReporter) Resume(res Resume) error {
	_, err := fmt.Fprintf(r.W, "Found existing run in the folder `%s`.\n"+
		"Total files in the folder: %d.\nThe latest file: %d.\nWill start from iteration: %d.\n",
		res.Folder, res.Files, res.Start-1, res.Start)
	return err
}

func (r *TextReporter) Report(rep Report) error {
	rule := strings.Repeat("-", 33)
	_, err := fmt.Fprintf(r.W, "%s\n Iteration: %03d. Time: %.3f s.\n%s\n\n\n%s\n\n\n",
		rule, rep.Index, rep.Elapsed.Seconds(), rule, rep.Description)
	return err
}
