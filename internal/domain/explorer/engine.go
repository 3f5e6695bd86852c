package explorer

import (
	"github.com/GriffinCanCode/godisk/internal/domain/event"
	"github.com/GriffinCanCode/godisk/internal/domain/tree"
)

// Report summarizes one reconciliation pass
type Report struct {
	Lines        int                `json:"lines"`
	Events       map[event.Kind]int `json:"events"`
	Applied      int                `json:"applied"`
	Unrecognized int                `json:"unrecognized"`
}

// Recognized returns the number of recognized events, applied or not
func (r Report) Recognized() int {
	n := 0
	for _, c := range r.Events {
		n += c
	}
	return n
}

// Labels returns the event counts keyed by kind name
func (r Report) Labels() map[string]int {
	out := make(map[string]int, len(r.Events))
	for k, n := range r.Events {
		out[string(k)] = n
	}
	return out
}

// Engine folds backend output into a Model
type Engine struct {
	classifier *event.Classifier
}

// NewEngine creates an engine with the standard marker rules
func NewEngine() *Engine {
	return &Engine{classifier: event.NewClassifier()}
}

// Reconcile applies every recognized event of text, in line order, to a deep
// copy of prev and returns the copy. prev is not modified.
func (e *Engine) Reconcile(prev Model, text string) (Model, Report) {
	next := prev.Clone()
	report := Report{Events: make(map[event.Kind]int)}

	for _, line := range event.Lines(text) {
		if line != "" {
			report.Lines++
		}
	}

	for _, ev := range e.classifier.Scan(text) {
		if ev.Kind() == event.KindUnrecognized {
			report.Unrecognized++
			continue
		}
		report.Events[ev.Kind()]++
		if apply(next, ev) {
			report.Applied++
		}
	}
	return next, report
}

// apply mutates m with a single event and reports whether anything changed
func apply(m Model, ev event.Event) bool {
	switch ev := ev.(type) {
	case event.DiskCreated:
		return m.Disks.Upsert(ev.Path, ev.Size)
	case event.DiskRemoved:
		return m.Disks.Remove(ev.Path)
	case event.PartitionCreated:
		return m.Disks.AppendPartitionToLast(ev.Name, ev.Size)
	case event.DirectoryCreated:
		return m.Tree.EnsurePath(ev.Path, tree.Folder)
	case event.FileCreated:
		return m.Tree.EnsurePath(ev.Path, tree.File)
	case event.Removed:
		return m.Tree.Remove(ev.Path)
	case event.Renamed:
		return m.Tree.Rename(ev.Path, ev.NewName)
	case event.Moved:
		return m.Tree.Move(ev.From, ev.To)
	default:
		return false
	}
}
