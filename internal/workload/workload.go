// Package workload supplies built-in operations for the harness to
// time. The harness itself treats the workload as an opaque
// collaborator; these implementations exist so the tool is useful out
// of the box.
package workload

import "fmt"

// Workload is one operation measured repeatedly. Setup runs before
// the window opens and may allocate freely; Step is the timed region
// and should do only the operation under measurement. Each measuring
// goroutine owns a private instance.
type Workload interface {
	Name() string
	Setup(iterations int)
	Step(i int)
	Teardown()
}

// New returns a fresh instance of a named built-in workload.
func New(name string) (Workload, error) {
	switch name {
	case "append":
		return &Append{}, nil
	case "baseline":
		return &Baseline{}, nil
	default:
		return nil, fmt.Errorf("workload: unknown workload %q", name)
	}
}

// Append grows a dynamic array one element per step. The backing
// array is deliberately not pre-sized: the occasional reallocation is
// the amortized-O(1) spike the harness exists to expose in the tail.
type Append struct {
	buf []int
}

func (w *Append) Name() string { return "append" }

func (w *Append) Setup(iterations int) {
	w.buf = w.buf[:0]
}

func (w *Append) Step(i int) {
	w.buf = append(w.buf, i)
}

func (w *Append) Teardown() {
	w.buf = nil
}

// Baseline does nothing per step, so its measured cost is the
// harness's own overhead. Useful as a floor when reading reports.
type Baseline struct {
	sink int
}

func (w *Baseline) Name() string { return "baseline" }

func (w *Baseline) Setup(iterations int) {}

func (w *Baseline) Step(i int) {
	w.sink = i
}

func (w *Baseline) Teardown() {}
