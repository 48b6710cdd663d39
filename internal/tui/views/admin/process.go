package admin

import (
	"strings"

	"github.com/medidonate/medidonate/internal/tui/components"
	"github.com/medidonate/medidonate/internal/workflow"
)

// ProcessView triggers allocation over pending requests.
type ProcessView struct {
	styles    components.Styles
	processor *workflow.Processor
	outcome   workflow.Outcome
	shown     bool
}

// NewProcessView creates the processing view.
func NewProcessView(styles components.Styles, processor *workflow.Processor) *ProcessView {
	return &ProcessView{styles: styles, processor: processor}
}

// Start takes the processor's guard and clears the previous result. It
// returns false while a run is already in flight.
func (v *ProcessView) Start() bool {
	if err := v.processor.Start(); err != nil {
		return false
	}
	v.shown = false
	v.outcome = workflow.Outcome{}
	return true
}

// Finish shows the outcome and releases the guard.
func (v *ProcessView) Finish(out workflow.Outcome) {
	v.outcome = out
	v.shown = true
	v.processor.Finish()
}

// Busy reports whether a run is in flight.
func (v *ProcessView) Busy() bool {
	return v.processor.Busy()
}

// Outcome returns the last shown outcome.
func (v *ProcessView) Outcome() (workflow.Outcome, bool) {
	return v.outcome, v.shown
}

// Render renders the processing view.
func (v *ProcessView) Render(width int) string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("=== PROCESS REQUESTS ==="))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Label.Render("Allocate available stock to every pending hospital request."))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Emergency requests are served first. Stock and requests reload afterwards."))
	b.WriteString("\n\n")

	switch {
	case v.Busy():
		b.WriteString(v.styles.Warning.Render("Processing..."))
	case v.shown && v.outcome.Kind == workflow.KindSuccess:
		b.WriteString(v.styles.Success.Render(v.outcome.Message))
	case v.shown:
		b.WriteString(v.styles.Error.Render(v.outcome.Message))
	default:
		b.WriteString(v.styles.Value.Render("Ready."))
	}
	b.WriteString("\n\n")

	if v.Busy() {
		b.WriteString(v.styles.Muted.Render("Enter:Process (busy)  Ctrl+N/P:Tab"))
	} else {
		b.WriteString(v.styles.Help.Render("Enter:Process  Ctrl+N/P:Tab"))
	}

	return b.String()
}
