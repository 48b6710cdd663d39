// Package hospital provides the hospital portal view.
package hospital

import (
	"strings"

	"github.com/medidonate/medidonate/internal/models"
	"github.com/medidonate/medidonate/internal/tui/components"
	"github.com/medidonate/medidonate/internal/workflow"
)

var priorityOptions = []string{string(models.PatientRoutine), string(models.PatientEmergency)}

// RequestView is the hospital request form. Submitting is disabled until a
// hospital is selected.
type RequestView struct {
	styles    components.Styles
	wf        *workflow.Workflow[workflow.RequestFields]
	hospitals []models.Hospital
	loading   bool

	form     *components.Form
	hospital *components.Select
	medicine *components.Input
	quantity *components.Input
	city     *components.Input
	priority *components.Select
}

// NewRequestView creates the request form over wf.
func NewRequestView(styles components.Styles, wf *workflow.Workflow[workflow.RequestFields]) *RequestView {
	v := &RequestView{
		styles:   styles,
		wf:       wf,
		hospital: components.NewSelect("Hospital", nil).SetPlaceholder("Select a hospital").SetRequired(true),
		medicine: components.NewInput("Medicine Name").SetRequired(true).SetPlaceholder("e.g. Insulin").SetWidth(30),
		quantity: components.NewInput("Quantity").SetRequired(true).SetMaxLength(9),
		city:     components.NewInput("Hospital City").SetRequired(true),
		priority: components.NewSelect("Patient Status", priorityOptions).SetRequired(true),
	}

	v.form = components.NewForm("")
	v.form.AddField(v.hospital).
		AddField(v.medicine).
		AddField(v.quantity).
		AddField(v.city).
		AddField(v.priority)
	v.form.SetStyles(styles)

	v.load(wf.Fields())
	return v
}

// Workflow returns the underlying workflow.
func (v *RequestView) Workflow() *workflow.Workflow[workflow.RequestFields] {
	return v.wf
}

// SetLoading marks the hospital list fetch in flight.
func (v *RequestView) SetLoading() {
	v.loading = true
}

// SetHospitals replaces the hospital choices. The current selection is
// kept when the hospital is still listed.
func (v *RequestView) SetHospitals(hospitals []models.Hospital) {
	v.loading = false
	v.hospitals = hospitals

	labels := make([]string, len(hospitals))
	for i, h := range hospitals {
		labels[i] = h.Label()
	}
	v.hospital.SetOptions(labels)

	fields := v.wf.Fields()
	v.hospital.SetSelected(-1)
	for i, h := range hospitals {
		if fields.HospitalID != "" && h.ID.String() == fields.HospitalID {
			v.hospital.SetSelected(i)
		}
	}
}

// HospitalsFailed ends the loading state. The failure is only logged.
func (v *RequestView) HospitalsFailed() {
	v.loading = false
}

// Hospitals returns the loaded hospitals.
func (v *RequestView) Hospitals() []models.Hospital {
	return v.hospitals
}

// CanSubmit reports whether a hospital is selected and nothing is in flight.
func (v *RequestView) CanSubmit() bool {
	return strings.TrimSpace(v.wf.Fields().HospitalID) != "" && !v.wf.Busy()
}

// HandleKey routes a key to the form. It returns true when the user asked
// to submit.
func (v *RequestView) HandleKey(key string) bool {
	if v.wf.Busy() {
		return false
	}

	before := v.hospital.SelectedIndex()
	action := v.form.HandleKey(key)

	switch action {
	case components.ActionCancel:
		v.wf.Dismiss()
		return false
	case components.ActionSubmit:
		return v.CanSubmit()
	}

	v.sync(before != v.hospital.SelectedIndex())
	return false
}

// sync copies the inputs into the workflow when they changed. A changed
// hospital selection also fills in its city.
func (v *RequestView) sync(hospitalChanged bool) {
	next := v.wf.Fields()
	next.MedicineName = v.medicine.Value()
	next.RequestedQuantity = v.quantity.Value()
	next.HospitalCity = v.city.Value()
	next.PatientStatus = models.PatientStatus(v.priority.Value())
	if hospitalChanged {
		if idx := v.hospital.SelectedIndex(); idx >= 0 && idx < len(v.hospitals) {
			next.SelectHospital(v.hospitals[idx].ID.String(), v.hospitals)
		}
	}

	if next == v.wf.Fields() {
		return
	}
	if err := v.wf.Edit(func(f *workflow.RequestFields) { *f = next }); err != nil {
		// A submission owns the fields until it completes.
		return
	}

	if hospitalChanged {
		v.city.SetValue(next.HospitalCity)
	}
}

// Begin validates the form and takes the workflow's gate. Validation
// problems are shown on the form.
func (v *RequestView) Begin() (workflow.RequestFields, bool) {
	snapshot, err := v.wf.Begin()
	if err != nil {
		v.form.SetError(workflow.Explain(err))
		return workflow.RequestFields{}, false
	}
	v.form.SetError("")
	return snapshot, true
}

// Complete shows the outcome and reloads the inputs from the workflow.
func (v *RequestView) Complete(out workflow.Outcome) {
	v.wf.Complete(out)
	v.load(v.wf.Fields())
	if out.Completed() {
		v.form.FocusFirst()
	}
}

func (v *RequestView) load(f workflow.RequestFields) {
	v.medicine.SetValue(f.MedicineName)
	v.quantity.SetValue(f.RequestedQuantity)
	v.city.SetValue(f.HospitalCity)
	for i, opt := range priorityOptions {
		if opt == string(f.PatientStatus) {
			v.priority.SetSelected(i)
		}
	}
	v.hospital.SetSelected(-1)
	for i, h := range v.hospitals {
		if f.HospitalID != "" && h.ID.String() == f.HospitalID {
			v.hospital.SetSelected(i)
		}
	}
}

// Render renders the hospital portal.
func (v *RequestView) Render(width int) string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("=== HOSPITAL PORTAL ==="))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Request medicine for your patients"))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Label.Render("Loading hospitals..."))
		b.WriteString("\n\n")
	} else if len(v.hospitals) == 0 {
		b.WriteString(v.styles.Warning.Render("No hospitals available."))
		b.WriteString("\n\n")
	}

	b.WriteString(v.form.RenderResponsive(width))
	b.WriteString("\n\n")

	switch {
	case v.wf.Busy():
		b.WriteString(v.styles.Warning.Render("Submitting..."))
	case v.wf.State() == workflow.StateSuccessShown:
		b.WriteString(v.styles.Success.Render(v.wf.Outcome().Message))
	case v.wf.State() == workflow.StateErrorShown:
		b.WriteString(v.styles.Error.Render(v.wf.Outcome().Message))
	case !v.CanSubmit():
		b.WriteString(v.styles.Muted.Render("[ Submit Request ] select a hospital first"))
	default:
		b.WriteString(v.styles.Accent.Render("[ Submit Request ]"))
	}

	return b.String()
}
