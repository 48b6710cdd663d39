// Package donor provides the donor portal views: registration, donation
// submission and donation history.
package donor

import (
	"strings"

	"github.com/medidonate/medidonate/internal/config"
	"github.com/medidonate/medidonate/internal/tui/components"
	"github.com/medidonate/medidonate/internal/workflow"
)

// RegisterView is the donor registration form.
type RegisterView struct {
	styles components.Styles
	wf     *workflow.Workflow[workflow.DonorFields]
	cities []config.CityOption

	form       *components.Form
	nationalID *components.Input
	name       *components.Input
	city       *components.Select
	email      *components.Input
	password   *components.Input
}

// NewRegisterView creates the registration form. cities are the initial
// choices; SetCities replaces them once the service list arrives.
func NewRegisterView(styles components.Styles, wf *workflow.Workflow[workflow.DonorFields], cities []config.CityOption) *RegisterView {
	v := &RegisterView{
		styles:     styles,
		wf:         wf,
		nationalID: components.NewInput("National ID").SetRequired(true).SetMaxLength(20),
		name:       components.NewInput("Full Name").SetRequired(true).SetWidth(30),
		city:       components.NewSelect("City", nil).SetPlaceholder("Select a city").SetRequired(true),
		email:      components.NewInput("Email").SetRequired(true).SetWidth(30),
		password:   components.NewInput("Password").SetRequired(true).SetMasked(true),
	}

	v.form = components.NewForm("")
	v.form.AddField(v.nationalID).
		AddField(v.name).
		AddField(v.city).
		AddField(v.email).
		AddField(v.password)
	v.form.SetStyles(styles)

	v.SetCities(cities)
	return v
}

// Workflow returns the underlying workflow.
func (v *RegisterView) Workflow() *workflow.Workflow[workflow.DonorFields] {
	return v.wf
}

// SetCities replaces the city choices. An empty list keeps the current ones.
func (v *RegisterView) SetCities(cities []config.CityOption) {
	if len(cities) == 0 {
		return
	}
	v.cities = cities

	names := make([]string, len(cities))
	for i, c := range cities {
		names[i] = c.Name
	}
	v.city.SetOptions(names)
	v.selectCity(v.wf.Fields().CityID)
}

// Cities returns the offered cities.
func (v *RegisterView) Cities() []config.CityOption {
	return v.cities
}

func (v *RegisterView) selectCity(id string) {
	v.city.SetSelected(-1)
	for i, c := range v.cities {
		if id != "" && c.ID == id {
			v.city.SetSelected(i)
		}
	}
}

// HandleKey routes a key to the form. It returns true when the user asked
// to submit.
func (v *RegisterView) HandleKey(key string) bool {
	if v.wf.Busy() {
		return false
	}

	switch v.form.HandleKey(key) {
	case components.ActionCancel:
		v.wf.Dismiss()
		return false
	case components.ActionSubmit:
		return true
	}

	next := workflow.DonorFields{
		NationalID: v.nationalID.Value(),
		Name:       v.name.Value(),
		Email:      v.email.Value(),
		Password:   v.password.Value(),
	}
	if idx := v.city.SelectedIndex(); idx >= 0 && idx < len(v.cities) {
		next.CityID = v.cities[idx].ID
	}
	if next != v.wf.Fields() {
		// Refused only while submitting, which the Busy check rules out.
		_ = v.wf.Edit(func(f *workflow.DonorFields) { *f = next })
	}
	return false
}

// Begin validates the form and takes the workflow's gate.
func (v *RegisterView) Begin() (workflow.DonorFields, bool) {
	snapshot, err := v.wf.Begin()
	if err != nil {
		v.form.SetError(workflow.Explain(err))
		return workflow.DonorFields{}, false
	}
	v.form.SetError("")
	return snapshot, true
}

// Complete shows the outcome and reloads the inputs.
func (v *RegisterView) Complete(out workflow.Outcome) {
	v.wf.Complete(out)

	f := v.wf.Fields()
	v.nationalID.SetValue(f.NationalID)
	v.name.SetValue(f.Name)
	v.email.SetValue(f.Email)
	v.password.SetValue(f.Password)
	v.selectCity(f.CityID)

	if out.Completed() {
		v.form.FocusFirst()
	}
}

// Render renders the registration form.
func (v *RegisterView) Render(width int) string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Register as a donor"))
	b.WriteString("\n\n")
	b.WriteString(v.form.RenderResponsive(width))
	b.WriteString("\n\n")
	b.WriteString(renderStatus(v.styles, v.wf.Busy(), v.wf.State(), v.wf.Outcome(), "[ Register ]"))

	return b.String()
}

// renderStatus renders the line under a form: the in-flight marker, the
// shown outcome, or the submit button.
func renderStatus(s components.Styles, busy bool, state workflow.State, out workflow.Outcome, button string) string {
	switch {
	case busy:
		return s.Warning.Render("Submitting...")
	case state == workflow.StateSuccessShown:
		return s.Success.Render(out.Message)
	case state == workflow.StateErrorShown:
		return s.Error.Render(out.Message)
	default:
		return s.Accent.Render(button)
	}
}
