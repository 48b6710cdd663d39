package donor

import (
	"strings"

	"github.com/medidonate/medidonate/internal/models"
	"github.com/medidonate/medidonate/internal/tui/components"
	"github.com/medidonate/medidonate/internal/workflow"
)

var storageOptions = []models.StorageRequirement{models.StorageRoomTemp, models.StorageRefrigerated}

// DonateView is the donation submission form.
type DonateView struct {
	styles components.Styles
	wf     *workflow.Workflow[workflow.DonationFields]
	cities []string

	form        *components.Form
	donorID     *components.Input
	medicine    *components.Input
	dosage      *components.Input
	quantity    *components.Input
	expiry      *components.Input
	storage     *components.Select
	unopened    *components.Checkbox
	appropriate *components.Checkbox
	city        *components.Select
}

// NewDonateView creates the donation form. cities are the donation
// city choices.
func NewDonateView(styles components.Styles, wf *workflow.Workflow[workflow.DonationFields], cities []string) *DonateView {
	labels := make([]string, len(storageOptions))
	for i, s := range storageOptions {
		labels[i] = s.String()
	}

	v := &DonateView{
		styles:      styles,
		wf:          wf,
		cities:      cities,
		donorID:     components.NewInput("Donor ID").SetRequired(true),
		medicine:    components.NewInput("Medicine Name").SetRequired(true).SetWidth(30),
		dosage:      components.NewInput("Dosage").SetRequired(true).SetPlaceholder("e.g. 500mg"),
		quantity:    components.NewInput("Quantity").SetRequired(true).SetMaxLength(9),
		expiry:      components.NewInput("Expiration Date").SetRequired(true).SetPlaceholder("YYYY-MM-DD").SetMaxLength(10),
		storage:     components.NewSelect("Storage", labels).SetRequired(true),
		unopened:    components.NewCheckbox("Packaging unopened", true),
		appropriate: components.NewCheckbox("Stored appropriately", true),
		city:        components.NewSelect("Donation City", cities).SetPlaceholder("Select a city").SetRequired(true),
	}

	v.form = components.NewForm("")
	v.form.AddField(v.donorID).
		AddField(v.medicine).
		AddField(v.dosage).
		AddField(v.quantity).
		AddField(v.expiry).
		AddField(v.storage).
		AddField(v.unopened).
		AddField(v.appropriate).
		AddField(v.city)
	v.form.SetStyles(styles)

	v.load(wf.Fields())
	return v
}

// Workflow returns the underlying workflow.
func (v *DonateView) Workflow() *workflow.Workflow[workflow.DonationFields] {
	return v.wf
}

// HandleKey routes a key to the form. It returns true when the user asked
// to submit.
func (v *DonateView) HandleKey(key string) bool {
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

	next := workflow.DonationFields{
		DonorID:            v.donorID.Value(),
		MedicineName:       v.medicine.Value(),
		Dosage:             v.dosage.Value(),
		Quantity:           v.quantity.Value(),
		ExpirationDate:     v.expiry.Value(),
		PackagingUnopened:  v.unopened.Checked(),
		StorageAppropriate: v.appropriate.Checked(),
		DonationCity:       v.city.Value(),
	}
	if idx := v.storage.SelectedIndex(); idx >= 0 && idx < len(storageOptions) {
		next.StorageRequirement = storageOptions[idx]
	}
	if next != v.wf.Fields() {
		// Refused only while submitting, which the Busy check rules out.
		_ = v.wf.Edit(func(f *workflow.DonationFields) { *f = next })
	}
	return false
}

// Begin validates the form and takes the workflow's gate.
func (v *DonateView) Begin() (workflow.DonationFields, bool) {
	snapshot, err := v.wf.Begin()
	if err != nil {
		v.form.SetError(workflow.Explain(err))
		return workflow.DonationFields{}, false
	}
	v.form.SetError("")
	return snapshot, true
}

// Complete shows the outcome and reloads the inputs.
func (v *DonateView) Complete(out workflow.Outcome) {
	v.wf.Complete(out)
	v.load(v.wf.Fields())
	if out.Completed() {
		v.form.FocusFirst()
	}
}

func (v *DonateView) load(f workflow.DonationFields) {
	v.donorID.SetValue(f.DonorID)
	v.medicine.SetValue(f.MedicineName)
	v.dosage.SetValue(f.Dosage)
	v.quantity.SetValue(f.Quantity)
	v.expiry.SetValue(f.ExpirationDate)
	v.unopened.SetChecked(f.PackagingUnopened)
	v.appropriate.SetChecked(f.StorageAppropriate)

	for i, s := range storageOptions {
		if s == f.StorageRequirement {
			v.storage.SetSelected(i)
		}
	}

	v.city.SetSelected(-1)
	for i, c := range v.cities {
		if f.DonationCity != "" && c == f.DonationCity {
			v.city.SetSelected(i)
		}
	}
}

// Render renders the donation form.
func (v *DonateView) Render(width int) string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Donate medicine"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Expiration date must be at least 6 months away."))
	b.WriteString("\n\n")
	b.WriteString(v.form.RenderResponsive(width))
	b.WriteString("\n\n")
	b.WriteString(renderStatus(v.styles, v.wf.Busy(), v.wf.State(), v.wf.Outcome(), "[ Submit Donation ]"))

	return b.String()
}
