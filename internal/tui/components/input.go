package components

import (
	"strings"
)

// DefaultLabelWidth is the label column width used by Render.
const DefaultLabelWidth = 20

// Input is a simple text input component.
type Input struct {
	label       string
	value       string
	placeholder string
	width       int
	focused     bool
	cursorPos   int
	maxLength   int
	required    bool
	masked      bool
	err         string
	styles      Styles
}

// NewInput creates a new input field.
func NewInput(label string) *Input {
	return &Input{
		label:     label,
		width:     20,
		maxLength: 100,
		styles:    DefaultStyles(),
	}
}

// SetValue sets the input value.
func (i *Input) SetValue(v string) *Input {
	i.value = v
	i.cursorPos = len(v)
	return i
}

// SetPlaceholder sets the placeholder text.
func (i *Input) SetPlaceholder(p string) *Input {
	i.placeholder = p
	return i
}

// SetWidth sets the input width.
func (i *Input) SetWidth(w int) *Input {
	i.width = w
	return i
}

// SetMaxLength sets the maximum input length.
func (i *Input) SetMaxLength(m int) *Input {
	i.maxLength = m
	return i
}

// SetRequired marks the field as required.
func (i *Input) SetRequired(r bool) *Input {
	i.required = r
	return i
}

// SetMasked hides the value behind asterisks.
func (i *Input) SetMasked(m bool) *Input {
	i.masked = m
	return i
}

// SetError sets an error message.
func (i *Input) SetError(e string) *Input {
	i.err = e
	return i
}

// SetStyles replaces the input's styles.
func (i *Input) SetStyles(s Styles) {
	i.styles = s
}

// Focus sets the focus state.
func (i *Input) Focus(focused bool) {
	i.focused = focused
	if focused && i.cursorPos > len(i.value) {
		i.cursorPos = len(i.value)
	}
}

// IsFocused returns the focus state.
func (i *Input) IsFocused() bool {
	return i.focused
}

// Label returns the field label.
func (i *Input) Label() string {
	return i.label
}

// Value returns the current value.
func (i *Input) Value() string {
	return i.value
}

// HandleKey handles a key press.
func (i *Input) HandleKey(key string) {
	if !i.focused {
		return
	}

	switch key {
	case "backspace":
		if len(i.value) > 0 && i.cursorPos > 0 {
			i.value = i.value[:i.cursorPos-1] + i.value[i.cursorPos:]
			i.cursorPos--
		}
	case "delete":
		if i.cursorPos < len(i.value) {
			i.value = i.value[:i.cursorPos] + i.value[i.cursorPos+1:]
		}
	case "left":
		if i.cursorPos > 0 {
			i.cursorPos--
		}
	case "right":
		if i.cursorPos < len(i.value) {
			i.cursorPos++
		}
	case "home", "ctrl+a":
		i.cursorPos = 0
	case "end", "ctrl+e":
		i.cursorPos = len(i.value)
	default:
		// Insert printable character
		if len(key) == 1 && len(i.value) < i.maxLength {
			i.value = i.value[:i.cursorPos] + key + i.value[i.cursorPos:]
			i.cursorPos++
		}
	}
}

// Validate validates the input.
func (i *Input) Validate() bool {
	if i.required && strings.TrimSpace(i.value) == "" {
		i.err = "Required"
		return false
	}
	i.err = ""
	return true
}

// Render renders the input field.
func (i *Input) Render() string {
	return i.RenderWithLabelWidth(DefaultLabelWidth)
}

// RenderWithLabelWidth renders the field with the label padded to width.
func (i *Input) RenderWithLabelWidth(width int) string {
	shown := i.value
	if i.masked {
		shown = strings.Repeat("*", len(i.value))
	}

	var display string
	if i.value == "" && i.placeholder != "" && !i.focused {
		display = i.styles.Muted.Render(i.placeholder)
	} else if i.focused {
		display = i.styles.Focus.Render(shown[:i.cursorPos] + "_" + shown[i.cursorPos:])
	} else {
		display = i.styles.Value.Render(shown)
	}

	displayLen := len(shown)
	if i.value == "" && i.placeholder != "" && !i.focused {
		displayLen = len(i.placeholder)
	}
	if i.focused {
		displayLen++ // cursor
	}
	if displayLen < i.width {
		display += strings.Repeat(" ", i.width-displayLen)
	}

	result := renderLabel(i.styles, i.label, i.required, width) + display

	if i.err != "" {
		result += " " + i.styles.Error.Render(i.err)
	}

	return result
}

// renderLabel renders the label column and its trailing space. A zero
// width omits the label.
func renderLabel(s Styles, label string, required bool, width int) string {
	if width <= 0 {
		return ""
	}
	if required {
		label += "*"
	}
	label += ":"
	return s.Label.Width(width).Render(label) + " "
}

// Select picks one of a fixed list of options. With a placeholder set,
// nothing is selected until the user moves onto an option.
type Select struct {
	label       string
	options     []string
	selected    int
	placeholder string
	required    bool
	focused     bool
	styles      Styles
}

// NewSelect creates a new select input.
func NewSelect(label string, options []string) *Select {
	return &Select{
		label:   label,
		options: options,
		styles:  DefaultStyles(),
	}
}

// SetPlaceholder starts the select with no option chosen.
func (s *Select) SetPlaceholder(p string) *Select {
	s.placeholder = p
	s.selected = -1
	return s
}

// SetRequired marks the field as required.
func (s *Select) SetRequired(r bool) *Select {
	s.required = r
	return s
}

// SetOptions replaces the options. The selection is kept when its value
// is still offered.
func (s *Select) SetOptions(options []string) *Select {
	current := s.Value()
	s.options = options
	s.selected = -1
	if s.placeholder == "" && len(options) > 0 {
		s.selected = 0
	}
	for i, opt := range options {
		if current != "" && opt == current {
			s.selected = i
			break
		}
	}
	return s
}

// SetSelected sets the selected index. -1 clears a placeholder select.
func (s *Select) SetSelected(idx int) *Select {
	if idx >= 0 && idx < len(s.options) {
		s.selected = idx
	} else if idx == -1 && s.placeholder != "" {
		s.selected = -1
	}
	return s
}

// SetStyles replaces the select's styles.
func (s *Select) SetStyles(st Styles) {
	s.styles = st
}

// Focus sets the focus state.
func (s *Select) Focus(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state.
func (s *Select) IsFocused() bool {
	return s.focused
}

// Label returns the field label.
func (s *Select) Label() string {
	return s.label
}

// Value returns the selected value, or "" when nothing is chosen.
func (s *Select) Value() string {
	if s.selected >= 0 && s.selected < len(s.options) {
		return s.options[s.selected]
	}
	return ""
}

// SelectedIndex returns the selected index, or -1.
func (s *Select) SelectedIndex() int {
	return s.selected
}

// HandleKey handles a key press.
func (s *Select) HandleKey(key string) {
	if !s.focused || len(s.options) == 0 {
		return
	}

	switch key {
	case "left", "h":
		if s.selected > 0 {
			s.selected--
		}
	case "right", "l", " ":
		if s.selected < len(s.options)-1 {
			s.selected++
		}
	}
}

// Render renders the select.
func (s *Select) Render() string {
	return s.RenderWithLabelWidth(DefaultLabelWidth)
}

// RenderWithLabelWidth renders the select with the label padded to width.
// Only the chosen option is shown with arrows, so long lists stay on one
// line.
func (s *Select) RenderWithLabelWidth(width int) string {
	var b strings.Builder
	b.WriteString(renderLabel(s.styles, s.label, s.required, width))

	value := s.Value()
	switch {
	case value == "" && s.placeholder != "":
		value = s.placeholder
	case value == "":
		value = "-"
	}

	style := s.styles.Value
	if s.focused {
		style = s.styles.Focus
	}

	left, right := " ", " "
	if s.focused && s.selected > 0 {
		left = "<"
	}
	if s.focused && s.selected < len(s.options)-1 {
		right = ">"
	}

	if s.selected < 0 {
		b.WriteString(s.styles.Muted.Render(left + " " + value + " " + right))
	} else {
		b.WriteString(style.Render(left + " " + value + " " + right))
	}

	return b.String()
}

// Checkbox is a boolean toggle.
type Checkbox struct {
	label   string
	checked bool
	focused bool
	styles  Styles
}

// NewCheckbox creates a checkbox.
func NewCheckbox(label string, checked bool) *Checkbox {
	return &Checkbox{label: label, checked: checked, styles: DefaultStyles()}
}

// SetChecked sets the state.
func (c *Checkbox) SetChecked(v bool) *Checkbox {
	c.checked = v
	return c
}

// Checked returns the state.
func (c *Checkbox) Checked() bool {
	return c.checked
}

// SetStyles replaces the checkbox's styles.
func (c *Checkbox) SetStyles(s Styles) {
	c.styles = s
}

// Focus sets the focus state.
func (c *Checkbox) Focus(focused bool) {
	c.focused = focused
}

// IsFocused returns the focus state.
func (c *Checkbox) IsFocused() bool {
	return c.focused
}

// Label returns the field label.
func (c *Checkbox) Label() string {
	return c.label
}

// HandleKey toggles on space or x.
func (c *Checkbox) HandleKey(key string) {
	if !c.focused {
		return
	}
	if key == " " || key == "x" {
		c.checked = !c.checked
	}
}

// Render renders the checkbox.
func (c *Checkbox) Render() string {
	return c.RenderWithLabelWidth(DefaultLabelWidth)
}

// RenderWithLabelWidth renders the checkbox with the label padded to width.
func (c *Checkbox) RenderWithLabelWidth(width int) string {
	box := "[ ]"
	if c.checked {
		box = "[x]"
	}

	style := c.styles.Value
	if c.focused {
		style = c.styles.Focus
	}

	return renderLabel(c.styles, c.label, false, width) + style.Render(box)
}

// FormField is a focusable form component.
type FormField interface {
	Focus(bool)
	IsFocused() bool
	HandleKey(string)
	Label() string
	Render() string
	RenderWithLabelWidth(int) string
	SetStyles(Styles)
}

var (
	_ FormField = (*Input)(nil)
	_ FormField = (*Select)(nil)
	_ FormField = (*Checkbox)(nil)
)

// FormAction is what a key press asked the form to do.
type FormAction int

const (
	ActionNone FormAction = iota
	ActionSubmit
	ActionCancel
)

// Form is a simple form container.
type Form struct {
	title      string
	help       string
	fields     []FormField
	focusIndex int
	err        string
	styles     Styles
}

// NewForm creates a new form.
func NewForm(title string) *Form {
	return &Form{
		title:  title,
		help:   "Tab/Down:Next  Shift+Tab/Up:Prev  Enter:Submit  Esc:Dismiss",
		styles: DefaultStyles(),
	}
}

// AddField adds a field to the form.
func (f *Form) AddField(field FormField) *Form {
	field.SetStyles(f.styles)
	f.fields = append(f.fields, field)
	if len(f.fields) == 1 {
		field.Focus(true)
	}
	return f
}

// SetStyles applies styles to the form and every field.
func (f *Form) SetStyles(s Styles) {
	f.styles = s
	for _, field := range f.fields {
		field.SetStyles(s)
	}
}

// SetHelp replaces the key help line.
func (f *Form) SetHelp(help string) {
	f.help = help
}

// HandleKey handles form navigation and passes other keys to the focused
// field. Enter on the last field, or ctrl+s anywhere, submits.
func (f *Form) HandleKey(key string) FormAction {
	switch key {
	case "tab", "down":
		f.nextField()
	case "shift+tab", "up":
		f.prevField()
	case "ctrl+s":
		return ActionSubmit
	case "esc":
		return ActionCancel
	case "enter":
		if f.focusIndex == len(f.fields)-1 {
			return ActionSubmit
		}
		f.nextField()
	default:
		if f.focusIndex < len(f.fields) {
			f.fields[f.focusIndex].HandleKey(key)
		}
	}
	return ActionNone
}

func (f *Form) nextField() {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex = (f.focusIndex + 1) % len(f.fields)
	f.fields[f.focusIndex].Focus(true)
}

func (f *Form) prevField() {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex--
	if f.focusIndex < 0 {
		f.focusIndex = len(f.fields) - 1
	}
	f.fields[f.focusIndex].Focus(true)
}

// FocusIndex returns the index of the focused field.
func (f *Form) FocusIndex() int {
	return f.focusIndex
}

// FocusFirst moves focus back to the first field.
func (f *Form) FocusFirst() {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex = 0
	f.fields[0].Focus(true)
}

// SetError sets an error message.
func (f *Form) SetError(err string) {
	f.err = err
}

// Error returns the current error message.
func (f *Form) Error() string {
	return f.err
}

func (f *Form) labelWidth() int {
	w := 0
	for _, field := range f.fields {
		if n := len(field.Label()) + 2; n > w {
			w = n
		}
	}
	if w < 12 {
		w = 12
	}
	return w
}

// Render renders the form.
func (f *Form) Render() string {
	return f.RenderResponsive(0)
}

// RenderResponsive renders the form, shortening the help line on terminals
// narrower than 60 columns. A zero width is treated as wide.
func (f *Form) RenderResponsive(termWidth int) string {
	var b strings.Builder

	if f.title != "" {
		b.WriteString(f.styles.Title.Render("=== " + f.title + " ==="))
		b.WriteString("\n\n")
	}

	width := f.labelWidth()
	for _, field := range f.fields {
		b.WriteString(field.RenderWithLabelWidth(width))
		b.WriteString("\n")
	}

	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(f.styles.Error.Render("Error: " + f.err))
		b.WriteString("\n")
	}

	help := f.help
	if termWidth > 0 && termWidth < 60 {
		help = "Tab:Next  Enter:Submit  Esc:Dismiss"
	}
	if help != "" {
		b.WriteString("\n")
		b.WriteString(f.styles.Help.Render(help))
	}

	return b.String()
}
