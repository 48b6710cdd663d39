package tui

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/medidonate/medidonate/internal/api"
	"github.com/medidonate/medidonate/internal/config"
	"github.com/medidonate/medidonate/internal/journal"
	"github.com/medidonate/medidonate/internal/models"
	"github.com/medidonate/medidonate/internal/tui/views/activity"
	"github.com/medidonate/medidonate/internal/tui/views/admin"
	"github.com/medidonate/medidonate/internal/tui/views/donor"
	"github.com/medidonate/medidonate/internal/tui/views/hospital"
	"github.com/medidonate/medidonate/internal/util"
	"github.com/medidonate/medidonate/internal/workflow"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// MaxContentWidth is the maximum width for content display
const MaxContentWidth = 120

// chromeLines is the height of header, alert bar and footer.
const chromeLines = 6

// activityLimit is how many journal entries the activity module shows.
const activityLimit = 50

// Module represents a view module in the application.
type Module string

const (
	ModuleHome     Module = "home"
	ModuleDonor    Module = "donor"
	ModuleHospital Module = "hospital"
	ModuleAdmin    Module = "admin"
	ModuleActivity Module = "activity"
	ModuleHelp     Module = "help"
)

// Donor portal tabs.
const (
	DonorTabRegister = iota
	DonorTabDonate
	DonorTabHistory
)

// Admin tabs.
const (
	AdminTabStock = iota
	AdminTabRequests
	AdminTabProcess
)

var (
	donorTabLabels = []string{"Register", "Donate", "History"}
	adminTabLabels = []string{"Stock", "Requests", "Process"}
)

// Client is the service surface the TUI uses.
type Client interface {
	workflow.DonorRegistrar
	workflow.DonationSubmitter
	workflow.RequestCreator
	workflow.RequestProcessor

	ListStock(ctx context.Context) ([]models.StockItem, error)
	StockByCity(ctx context.Context, city string) ([]models.StockItem, error)
	ListRequests(ctx context.Context) ([]models.HospitalRequest, error)
	RequestSummary(ctx context.Context) (models.RequestSummary, error)
	DonationsByDonor(ctx context.Context, donorID string) ([]models.Donation, error)
	ListHospitals(ctx context.Context) ([]models.Hospital, error)
	ListCities(ctx context.Context) ([]models.City, error)
}

var _ Client = (*api.Client)(nil)

// Deps are the application's collaborators. Journal may be nil; Clock
// and Logger default to the system clock and slog.Default.
type Deps struct {
	Client  Client
	Config  *config.Config
	Journal *journal.Journal
	Clock   util.Clock
	Logger  *slog.Logger
}

// App is the main Bubble Tea application model. All state is owned by
// Update; network calls run in commands and report back as messages.
type App struct {
	// Dependencies
	ctx     context.Context
	client  Client
	config  *config.Config
	journal *journal.Journal
	clock   util.Clock
	logger  *slog.Logger

	// Views
	register  *donor.RegisterView
	donate    *donor.DonateView
	history   *donor.HistoryView
	request   *hospital.RequestView
	stock     *admin.StockView
	requests  *admin.RequestsView
	process   *admin.ProcessView
	activity  *activity.View
	processor *workflow.Processor

	// UI state
	theme       *Theme
	keys        KeyMap
	width       int
	height      int
	ready       bool
	quitting    bool
	showConfirm bool

	// Current view
	currentModule  Module
	previousModule Module
	donorTab       int
	adminTab       int
	citiesLoaded   bool

	// Alerts
	alerts []Alert
}

// Alert represents a status line message.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

// AlertLevel indicates the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
	AlertCritical
)

// New creates a new App instance. ctx bounds every network call.
func New(ctx context.Context, deps Deps) *App {
	clock := deps.Clock
	if clock == nil {
		clock = util.SystemClock{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "tui")

	cfg := deps.Config
	theme := NewTheme(cfg.Display.ColorScheme)
	styles := theme.Components()

	opts := []workflow.Option{workflow.WithLogger(logger)}
	if deps.Journal != nil {
		opts = append(opts, workflow.WithRecorder(deps.Journal))
	}

	processor := workflow.NewProcessor(deps.Client, opts...)

	return &App{
		ctx:     ctx,
		client:  deps.Client,
		config:  cfg,
		journal: deps.Journal,
		clock:   clock,
		logger:  logger,

		register:  donor.NewRegisterView(styles, workflow.NewDonorRegistration(deps.Client, opts...), cfg.Directory.DonorCities),
		donate:    donor.NewDonateView(styles, workflow.NewDonationSubmission(deps.Client, opts...), cfg.Directory.DonationCities),
		history:   donor.NewHistoryView(styles, cfg.Display.DateFormat),
		request:   hospital.NewRequestView(styles, workflow.NewHospitalRequest(deps.Client, opts...)),
		stock:     admin.NewStockView(clock, styles, cfg.Display.DateFormat, cfg.Directory.DonationCities),
		requests:  admin.NewRequestsView(styles, cfg.Display.DateFormat),
		process:   admin.NewProcessView(styles, processor),
		activity:  activity.NewView(clock, styles, deps.Journal != nil),
		processor: processor,

		theme:         theme,
		keys:          DefaultKeyMap(),
		currentModule: ModuleHome,
		alerts:        []Alert{},
	}
}

// Messages delivered by commands.
type (
	hospitalsLoadedMsg struct {
		hospitals []models.Hospital
		err       error
	}
	citiesLoadedMsg struct {
		cities []models.City
		err    error
	}
	stockLoadedMsg struct {
		city  string
		items []models.StockItem
		err   error
	}
	requestsLoadedMsg struct {
		requests []models.HospitalRequest
		err      error
	}
	summaryLoadedMsg struct {
		summary models.RequestSummary
		err     error
	}
	donationsLoadedMsg struct {
		donorID   string
		donations []models.Donation
		err       error
	}
	activityLoadedMsg struct {
		entries []journal.Entry
		counts  map[string]int
		err     error
	}
	registeredMsg struct{ out workflow.Outcome }
	donatedMsg    struct{ out workflow.Outcome }
	requestedMsg  struct{ out workflow.Outcome }
	processedMsg  struct{ out workflow.Outcome }
)

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case hospitalsLoadedMsg:
		if msg.err != nil {
			a.logger.Warn("loading hospitals failed", "error", msg.err)
			a.request.HospitalsFailed()
			return a, nil
		}
		a.request.SetHospitals(msg.hospitals)
		return a, nil

	case citiesLoadedMsg:
		if msg.err != nil {
			a.logger.Warn("loading cities failed; keeping configured list", "error", msg.err)
			return a, nil
		}
		a.citiesLoaded = true
		a.register.SetCities(cityOptions(msg.cities))
		return a, nil

	case stockLoadedMsg:
		if msg.city != a.stock.City() {
			return a, nil // superseded by a newer filter
		}
		if msg.err != nil {
			a.logger.Warn("loading stock failed", "city", msg.city, "error", msg.err)
			a.stock.SetError(msg.err)
			return a, nil
		}
		a.stock.SetItems(msg.items)
		return a, nil

	case requestsLoadedMsg:
		if msg.err != nil {
			a.logger.Warn("loading requests failed", "error", msg.err)
		}
		a.requests.SetRequests(msg.requests, msg.err)
		return a, nil

	case summaryLoadedMsg:
		if msg.err != nil {
			a.logger.Warn("loading request summary failed", "error", msg.err)
		}
		a.requests.SetSummary(msg.summary, msg.err)
		return a, nil

	case donationsLoadedMsg:
		a.history.SetDonations(msg.donations, msg.err)
		return a, nil

	case activityLoadedMsg:
		a.activity.SetEntries(msg.entries, msg.counts, msg.err)
		return a, nil

	case registeredMsg:
		a.register.Complete(msg.out)
		return a, nil

	case donatedMsg:
		a.donate.Complete(msg.out)
		return a, nil

	case requestedMsg:
		a.request.Complete(msg.out)
		return a, nil

	case processedMsg:
		a.process.Finish(msg.out)
		if msg.out.Kind != workflow.KindSuccess {
			a.AddAlert(AlertWarning, msg.out.Message)
			return a, nil
		}
		a.AddAlert(AlertInfo, msg.out.Message)
		return a, tea.Batch(a.loadStock(), a.loadRequests())
	}

	return a, nil
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle quit confirmation first (modal takes priority)
	if a.showConfirm {
		switch msg.String() {
		case "y", "Y", "enter":
			a.quitting = true
			return a, tea.Quit
		case "n", "N", "esc":
			a.showConfirm = false
		}
		return a, nil
	}

	if msg.String() == "ctrl+c" || a.keys.F10.Matches(msg) {
		a.showConfirm = true
		return a, nil
	}

	// Function key navigation (always available)
	if module, ok := a.keys.FunctionKeyModule(msg); ok {
		return a, a.enterModule(module)
	}

	if MatchesAny(msg, a.keys.NextTab, a.keys.PrevTab) {
		step := 1
		if a.keys.PrevTab.Matches(msg) {
			step = -1
		}
		return a, a.switchTab(step)
	}

	// Forms take every remaining key, so q is typed rather than quitting.
	switch a.currentModule {
	case ModuleDonor:
		return a, a.handleDonorKeys(msg)
	case ModuleHospital:
		return a, a.handleHospitalKeys(msg)
	}

	if a.keys.Quit.Matches(msg) {
		a.showConfirm = true
		return a, nil
	}

	if a.keys.Escape.Matches(msg) && a.currentModule == ModuleHelp {
		a.currentModule = a.previousModule
		if a.currentModule == "" {
			a.currentModule = ModuleHome
		}
		return a, nil
	}

	switch a.currentModule {
	case ModuleAdmin:
		return a, a.handleAdminKeys(msg)
	case ModuleActivity:
		return a, a.handleActivityKeys(msg)
	}

	return a, nil
}

// enterModule switches modules and starts the loads that module shows.
func (a *App) enterModule(module Module) tea.Cmd {
	if module == ModuleHelp {
		if a.currentModule != ModuleHelp {
			a.previousModule = a.currentModule
		}
		a.currentModule = ModuleHelp
		return nil
	}

	a.currentModule = module

	switch module {
	case ModuleDonor:
		if !a.citiesLoaded {
			return a.loadCities()
		}
	case ModuleHospital:
		return a.loadHospitals()
	case ModuleAdmin:
		return a.loadAdminTab()
	case ModuleActivity:
		return a.loadActivity()
	}
	return nil
}

// switchTab moves between the tabs of the donor and admin modules.
func (a *App) switchTab(step int) tea.Cmd {
	switch a.currentModule {
	case ModuleDonor:
		a.donorTab = (a.donorTab + step + len(donorTabLabels)) % len(donorTabLabels)
	case ModuleAdmin:
		a.adminTab = (a.adminTab + step + len(adminTabLabels)) % len(adminTabLabels)
		return a.loadAdminTab()
	}
	return nil
}

func (a *App) handleDonorKeys(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	switch a.donorTab {
	case DonorTabRegister:
		if a.register.HandleKey(key) {
			return a.submitRegistration()
		}
	case DonorTabDonate:
		if a.donate.HandleKey(key) {
			return a.submitDonation()
		}
	case DonorTabHistory:
		if id, ok := a.history.HandleKey(key); ok {
			return a.loadDonations(id)
		}
	}
	return nil
}

func (a *App) handleHospitalKeys(msg tea.KeyMsg) tea.Cmd {
	if a.request.HandleKey(msg.String()) {
		return a.submitRequest()
	}
	return nil
}

func (a *App) handleAdminKeys(msg tea.KeyMsg) tea.Cmd {
	switch a.adminTab {
	case AdminTabStock:
		switch {
		case a.keys.Up.Matches(msg):
			a.stock.MoveUp()
		case a.keys.Down.Matches(msg):
			a.stock.MoveDown()
		case a.keys.Filter.Matches(msg):
			a.stock.CycleCity()
			return a.loadStock()
		case a.keys.Reload.Matches(msg):
			return a.loadStock()
		}
	case AdminTabRequests:
		switch {
		case a.keys.Up.Matches(msg):
			a.requests.MoveUp()
		case a.keys.Down.Matches(msg):
			a.requests.MoveDown()
		case a.keys.Reload.Matches(msg):
			return a.loadRequests()
		}
	case AdminTabProcess:
		if a.keys.Enter.Matches(msg) {
			return a.runProcess()
		}
	}
	return nil
}

func (a *App) handleActivityKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case a.keys.Up.Matches(msg):
		a.activity.MoveUp()
	case a.keys.Down.Matches(msg):
		a.activity.MoveDown()
	case a.keys.Reload.Matches(msg):
		return a.loadActivity()
	}
	return nil
}

// submitRegistration starts a registration. Validation errors stay on
// the form and issue no request.
func (a *App) submitRegistration() tea.Cmd {
	snapshot, ok := a.register.Begin()
	if !ok {
		return nil
	}
	wf, ctx := a.register.Workflow(), a.ctx
	return func() tea.Msg {
		return registeredMsg{out: wf.Send(ctx, snapshot)}
	}
}

func (a *App) submitDonation() tea.Cmd {
	snapshot, ok := a.donate.Begin()
	if !ok {
		return nil
	}
	wf, ctx := a.donate.Workflow(), a.ctx
	return func() tea.Msg {
		return donatedMsg{out: wf.Send(ctx, snapshot)}
	}
}

func (a *App) submitRequest() tea.Cmd {
	snapshot, ok := a.request.Begin()
	if !ok {
		return nil
	}
	wf, ctx := a.request.Workflow(), a.ctx
	return func() tea.Msg {
		return requestedMsg{out: wf.Send(ctx, snapshot)}
	}
}

// runProcess triggers allocation unless a run is already in flight.
func (a *App) runProcess() tea.Cmd {
	if !a.process.Start() {
		return nil
	}
	p, ctx := a.processor, a.ctx
	return func() tea.Msg {
		return processedMsg{out: p.Process(ctx)}
	}
}

func (a *App) loadAdminTab() tea.Cmd {
	switch a.adminTab {
	case AdminTabStock:
		return a.loadStock()
	case AdminTabRequests:
		return a.loadRequests()
	}
	return nil
}

func (a *App) loadStock() tea.Cmd {
	a.stock.SetLoading()
	city, c, ctx := a.stock.City(), a.client, a.ctx
	return func() tea.Msg {
		var items []models.StockItem
		var err error
		if city == "" {
			items, err = c.ListStock(ctx)
		} else {
			items, err = c.StockByCity(ctx, city)
		}
		return stockLoadedMsg{city: city, items: items, err: err}
	}
}

// loadRequests fetches the request list and the summary independently.
func (a *App) loadRequests() tea.Cmd {
	a.requests.SetLoading()
	c, ctx := a.client, a.ctx
	return tea.Batch(
		func() tea.Msg {
			reqs, err := c.ListRequests(ctx)
			return requestsLoadedMsg{requests: reqs, err: err}
		},
		func() tea.Msg {
			summary, err := c.RequestSummary(ctx)
			return summaryLoadedMsg{summary: summary, err: err}
		},
	)
}

func (a *App) loadHospitals() tea.Cmd {
	a.request.SetLoading()
	c, ctx := a.client, a.ctx
	return func() tea.Msg {
		hospitals, err := c.ListHospitals(ctx)
		return hospitalsLoadedMsg{hospitals: hospitals, err: err}
	}
}

func (a *App) loadCities() tea.Cmd {
	c, ctx := a.client, a.ctx
	return func() tea.Msg {
		cities, err := c.ListCities(ctx)
		return citiesLoadedMsg{cities: cities, err: err}
	}
}

func (a *App) loadDonations(donorID string) tea.Cmd {
	a.history.SetLoading(donorID)
	c, ctx := a.client, a.ctx
	return func() tea.Msg {
		donations, err := c.DonationsByDonor(ctx, donorID)
		return donationsLoadedMsg{donorID: donorID, donations: donations, err: err}
	}
}

func (a *App) loadActivity() tea.Cmd {
	if a.journal == nil {
		return nil
	}
	a.activity.SetLoading()
	j, ctx := a.journal, a.ctx
	return func() tea.Msg {
		entries, err := j.Recent(ctx, activityLimit)
		if err != nil {
			return activityLoadedMsg{err: err}
		}
		counts, err := j.Counts(ctx)
		return activityLoadedMsg{entries: entries, counts: counts, err: err}
	}
}

// cityOptions converts the service's city list into form choices.
func cityOptions(cities []models.City) []config.CityOption {
	opts := make([]config.CityOption, 0, len(cities))
	for _, c := range cities {
		if c.ID == "" || strings.TrimSpace(c.Name) == "" {
			continue
		}
		opts = append(opts, config.CityOption{ID: c.ID.String(), Name: c.Name})
	}
	return opts
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.quitting {
		return a.theme.Title.Render("MediDonate closing...")
	}

	var b strings.Builder

	// Header
	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	// Alert bar
	b.WriteString(a.renderAlertBar())
	b.WriteString("\n")

	contentHeight := ContentHeight(a.height, chromeLines)
	if a.showConfirm {
		b.WriteString(a.renderConfirmDialog(contentHeight))
	} else {
		b.WriteString(a.renderContent(contentHeight))
	}

	// Footer/status bar
	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

// renderHeader renders the top header bar.
func (a *App) renderHeader() string {
	title := fmt.Sprintf("MEDIDONATE v%s", Version)
	if GetBreakpoint(a.width) != BreakpointNarrow {
		title = fmt.Sprintf("MEDIDONATE MEDICINE DONATION NETWORK v%s", Version)
	}

	service := "API: " + serviceHost(a.config.API.BaseURL)

	spacing := a.width - lipgloss.Width(title) - lipgloss.Width(service) - 4
	if spacing < 1 {
		spacing = 1
	}

	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(service)

	return header + "\n" + a.theme.DrawDoubleLine(a.width)
}

func serviceHost(base string) string {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return base
	}
	return u.Host
}

// renderAlertBar renders the clock and the latest alert.
func (a *App) renderAlertBar() string {
	timeStr := util.FormatDateTime(a.clock.Now())

	var alertText string
	if len(a.alerts) > 0 {
		alert := a.alerts[0]
		switch alert.Level {
		case AlertCritical:
			alertText = a.theme.AlertCrit.Render("CRITICAL: " + alert.Message)
		case AlertWarning:
			alertText = a.theme.AlertWarn.Render("WARNING: " + alert.Message)
		default:
			alertText = a.theme.Alert.Render("INFO: " + alert.Message)
		}
	} else {
		alertText = a.theme.Muted.Render("Ready")
	}

	return a.theme.Value.Render(timeStr) + a.theme.Muted.Render(" | ") + alertText
}

// renderContent renders the main content area based on current module.
func (a *App) renderContent(height int) string {
	contentWidth := ContentWidth(a.width, 40, MaxContentWidth)
	content := a.moduleContent(contentWidth)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top)

	return style.Render(lipgloss.NewStyle().Width(contentWidth).Render(content))
}

// moduleContent returns the content for the current module.
func (a *App) moduleContent(width int) string {
	styles := a.theme.Components()

	switch a.currentModule {
	case ModuleDonor:
		var body string
		switch a.donorTab {
		case DonorTabRegister:
			body = a.register.Render(width)
		case DonorTabDonate:
			body = a.donate.Render(width)
		default:
			body = a.history.Render(width)
		}
		return a.theme.Title.Render("=== DONOR PORTAL ===") + "\n" +
			styles.Tabs(donorTabLabels, a.donorTab) + "\n\n" + body
	case ModuleHospital:
		return a.request.Render(width)
	case ModuleAdmin:
		var body string
		switch a.adminTab {
		case AdminTabStock:
			body = a.stock.Render(width)
		case AdminTabRequests:
			body = a.requests.Render(width)
		default:
			body = a.process.Render(width)
		}
		return styles.Tabs(adminTabLabels, a.adminTab) + "\n\n" + body
	case ModuleActivity:
		return a.activity.Render(width)
	case ModuleHelp:
		return a.renderHelp()
	default:
		return a.renderHome(width)
	}
}

// renderHome renders the landing page.
func (a *App) renderHome(width int) string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("=== MEDIDONATE ==="))
	b.WriteString("\n\n")

	intro := "Unused, unexpired medicine donated by the public is\n" +
		"validated, stocked by city and allocated to hospital requests.\n" +
		"Emergency requests are served first."
	b.WriteString(a.theme.Panel("About", intro, min(width, 72)))
	b.WriteString("\n\n")

	items := [][2]string{
		{"F3", "Donor portal: register, donate, history"},
		{"F4", "Hospital portal: request medicine"},
		{"F5", "Administration: stock, requests, processing"},
		{"F6", "Activity journal"},
	}
	var menu strings.Builder
	for i, item := range items {
		menu.WriteString(a.theme.StatusKey.Render(fmt.Sprintf("%-4s", item[0])))
		menu.WriteString(a.theme.Value.Render(item[1]))
		if i < len(items)-1 {
			menu.WriteString("\n")
		}
	}
	b.WriteString(a.theme.Panel("Portals", menu.String(), min(width, 72)))

	return b.String()
}

// renderHelp renders the help screen.
func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("=== HELP ==="))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Label.Render("NAVIGATION"))
	b.WriteString("\n\n")

	navItems := [][2]string{
		{"F1", "Help"},
		{"F2", "Home"},
		{"F3", "Donor Portal"},
		{"F4", "Hospital Portal"},
		{"F5", "Administration"},
		{"F6", "Activity"},
		{"F10", "Quit"},
		{"Ctrl+N/P", "Next/previous tab"},
	}

	for _, item := range navItems {
		line := fmt.Sprintf("    %-9s  %s", item[0], item[1])
		b.WriteString(a.theme.Primary.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Label.Render("FORMS"))
	b.WriteString("\n\n")

	ctrlItems := [][2]string{
		{"Tab/Down", "Next field"},
		{"S-Tab/Up", "Previous field"},
		{"Left/Right", "Change selection"},
		{"Space", "Toggle checkbox"},
		{"Enter", "Next field, submit on the last"},
		{"Ctrl+S", "Submit"},
		{"Esc", "Dismiss message"},
	}

	for _, item := range ctrlItems {
		line := fmt.Sprintf("    %-10s  %s", item[0], item[1])
		b.WriteString(a.theme.Primary.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render("Press Esc to return"))

	return b.String()
}

// renderConfirmDialog renders the quit confirmation dialog.
func (a *App) renderConfirmDialog(height int) string {
	dialog := a.theme.Panel("",
		a.theme.Title.Render("CONFIRM EXIT")+"\n\n"+
			a.theme.Value.Render("Are you sure you want to exit?")+"\n\n"+
			a.theme.Label.Render("[Y]es  [N]o"),
		36,
	)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

// renderFooter renders the bottom status bar.
func (a *App) renderFooter() string {
	separator := a.theme.DrawHorizontalLine(a.width)
	return separator + "\n" + a.theme.Footer.Render(a.keys.StatusBarHelp())
}

// AddAlert adds a new alert to the display.
func (a *App) AddAlert(level AlertLevel, message string) {
	a.alerts = append([]Alert{{
		Level:   level,
		Message: message,
		Time:    a.clock.Now(),
	}}, a.alerts...)

	// Keep only last 10 alerts
	if len(a.alerts) > 10 {
		a.alerts = a.alerts[:10]
	}
}

// ClearAlerts removes all alerts.
func (a *App) ClearAlerts() {
	a.alerts = []Alert{}
}

// Run starts the TUI application.
func Run(ctx context.Context, deps Deps) error {
	app := New(ctx, deps)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
