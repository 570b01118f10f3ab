package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type screen int

const (
	screenLogin screen = iota
	screenProducts
)

type keyMap struct {
	quit       key.Binding
	toggleHelp key.Binding
	search     key.Binding
	addRow     key.Binding
	editRow    key.Binding
	deleteRow  key.Binding
	selectRow  key.Binding
	selectAll  key.Binding
	refresh    key.Binding
	prevPage   key.Binding
	nextPage   key.Binding
	copySKU    key.Binding
	exportCSV  key.Binding
	exportXLSX key.Binding
	colPrev    key.Binding
	colNext    key.Binding
	colShrink  key.Binding
	colGrow    key.Binding
	sortCol    key.Binding
	signOut    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		addRow: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add row"),
		),
		editRow: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit row"),
		),
		deleteRow: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete row"),
		),
		selectRow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		selectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "select page"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		prevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "prev page"),
		),
		nextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next page"),
		),
		copySKU: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy sku"),
		),
		exportCSV: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export csv"),
		),
		exportXLSX: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "export xlsx"),
		),
		colPrev: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "prev column"),
		),
		colNext: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "next column"),
		),
		colShrink: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "narrow column"),
		),
		colGrow: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "widen column"),
		),
		sortCol: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort column"),
		),
		signOut: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "sign out"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.search,
		k.addRow,
		k.editRow,
		k.deleteRow,
		k.sortCol,
		k.prevPage,
		k.nextPage,
		k.toggleHelp,
		k.quit,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.search, k.refresh, k.prevPage, k.nextPage},
		{k.addRow, k.editRow, k.deleteRow, k.sortCol},
		{k.selectRow, k.selectAll, k.copySKU},
		{k.colPrev, k.colNext, k.colShrink, k.colGrow},
		{k.exportCSV, k.exportXLSX, k.signOut, k.toggleHelp, k.quit},
	}
}

const (
	cmdKindAdd    = "add"
	cmdKindEdit   = "edit"
	cmdKindDelete = "delete"
)

type cmdDoneMsg struct {
	kind   string
	rowID  string
	result cmdResult
}

type clampPageMsg struct {
	page int
}

type exportDoneMsg struct {
	path string
	err  error
}

type confirmState struct {
	prompt string
	accept func() tea.Cmd
}

type model struct {
	width  int
	height int

	styles styles
	keys   keyMap
	help   help.Model

	cfg      *uiConfig
	cfgPath  string
	store    *clientStore
	sessions *sessionManager
	api      *apiClient
	events   *eventLogger

	screen screen
	login  *loginView

	ctrl     *controller
	remote   *remotePageStore
	layout   *columnLayout
	tableCol *productsTableColumn

	form     *productForm
	formOpen bool
	formMode string

	searchInput textinput.Model
	searching   bool
	debounce    *debouncer
	refreshing  *minVisible

	spinner spinner.Model
	confirm *confirmState

	showHelp bool

	toastMessage string
	toastExpires time.Time
}

func initialModel() *model {
	cfg, cfgPath := loadUIConfig()
	setMarkdownTheme(markdownThemeFromString(cfg.Theme))

	store, err := openClientStore()
	if err != nil {
		// Run without persistence rather than refuse to start.
		store = &clientStore{}
	}
	sessions := newSessionManager(store)
	api := newAPIClient(cfg.APIBase, func() string { return sessions.Token() })

	m := &model{
		styles:   newStyles(),
		keys:     newKeyMap(),
		help:     help.New(),
		cfg:      cfg,
		cfgPath:  cfgPath,
		store:    store,
		sessions: sessions,
		api:      api,
		events:   newEventLogger(filepath.Join(resolveConfigDir(), "ui-events.ndjson")),
		login:    newLoginView(),
	}

	var storedWidths map[string]int
	if ok, err := store.Get(columnWidthsKey, &storedWidths); err != nil || !ok {
		storedWidths = nil
	}
	m.layout = newColumnLayout(storedWidths, func(widths map[string]int) {
		_ = store.Set(columnWidthsKey, widths)
	})

	m.remote = newRemotePageStore(api, cfg.PageSize)
	m.ctrl = newController(api, m.remote, store)
	m.ctrl.syncRemote()

	m.tableCol = newProductsTableColumn("Products", m.layout)
	m.tableCol.SetSort(m.ctrl.Sort())
	m.form = newProductForm("", func(field, value string) {
		if m.formMode == cmdKindEdit {
			m.ctrl.UpdateEditingDraft(field, value)
		} else {
			m.ctrl.UpdateDraft(field, value)
		}
	})

	m.searchInput = textinput.New()
	m.searchInput.Prompt = "/ "
	m.searchInput.Placeholder = "search products"
	m.searchInput.CharLimit = 128

	m.debounce = newDebouncer(time.Duration(cfg.SearchDebounce) * time.Millisecond)
	m.refreshing = newMinVisible(500 * time.Millisecond)
	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))

	if m.sessions.Authenticated() {
		m.screen = screenProducts
	}
	return m
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, textinput.Blink}
	if m.screen == screenProducts {
		cmds = append(cmds, m.fetchCmd())
	}
	return tea.Batch(cmds...)
}

// fetchCmd issues a page fetch and keeps the busy indicator honest.
func (m *model) fetchCmd() tea.Cmd {
	cmd := m.remote.FetchCmd()
	if visCmd := m.refreshing.Set(true); visCmd != nil {
		return tea.Batch(cmd, visCmd)
	}
	return cmd
}

func (m *model) refreshTable() {
	m.tableCol.SetSort(m.ctrl.Sort())
	m.tableCol.SetRows(m.ctrl.Rows(), m.ctrl.EditingID(), m.ctrl.IsSelected)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	switch message := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = message.Width, message.Height
		m.applyLayout()
		return m, tea.Batch(cmds...)

	case loginResultMsg:
		if m.login.ApplyResult(message) {
			sess := sessionFromLogin(message.resp, m.cfg.AuthExpiresMin, m.login.remember)
			m.sessions.SignIn(sess)
			m.screen = screenProducts
			m.events.Emit(uiEvent{Event: "sign-in"})
			m.refreshTable()
			cmds = append(cmds, m.fetchCmd())
		}
		return m, tea.Batch(cmds...)

	case pageLoadedMsg:
		if m.remote.Apply(message) {
			m.refreshTable()
			if visCmd := m.refreshing.Set(m.remote.IsFetching()); visCmd != nil {
				cmds = append(cmds, visCmd)
			}
			if m.ctrl.PageOverflow() {
				// Deferred to the next event-loop turn so the clamp
				// never races the render for this message.
				target := m.ctrl.TotalPages()
				cmds = append(cmds, func() tea.Msg { return clampPageMsg{page: target} })
			}
		}
		return m, tea.Batch(cmds...)

	case clampPageMsg:
		if m.ctrl.PageOverflow() {
			m.ctrl.SetPage(message.page)
			cmds = append(cmds, m.fetchCmd())
		}
		return m, tea.Batch(cmds...)

	case debounceMsg:
		if m.debounce.Matches(message) {
			m.ctrl.CommitQuery(strings.TrimSpace(message.value))
			m.refreshTable()
			m.events.Emit(uiEvent{Event: "search", Query: strings.TrimSpace(message.value)})
			cmds = append(cmds, m.fetchCmd())
		}
		return m, tea.Batch(cmds...)

	case minVisibleMsg:
		m.refreshing.Apply(message)
		return m, tea.Batch(cmds...)

	case cmdDoneMsg:
		cmds = append(cmds, m.handleCommandDone(message)...)
		return m, tea.Batch(cmds...)

	case exportDoneMsg:
		if message.err != nil {
			m.setToast("Export failed: "+humanizeError(message.err, "unknown error"), 5*time.Second)
		} else {
			m.setToast("Exported to "+message.path, 5*time.Second)
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if m.screen == screenProducts && !m.formOpen && m.confirm == nil {
			m.handleMouse(message)
		}
		return m, tea.Batch(cmds...)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		cmd := m.handleKey(keyMsg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	if m.screen == screenLogin {
		if cmd := m.login.Update(msg, m.api, m.cfg.AuthExpiresMin); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	if m.searching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if m.confirm != nil {
		switch msg.String() {
		case "y", "enter":
			accept := m.confirm.accept
			m.confirm = nil
			if accept != nil {
				return accept()
			}
			return nil
		case "n", "esc":
			m.confirm = nil
			return nil
		}
		return nil
	}

	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return nil
	}

	if m.screen == screenLogin {
		return m.login.Update(msg, m.api, m.cfg.AuthExpiresMin)
	}

	if m.formOpen {
		return m.handleFormKey(msg)
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	return m.handleTableKey(msg)
}

func (m *model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		if m.formMode == cmdKindEdit && m.ctrl.IsEditingDirty() {
			m.confirm = &confirmState{
				prompt: "Discard unsaved changes?",
				accept: func() tea.Cmd {
					m.ctrl.CancelEditing()
					m.closeForm()
					return nil
				},
			}
			return nil
		}
		if m.formMode == cmdKindEdit {
			m.ctrl.CancelEditing()
		} else {
			m.ctrl.CancelAdding()
		}
		m.closeForm()
		return nil
	case "enter":
		if m.formMode == cmdKindEdit {
			return m.saveEditCmd()
		}
		return m.saveDraftCmd()
	}
	return m.form.Update(msg)
}

func (m *model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.searchInput.Blur()
		return nil
	}
	var cmd tea.Cmd
	before := m.searchInput.Value()
	m.searchInput, cmd = m.searchInput.Update(msg)
	after := m.searchInput.Value()
	if after != before {
		m.ctrl.SetQuery(after)
		return tea.Batch(cmd, m.debounce.Trigger(after))
	}
	return cmd
}

func (m *model) handleTableKey(msg tea.KeyMsg) tea.Cmd {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.quit):
		return tea.Quit
	case key.Matches(msg, keys.toggleHelp):
		m.showHelp = true
		return nil
	case key.Matches(msg, keys.search):
		m.searching = true
		m.searchInput.Focus()
		return textinput.Blink
	case key.Matches(msg, keys.refresh):
		return m.fetchCmd()
	case key.Matches(msg, keys.prevPage):
		if m.ctrl.Page() > 1 {
			m.ctrl.SetPage(m.ctrl.Page() - 1)
			return m.fetchCmd()
		}
		return nil
	case key.Matches(msg, keys.nextPage):
		if m.ctrl.Page() < m.ctrl.TotalPages() {
			m.ctrl.SetPage(m.ctrl.Page() + 1)
			return m.fetchCmd()
		}
		return nil
	case key.Matches(msg, keys.sortCol):
		m.ctrl.ToggleSort(m.tableCol.ActiveColumnKey())
		m.refreshTable()
		return m.fetchCmd()
	case key.Matches(msg, keys.addRow):
		return m.openAddForm()
	case key.Matches(msg, keys.editRow):
		return m.openEditForm()
	case key.Matches(msg, keys.deleteRow):
		return m.promptDelete()
	case key.Matches(msg, keys.selectRow):
		if product, ok := m.tableCol.SelectedProduct(); ok {
			m.ctrl.ToggleSelect(product.ID)
			m.refreshTable()
		}
		return nil
	case key.Matches(msg, keys.selectAll):
		rows := m.ctrl.Rows()
		ids := make([]string, len(rows))
		for i, product := range rows {
			ids[i] = product.ID
		}
		m.ctrl.ToggleSelectAll(ids)
		m.refreshTable()
		return nil
	case key.Matches(msg, keys.copySKU):
		if product, ok := m.tableCol.SelectedProduct(); ok {
			if err := clipboard.WriteAll(product.SKU); err != nil {
				m.setToast("Clipboard unavailable", 4*time.Second)
			} else {
				m.setToast("SKU copied: "+product.SKU, 3*time.Second)
			}
		}
		return nil
	case key.Matches(msg, keys.exportCSV):
		return m.exportCmd(false)
	case key.Matches(msg, keys.exportXLSX):
		return m.exportCmd(true)
	case key.Matches(msg, keys.colPrev):
		m.tableCol.MoveActiveColumn(-1)
		return nil
	case key.Matches(msg, keys.colNext):
		m.tableCol.MoveActiveColumn(1)
		return nil
	case key.Matches(msg, keys.colShrink):
		m.nudgeColumn(-pxPerCell)
		return nil
	case key.Matches(msg, keys.colGrow):
		m.nudgeColumn(pxPerCell)
		return nil
	case key.Matches(msg, keys.signOut):
		m.sessions.SignOut()
		m.events.Emit(uiEvent{Event: "sign-out"})
		m.screen = screenLogin
		m.login = newLoginView()
		return textinput.Blink
	}
	return m.tableCol.Update(msg)
}

// nudgeColumn is the keyboard resize path: a one-step drag session so
// the clamp and persistence logic are shared with the mouse path.
func (m *model) nudgeColumn(deltaPx int) {
	keyName := m.tableCol.ActiveColumnKey()
	m.layout.StartResize(keyName, 0, m.layout.Width(keyName))
	m.layout.MoveResize(deltaPx)
	m.layout.EndResize()
	m.tableCol.rebuildColumns()
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	switch msg.Type {
	case tea.MouseLeft:
		// Header row sits below the top bar, the search line and the
		// panel border.
		if msg.Y == 4 {
			if keyName, ok := m.tableCol.headerColumnAt(msg.X - 1); ok {
				m.layout.StartResize(keyName, msg.X*pxPerCell, m.layout.Width(keyName))
			}
		}
	case tea.MouseMotion:
		if m.layout.Resizing() {
			m.layout.MoveResize(msg.X * pxPerCell)
			m.tableCol.rebuildColumns()
		}
	case tea.MouseRelease:
		if m.layout.Resizing() {
			m.layout.EndResize()
			m.tableCol.rebuildColumns()
		}
	}
}

func (m *model) openAddForm() tea.Cmd {
	m.ctrl.StartAdding()
	m.formMode = cmdKindAdd
	m.form.SetTitle("New product")
	m.form.SetValues(m.ctrl.DraftValue)
	m.formOpen = true
	return textinput.Blink
}

func (m *model) openEditForm() tea.Cmd {
	product, ok := m.tableCol.SelectedProduct()
	if !ok {
		return nil
	}
	begin := func() tea.Cmd {
		m.ctrl.StartEditing(product)
		m.formMode = cmdKindEdit
		m.form.SetTitle("Edit " + product.Name)
		m.form.SetValues(m.ctrl.EditingValue)
		m.formOpen = true
		m.refreshTable()
		return textinput.Blink
	}
	if m.ctrl.EditingID() != "" && m.ctrl.EditingID() != product.ID && m.ctrl.IsEditingDirty() {
		m.confirm = &confirmState{
			prompt: "Discard unsaved changes?",
			accept: begin,
		}
		return nil
	}
	return begin()
}

func (m *model) promptDelete() tea.Cmd {
	product, ok := m.tableCol.SelectedProduct()
	if !ok {
		return nil
	}
	m.confirm = &confirmState{
		prompt: fmt.Sprintf("Delete %q?", product.Name),
		accept: func() tea.Cmd {
			return m.deleteCmd(product.ID)
		},
	}
	return nil
}

func (m *model) closeForm() {
	m.formOpen = false
	m.formMode = ""
	m.refreshTable()
}

func (m *model) saveDraftCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return cmdDoneMsg{kind: cmdKindAdd, result: ctrl.SaveDraft(ctx)}
	}
}

func (m *model) saveEditCmd() tea.Cmd {
	ctrl := m.ctrl
	rowID := ctrl.EditingID()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return cmdDoneMsg{kind: cmdKindEdit, rowID: rowID, result: ctrl.SaveEditingRow(ctx)}
	}
}

func (m *model) deleteCmd(id string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return cmdDoneMsg{kind: cmdKindDelete, rowID: id, result: ctrl.DeleteRow(ctx, id)}
	}
}

func (m *model) exportCmd(xlsx bool) tea.Cmd {
	rows := m.ctrl.Rows()
	dir := resolveExportDir(m.cfg)
	return func() tea.Msg {
		var path string
		var err error
		if xlsx {
			path, err = writeProductsXLSX(dir, rows)
		} else {
			path, err = writeProductsCSV(dir, rows)
		}
		return exportDoneMsg{path: path, err: err}
	}
}

// handleCommandDone folds persistence results back into the UI:
// success closes the form and toasts; validation keeps the form open
// with field highlights; transport failures toast the message.
func (m *model) handleCommandDone(msg cmdDoneMsg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg.kind {
	case cmdKindAdd:
		if msg.result.OK {
			m.closeForm()
			m.setToast("Product added", 3*time.Second)
			m.events.Emit(uiEvent{Event: "product-added"})
		} else if msg.result.Err != resultValidation && msg.result.Err != resultNotEditing {
			m.setToast("Add failed: "+msg.result.Err, 5*time.Second)
		}
	case cmdKindEdit:
		if msg.result.OK {
			m.closeForm()
			m.setToast("Changes saved", 3*time.Second)
			m.events.Emit(uiEvent{Event: "product-updated", RowID: msg.rowID})
		} else if msg.result.Err != resultValidation && msg.result.Err != resultNotEditing {
			m.setToast("Save failed: "+msg.result.Err, 5*time.Second)
		}
	case cmdKindDelete:
		if msg.result.OK {
			m.setToast("Product deleted", 3*time.Second)
			m.events.Emit(uiEvent{Event: "product-deleted", RowID: msg.rowID})
		} else {
			m.setToast("Delete failed: "+msg.result.Err, 5*time.Second)
		}
	}
	m.refreshTable()
	return cmds
}

func (m *model) setToast(msg string, duration time.Duration) {
	trimmed := strings.TrimSpace(msg)
	if trimmed == "" {
		m.toastMessage = ""
		m.toastExpires = time.Time{}
		return
	}
	if duration <= 0 {
		duration = 5 * time.Second
	}
	m.toastMessage = trimmed
	m.toastExpires = time.Now().Add(duration)
}

func (m *model) applyLayout() {
	tableHeight := m.height - 6
	if tableHeight < 6 {
		tableHeight = 6
	}
	m.tableCol.SetSize(m.width-2, tableHeight)
}

func (m *model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.screen == screenLogin {
		return m.login.View(m.styles, m.width, m.height)
	}

	var builder strings.Builder

	title := "wareroom • Catalog Admin"
	builder.WriteString(m.styles.topBar.Width(m.width).Render(title))
	builder.WriteRune('\n')

	searchLine := m.searchInput.View()
	if !m.searching && m.searchInput.Value() == "" {
		searchLine = m.styles.statusHint.Render("/ search")
	}
	builder.WriteString(m.styles.topStatus.Width(m.width).Render(searchLine))
	builder.WriteRune('\n')

	emptyHint := "No products"
	if m.remote.IsLoading() {
		emptyHint = "Loading…"
	} else if m.remote.Error() != "" {
		emptyHint = m.remote.Error()
	}
	builder.WriteString(m.tableCol.View(m.styles, !m.searching, emptyHint))
	builder.WriteRune('\n')

	if m.remote.Error() != "" && len(m.ctrl.Rows()) > 0 {
		builder.WriteString(m.styles.errorBanner.Width(m.width).Render(m.remote.Error()))
		builder.WriteRune('\n')
	}

	builder.WriteString(m.renderStatus())
	builder.WriteRune('\n')
	builder.WriteString(m.styles.statusHint.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	if m.formOpen {
		overlay := m.form.View(m.styles, min(56, m.width-4), m.formErrorFor)
		builder.WriteRune('\n')
		builder.WriteString(lipgloss.Place(m.width, m.height/2, lipgloss.Center, lipgloss.Center, overlay))
	}

	if m.confirm != nil {
		content := m.styles.overlayPrompt.Render(m.confirm.prompt) + "\n\n" +
			m.styles.hint.Render("y confirm • n cancel")
		overlay := m.styles.overlay.Render(content)
		builder.WriteRune('\n')
		builder.WriteString(lipgloss.Place(m.width, m.height/2, lipgloss.Center, lipgloss.Center, overlay))
	}

	if m.showHelp {
		overlay := m.styles.overlay.Width(min(76, m.width-4)).Render(renderMarkdown(helpMarkdown))
		builder.WriteRune('\n')
		builder.WriteString(lipgloss.Place(m.width, m.height/2, lipgloss.Center, lipgloss.Center, overlay))
	}

	return m.styles.app.Render(builder.String())
}

func (m *model) formErrorFor(field string) string {
	if m.formMode == cmdKindEdit {
		return m.ctrl.EditError(field)
	}
	return m.ctrl.DraftError(field)
}

func (m *model) renderStatus() string {
	total := m.remote.Total()
	shownFrom := m.remote.Skip() + 1
	shownTo := m.remote.Skip() + len(m.remote.Rows())
	if total == 0 {
		shownFrom = 0
	}

	segments := []string{
		m.styles.statusSeg.Render(fmt.Sprintf("Page %d/%d", m.ctrl.Page(), m.ctrl.TotalPages())),
		m.styles.statusSeg.Render(fmt.Sprintf("%d–%d of %d", shownFrom, shownTo, total)),
	}
	if sort := m.ctrl.Sort(); sort != nil {
		segments = append(segments, m.styles.statusSeg.Render("Sort: "+sort.Key+" "+string(sort.Direction)))
	}
	if query := m.ctrl.CommittedQuery(); query != "" {
		segments = append(segments, m.styles.statusSeg.Render("Search: "+query))
	}
	if count := m.ctrl.SelectedCount(); count > 0 {
		segments = append(segments, m.styles.statusSeg.Render("Selected: "+strconv.Itoa(count)))
	}
	if m.refreshing.Visible() {
		segments = append(segments, m.styles.statusSeg.Render(m.spinner.View()+" refreshing"))
	}
	if m.toastMessage != "" {
		if time.Now().After(m.toastExpires) {
			m.toastMessage = ""
		} else {
			segments = append(segments, m.styles.statusSeg.Render(m.toastMessage))
		}
	}
	content := strings.Join(segments, lipgloss.NewStyle().Render("│"))
	return m.styles.statusBar.Width(m.width).Render(content)
}
