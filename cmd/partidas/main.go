// partidas is a live terminal departures board for the Portuguese rail
// network.
//
// It polls the partidas API for a station's board, reconciles scheduled
// times against operational remarks (delays, cancellations), and renders a
// continuously updated board with a station search modal.
//
// Usage:
//
//	partidas                          # Board API at localhost, pick a station
//	partidas --station <id>           # Start on a specific station
//	partidas --api <url>              # Use a specific board API
//	partidas --offline board.json     # Render a local snapshot, watch for edits
//	partidas --json                   # Dump the current board as JSON and exit
//	partidas --refresh 30s            # Set the poll interval
//	partidas --version                # Print version and exit
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/partidas-board/partidas/internal/feed"
	"github.com/partidas-board/partidas/internal/scale"
	"github.com/partidas-board/partidas/internal/schedule"
)

// Version is set via ldflags at build time (e.g. -X main.Version=v0.1.0).
var Version = "dev"

const (
	defaultAPI      = "http://localhost:8080"
	defaultRefresh  = 30 * time.Second
	searchDebounce  = 300 * time.Millisecond
	minStationQuery = 2

	// Logical board canvas in terminal cells; the scaler maps the actual
	// window onto it.
	boardBaseCols = 96.0
	boardBaseRows = 28.0
)

func main() {
	apiFlag := flag.String("api", "", "board API base URL (default $PARTIDAS_API or "+defaultAPI+")")
	stationFlag := flag.String("station", "", "station id to show on startup")
	refreshDur := flag.Duration("refresh", defaultRefresh, "board poll interval")
	offlineFlag := flag.String("offline", "", "render a local board JSON file instead of polling")
	jsonMode := flag.Bool("json", false, "dump the current board as JSON and exit (no TUI)")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("partidas %s\n", Version)
		os.Exit(0)
	}

	api := *apiFlag
	if api == "" {
		api = os.Getenv("PARTIDAS_API")
	}
	if api == "" {
		api = defaultAPI
	}
	client := feed.NewClient(api)

	// --json mode: fetch once, print, exit.
	if *jsonMode {
		board, err := fetchOnce(client, *offlineFlag, *stationFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "partidas: %v\n", err)
			os.Exit(1)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(board); err != nil {
			fmt.Fprintf(os.Stderr, "partidas: json: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	m := newModel(client)
	m.refreshInterval = *refreshDur
	m.offline = *offlineFlag
	if *stationFlag != "" {
		m.station = feed.Station{ID: *stationFlag}
		m.modalOpen = false
	}

	var watcher *feed.Watcher
	if m.offline != "" {
		m.modalOpen = false
		w, err := feed.NewWatcher(m.offline)
		if err != nil {
			fmt.Fprintf(os.Stderr, "partidas: watch: %v\n", err)
			os.Exit(1)
		}
		watcher = w
		defer watcher.Close()
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	// Feed file edits into the TUI in offline mode.
	if watcher != nil {
		go func() {
			for range watcher.Changes() {
				p.Send(feedChangedMsg{})
			}
		}()
	}

	// Poll cadence: one refresh signal per interval. The update loop owns
	// cancellation and generation bookkeeping for the fetch itself.
	go func() {
		ticker := time.NewTicker(*refreshDur)
		defer ticker.Stop()
		for range ticker.C {
			p.Send(refreshMsg{})
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "partidas: %v\n", err)
		os.Exit(1)
	}
}

// fetchOnce resolves the board for --json mode from the offline file or the
// API.
func fetchOnce(client *feed.Client, offline, stationID string) (*schedule.Board, error) {
	if offline != "" {
		return feed.Load(offline)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	return client.Board(ctx, stationID)
}

// --- Messages ---

type tickMsg time.Time

type refreshMsg struct{}

type feedChangedMsg struct{}

// boardMsg carries one poll result. gen guards against applying a response
// that a newer request has superseded.
type boardMsg struct {
	gen   int
	board *schedule.Board
	err   error
}

// searchDebounceMsg fires when the search input has been quiet for the
// debounce window; gen ties it to the query that scheduled it.
type searchDebounceMsg struct {
	gen int
}

type searchMsg struct {
	gen      int
	stations []feed.Station
	err      error
}

// --- Key bindings ---

type keyMap struct {
	Quit    key.Binding
	Search  key.Binding
	Face    key.Binding
	Refresh key.Binding
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Esc     key.Binding
	Help    key.Binding
}

var keys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Search:  key.NewBinding(key.WithKeys("s", "/"), key.WithHelp("s", "station")),
	Face:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "partidas/chegadas")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/down", "down")),
	Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Esc:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Face, k.Refresh, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Face, k.Refresh},
		{k.Up, k.Down, k.Enter, k.Esc},
		{k.Help, k.Quit},
	}
}

// --- Board faces ---

type boardFace int

const (
	facePartidas boardFace = iota
	faceChegadas
)

func (f boardFace) String() string {
	if f == faceChegadas {
		return "CHEGADAS / ARRIVALS"
	}
	return "PARTIDAS / DEPARTURES"
}

// --- Model ---

type uiModel struct {
	client  *feed.Client
	offline string // feed file path; "" when polling the API

	station feed.Station
	board   *schedule.Board
	face    boardFace

	now     time.Time
	loading bool
	stale   bool
	errText string

	boardGen    int
	boardCancel context.CancelFunc

	width  int
	height int
	scaler *scale.Tracker

	modalOpen    bool
	searchInput  textinput.Model
	searching    bool
	results      []feed.Station
	selected     int
	searchErr    string
	searchGen    int
	searchCancel context.CancelFunc

	refreshInterval time.Duration
	help            help.Model
	showHelp        bool
}

func newModel(client *feed.Client) uiModel {
	input := textinput.New()
	input.Placeholder = "Ex.: Lisboa, Aveiro, Porto…"
	input.CharLimit = 64
	input.Focus()

	return uiModel{
		client:          client,
		face:            facePartidas,
		loading:         true,
		scaler:          scale.NewTracker(),
		modalOpen:       true,
		searchInput:     input,
		refreshInterval: defaultRefresh,
		help:            help.New(),
	}
}

func (m uiModel) Init() tea.Cmd {
	return tea.Batch(
		tickEvery(),
		textinput.Blink,
		func() tea.Msg { return refreshMsg{} },
	)
}

func tickEvery() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// issueBoardFetch cancels any in-flight board request, bumps the generation,
// and returns the command for a fresh fetch. At most one request is in
// flight per purpose; a superseded response is discarded by its generation.
func (m uiModel) issueBoardFetch() (uiModel, tea.Cmd) {
	if m.boardCancel != nil {
		m.boardCancel()
	}
	m.boardGen++
	gen := m.boardGen

	if m.offline != "" {
		m.boardCancel = nil
		path := m.offline
		return m, func() tea.Msg {
			board, err := feed.Load(path)
			return boardMsg{gen: gen, board: board, err: err}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.boardCancel = cancel
	client := m.client
	stationID := m.station.ID
	return m, func() tea.Msg {
		board, err := client.Board(ctx, stationID)
		return boardMsg{gen: gen, board: board, err: err}
	}
}

// issueSearch cancels the prior search and starts the debounce window for
// the current query.
func (m uiModel) issueSearch() (uiModel, tea.Cmd) {
	if m.searchCancel != nil {
		m.searchCancel()
		m.searchCancel = nil
	}
	m.searchGen++
	m.results = nil
	m.selected = 0
	m.searchErr = ""

	query := strings.TrimSpace(m.searchInput.Value())
	if len([]rune(query)) < minStationQuery {
		m.searching = false
		return m, nil
	}

	m.searching = true
	gen := m.searchGen
	return m, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{gen: gen}
	})
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.modalOpen {
			return m.updateModal(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			if m.boardCancel != nil {
				m.boardCancel()
			}
			return m, tea.Quit

		case key.Matches(msg, keys.Search):
			if m.offline != "" {
				return m, nil
			}
			m.modalOpen = true
			m.searchInput.SetValue("")
			m.results = nil
			m.selected = 0
			m.searchErr = ""
			m.searching = false
			return m, textinput.Blink

		case key.Matches(msg, keys.Face):
			if m.face == facePartidas {
				m.face = faceChegadas
			} else {
				m.face = facePartidas
			}

		case key.Matches(msg, keys.Refresh):
			return m.issueBoardFetch()

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Dead-zoned: identical or near-identical sizes are a no-op.
		m.scaler.Update(float64(msg.Width), float64(msg.Height), boardBaseCols, boardBaseRows)

	case tickMsg:
		m.now = time.Time(msg)
		return m, tickEvery()

	case refreshMsg:
		return m.issueBoardFetch()

	case feedChangedMsg:
		return m.issueBoardFetch()

	case boardMsg:
		if msg.gen != m.boardGen {
			// Superseded by a newer request; never applied.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, context.Canceled) {
				return m, nil
			}
			// Keep the previous snapshot; the board never goes blank on
			// a transient failure.
			m.stale = true
			m.errText = "Não foi possível obter os dados. A tentar novamente…"
			return m, nil
		}
		m.board = msg.board
		m.stale = false
		m.errText = ""

	case searchDebounceMsg:
		if msg.gen != m.searchGen || !m.modalOpen {
			return m, nil
		}
		ctx, cancel := context.WithCancel(context.Background())
		m.searchCancel = cancel
		client := m.client
		query := strings.TrimSpace(m.searchInput.Value())
		gen := m.searchGen
		return m, func() tea.Msg {
			stations, err := client.SearchStations(ctx, query)
			return searchMsg{gen: gen, stations: stations, err: err}
		}

	case searchMsg:
		if msg.gen != m.searchGen {
			return m, nil
		}
		m.searching = false
		if msg.err != nil {
			if errors.Is(msg.err, context.Canceled) {
				return m, nil
			}
			m.results = nil
			m.searchErr = "Não foi possível obter estações."
			return m, nil
		}
		m.results = msg.stations
		m.selected = 0
		if len(msg.stations) == 0 {
			m.searchErr = "Nenhuma estação encontrada."
		} else {
			m.searchErr = ""
		}
	}

	return m, nil
}

// updateModal handles keys while the station search modal is open.
func (m uiModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit) && msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, keys.Esc):
		if m.station.ID != "" {
			m.modalOpen = false
		}
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.selected < len(m.results)-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, keys.Enter):
		if m.selected >= 0 && m.selected < len(m.results) {
			m.station = m.results[m.selected]
			m.modalOpen = false
			m.loading = true
			m.results = nil
			m.searchErr = ""
			// Switching station cancels the in-flight cycle and starts a
			// new one immediately.
			return m.issueBoardFetch()
		}
		return m, nil
	}

	var cmd tea.Cmd
	before := m.searchInput.Value()
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}

	next, searchCmd := m.issueSearch()
	return next, tea.Batch(cmd, searchCmd)
}

// --- Styles ---

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8FAFC")).
			Background(lipgloss.Color("#1D357F")).
			Padding(0, 1)

	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7FD962"))

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD23F"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94A3B8"))

	columnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#64748B"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB703"))

	firstRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD23F"))

	delayedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9E2AF"))

	suppressedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8")).
			Strikethrough(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(lipgloss.Color("#F38BA8")).
			Padding(0, 1)

	tickerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4")).
			Background(lipgloss.Color("#1E1E2E"))

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89B4FA"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E3A1"))
)

// --- Columns ---

// column describes one board column at base scale; widths stretch with the
// horizontal scale factor.
type column struct {
	label string
	width int
}

var departureColumns = []column{
	{"Hora", 14},
	{"Destino", 26},
	{"LN", 4},
	{"Comboio", 14},
	{"Observações", 32},
}

var arrivalColumns = []column{
	{"Hora", 14},
	{"Origem", 26},
	{"LN", 4},
	{"Comboio", 14},
	{"Observações", 32},
}

// --- View rendering ---

func (m uiModel) View() string {
	if m.width == 0 {
		return "A carregar…"
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteRune('\n')
	b.WriteRune('\n')

	if m.errText != "" {
		b.WriteString(bannerStyle.Render(m.errText))
		b.WriteRune('\n')
		b.WriteRune('\n')
	}

	if m.modalOpen {
		b.WriteString(m.renderSearchModal())
	} else if m.loading || m.board == nil {
		b.WriteString(dimStyle.Render("A carregar informação…"))
		b.WriteRune('\n')
	} else {
		b.WriteString(m.renderBoard())
	}

	// Pad to fill the screen.
	rendered := strings.Count(b.String(), "\n")
	for rendered < m.height-2 {
		b.WriteRune('\n')
		rendered++
	}

	if m.showHelp {
		b.WriteString(m.help.View(keys))
	} else {
		b.WriteString(m.renderFooter())
	}

	return truncateLines(b.String(), m.width)
}

func (m uiModel) renderHeader() string {
	logo := logoStyle.Render("Infraestruturas de Portugal")
	title := headerStyle.Render(m.face.String())
	clock := clockStyle.Render(formatClock(m.now))

	left := logo
	if m.station.Name != "" {
		left += "  " + subtitleStyle.Render(m.station.Name)
	} else if m.station.ID != "" {
		left += "  " + subtitleStyle.Render("#"+m.station.ID)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(title) - lipgloss.Width(clock) - 2
	half := gap / 2
	if half < 1 {
		half = 1
	}
	return left + strings.Repeat(" ", half) + title + strings.Repeat(" ", max(1, gap-half)) + clock
}

func (m uiModel) renderBoard() string {
	columns := departureColumns
	rows := m.board.Departures
	if m.face == faceChegadas {
		columns = arrivalColumns
		rows = m.board.Arrivals
	}

	sc := m.scaler.Current()
	var b strings.Builder

	// Column headers.
	var head strings.Builder
	for _, col := range columns {
		head.WriteString(padCell(col.label, scaledWidth(col.width, sc.X)))
		head.WriteRune(' ')
	}
	b.WriteString(columnStyle.Render(strings.TrimRight(head.String(), " ")))
	b.WriteRune('\n')

	visible := schedule.Visible(rows, m.now)
	if len(visible) == 0 {
		b.WriteString(dimStyle.Render("  Sem registos disponíveis"))
		b.WriteRune('\n')
		return b.String()
	}

	// Vertical scale adds breathing room between rows on tall windows.
	rowGap := sc.Y >= 1.5

	for i, row := range visible {
		b.WriteString(m.renderRow(row, columns, sc.X, i == 0))
		b.WriteRune('\n')
		if rowGap && i < len(visible)-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func (m uiModel) renderRow(row schedule.Row, columns []column, sx float64, first bool) string {
	delayed, suppressed := schedule.RowFlags(row)

	style := rowStyle
	switch {
	case suppressed:
		style = suppressedStyle
	case delayed:
		style = delayedStyle
	case first:
		style = firstRowStyle
	}

	// The blink window is a property of the row and now; the on/off phase
	// derives from the injected now so rendering stays deterministic.
	if schedule.ShouldBlink(row, m.now) && m.now.Second()%2 == 0 {
		style = style.Reverse(true)
	}

	place := row.Destination
	if m.face == faceChegadas {
		place = row.Origin
	}

	cells := []string{
		m.renderTimeCell(row),
		dash(place),
		dash(row.Line),
		dash(row.Service),
		remarksCell(row),
	}

	var b strings.Builder
	for i, col := range columns {
		b.WriteString(padCell(cells[i], scaledWidth(col.width, sx)))
		b.WriteRune(' ')
	}
	return style.Render(strings.TrimRight(b.String(), " "))
}

// renderTimeCell shows the nominal time, or "nominal → effective" when
// remarks or a delay move the departure.
func (m uiModel) renderTimeCell(row schedule.Row) string {
	nominal, nominalOK := schedule.ParseClock(row.Time, m.now)
	effective, effectiveOK := schedule.EffectiveTime(row, m.now)

	switch {
	case effectiveOK && nominalOK && !effective.Target.Equal(nominal.Target):
		return nominal.Target.Format("15:04") + " → " + effective.Target.Format("15:04")
	case effectiveOK:
		return effective.Target.Format("15:04")
	default:
		return dash(row.Time)
	}
}

// remarksCell falls back to the status label when the row carries no
// remarks of its own.
func remarksCell(row schedule.Row) string {
	if text := strings.TrimSpace(row.Remarks); text != "" {
		return text
	}
	if label := row.Status.Label(); label != "" {
		return label
	}
	return "—"
}

func (m uiModel) renderSearchModal() string {
	var b strings.Builder

	b.WriteString(modalTitleStyle.Render("Escolhe a estação"))
	if m.station.Name != "" {
		b.WriteString(dimStyle.Render("  (atual: " + m.station.Name + ")"))
	}
	b.WriteRune('\n')
	b.WriteRune('\n')

	b.WriteString(m.searchInput.View())
	b.WriteRune('\n')

	if m.searching {
		b.WriteString(dimStyle.Render("A procurar…"))
		b.WriteRune('\n')
	}
	if m.searchErr != "" {
		b.WriteString(dimStyle.Render(m.searchErr))
		b.WriteRune('\n')
	}

	for i, st := range m.results {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		line := cursor + st.Name
		if st.ID != "" {
			line += dimStyle.Render("  #" + st.ID)
		}
		if i == m.selected {
			b.WriteString(resultStyle.Bold(true).Render(line))
		} else {
			b.WriteString(resultStyle.Render(line))
		}
		b.WriteRune('\n')
	}

	b.WriteRune('\n')
	b.WriteString(dimStyle.Render("enter: escolher | esc: fechar | q só fecha com estação escolhida"))
	b.WriteRune('\n')
	return b.String()
}

func (m uiModel) renderFooter() string {
	message := "Serviço normal"
	updated := ""
	if m.board != nil {
		if m.board.Message != "" {
			message = m.board.Message
		}
		updated = formatLastUpdated(m.board.LastUpdated)
	}

	left := " CP  " + message
	right := ""
	if updated != "" {
		right = "atualizado " + updated + " "
	}
	if m.stale {
		right = "dados antigos | " + right
	}

	gap := max(0, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return tickerStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// --- Helpers ---

func formatClock(t time.Time) string {
	if t.IsZero() {
		return "--:--:--"
	}
	return t.Format("15:04:05")
}

// formatLastUpdated renders the snapshot timestamp as a clock; a value that
// is not RFC 3339 is shown as-is rather than dropped.
func formatLastUpdated(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Local().Format("15:04:05")
}

// dash substitutes the board's em-dash placeholder for empty cells.
func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

// scaledWidth stretches a base column width by the horizontal scale factor,
// never below a readable floor.
func scaledWidth(base int, sx float64) int {
	w := int(float64(base) * sx)
	if w < 4 {
		w = 4
	}
	return w
}

// padCell pads or truncates a cell to the target visible width.
func padCell(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		return ansi.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-w)
}

// truncateLines truncates each line to at most width visible characters,
// preserving ANSI escape codes, so content never wraps on narrow windows.
func truncateLines(content string, width int) string {
	if width <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}
