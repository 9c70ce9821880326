package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"thememgr/internal/apply"
	"thememgr/internal/backup"
	"thememgr/internal/config"
	"thememgr/internal/diff"
	"thememgr/internal/journal"
	"thememgr/internal/manifest"
	"thememgr/internal/models"
	"thememgr/internal/preview"
	"thememgr/internal/scanner"
	"thememgr/internal/storage"
	"thememgr/internal/ui"
	"thememgr/internal/ui/components"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Version info (set by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
	debugMode = false // Enable with --debug flag
)

// pngScale is the pixel scale used when saving a preview from the TUI
const pngScale = 4

// debugLog logs a message if debug mode is enabled
func debugLog(format string, args ...interface{}) {
	if debugMode {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// enableDebug turns on debug logging across all engine packages
func enableDebug() {
	debugMode = true
	storage.DebugMode = true
	scanner.DebugMode = true
	backup.DebugMode = true
	apply.DebugMode = true
	preview.DebugMode = true
	journal.DebugMode = true
	fmt.Fprintln(os.Stderr, "[DEBUG] Debug mode enabled")
}

// engine bundles the storage-backed services the TUI and CLI run on
type engine struct {
	cfg      *config.Config
	store    *storage.Store
	scan     *scanner.Scanner
	backups  *backup.Manager
	applier  *apply.Applier
	previews *preview.Loader
	log      *journal.Journal
}

func newEngine(cfg *config.Config) *engine {
	store := storage.New(cfg.StorageRoot)
	backups := backup.New(store)

	j, err := journal.Open(config.JournalPath())
	if err != nil {
		debugLog("journal unavailable: %v", err)
		j = nil
	}

	return &engine{
		cfg:      cfg,
		store:    store,
		scan:     scanner.New(store, cfg.MaxThemes),
		backups:  backups,
		applier:  apply.New(store, backups),
		previews: preview.New(store),
		log:      j,
	}
}

// record writes one journal entry. Journal trouble never blocks an
// operation, it only shows up in debug output.
func (e *engine) record(op string, t *models.Theme, ok bool, detail string) {
	name, kind := "", ""
	if t != nil {
		name = t.Name
		kind = t.Kind.String()
	}
	if err := e.log.Record(op, name, kind, ok, detail); err != nil {
		debugLog("journal write: %v", err)
	}
}

// manifestText returns the manifest content the info screen shows:
// the file on disk, or the synthesized text a Single theme would get.
func (e *engine) manifestText(t *models.Theme) string {
	if t.Kind == models.KindSingle {
		return manifest.Synthesize(t.Name)
	}
	data, err := os.ReadFile(e.store.ManifestPath(t))
	if err != nil {
		debugLog("read manifest for %s: %v", t.Name, err)
		return ""
	}
	return string(data)
}

// Screen represents different screens in the app
type Screen int

const (
	ScreenBrowse Screen = iota
	ScreenInfo
	ScreenConfirmApply
	ScreenConfirmDelete
	ScreenBusy
	ScreenReboot
	ScreenHelp
)

// Messages
type scanDoneMsg struct {
	catalog *scanner.Catalog
	err     error
}

type infoDoneMsg struct {
	theme    *models.Theme
	info     models.ThemeInfo
	frame    string
	manifest string
	diff     string
}

type applyDoneMsg struct {
	theme *models.Theme
	err   error
}

type restoreDoneMsg struct {
	err error
}

type deleteDoneMsg struct {
	theme *models.Theme
	err   error
}

type restartDoneMsg struct {
	err error
}

type popupExpiredMsg struct {
	seq int
}

// Model is the main application model
type Model struct {
	eng *engine

	// UI Components
	themeList *components.ThemeList
	infoPanel *components.InfoPanel
	dialog    *components.ConfirmDialog
	popup     *components.Popup
	spinner   spinner.Model
	help      help.Model
	helpVP    viewport.Model
	keys      ui.KeyMap

	// State
	catalog    *scanner.Catalog
	current    *models.Theme // theme an open dialog or the info screen refers to
	screen     Screen
	lastScreen Screen // where esc and closed dialogs return to
	status     string
	busyText   string
	popupSeq   int
	width      int
	height     int
}

func New(eng *engine) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.CursorStyle

	m := &Model{
		eng:       eng,
		themeList: components.NewThemeList(),
		infoPanel: components.NewInfoPanel(),
		dialog:    components.NewConfirmDialog(),
		popup:     components.NewPopup(),
		spinner:   s,
		help:      help.New(),
		keys:      ui.DefaultKeyMap(),
		screen:    ScreenBusy,
		busyText:  "Scanning SD card...",
		status:    "Ready",
		width:     80,
		height:    24,
	}

	if eng.cfg.FirstRun {
		m.status = "No config file found, using defaults"
	}
	if entries, err := eng.log.Recent(1); err == nil && len(entries) > 0 {
		last := entries[0]
		outcome := "ok"
		if !last.OK {
			outcome = "failed"
		}
		m.status = fmt.Sprintf("Last: %s %s %s", last.Op, last.Theme, outcome)
	}

	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.scanThemes)
}

// scanThemes walks animation_packs and rebuilds the catalog
func (m *Model) scanThemes() tea.Msg {
	catalog, err := m.eng.scan.Scan()
	return scanDoneMsg{catalog: catalog, err: err}
}

// loadInfo gathers everything the info screen shows for one theme
func (m *Model) loadInfo(t *models.Theme) tea.Cmd {
	return func() tea.Msg {
		msg := infoDoneMsg{theme: t, info: m.eng.scan.Describe(t)}
		if frame, ok := m.eng.previews.Load(t); ok {
			msg.frame = frame.Render()
		}
		msg.manifest = m.eng.manifestText(t)
		if res := diff.ForApply(m.eng.store, t); res != nil {
			msg.diff = res.Summary()
		}
		return msg
	}
}

func (m *Model) applyTheme(t *models.Theme) tea.Cmd {
	return func() tea.Msg {
		err := m.eng.applier.Apply(t)
		detail := t.Kind.AppliedResult()
		if err != nil {
			detail = err.Error()
		}
		m.eng.record(journal.OpApply, t, err == nil, detail)
		return applyDoneMsg{theme: t, err: err}
	}
}

func (m *Model) restoreBackup() tea.Msg {
	err := m.eng.backups.Restore()
	detail := "previous theme restored"
	if err != nil {
		detail = err.Error()
	}
	m.eng.record(journal.OpRestore, nil, err == nil, detail)
	return restoreDoneMsg{err: err}
}

func (m *Model) deleteTheme(t *models.Theme) tea.Cmd {
	return func() tea.Msg {
		err := m.eng.store.RemoveTheme(t.Name)
		detail := "theme removed"
		if err != nil {
			detail = err.Error()
		}
		m.eng.record(journal.OpDelete, t, err == nil, detail)
		return deleteDoneMsg{theme: t, err: err}
	}
}

// runRestart executes the configured restart command through the shell
func (m *Model) runRestart() tea.Msg {
	out, err := exec.Command("sh", "-c", m.eng.cfg.RestartCommand).CombinedOutput()
	if err != nil {
		debugLog("restart command failed: %v: %s", err, out)
	}
	return restartDoneMsg{err: err}
}

// showPopup arms the popup and schedules its expiry tick
func (m *Model) showPopup(level, header, body string) tea.Cmd {
	switch level {
	case "success":
		m.popup.ShowSuccess(header, body)
	case "error":
		m.popup.ShowError(header, body)
	default:
		m.popup.ShowInfo(header, body)
	}

	m.popupSeq++
	seq := m.popupSeq
	return tea.Tick(m.popup.Duration(), func(time.Time) tea.Msg {
		return popupExpiredMsg{seq: seq}
	})
}

func (m *Model) enterBusy(text string) {
	m.screen = ScreenBusy
	m.busyText = text
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		// Forward mouse wheel to the manifest viewport on the info screen
		if m.screen == ScreenInfo {
			var cmd tea.Cmd
			m.infoPanel, cmd = m.infoPanel.Update(msg)
			return m, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case scanDoneMsg:
		m.screen = ScreenBrowse
		if msg.err != nil {
			m.status = fmt.Sprintf("Scan error: %v", msg.err)
			return m, m.showPopup("error", "Scan failed!", "Check SD card.")
		}
		m.catalog = msg.catalog
		m.themeList.SetCatalog(msg.catalog.Themes, msg.catalog.HasBackup, msg.catalog.RootMissing)
		m.status = fmt.Sprintf("%d themes found", len(msg.catalog.Themes))

	case infoDoneMsg:
		// A rescan may have replaced the catalog while this loaded
		if m.screen != ScreenBrowse && m.screen != ScreenInfo {
			return m, nil
		}
		m.current = msg.theme
		m.infoPanel.SetTheme(msg.theme, msg.info, msg.frame, msg.manifest, msg.diff)
		m.screen = ScreenInfo

	case applyDoneMsg:
		if msg.err != nil {
			m.screen = ScreenBrowse
			m.status = fmt.Sprintf("Apply error: %v", msg.err)
			return m, m.showPopup("error", "Apply failed!", "Check SD card.")
		}
		m.status = msg.theme.Kind.AppliedResult()
		m.dialog.ShowApplied(msg.theme)
		m.screen = ScreenReboot

	case restoreDoneMsg:
		if errors.Is(msg.err, backup.ErrNoBackup) {
			m.screen = ScreenBrowse
			return m, m.showPopup("error", "No backup found!", "")
		}
		if msg.err != nil {
			m.screen = ScreenBrowse
			m.status = fmt.Sprintf("Restore error: %v", msg.err)
			return m, m.showPopup("error", "Restore failed!", "Check SD card.")
		}
		m.status = "Previous theme restored"
		m.dialog.ShowRestored()
		m.screen = ScreenReboot

	case deleteDoneMsg:
		if msg.err != nil {
			m.screen = ScreenBrowse
			m.status = fmt.Sprintf("Delete error: %v", msg.err)
			return m, m.showPopup("error", "Delete failed!", "Check SD card.")
		}
		m.status = fmt.Sprintf("Deleted %s", msg.theme.Name)
		m.enterBusy("Rescanning...")
		return m, tea.Batch(
			m.showPopup("success", "Deleted!", "Theme removed from SD"),
			m.scanThemes,
		)

	case restartDoneMsg:
		m.enterBusy("Scanning SD card...")
		if msg.err != nil {
			m.status = fmt.Sprintf("Restart error: %v", msg.err)
			return m, tea.Batch(
				m.showPopup("error", "Restart failed!", "Run the restart command manually."),
				m.scanThemes,
			)
		}
		m.status = "Restart command sent"
		return m, m.scanThemes

	case popupExpiredMsg:
		// Stale ticks from an already replaced popup are ignored
		if msg.seq == m.popupSeq {
			m.popup.Hide()
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses an open popup
	if m.popup.Visible {
		m.popup.Hide()
		return m, nil
	}

	switch m.screen {
	case ScreenBusy:
		// Mutating operations run to completion, keys wait their turn
		return m, nil
	case ScreenConfirmApply, ScreenConfirmDelete, ScreenReboot:
		return m.handleDialogKeys(msg)
	case ScreenHelp:
		return m.handleHelpKeys(msg)
	case ScreenInfo:
		return m.handleInfoKeys(msg)
	}

	return m.handleBrowseKeys(msg)
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.openHelp(ScreenBrowse)

	case key.Matches(msg, m.keys.Up):
		m.themeList.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.themeList.MoveDown()
	case key.Matches(msg, m.keys.PageUp):
		m.themeList.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.themeList.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.themeList.GoToFirst()
	case key.Matches(msg, m.keys.End):
		m.themeList.GoToLast()

	case key.Matches(msg, m.keys.Enter):
		if m.themeList.OnRestoreRow() {
			m.enterBusy("Restoring backup...")
			return m, m.restoreBackup
		}
		if t := m.themeList.Current(); t != nil {
			return m, m.loadInfo(t)
		}

	case key.Matches(msg, m.keys.Apply):
		if t := m.themeList.Current(); t != nil {
			m.armApply(t, ScreenBrowse)
		}

	case key.Matches(msg, m.keys.Delete):
		if t := m.themeList.Current(); t != nil {
			m.armDelete(t, ScreenBrowse)
		}

	case key.Matches(msg, m.keys.Restore):
		m.enterBusy("Restoring backup...")
		return m, m.restoreBackup

	case key.Matches(msg, m.keys.Rescan):
		m.enterBusy("Scanning SD card...")
		return m, m.scanThemes

	case key.Matches(msg, m.keys.CopyPath):
		m.copyThemePath(m.themeList.Current())

	case key.Matches(msg, m.keys.SavePNG):
		m.savePreviewPNG(m.themeList.Current())
	}

	return m, nil
}

func (m *Model) handleInfoKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.screen = ScreenBrowse

	case key.Matches(msg, m.keys.Help):
		m.openHelp(ScreenInfo)

	case key.Matches(msg, m.keys.Up):
		m.infoPanel.ScrollUp()
	case key.Matches(msg, m.keys.Down):
		m.infoPanel.ScrollDown()
	case key.Matches(msg, m.keys.Home):
		m.infoPanel.GoToTop()
	case key.Matches(msg, m.keys.End):
		m.infoPanel.GoToBottom()

	case key.Matches(msg, m.keys.Apply):
		if m.current != nil {
			m.armApply(m.current, ScreenInfo)
		}

	case key.Matches(msg, m.keys.Delete):
		if m.current != nil {
			m.armDelete(m.current, ScreenInfo)
		}

	case key.Matches(msg, m.keys.Restore):
		m.enterBusy("Restoring backup...")
		return m, m.restoreBackup

	case key.Matches(msg, m.keys.Rescan):
		m.enterBusy("Scanning SD card...")
		return m, m.scanThemes

	case key.Matches(msg, m.keys.CopyPath):
		m.copyThemePath(m.current)

	case key.Matches(msg, m.keys.SavePNG):
		m.savePreviewPNG(m.current)
	}

	return m, nil
}

func (m *Model) handleDialogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Left):
		m.dialog.FocusCancel()
	case key.Matches(msg, m.keys.Right):
		m.dialog.FocusConfirm()
	case key.Matches(msg, m.keys.Tab):
		m.dialog.SwitchButton()

	case key.Matches(msg, m.keys.Escape):
		return m.dismissDialog()

	case key.Matches(msg, m.keys.Enter):
		if !m.dialog.Confirmed() {
			return m.dismissDialog()
		}
		return m.confirmDialog()
	}

	return m, nil
}

// dismissDialog closes the open dialog without running its action
func (m *Model) dismissDialog() (tea.Model, tea.Cmd) {
	m.dialog.Hide()
	if m.screen == ScreenReboot {
		// Declining a reboot still refreshes the catalog
		m.enterBusy("Scanning SD card...")
		return m, m.scanThemes
	}
	m.screen = m.lastScreen
	return m, nil
}

// confirmDialog runs the armed dialog's action
func (m *Model) confirmDialog() (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenConfirmApply:
		m.dialog.Hide()
		m.enterBusy("Applying theme...")
		return m, m.applyTheme(m.current)

	case ScreenConfirmDelete:
		m.dialog.Hide()
		m.enterBusy("Deleting theme...")
		return m, m.deleteTheme(m.current)

	case ScreenReboot:
		m.dialog.Hide()
		if m.eng.cfg.RestartCommand == "" {
			m.enterBusy("Scanning SD card...")
			return m, tea.Batch(
				m.showPopup("info", "Restart the device manually.", ""),
				m.scanThemes,
			)
		}
		m.enterBusy("Restarting device...")
		return m, m.runRestart
	}

	return m, nil
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape, m.keys.Help, m.keys.Quit) {
		m.screen = m.lastScreen
		return m, nil
	}

	// Forward to viewport for scrolling
	var cmd tea.Cmd
	m.helpVP, cmd = m.helpVP.Update(msg)
	return m, cmd
}

func (m *Model) armApply(t *models.Theme, from Screen) {
	m.current = t
	m.lastScreen = from
	m.dialog.ShowApply(t, diff.ForApply(m.eng.store, t))
	m.screen = ScreenConfirmApply
}

func (m *Model) armDelete(t *models.Theme, from Screen) {
	m.current = t
	m.lastScreen = from
	m.dialog.ShowDelete(t)
	m.screen = ScreenConfirmDelete
}

func (m *Model) openHelp(from Screen) {
	m.lastScreen = from
	m.helpVP = viewport.New(m.width-4, m.height-6)
	m.helpVP.SetContent(renderHelpMarkdown(m.width - 8))
	m.screen = ScreenHelp
}

func (m *Model) copyThemePath(t *models.Theme) {
	if t == nil {
		return
	}
	path := m.eng.store.ThemePath(t.Name)
	if err := clipboard.WriteAll(path); err != nil {
		m.status = fmt.Sprintf("Clipboard error: %v", err)
		return
	}
	m.status = fmt.Sprintf("Copied '%s' to clipboard", path)
}

func (m *Model) savePreviewPNG(t *models.Theme) {
	if t == nil {
		return
	}
	frame, ok := m.eng.previews.Load(t)
	if !ok {
		m.status = "No preview frame to save"
		return
	}

	name := t.Name + ".png"
	f, err := os.Create(name)
	if err != nil {
		m.status = fmt.Sprintf("PNG error: %v", err)
		return
	}
	defer f.Close()

	if err := frame.WritePNG(f, pngScale); err != nil {
		m.status = fmt.Sprintf("PNG error: %v", err)
		return
	}
	m.status = "Saved " + name
}

func (m *Model) updateSizes() {
	listWidth := m.width / 3
	if listWidth < 30 {
		listWidth = 30
	}
	m.themeList.Width = listWidth
	m.themeList.Height = m.height - 6
	m.infoPanel.SetSize(m.width-4, m.height-6)
	m.help.Width = m.width

	if m.screen == ScreenHelp {
		m.helpVP.Width = m.width - 4
		m.helpVP.Height = m.height - 6
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.screen {
	case ScreenBusy:
		b.WriteString(m.renderBusy())
	case ScreenInfo:
		b.WriteString(m.infoPanel.View())
	case ScreenConfirmApply, ScreenConfirmDelete, ScreenReboot:
		b.WriteString(m.renderDialog())
	case ScreenHelp:
		b.WriteString(m.helpVP.View())
	default:
		b.WriteString(m.themeList.View())
	}

	if m.popup.Visible {
		b.WriteString("\n")
		b.WriteString(m.popup.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return ui.AppStyle.Render(b.String())
}

func (m *Model) renderHeader() string {
	title := ui.TitleStyle.Render("🐬 Theme Manager")
	ver := ui.VersionStyle.Render("v" + version)
	root := ui.MutedStyle.Render("  " + m.eng.store.Root())
	return ui.HeaderStyle.Render(title + "  " + ver + root)
}

func (m *Model) renderBusy() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.Primary).
		Padding(1, 3).
		Render(m.spinner.View() + " " + m.busyText)

	return lipgloss.Place(
		max(0, m.width-2), max(1, m.height-6),
		lipgloss.Center, lipgloss.Center,
		box,
	)
}

func (m *Model) renderDialog() string {
	return lipgloss.Place(
		max(0, m.width-2), max(1, m.height-6),
		lipgloss.Center, lipgloss.Center,
		m.dialog.View(),
	)
}

func (m *Model) renderStatusBar() string {
	styledStatus := ui.StatusTextStyle.Render(m.status)
	if strings.Contains(m.status, "error") || strings.Contains(m.status, "failed") {
		styledStatus = ui.RenderNotification("error", m.status)
	}

	var stats []string
	if m.catalog != nil {
		stats = append(stats, fmt.Sprintf("Themes: %d", len(m.catalog.Themes)))
		if m.catalog.HasBackup {
			stats = append(stats, "backup present")
		}
	}
	if len(stats) == 0 {
		return ui.StatusBarStyle.Render(styledStatus)
	}

	return ui.StatusBarStyle.Render(styledStatus + "  •  " + strings.Join(stats, "  •  "))
}

func (m *Model) renderHelpBar() string {
	switch m.screen {
	case ScreenBusy:
		return ui.HelpBarStyle.Render("⏳ " + m.busyText)

	case ScreenConfirmApply, ScreenConfirmDelete, ScreenReboot:
		items := []string{
			ui.RenderHelpItem("←/→/tab", "switch"),
			ui.RenderHelpItem("enter", "choose"),
			ui.RenderHelpItem("esc", "cancel"),
		}
		return ui.HelpBarStyle.Render(strings.Join(items, "  "))

	case ScreenHelp:
		items := []string{
			ui.RenderHelpItem("↑↓/j/k", "scroll"),
			ui.RenderHelpItem("esc/?", "close"),
		}
		return ui.HelpBarStyle.Render(strings.Join(items, "  "))
	}

	return ui.HelpBarStyle.Render(m.help.View(m.keys))
}

const helpText = `# Theme Manager

Browse, preview, apply and roll back dolphin animation theme packs on a
Flipper Zero SD card volume.

## Theme layouts

| Kind | Marker | Layout |
|------|--------|--------|
| Pack | [P] | manifest.txt at the theme root |
| Anim Pack | [A] | Anims/manifest.txt |
| Single | [S] | one animation, manifest written on apply |

## Keys

| Key | Action |
|-----|--------|
| arrows, j/k | move |
| enter | open theme details, or restore from the final menu row |
| a | apply the highlighted theme (the active set is backed up first) |
| d | delete the highlighted theme from the SD card |
| R | restore the previous active set |
| r, s | rescan the volume |
| y | copy the theme path to the clipboard |
| p | save the preview frame as a PNG |
| ? | this screen |
| q | quit |

Applying merges the theme into dolphin/ after moving the current
dolphin/ to dolphin_backup/. Restoring moves the backup back in place
of the active set.
`

func renderHelpMarkdown(width int) string {
	if width < 40 {
		width = 40
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpText
	}

	out, err := renderer.Render(helpText)
	if err != nil {
		return helpText
	}
	return out
}

// CLI

var (
	flagRoot  string
	flagDebug bool
	flagYes   bool
	flagSize  bool
	flagLimit int
	flagOut   string
	flagScale int
)

var rootCmd = &cobra.Command{
	Use:   "thememgr",
	Short: "thememgr – Flipper Zero animation theme manager",
	Long:  "Thememgr browses, previews, applies and restores dolphin animation theme packs on a Flipper Zero SD card volume.",
	RunE:  runTUI,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the themes on the volume",
	RunE:  runList,
}

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show details for one theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var applyCmd = &cobra.Command{
	Use:   "apply <name>",
	Short: "Back up the active set and merge a theme into it",
	Args:  cobra.ExactArgs(1),
	RunE:  runApply,
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the previously backed up active set",
	RunE:  runRestore,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a theme from the volume",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var previewCmd = &cobra.Command{
	Use:   "preview <name>",
	Short: "Render a theme's first frame",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent apply/restore/delete operations",
	RunE:  runHistory,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a default configuration file",
	RunE:  runConfigGenerate,
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "Storage root holding animation_packs/ (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging to stderr")

	listCmd.Flags().BoolVar(&flagSize, "size", false, "Include theme sizes")
	applyCmd.Flags().BoolVar(&flagYes, "yes", false, "Skip the confirmation prompt")
	restoreCmd.Flags().BoolVar(&flagYes, "yes", false, "Skip the confirmation prompt")
	deleteCmd.Flags().BoolVar(&flagYes, "yes", false, "Skip the confirmation prompt")
	previewCmd.Flags().StringVar(&flagOut, "out", "", "Write a PNG to this path instead of printing")
	previewCmd.Flags().IntVar(&flagScale, "scale", 4, "Pixel scale for PNG output")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum entries to print")

	configCmd.AddCommand(configGenerateCmd)
	rootCmd.AddCommand(listCmd, infoCmd, applyCmd, restoreCmd, deleteCmd, previewCmd, historyCmd, configCmd)
}

// loadCLIConfig loads config and folds in the global flags
func loadCLIConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
		cfg = config.Default()
	}
	if cmd.Flags().Changed("root") {
		cfg.StorageRoot = flagRoot
	}
	if flagDebug || cfg.Debug {
		enableDebug()
	}
	return cfg
}

// findTheme scans the volume and resolves a theme by name
func findTheme(eng *engine, name string) (*models.Theme, error) {
	catalog, err := eng.scan.Scan()
	if err != nil {
		return nil, err
	}
	t := catalog.Find(name)
	if t == nil {
		return nil, fmt.Errorf("theme %q not found", name)
	}
	return t, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	eng := newEngine(loadCLIConfig(cmd))
	defer eng.log.Close()

	p := tea.NewProgram(New(eng), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func runList(cmd *cobra.Command, args []string) error {
	eng := newEngine(loadCLIConfig(cmd))
	defer eng.log.Close()

	catalog, err := eng.scan.Scan()
	if err != nil {
		return err
	}

	if len(catalog.Themes) == 0 {
		if catalog.RootMissing {
			fmt.Println(models.EmptyRootLabel)
		} else {
			fmt.Println(models.EmptyCatalogLabel)
		}
		return nil
	}

	for _, t := range catalog.Themes {
		if flagSize {
			info := eng.scan.Describe(t)
			fmt.Printf("%-26s  %s\n", t.MenuLabel(), models.FormatSize(info.SizeBytes))
			continue
		}
		fmt.Println(t.MenuLabel())
	}
	if catalog.HasBackup {
		fmt.Println(models.RestoreEntryLabel)
	}
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	eng := newEngine(loadCLIConfig(cmd))
	defer eng.log.Close()

	t, err := findTheme(eng, args[0])
	if err != nil {
		return err
	}

	info := eng.scan.Describe(t)
	typeLine, sizeLine := t.InfoLines(info)
	fmt.Println(t.Name)
	fmt.Println(typeLine)
	fmt.Println(sizeLine)

	names := themeAnimNames(eng, t)
	if len(names) > 0 {
		fmt.Println("Anims:")
		for _, n := range names {
			fmt.Println("  " + n)
		}
	}
	return nil
}

// themeAnimNames lists the animation names a theme carries
func themeAnimNames(eng *engine, t *models.Theme) []string {
	if t.Kind == models.KindSingle {
		return []string{t.Name}
	}
	return manifest.Names(eng.store.ManifestPath(t))
}

func runApply(cmd *cobra.Command, args []string) error {
	eng := newEngine(loadCLIConfig(cmd))
	defer eng.log.Close()

	t, err := findTheme(eng, args[0])
	if err != nil {
		return err
	}

	if !flagYes && !confirm(fmt.Sprintf("Apply '%s'? Backup will be created.", t.Name)) {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := eng.applier.Apply(t); err != nil {
		eng.record(journal.OpApply, t, false, err.Error())
		return fmt.Errorf("apply %s: %w", t.Name, err)
	}
	eng.record(journal.OpApply, t, true, t.Kind.AppliedResult())

	fmt.Println(t.Kind.AppliedResult() + ".")
	fmt.Println("Restart the device to load the new theme.")
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	eng := newEngine(loadCLIConfig(cmd))
	defer eng.log.Close()

	if !flagYes && !confirm("Restore the previous theme?") {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := eng.backups.Restore(); err != nil {
		eng.record(journal.OpRestore, nil, false, err.Error())
		return err
	}
	eng.record(journal.OpRestore, nil, true, "previous theme restored")

	fmt.Println("Previous theme restored.")
	fmt.Println("Restart the device to load it.")
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	eng := newEngine(loadCLIConfig(cmd))
	defer eng.log.Close()

	t, err := findTheme(eng, args[0])
	if err != nil {
		return err
	}

	if !flagYes && !confirm(fmt.Sprintf("Delete '%s'? This cannot be undone!", t.Name)) {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := eng.store.RemoveTheme(t.Name); err != nil {
		eng.record(journal.OpDelete, t, false, err.Error())
		return fmt.Errorf("delete %s: %w", t.Name, err)
	}
	eng.record(journal.OpDelete, t, true, "theme removed")

	fmt.Println("Theme removed from SD.")
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	eng := newEngine(loadCLIConfig(cmd))
	defer eng.log.Close()

	t, err := findTheme(eng, args[0])
	if err != nil {
		return err
	}

	frame, ok := eng.previews.Load(t)
	if !ok {
		return fmt.Errorf("no preview frame for %q", t.Name)
	}

	if flagOut != "" {
		f, err := os.Create(flagOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := frame.WritePNG(f, flagScale); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%dx%d at %dx)\n", flagOut, frame.Width, frame.Height, flagScale)
		return nil
	}

	fmt.Println(frame.Render())
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	eng := newEngine(loadCLIConfig(cmd))
	defer eng.log.Close()

	if eng.log == nil {
		return fmt.Errorf("operation journal unavailable")
	}

	entries, err := eng.log.Recent(flagLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No operations recorded.")
		return nil
	}

	for _, e := range entries {
		outcome := "ok"
		if !e.OK {
			outcome = "FAILED"
		}
		fmt.Printf("%s  %-7s  %-24s  %-6s  %s\n",
			e.At.Local().Format("2006-01-02 15:04"), e.Op, e.Theme, outcome, e.Detail)
	}
	return nil
}

func runConfigGenerate(cmd *cobra.Command, args []string) error {
	path := config.ConfigPath()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(config.ConfigDir(), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(config.Template), 0644); err != nil {
		return err
	}

	fmt.Printf("Generated default config file: %s\n", path)
	return nil
}

// confirm asks a yes/no question on stdin, defaulting to no
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
