package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/linesaver/internal/config"
	"github.com/san-kum/linesaver/internal/display"
	"github.com/san-kum/linesaver/internal/engine"
)

const (
	panelWidth      = 40
	historyCapacity = 600
	defaultCols     = 80
	defaultRows     = 25
)

type TickMsg time.Time

// Options tunes the terminal host.
type Options struct {
	Name    string // shown in the panel header
	GIFPath string // where 'g' saves a recording
	Theme   string
}

// Model hosts an engine inside a bubbletea program. It plays the part of
// the screensaver host: every tick asks the effect for one frame.
type Model struct {
	eng      *engine.Engine
	surface  *Surface
	recorder *display.GIFRecorder
	opts     Options
	fps      int

	cols, rows int
	theme      Theme
	styles     styles

	running    bool
	recording  bool
	showHelp   bool
	litHistory []float64
	message    string
	err        error
}

// NewModel builds the engine for cfg on a terminal surface.
func NewModel(cfg *config.Config, opts Options) (Model, error) {
	surface := NewSurface()
	eng, err := engine.New(cfg, surface, nil)
	if err != nil {
		return Model{}, err
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "lines.gif"
	}
	if opts.Name == "" {
		opts.Name = "lines"
	}
	theme := GetTheme(opts.Theme)

	return Model{
		eng:        eng,
		surface:    surface,
		recorder:   display.NewGIFRecorder(1, display.DelayForFPS(cfg.FPS), 0),
		opts:       opts,
		fps:        cfg.FPS,
		cols:       defaultCols,
		rows:       defaultRows,
		theme:      theme,
		styles:     newStyles(theme),
		running:    true,
		litHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Engine() *engine.Engine { return m.eng }
func (m Model) Err() error             { return m.err }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-panelWidth-4, 1)
		m.rows = max(msg.Height-1, 1)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.stop()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.eng.Restart(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.litHistory = m.litHistory[:0]
			m.message = "restarted"
		case "g":
			m.toggleRecording()
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			if err := m.step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// step is one blank callback: the first call activates the effect.
func (m *Model) step() error {
	if err := m.eng.Blank(true); err != nil {
		return err
	}
	m.litHistory = append(m.litHistory, float64(m.eng.Canvas().Lit()))
	if len(m.litHistory) > historyCapacity {
		m.litHistory = m.litHistory[1:]
	}
	if m.recording {
		m.recorder.PublishFrame(m.eng.Canvas().Bytes())
	}
	return nil
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recorder.Reset()
		m.recorder.ConfigureDisplay(m.eng.Mode())
		m.recorder.UploadPalette(m.eng.Palette())
		m.recording = true
		m.message = "recording"
		return
	}
	m.recording = false
	m.message = m.saveGIF()
}

func (m *Model) saveGIF() string {
	err := m.recorder.Save(m.opts.GIFPath)
	n := m.recorder.Len()
	m.recorder.Reset()
	if errors.Is(err, display.ErrNoFrames) {
		return "nothing recorded"
	}
	if err != nil {
		engine.Logger().Warn("gif not saved", "path", m.opts.GIFPath, "err", err)
		return "gif failed: " + err.Error()
	}
	engine.Logger().Info("gif saved", "path", m.opts.GIFPath, "frames", n)
	return fmt.Sprintf("saved %d frames to %s", n, m.opts.GIFPath)
}

// stop ends the session the way a host ending the blank would.
func (m *Model) stop() {
	if m.recording {
		m.recording = false
		m.message = m.saveGIF()
	}
	m.eng.Blank(false)
}

func (m Model) View() string {
	frame := lipgloss.NewStyle().Padding(0, 1).Render(m.surface.Render(m.cols, m.rows))
	main := lipgloss.JoinHorizontal(lipgloss.Top, frame, m.panel())
	if m.showHelp {
		return helpText + "\n" + main
	}
	return main
}

func (m Model) panel() string {
	st := m.styles
	stats := m.eng.Stats()

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.opts.Name)) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(st.status.Render(status))
	if m.recording {
		s.WriteString("  " + st.rec.Render(fmt.Sprintf("● REC %d", m.recorder.Len())))
	}
	s.WriteString("\n")

	if len(m.litHistory) > 1 {
		chart := asciigraph.Plot(m.litHistory,
			asciigraph.Height(5),
			asciigraph.Width(panelWidth-12),
			asciigraph.Caption("lit pixels"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	mode := m.eng.Mode()
	cfg := m.eng.Config()
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Mode", mode.String())
	row("Frames", fmt.Sprintf("%d", stats.Frames))
	row("Lines", fmt.Sprintf("%d/%d", stats.Live, cfg.Lines))
	row("Lit", fmt.Sprintf("%d (%.1f%%)", stats.Lit, 100*float64(stats.Lit)/float64(mode.Pixels())))
	row("Head", fmt.Sprintf("%d", stats.Head))
	row("Hue", fmt.Sprintf("%d", stats.NextHue))
	row("Seed", fmt.Sprintf("%d", m.eng.Seed()))
	row("Theme", m.theme.Name)

	if m.message != "" {
		s.WriteString("\n" + st.value.Render(m.message) + "\n")
	}
	s.WriteString(st.help.Render("SP:Pause R:Restart G:Record\nT:Theme ?:Help Q:Quit"))
	return st.panel.Render(s.String())
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Restart the effect       ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the terminal host and blocks until the user quits.
func Run(cfg *config.Config, opts Options) error {
	m, err := NewModel(cfg, opts)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
