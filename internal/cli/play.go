package cli

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slicereveal/pkg/pipeline"
	"github.com/matzehuels/slicereveal/pkg/render/sink"
)

// playFPS is the terminal redraw rate.
const playFPS = 20

// playCommand creates the play command for the terminal preview.
func (c *CLI) playCommand() *cobra.Command {
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "play [image|url]",
		Short: "Play the reveal in the terminal",
		Long: `Play the reveal loop in the terminal using half-block characters.

Keys:
  t        toggle dark/light theme
  d        toggle vertical/horizontal cuts
  1-9      set the slice count
  space    pause/resume
  q        quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runPlay(cmd.Context(), args[0], opts)
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) runPlay(ctx context.Context, input string, opts pipeline.Options) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	src, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	player, err := runner.NewPlayer(ctx, src, opts)
	if err != nil {
		return err
	}
	defer player.Close()

	m := newPlayModel(ctx, player)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// playModel - Terminal reveal player
// =============================================================================

type tickMsg time.Time

// playModel is the bubbletea model driving a Player.
type playModel struct {
	ctx    context.Context
	player *pipeline.Player

	cols, rows int
	frame      string
	err        error
}

func newPlayModel(ctx context.Context, player *pipeline.Player) playModel {
	return playModel{ctx: ctx, player: player, cols: 60, rows: 30}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/playFPS, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m playModel) Init() tea.Cmd {
	return tick()
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	case tea.WindowSizeMsg:
		m.cols, m.rows = fitCells(m.player.Bounds().Dx(), m.player.Bounds().Dy(), msg.Width, msg.Height-2)
	case tickMsg:
		m.frame = sink.Halfblocks(m.player.Frame(), m.cols, m.rows)
		return m, tick()
	}
	return m, nil
}

func (m playModel) handleKey(key string) (tea.Model, tea.Cmd) {
	m.err = nil
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "t":
		m.err = m.player.ToggleTheme(m.ctx)
	case "d":
		m.player.ToggleDirection()
	case " ", "space":
		m.player.TogglePause()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.err = m.player.SetSlices(int(key[0] - '0'))
	}
	return m, nil
}

func (m playModel) View() string {
	var b strings.Builder
	b.WriteString(m.frame)

	b.WriteString(statusLine(m.player.State()))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
	} else {
		b.WriteString(StyleDim.Render("t theme  d direction  1-9 slices  space pause  q quit"))
	}
	return b.String()
}

// fitCells returns the largest cols×rows cell area inside maxCols×maxRows
// that keeps a w×h image's aspect ratio. Each cell holds two pixel rows.
func fitCells(w, h, maxCols, maxRows int) (cols, rows int) {
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	maxCols, maxRows = max(maxCols, 1), max(maxRows, 1)
	cols = maxCols
	rows = cols * h / w / 2
	if rows > maxRows {
		rows = maxRows
		cols = rows * 2 * w / h
	}
	return max(cols, 1), max(rows, 1)
}
