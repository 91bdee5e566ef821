package client

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"text/template"

	"tetrimino/tetris"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"

	resetPos = "\033[H" // Reset cursor position to 0,0
	dim      = "\033[2m"
	reset    = "\033[0m"
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[tetris.Color]string{
	tetris.Cyan:   Cyan,
	tetris.Blue:   Blue,
	tetris.Orange: Orange,
	tetris.Yellow: Yellow,
	tetris.Green:  Green,
	tetris.Pink:   Magenta,
	tetris.Red:    Red,
}

var menuLabels = [...]string{
	tetris.MenuNewGame:  "(n)ew",
	tetris.MenuLoadGame: "(l)oad",
	tetris.MenuPause:    "(p)ause",
	tetris.MenuUndo:     "(u)ndo",
	tetris.MenuSaveGame: "(s)ave",
}

type templateData struct {
	Board *tetris.Board
	Menu  tetris.Menu
}

type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	mu       sync.Mutex
	*templateData
}

func newRender(l *slog.Logger) (*render, error) {
	tmp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return &render{
		writer:       os.Stdout,
		logger:       l,
		template:     tmp,
		templateData: &templateData{},
	}, nil
}

func (r *render) board(b *tetris.Board) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templateData.Board = b
	r.draw()
}

func (r *render) menu(m *tetris.Menu) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templateData.Menu = *m
	r.draw()
}

func (r *render) draw() {
	fmt.Fprint(r.writer, resetPos)
	if err := r.template.Execute(r.writer, r.templateData); err != nil {
		r.logger.Error("unable to execute template", slog.String("error", err.Error()))
	}
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"stack": stack,
		"menu":  menuLine,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	l = strings.ReplaceAll(l, "Terminal Tetris", "\033[1mTerminal Tetris\033[0m")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

// stack renders every tile of the board as two characters.
func stack(td *templateData) [tetris.Rows][tetris.Cols]string {
	rendered := [tetris.Rows][tetris.Cols]string{}
	for y := range rendered {
		for x := range rendered[y] {
			rendered[y][x] = "  "
			if td == nil || td.Board == nil {
				continue
			}
			if c, ok := colorMap[td.Board[y][x].Color()]; ok {
				rendered[y][x] = fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", c)
			}
		}
	}
	return rendered
}

// menuLine renders the menu with the unavailable items dimmed.
func menuLine(td *templateData) string {
	items := make([]string, len(menuLabels))
	for i, label := range menuLabels {
		if td != nil && td.Menu[i] {
			items[i] = label
			continue
		}
		items[i] = dim + label + reset
	}
	return strings.Join(items, " ")
}
