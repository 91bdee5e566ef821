package tetris

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultInterval is the time between two frames.
const DefaultInterval = 500 * time.Millisecond

const storeTimeout = 5 * time.Second

type Action string

const (
	StartGame   Action = "new"    // Starts a new game.
	LoadGame    Action = "load"   // Replaces the game with the saved one.
	TogglePause Action = "pause"  // Pauses or resumes the game.
	UndoLanding Action = "undo"   // Goes back to before the last piece landed.
	SaveGame    Action = "save"   // Saves the game.
	MoveLeft    Action = "left"   // Moves the Tetromino one step to the left on the next frame.
	MoveRight   Action = "right"  // Moves the Tetromino one step to the right on the next frame.
	RotateRight Action = "rotate" // Rotates the Tetromino clockwise on the next frame.
)

var actions = map[string]Action{
	string(StartGame):   StartGame,
	string(LoadGame):    LoadGame,
	string(TogglePause): TogglePause,
	string(UndoLanding): UndoLanding,
	string(SaveGame):    SaveGame,
	string(MoveLeft):    MoveLeft,
	string(MoveRight):   MoveRight,
	string(RotateRight): RotateRight,
}

// ParseAction returns the action named s.
func ParseAction(s string) (Action, bool) {
	a, ok := actions[s]
	return a, ok
}

// Menu tells which of the menu actions are currently available.
type Menu [5]bool

const (
	MenuNewGame = iota
	MenuLoadGame
	MenuPause
	MenuUndo
	MenuSaveGame
)

// Update is sent to observers every time the board or the menu change.
// Exactly one of the fields is set.
type Update struct {
	Board *Board
	Menu  *Menu
}

// Store persists a single save.
type Store interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
	Exists(ctx context.Context) (bool, error)
}

// savedAter is implemented by stores that know when the save was written.
type savedAter interface {
	SavedAt(ctx context.Context) (time.Time, error)
}

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

// newWrappedTicker returns a stopped ticker. Reset starts it.
func newWrappedTicker(d time.Duration) *wrappedTicker {
	t := time.NewTicker(d)
	t.Stop()
	return &wrappedTicker{ticker: t}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

type Options struct {
	Store    Store
	Logger   *slog.Logger
	Interval time.Duration
	Ticker   Ticker
	Rand     *rand.Rand
}

// Game runs a Tetris engine on a timer and applies player actions between
// frames. Frames and actions are handled by a single goroutine so an action
// never lands in the middle of a frame.
type Game struct {
	UpdateCh chan Update

	actionCh chan Action
	doneCh   chan struct{}
	stopOnce sync.Once
	tetris   *Tetris
	menu     Menu
	ticker   Ticker
	interval time.Duration
	store    Store
	logger   *slog.Logger
	rand     *rand.Rand
}

func NewGame(o *Options) *Game {
	if o == nil {
		o = &Options{}
	}
	g := &Game{
		UpdateCh: make(chan Update),
		actionCh: make(chan Action),
		doneCh:   make(chan struct{}),
		interval: o.Interval,
		ticker:   o.Ticker,
		store:    o.Store,
		logger:   o.Logger,
		rand:     o.Rand,
	}
	if g.interval <= 0 {
		g.interval = DefaultInterval
	}
	if g.ticker == nil {
		g.ticker = newWrappedTicker(g.interval)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Start sends the initial menu and starts listening for frames and actions.
func (g *Game) Start() {
	go g.listen()
}

func (g *Game) Stop() {
	g.stopOnce.Do(func() {
		g.ticker.Stop()
		close(g.doneCh)
	})
}

// Action queues a for the game. It returns once the game took it or stopped.
func (g *Game) Action(a Action) {
	select {
	case g.actionCh <- a:
	case <-g.doneCh:
	}
}

func (g *Game) Updates() <-chan Update { return g.UpdateCh }

func (g *Game) listen() {
	g.idle()
	for {
		select {
		case <-g.ticker.C():
			g.tick()
		case a := <-g.actionCh:
			g.action(a)
		case <-g.doneCh:
			return
		}
	}
}

func (g *Game) tick() {
	if g.tetris == nil || !g.tetris.Tick() {
		return
	}
	g.publishBoard()
	if g.tetris.IsGameOver() {
		g.gameOver()
	}
}

func (g *Game) action(a Action) {
	switch a {
	case StartGame:
		if !g.allowed(a, MenuNewGame) {
			return
		}
		g.tetris = New(g.rand)
		g.logger.Info("new game started")
		g.play()
	case LoadGame:
		if !g.allowed(a, MenuLoadGame) {
			return
		}
		t, err := g.load()
		if err != nil {
			g.logger.Error("unable to load game", slog.String("error", err.Error()))
			return
		}
		g.tetris = t
		if at, ok := g.savedAt(); ok {
			g.logger.Info("game loaded", slog.Time("saved_at", at))
		} else {
			g.logger.Info("game loaded")
		}
		if t.IsGameOver() {
			g.gameOver()
			return
		}
		g.play()
	case TogglePause:
		if !g.allowed(a, MenuPause) {
			return
		}
		if g.tetris.Paused() {
			g.tetris.Unpause()
			g.publishMenu(Menu{MenuPause: true})
			g.ticker.Reset(g.interval)
			return
		}
		g.ticker.Stop()
		g.tetris.Pause()
		g.publishMenu(g.pausedMenu())
	case UndoLanding:
		if !g.allowed(a, MenuUndo) {
			return
		}
		g.tetris.Undo()
		g.publishBoard()
		g.publishMenu(g.pausedMenu())
	case SaveGame:
		if !g.allowed(a, MenuSaveGame) {
			return
		}
		if err := g.save(); err != nil {
			g.logger.Error("unable to save game", slog.String("error", err.Error()))
			return
		}
		g.logger.Info("game saved")
	case MoveLeft, MoveRight, RotateRight:
		if g.tetris == nil || g.tetris.Paused() || g.tetris.IsGameOver() {
			g.logger.Debug("action ignored", slog.String("action", string(a)))
			return
		}
		switch a {
		case MoveLeft:
			g.tetris.Tetromino.Translate(Left)
		case MoveRight:
			g.tetris.Tetromino.Translate(Right)
		case RotateRight:
			g.tetris.Tetromino.Rotate(Clockwise)
		}
	default:
		g.logger.Warn("unknown action", slog.String("action", string(a)))
	}
}

// allowed reports if the menu item for a is enabled.
func (g *Game) allowed(a Action, item int) bool {
	if !g.menu[item] {
		g.logger.Debug("action ignored", slog.String("action", string(a)))
		return false
	}
	return true
}

func (g *Game) play() {
	g.publishBoard()
	g.publishMenu(Menu{MenuPause: true})
	g.ticker.Reset(g.interval)
}

func (g *Game) gameOver() {
	g.ticker.Stop()
	g.logger.Info("game over")
	g.tetris.MakeFailScreen()
	g.publishBoard()
	g.idle()
}

// idle sets up the menu for when there's no game running.
func (g *Game) idle() {
	g.publishMenu(Menu{MenuNewGame: true, MenuLoadGame: g.canLoad()})
}

func (g *Game) pausedMenu() Menu {
	return Menu{MenuPause: true, MenuUndo: g.tetris.CanUndo(), MenuSaveGame: true}
}

func (g *Game) canLoad() bool {
	if g.store == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	ok, err := g.store.Exists(ctx)
	if err != nil {
		g.logger.Error("unable to check for a saved game", slog.String("error", err.Error()))
		return false
	}
	return ok
}

func (g *Game) load() (*Tetris, error) {
	if g.store == nil {
		return nil, errors.New("no store configured")
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	data, err := g.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read save: %w", err)
	}
	t := New(g.rand)
	if err := t.Load(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return t, nil
}

func (g *Game) savedAt() (time.Time, bool) {
	sa, ok := g.store.(savedAter)
	if !ok {
		return time.Time{}, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	at, err := sa.SavedAt(ctx)
	if err != nil {
		g.logger.Warn("unable to read the save time", slog.String("error", err.Error()))
		return time.Time{}, false
	}
	return at, true
}

func (g *Game) save() error {
	if g.store == nil {
		return errors.New("no store configured")
	}
	var buf bytes.Buffer
	if err := g.tetris.Save(&buf); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := g.store.Save(ctx, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}
	return nil
}

func (g *Game) publishBoard() {
	g.publish(Update{Board: g.tetris.Snapshot()})
}

func (g *Game) publishMenu(m Menu) {
	g.menu = m
	g.publish(Update{Menu: &m})
}

// publish blocks until the update is read or the game stops.
func (g *Game) publish(u Update) {
	select {
	case g.UpdateCh <- u:
	case <-g.doneCh:
	}
}
