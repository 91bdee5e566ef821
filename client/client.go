// Package client is the terminal front end. It draws the board and menu and
// turns key presses into game actions, for a game running either in process
// or on a server.
package client

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/eiannone/keyboard"

	"tetrimino/tetris"
)

// Game is what the client plays: tetris.Game locally or RemoteGame on a
// server.
type Game interface {
	Start()
	Stop()
	Action(tetris.Action)
	Updates() <-chan tetris.Update
}

type renderer interface {
	board(*tetris.Board)
	menu(*tetris.Menu)
}

type Client struct {
	game   Game
	render renderer
	logger *slog.Logger
	kbCh   <-chan keyboard.KeyEvent
}

func New(l *slog.Logger, g Game) (*Client, error) {
	r, err := newRender(l)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	return &Client{
		game:   g,
		render: r,
		logger: l,
		kbCh:   kb,
	}, nil
}

// Start plays until the player quits.
func (c *Client) Start() {
	doneCh := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.listenGame(doneCh)
	}()
	c.game.Start()
	c.listenKB()
	close(doneCh)
	c.game.Stop()
	wg.Wait()
}

// Close releases the keyboard and restores the terminal.
func (c *Client) Close() error {
	return keyboard.Close()
}

func (c *Client) listenKB() {
	for {
		event, ok := <-c.kbCh
		if !ok {
			c.logger.Error("keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			c.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC || event.Rune == 'q' {
			return
		}
		if a, ok := keyAction(event); ok {
			c.game.Action(a)
		}
	}
}

func (c *Client) listenGame(doneCh <-chan struct{}) {
	for {
		select {
		case u := <-c.game.Updates():
			switch {
			case u.Board != nil:
				c.render.board(u.Board)
			case u.Menu != nil:
				c.render.menu(u.Menu)
			}
		case <-doneCh:
			return
		}
	}
}

func keyAction(e keyboard.KeyEvent) (tetris.Action, bool) {
	switch {
	case e.Key == keyboard.KeyArrowLeft || e.Rune == 'a':
		return tetris.MoveLeft, true
	case e.Key == keyboard.KeyArrowRight || e.Rune == 'd':
		return tetris.MoveRight, true
	case e.Key == keyboard.KeyArrowUp || e.Rune == 'w':
		return tetris.RotateRight, true
	case e.Rune == 'n':
		return tetris.StartGame, true
	case e.Rune == 'l':
		return tetris.LoadGame, true
	case e.Rune == 'p':
		return tetris.TogglePause, true
	case e.Rune == 'u':
		return tetris.UndoLanding, true
	case e.Rune == 's':
		return tetris.SaveGame, true
	}
	return "", false
}
