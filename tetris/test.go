package tetris

import (
	"log/slog"
	"sync"
	"time"
)

// MockTicker is a mock implementation of the ticker interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }
func (m *MockTicker) Tick()               { m.ch <- time.Now() }
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
	m.reset = false
}
func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
	m.stop = false
}

// IsRunning reports if the ticker was reset after its last stop.
func (m *MockTicker) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}

func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// NewTestGame creates a game driven by a manual ticker.
func NewTestGame(store Store) (*Game, *MockTicker) {
	ticker := NewMockTicker()
	return NewGame(&Options{
		Store:  store,
		Ticker: ticker,
		Logger: slog.New(slog.DiscardHandler),
	}), ticker
}

// NewTestTetris creates a new Tetris with a known falling piece painted at its
// spawn location.
func NewTestTetris(shape Shape) *Tetris {
	t := &Tetris{Tetromino: NewTetromino(shape)}
	t.paint(t.Tetromino.Color)
	return t
}
