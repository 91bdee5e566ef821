// Package server exposes a running game over gRPC. Commands are forwarded to
// the game and every update is fanned out to the connected watchers.
package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"tetrimino/rpc"
	"tetrimino/tetris"
)

// watcherBuffer is how many updates a watcher can fall behind before it's
// dropped. A game publishes a couple of updates per frame at most.
const watcherBuffer = 64

type game interface {
	Action(tetris.Action)
	Updates() <-chan tetris.Update
}

var _ rpc.TetrisServiceServer = (*Server)(nil)

type Server struct {
	game   game
	logger *slog.Logger

	mu       sync.Mutex
	watchers map[string]chan tetris.Update
	board    *tetris.Board
	menu     *tetris.Menu
}

// New returns the service for g. Run must be called for watchers to get any
// update.
func New(g game, l *slog.Logger) *Server {
	if l == nil {
		l = slog.Default()
	}
	return &Server{
		game:     g,
		logger:   l,
		watchers: make(map[string]chan tetris.Update),
	}
}

// Run reads the game updates until ctx is done.
func (t *Server) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case u := <-t.game.Updates():
			t.broadcast(u)
		}
	}
}

func (t *Server) Command(_ context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	a, ok := tetris.ParseAction(in.GetValue())
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown command %q", in.GetValue())
	}
	t.logger.Debug("command received", slog.String("action", string(a)))
	t.game.Action(a)
	return &emptypb.Empty{}, nil
}

func (t *Server) Watch(_ *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	id := uuid.New().String()
	ch := t.subscribe(id)
	defer t.unsubscribe(id)
	t.logger.Info("watcher connected", slog.String("watcher", id))

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			t.logger.Info("watcher disconnected", slog.String("watcher", id))
			return nil
		case u, ok := <-ch:
			if !ok {
				t.logger.Warn("watcher dropped", slog.String("watcher", id))
				return status.Error(codes.ResourceExhausted, "watcher fell behind")
			}
			msg, err := rpc.EncodeUpdate(u, id)
			if err != nil {
				return status.Errorf(codes.Internal, "failed to encode update: %v", err)
			}
			if err := stream.Send(msg); err != nil {
				t.logger.Error("unable to send update", slog.String("watcher", id), slog.String("error", err.Error()))
				return err
			}
		}
	}
}

// subscribe registers a watcher and queues the latest board and menu so it
// can draw the game right away.
func (t *Server) subscribe(id string) <-chan tetris.Update {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch := make(chan tetris.Update, watcherBuffer)
	if t.board != nil {
		ch <- tetris.Update{Board: t.board}
	}
	if t.menu != nil {
		ch <- tetris.Update{Menu: t.menu}
	}
	t.watchers[id] = ch
	return ch
}

func (t *Server) unsubscribe(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ch, ok := t.watchers[id]; ok {
		close(ch)
		delete(t.watchers, id)
	}
}

func (t *Server) broadcast(u tetris.Update) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case u.Board != nil:
		t.board = u.Board
	case u.Menu != nil:
		t.menu = u.Menu
	}
	for id, ch := range t.watchers {
		select {
		case ch <- u:
		default:
			close(ch)
			delete(t.watchers, id)
		}
	}
}

// Watchers returns how many watchers are connected.
func (t *Server) Watchers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.watchers)
}
