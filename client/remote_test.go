package client

import (
	"context"
	"log"
	"log/slog"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"tetrimino/rpc"
	"tetrimino/server"
	"tetrimino/tetris"
)

func nextUpdate(t *testing.T, r *RemoteGame) tetris.Update {
	t.Helper()
	select {
	case u := <-r.Updates():
		return u
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for an update")
	}
	return tetris.Update{}
}

func TestRemoteGame(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := slog.New(slog.DiscardHandler)

	game, ticker := tetris.NewTestGame(nil)
	defer game.Stop()
	srv := server.New(game, logger)
	go srv.Run(ctx)
	game.Start()

	lis := bufconn.Listen(1024 * 1024)
	s := grpc.NewServer()
	rpc.RegisterTetrisServiceServer(s, srv)
	go func() {
		if err := s.Serve(lis); err != nil {
			log.Printf("unable to serve: %v", err)
		}
	}()
	defer s.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet", grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
		return lis.Dial()
	}), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("error connecting to server: %v", err)
	}

	remote := newRemoteGame(conn, conn, logger)
	remote.Start()
	defer remote.Stop()

	if u := nextUpdate(t, remote); u.Menu == nil || !u.Menu[tetris.MenuNewGame] {
		t.Fatalf("expected the idle menu, got %+v", u)
	}

	remote.Action(tetris.StartGame)
	if u := nextUpdate(t, remote); u.Board == nil || !u.Board[0][4].IsLit() {
		t.Fatalf("expected a new board, got %+v", u)
	}
	if u := nextUpdate(t, remote); u.Menu == nil || !u.Menu[tetris.MenuPause] {
		t.Fatalf("expected the playing menu, got %+v", u)
	}

	remote.Action(tetris.MoveLeft)
	ticker.Tick()
	if u := nextUpdate(t, remote); u.Board == nil || !u.Board[1][3].IsLit() {
		t.Errorf("expected the piece to move left and fall, got %+v", u)
	}

	remote.Stop()
	remote.Stop()
	// commands after stop fail quietly.
	remote.Action(tetris.TogglePause)
}
