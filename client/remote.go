package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"tetrimino/rpc"
	"tetrimino/tetris"
)

const commandTimeout = 2 * time.Second

// RemoteGame plays a game running on a server.
type RemoteGame struct {
	logger   *slog.Logger
	tsc      rpc.TetrisServiceClient
	closer   io.Closer
	updateCh chan tetris.Update
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
}

func NewRemoteGame(addr string, l *slog.Logger) (*RemoteGame, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return newRemoteGame(conn, conn, l), nil
}

func newRemoteGame(cc grpc.ClientConnInterface, closer io.Closer, l *slog.Logger) *RemoteGame {
	ctx, cancel := context.WithCancel(context.Background())
	return &RemoteGame{
		logger:   l,
		tsc:      rpc.NewTetrisServiceClient(cc),
		closer:   closer,
		updateCh: make(chan tetris.Update),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (r *RemoteGame) Start() { go r.watch() }

func (r *RemoteGame) Stop() {
	r.stopOnce.Do(func() {
		r.cancel()
		if r.closer == nil {
			return
		}
		if err := r.closer.Close(); err != nil {
			r.logger.Error("unable to close gRPC client", slog.String("error", err.Error()))
		}
	})
}

func (r *RemoteGame) Updates() <-chan tetris.Update { return r.updateCh }

func (r *RemoteGame) Action(a tetris.Action) {
	ctx, cancel := context.WithTimeout(r.ctx, commandTimeout)
	defer cancel()
	if _, err := r.tsc.Command(ctx, wrapperspb.String(string(a))); err != nil {
		r.logger.Error("unable to send command", slog.String("action", string(a)), slog.String("error", err.Error()))
	}
}

func (r *RemoteGame) watch() {
	stream, err := r.tsc.Watch(r.ctx, &emptypb.Empty{})
	if err != nil {
		r.logger.Error("unable to create gRPC Watch stream", slog.String("error", err.Error()))
		return
	}
	var watcher string
	for {
		msg, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.logger.Debug("stream.Recv() closed with EOF", slog.String("msg", err.Error()))
				return
			}
			if st, ok := status.FromError(err); ok && st.Code() == codes.Canceled {
				r.logger.Debug("stream.Recv() closed with Cancel", slog.String("msg", st.Message()))
				return
			}
			r.logger.Error("stream.Recv() unable to receive message", slog.String("error", err.Error()))
			return
		}
		u, id, err := rpc.DecodeUpdate(msg)
		if err != nil {
			r.logger.Error("unable to decode update", slog.String("error", err.Error()))
			continue
		}
		if watcher == "" {
			watcher = id
			r.logger.Info("watching remote game", slog.String("watcher", watcher))
		}
		select {
		case r.updateCh <- u:
		case <-r.ctx.Done():
			return
		}
	}
}
