package rpc

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"tetrimino/tetris"
)

const (
	kindBoard = "board"
	kindMenu  = "menu"
)

var ErrBadUpdate = errors.New("malformed update")

// EncodeUpdate turns an update into the message sent to watchers:
//
//	{"kind": "board", "rows": ["XXXCCCCXXX", ...], "watcher": "..."}
//	{"kind": "menu", "flags": [true, false, false, false, false], "watcher": "..."}
//
// Rows use the save file color codes.
func EncodeUpdate(u tetris.Update, watcher string) (*structpb.Struct, error) {
	fields := map[string]any{"watcher": watcher}
	switch {
	case u.Board != nil:
		rows := make([]any, tetris.Rows)
		for i := range u.Board {
			rows[i] = tetris.RowToString(u.Board[i])
		}
		fields["kind"] = kindBoard
		fields["rows"] = rows
	case u.Menu != nil:
		flags := make([]any, len(u.Menu))
		for i, f := range u.Menu {
			flags[i] = f
		}
		fields["kind"] = kindMenu
		fields["flags"] = flags
	default:
		return nil, fmt.Errorf("%w: empty update", ErrBadUpdate)
	}
	return structpb.NewStruct(fields)
}

// DecodeUpdate is the inverse of EncodeUpdate. It also returns the watcher id.
func DecodeUpdate(s *structpb.Struct) (tetris.Update, string, error) {
	fields := s.GetFields()
	watcher := fields["watcher"].GetStringValue()
	switch kind := fields["kind"].GetStringValue(); kind {
	case kindBoard:
		rows := fields["rows"].GetListValue().GetValues()
		if len(rows) != tetris.Rows {
			return tetris.Update{}, watcher, fmt.Errorf("%w: %d rows", ErrBadUpdate, len(rows))
		}
		var b tetris.Board
		for i, r := range rows {
			b[i] = tetris.StringToRow(r.GetStringValue())
		}
		return tetris.Update{Board: &b}, watcher, nil
	case kindMenu:
		var m tetris.Menu
		flags := fields["flags"].GetListValue().GetValues()
		if len(flags) != len(m) {
			return tetris.Update{}, watcher, fmt.Errorf("%w: %d menu flags", ErrBadUpdate, len(flags))
		}
		for i, f := range flags {
			m[i] = f.GetBoolValue()
		}
		return tetris.Update{Menu: &m}, watcher, nil
	default:
		return tetris.Update{}, watcher, fmt.Errorf("%w: unknown kind %q", ErrBadUpdate, kind)
	}
}
