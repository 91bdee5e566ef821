package tetris

import "testing"

func TestIsLit(t *testing.T) {
	for c := range colorCodes {
		tile := Tile{}
		tile.SetColor(c)
		if got, want := tile.IsLit(), c != Black; got != want {
			t.Errorf("color %d: expected IsLit to be %v, got %v", c, want, got)
		}
	}
}

func TestRowCodec(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "every color",
			in:   "XCBOYGPRXX",
			want: "XCBOYGPRXX",
		},
		{
			name: "unknown codes are unlit",
			in:   "CQBWXXXXX?",
			want: "CXBXXXXXXX",
		},
		{
			name: "short rows are padded with unlit tiles",
			in:   "RR",
			want: "RRXXXXXXXX",
		},
		{
			name: "long rows are cut",
			in:   "GGGGGGGGGGGG",
			want: "GGGGGGGGGG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RowToString(StringToRow(tt.in)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCountLit(t *testing.T) {
	row := StringToRow("XCXOXXXXRR")
	if got := CountLit(row); got != 4 {
		t.Errorf("expected 4 lit tiles, got %d", got)
	}
	if got := CountLit([Cols]Tile{}); got != 0 {
		t.Errorf("expected 0 lit tiles, got %d", got)
	}
}
