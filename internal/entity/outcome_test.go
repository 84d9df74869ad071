package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardOf(t *testing.T, cells [BoardSize]Mark) Board {
	t.Helper()

	board := NewBoard()
	for i, cell := range cells {
		if cell == EmptyCell {
			continue
		}
		require.True(t, board.SetCell(i, cell))
	}

	return board
}

func TestDetermineOutcome(t *testing.T) {
	const (
		x = PlayerX
		o = PlayerO
		e = EmptyCell
	)

	tests := []struct {
		name  string
		cells [BoardSize]Mark
		want  Outcome
	}{
		{
			name:  "empty board is in progress",
			cells: [BoardSize]Mark{},
			want:  InProgress(),
		},
		{
			name: "top row",
			cells: [BoardSize]Mark{
				x, x, x,
				o, o, e,
				e, e, e,
			},
			want: Win(x),
		},
		{
			name: "middle row for O",
			cells: [BoardSize]Mark{
				x, e, x,
				o, o, o,
				x, e, e,
			},
			want: Win(o),
		},
		{
			name: "left column",
			cells: [BoardSize]Mark{
				o, x, e,
				o, x, e,
				o, e, x,
			},
			want: Win(o),
		},
		{
			name: "main diagonal",
			cells: [BoardSize]Mark{
				x, o, e,
				o, x, e,
				e, e, x,
			},
			want: Win(x),
		},
		{
			name: "anti diagonal",
			cells: [BoardSize]Mark{
				x, x, o,
				e, o, e,
				o, e, x,
			},
			want: Win(o),
		},
		{
			name: "win on the last free cell is not a tie",
			cells: [BoardSize]Mark{
				x, o, x,
				o, x, o,
				o, x, x,
			},
			want: Win(x),
		},
		{
			name: "classic tie",
			cells: [BoardSize]Mark{
				x, o, x,
				x, o, o,
				o, x, x,
			},
			want: Tie(),
		},
		{
			name: "partial board without a line",
			cells: [BoardSize]Mark{
				x, o, e,
				e, x, e,
				e, e, o,
			},
			want: InProgress(),
		},
		{
			name: "rows are scanned before columns",
			cells: [BoardSize]Mark{
				o, x, x,
				o, x, x,
				x, x, x,
			},
			want: Win(x),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := boardOf(t, tt.cells)

			got := DetermineOutcome(board)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.cells, board.Cells())
		})
	}
}

func TestOutcome_Predicates(t *testing.T) {
	assert.True(t, Win(PlayerX).IsWin())
	assert.True(t, Win(PlayerX).IsTerminal())
	assert.True(t, Tie().IsTie())
	assert.True(t, Tie().IsTerminal())
	assert.False(t, InProgress().IsTerminal())
	assert.Equal(t, "win(O)", Win(PlayerO).String())
	assert.Equal(t, "tie", Tie().String())
}

func TestOutcome_JSON(t *testing.T) {
	t.Run("Win carries the mark", func(t *testing.T) {
		data, err := json.Marshal(Win(PlayerO))

		require.NoError(t, err)
		assert.JSONEq(t, `{"result":"win","mark":"O"}`, string(data))
	})

	t.Run("Round trip keeps the result", func(t *testing.T) {
		var outcome Outcome
		require.NoError(t, json.Unmarshal([]byte(`{"result":"tie"}`), &outcome))

		assert.Equal(t, Tie(), outcome)
	})

	t.Run("Unknown result fails", func(t *testing.T) {
		var outcome Outcome
		err := json.Unmarshal([]byte(`{"result":"draw"}`), &outcome)

		assert.ErrorIs(t, err, ErrUnknownOutcome)
	})
}
