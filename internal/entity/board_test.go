package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_SetCell(t *testing.T) {
	t.Run("Places a mark on every cell of a fresh board", func(t *testing.T) {
		for i := 0; i < BoardSize; i++ {
			// Given: a fresh board
			board := NewBoard()

			// When: placing X on cell i
			ok := board.SetCell(i, PlayerX)

			// Then: the placement succeeds and the cell holds X
			require.True(t, ok, "cell %d", i)
			assert.Equal(t, PlayerX, board.Cells()[i])
		}
	})

	t.Run("Does not overwrite an occupied cell", func(t *testing.T) {
		// Given: a board with X on cell 4
		board := NewBoard()
		require.True(t, board.SetCell(4, PlayerX))

		// When: placing O on the same cell
		ok := board.SetCell(4, PlayerO)

		// Then: the placement fails and X stays
		assert.False(t, ok)
		assert.Equal(t, PlayerX, board.Cell(4))
	})

	t.Run("Rejects out of range indices", func(t *testing.T) {
		// Given: a fresh board
		board := NewBoard()

		// When: placing marks outside the board
		// Then: every placement fails and the board stays empty
		for _, index := range []int{-1, -100, 9, 10, 100} {
			assert.False(t, board.SetCell(index, PlayerX), "index %d", index)
		}
		assert.Equal(t, [BoardSize]Mark{}, board.Cells())
	})

	t.Run("Rejects an empty or unknown mark", func(t *testing.T) {
		// Given: a fresh board
		board := NewBoard()

		// Then: only X and O can be placed
		assert.False(t, board.SetCell(0, EmptyCell))
		assert.False(t, board.SetCell(0, Mark("Z")))
		assert.Equal(t, EmptyCell, board.Cell(0))
	})
}

func TestBoard_Cells(t *testing.T) {
	// Given: a board with X on cell 0
	board := NewBoard()
	require.True(t, board.SetCell(0, PlayerX))

	// When: the caller changes the returned cells
	cells := board.Cells()
	cells[0] = PlayerO
	cells[1] = PlayerO

	// Then: the board is untouched
	assert.Equal(t, PlayerX, board.Cell(0))
	assert.Equal(t, EmptyCell, board.Cell(1))
}

func TestBoard_Reset(t *testing.T) {
	// Given: a full board
	board := NewBoard()
	for i := 0; i < BoardSize; i++ {
		mark := PlayerX
		if i%2 == 1 {
			mark = PlayerO
		}
		require.True(t, board.SetCell(i, mark))
	}
	require.True(t, board.IsFull())

	// When: resetting the board
	board.Reset()

	// Then: all 9 cells are empty and can be played again
	assert.Equal(t, [BoardSize]Mark{}, board.Cells())
	assert.False(t, board.IsFull())
	assert.True(t, board.SetCell(0, PlayerO))
}

func TestBoard_Count(t *testing.T) {
	// Given: X in two cells and O in one
	board := NewBoard()
	require.True(t, board.SetCell(0, PlayerX))
	require.True(t, board.SetCell(8, PlayerX))
	require.True(t, board.SetCell(4, PlayerO))

	// Then: each mark is counted, empty cells included
	assert.Equal(t, 2, board.Count(PlayerX))
	assert.Equal(t, 1, board.Count(PlayerO))
	assert.Equal(t, 6, board.Count(EmptyCell))
}

func TestBoard_JSON(t *testing.T) {
	t.Run("Marshals as an array of 9 strings", func(t *testing.T) {
		// Given: a board with X in the center
		board := NewBoard()
		require.True(t, board.SetCell(4, PlayerX))

		// When: marshaling it
		data, err := json.Marshal(board)

		// Then: the cells are written in row-major order
		require.NoError(t, err)
		assert.JSONEq(t, `["","","","","X","","","",""]`, string(data))
	})

	t.Run("Rejects unknown marks", func(t *testing.T) {
		// Given: a board with an unknown mark
		data := []byte(`["","","","","Z","","","",""]`)

		// When: unmarshaling it
		var board Board
		err := json.Unmarshal(data, &board)

		// Then: ErrUnknownMark is returned
		assert.ErrorIs(t, err, ErrUnknownMark)
	})
}
