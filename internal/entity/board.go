package entity

import (
	"encoding/json"
	"fmt"
)

// Mark - the symbol a player leaves on a cell.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

// BoardSize - number of cells on the board, indexed row-major.
const BoardSize = 9

// IsPlayerMark - reports whether the mark can be placed on a board.
func (that Mark) IsPlayerMark() bool {
	return that == PlayerX || that == PlayerO
}

// Board - the 3x3 grid. The zero value is an empty board.
type Board struct {
	cells [BoardSize]Mark
}

// NewBoard - creates an empty board.
func NewBoard() Board {
	return Board{}
}

// ValidIndex - reports whether index addresses a cell.
func ValidIndex(index int) bool {
	return index >= 0 && index < BoardSize
}

// Cells - returns a copy of the cells.
func (that Board) Cells() [BoardSize]Mark {
	return that.cells
}

// Cell - returns the mark at index, EmptyCell for an invalid index.
func (that Board) Cell(index int) Mark {
	if !ValidIndex(index) {
		return EmptyCell
	}

	return that.cells[index]
}

// SetCell - places mark on an empty cell. Nothing changes when it returns false.
func (that *Board) SetCell(index int, mark Mark) bool {
	if !ValidIndex(index) || !mark.IsPlayerMark() {
		return false
	}

	if that.cells[index] != EmptyCell {
		return false
	}

	that.cells[index] = mark

	return true
}

// Reset - empties every cell.
func (that *Board) Reset() {
	that.cells = [BoardSize]Mark{}
}

// IsFull - reports whether no empty cell remains.
func (that Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Count - number of cells holding mark.
func (that Board) Count(mark Mark) int {
	count := 0
	for _, cell := range that.cells {
		if cell == mark {
			count++
		}
	}

	return count
}

func (that Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.cells)
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var cells [BoardSize]Mark
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	for i, cell := range cells {
		if cell != EmptyCell && !cell.IsPlayerMark() {
			return fmt.Errorf("%w: cell %d", ErrUnknownMark, i)
		}
	}

	that.cells = cells

	return nil
}
