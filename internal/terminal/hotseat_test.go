package terminal

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

func newTestSeat(t *testing.T) (*HotSeat, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 24)

	return NewHotSeat(screen), screen
}

func typeKeys(seat *HotSeat, keys string) bool {
	quit := false
	for _, r := range keys {
		quit = seat.Handle(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}

	return quit
}

func press(seat *HotSeat, key tcell.Key) bool {
	return seat.Handle(tcell.NewEventKey(key, 0, tcell.ModNone))
}

func startGame(seat *HotSeat, first, second string) {
	typeKeys(seat, first)
	press(seat, tcell.KeyEnter)
	typeKeys(seat, second)
	press(seat, tcell.KeyEnter)
}

func screenText(seat *HotSeat, screen tcell.SimulationScreen) string {
	seat.Draw()

	cells, width, _ := screen.GetContents()

	var sb strings.Builder
	for i, cell := range cells {
		if len(cell.Runes) > 0 {
			sb.WriteRune(cell.Runes[0])
		} else {
			sb.WriteRune(' ')
		}

		if (i+1)%width == 0 {
			sb.WriteRune('\n')
		}
	}

	return sb.String()
}

func TestHotSeat_NamePrompt(t *testing.T) {
	// Given: a fresh terminal
	seat, screen := newTestSeat(t)

	// When: the first player types a name with a typo and fixes it
	typeKeys(seat, "Annx")
	press(seat, tcell.KeyBackspace2)

	// Then: the prompt shows the corrected name and the game waits
	text := screenText(seat, screen)
	assert.Contains(t, text, "Player 1 (X) name: Ann ")
	assert.NotContains(t, text, "Annx")
	assert.NotContains(t, text, "Player 2 (O) name:")
	assert.False(t, seat.Game().IsStarted())

	// And: typing q is part of the name, not a quit
	assert.False(t, typeKeys(seat, "q"))
}

func TestHotSeat_FirstPlayerWinsTopRow(t *testing.T) {
	// Given: Ann and Bo at the keyboard
	seat, screen := newTestSeat(t)
	startGame(seat, "Ann", "Bo")
	assert.Contains(t, screenText(seat, screen), "Ann's Turn")

	// When: Ann takes 1, 2, 3 while Bo takes 4, 5
	typeKeys(seat, "14253")

	// Then: Ann wins and the board shows the top row
	text := screenText(seat, screen)
	assert.Contains(t, text, " X │ X │ X ")
	assert.Contains(t, text, " O │ O │ 6 ")
	assert.Contains(t, text, "Ann Wins")
	assert.True(t, seat.Game().IsGameOver())
}

func TestHotSeat_RejectedInput(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want string
	}{
		{
			name: "Occupied cell",
			keys: "55",
			want: "Cell 5 is already taken",
		},
		{
			name: "Move after the game is over",
			keys: "142539",
			want: "The game is over",
		},
		{
			name: "Unknown key",
			keys: "x",
			want: "Unknown key 'x'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seat, screen := newTestSeat(t)
			startGame(seat, "Ann", "Bo")

			assert.False(t, typeKeys(seat, tt.keys))

			assert.Contains(t, screenText(seat, screen), tt.want)
		})
	}
}

func TestHotSeat_ResetAndNewPlayers(t *testing.T) {
	// Given: a finished game
	seat, screen := newTestSeat(t)
	startGame(seat, "Ann", "Bo")
	typeKeys(seat, "14253")

	// When: the board is reset
	typeKeys(seat, "r")

	// Then: the players stay and Ann moves first on an empty board
	text := screenText(seat, screen)
	assert.Contains(t, text, " 1 │ 2 │ 3 ")
	assert.Contains(t, text, "Ann's Turn")

	// When: new players sit down and leave both names empty
	typeKeys(seat, "n")
	assert.Contains(t, screenText(seat, screen), "Player 1 (X) name:")
	press(seat, tcell.KeyEnter)
	press(seat, tcell.KeyEnter)

	// Then: the default names are used
	assert.Contains(t, screenText(seat, screen), "Player 1's Turn")
}

func TestHotSeat_Mouse(t *testing.T) {
	// Given: a started game
	seat, _ := newTestSeat(t)
	startGame(seat, "Ann", "Bo")

	// When: the center cell is clicked, then a grid separator
	seat.Handle(tcell.NewEventMouse(boardLeft+cellWidth+1, boardTop+rowHeight, tcell.Button1, tcell.ModNone))
	seat.Handle(tcell.NewEventMouse(boardLeft+cellWidth-1, boardTop, tcell.Button1, tcell.ModNone))

	// Then: only the center holds a mark and Bo is next
	cells := seat.Game().Board().Cells()
	assert.Equal(t, entity.PlayerX, cells[4])
	assert.Equal(t, 1, seat.Game().Board().Count(entity.PlayerX))
	assert.Equal(t, 1, seat.Game().TurnIndex())
}

func TestHotSeat_ArrowSelection(t *testing.T) {
	// Given: a started game with the center selected
	seat, _ := newTestSeat(t)
	startGame(seat, "Ann", "Bo")

	// When: moving up, left, then left again past the edge, and confirming
	press(seat, tcell.KeyUp)
	press(seat, tcell.KeyLeft)
	press(seat, tcell.KeyLeft)
	press(seat, tcell.KeyEnter)

	// Then: the top-left cell is taken
	assert.Equal(t, entity.PlayerX, seat.Game().Board().Cell(0))
}

func TestHotSeat_Quit(t *testing.T) {
	seat, _ := newTestSeat(t)

	assert.True(t, press(seat, tcell.KeyEscape))
	assert.True(t, press(seat, tcell.KeyCtrlC))

	startGame(seat, "Ann", "Bo")
	assert.True(t, typeKeys(seat, "q"))
}

func TestHotSeat_Run(t *testing.T) {
	// Given: keystrokes queued on the screen
	seat, screen := newTestSeat(t)
	screen.InjectKey(tcell.KeyRune, 'A', tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'B', tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, '5', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	// When: the loop runs
	done := make(chan struct{})
	go func() {
		seat.Run()
		close(done)
	}()

	// Then: it plays the move and stops on q
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("hot seat did not quit")
	}

	assert.Equal(t, entity.PlayerX, seat.Game().Board().Cell(4))
}

func TestCellAt(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want int
	}{
		{name: "top left", x: boardLeft, y: boardTop, want: 0},
		{name: "center", x: boardLeft + cellWidth + 1, y: boardTop + rowHeight, want: 4},
		{name: "bottom right", x: boardLeft + 2*cellWidth + 2, y: boardTop + 2*rowHeight, want: 8},
		{name: "column separator", x: boardLeft + cellWidth - 1, y: boardTop, want: -1},
		{name: "row separator", x: boardLeft, y: boardTop + 1, want: -1},
		{name: "left of the board", x: 0, y: boardTop, want: -1},
		{name: "below the board", x: boardLeft, y: boardTop + 3*rowHeight, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cellAt(tt.x, tt.y))
		})
	}
}
