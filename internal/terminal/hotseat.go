package terminal

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const (
	localGameID   = "local"
	maxNameLength = 20

	boardLeft = 2
	boardTop  = 1
	cellWidth = 4 // " X " and a separator
	rowHeight = 2 // a row of cells and a separator line

	helpLine      = "1-9 or click: place   arrows, enter: place   r: reset   n: new players   q: quit"
	namesHelpLine = "enter to confirm, leave empty for the default name"
	gridSeparator = "───┼───┼───"
)

type mode int

const (
	modeNames mode = iota
	modePlay
)

var (
	styleText   = tcell.StyleDefault
	styleGrid   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleX      = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleO      = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleNotice = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// HotSeat - two players sharing one terminal and one game.
type HotSeat struct {
	screen tcell.Screen
	game   *tictactoe.Game

	mode     mode
	names    [2]string
	nameIdx  int
	selected int
	notice   string
}

func NewHotSeat(screen tcell.Screen) *HotSeat {
	return &HotSeat{
		screen:   screen,
		game:     tictactoe.NewGame(localGameID),
		selected: 4,
	}
}

func (that *HotSeat) Game() *tictactoe.Game {
	return that.game
}

// Run - draws and handles events until the players quit or the screen is finalized.
func (that *HotSeat) Run() {
	for {
		that.Draw()

		ev := that.screen.PollEvent()
		if ev == nil {
			return
		}

		if quit := that.Handle(ev); quit {
			return
		}
	}
}

// Handle - applies one event and reports whether the players quit.
func (that *HotSeat) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		that.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
			return true
		}

		if that.mode == modeNames {
			that.handleNameKey(ev)
			return false
		}

		return that.handlePlayKey(ev)
	case *tcell.EventMouse:
		if that.mode != modePlay || ev.Buttons()&tcell.Button1 == 0 {
			return false
		}

		if cell := cellAt(ev.Position()); cell >= 0 {
			that.selected = cell
			that.move(cell)
		}
	}

	return false
}

func (that *HotSeat) handleNameKey(ev *tcell.EventKey) {
	name := that.names[that.nameIdx]

	switch ev.Key() {
	case tcell.KeyEnter:
		if that.nameIdx == 0 {
			that.nameIdx = 1
			return
		}

		that.game.StartGame(that.names[0], that.names[1])
		that.mode = modePlay
		that.notice = ""
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if _, size := utf8.DecodeLastRuneInString(name); size > 0 {
			that.names[that.nameIdx] = name[:len(name)-size]
		}
	case tcell.KeyRune:
		if utf8.RuneCountInString(name) < maxNameLength {
			that.names[that.nameIdx] = name + string(ev.Rune())
		}
	}
}

func (that *HotSeat) handlePlayKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		that.moveSelection(-1, 0)
	case tcell.KeyDown:
		that.moveSelection(1, 0)
	case tcell.KeyLeft:
		that.moveSelection(0, -1)
	case tcell.KeyRight:
		that.moveSelection(0, 1)
	case tcell.KeyEnter:
		that.move(that.selected)
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q':
			return true
		case r == 'r':
			that.game.ResetGame()
			that.notice = ""
		case r == 'n':
			that.askNames()
		case r >= '1' && r <= '9':
			that.selected = int(r - '1')
			that.move(that.selected)
		default:
			that.notice = fmt.Sprintf("Unknown key %q", r)
		}
	}

	return false
}

func (that *HotSeat) askNames() {
	that.mode = modeNames
	that.names = [2]string{}
	that.nameIdx = 0
	that.notice = ""
}

func (that *HotSeat) moveSelection(dRow, dCol int) {
	row, col := that.selected/3+dRow, that.selected%3+dCol
	if row < 0 || row > 2 || col < 0 || col > 2 {
		return
	}

	that.selected = row*3 + col
}

func (that *HotSeat) move(cell int) {
	that.notice = ""

	err := that.game.TryRound(cell)
	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrCellOccupied):
		that.notice = fmt.Sprintf("Cell %d is already taken", cell+1)
	case errors.Is(err, apperror.ErrGameFinished):
		that.notice = "The game is over, press r to play again or n for new players"
	default:
		that.notice = fmt.Sprintf("Move rejected: %v", err)
	}
}

// Draw - renders the current mode and shows the frame.
func (that *HotSeat) Draw() {
	that.screen.Clear()

	if that.mode == modeNames {
		that.drawNames()
	} else {
		that.screen.HideCursor()
		that.drawBoard()
	}

	that.screen.Show()
}

func (that *HotSeat) drawNames() {
	drawText(that.screen, boardLeft, boardTop, styleText, "Tic-Tac-Toe")

	prompts := [2]string{"Player 1 (X) name: ", "Player 2 (O) name: "}
	for i := 0; i <= that.nameIdx; i++ {
		end := drawText(that.screen, boardLeft, boardTop+2+i, styleText, prompts[i]+that.names[i])
		if i == that.nameIdx {
			that.screen.ShowCursor(end, boardTop+2+i)
		}
	}

	drawText(that.screen, boardLeft, boardTop+5, styleGrid, namesHelpLine)
}

func (that *HotSeat) drawBoard() {
	cells := that.game.Board().Cells()

	for row := 0; row < 3; row++ {
		y := boardTop + row*rowHeight
		if row > 0 {
			drawText(that.screen, boardLeft, y-1, styleGrid, gridSeparator)
		}

		for col := 0; col < 3; col++ {
			index := row*3 + col
			x := boardLeft + col*cellWidth

			label, style := cellLabel(cells[index], index)
			if index == that.selected && !that.game.IsGameOver() {
				style = style.Reverse(true)
			}
			drawText(that.screen, x, y, style, " "+label+" ")

			if col < 2 {
				that.screen.SetContent(x+cellWidth-1, y, '│', nil, styleGrid)
			}
		}
	}

	statusY := boardTop + 3*rowHeight
	drawText(that.screen, boardLeft, statusY, styleText, presenter.Message(that.game))
	drawText(that.screen, boardLeft, statusY+1, styleNotice, that.notice)
	drawText(that.screen, boardLeft, statusY+3, styleGrid, helpLine)
}

func cellLabel(mark entity.Mark, index int) (string, tcell.Style) {
	switch mark {
	case entity.PlayerX:
		return string(mark), styleX
	case entity.PlayerO:
		return string(mark), styleO
	default:
		return strconv.Itoa(index + 1), styleGrid
	}
}

// cellAt - the board index under a screen position, -1 off the cells.
func cellAt(x, y int) int {
	dx, dy := x-boardLeft, y-boardTop
	if dx < 0 || dy < 0 || dy%rowHeight != 0 || dx%cellWidth == cellWidth-1 {
		return -1
	}

	row, col := dy/rowHeight, dx/cellWidth
	if row > 2 || col > 2 {
		return -1
	}

	return row*3 + col
}

// drawText - writes text from x and returns the column after it.
func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}

	return x
}
