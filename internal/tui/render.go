package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hersh/gopong/internal/game"
	"github.com/hersh/gopong/internal/protocol"
)

// The 600x400 field is drawn on a FieldCols x FieldRows character grid.
const (
	FieldCols = 60
	FieldRows = 20
)

var (
	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("15"))

	infoStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("15"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	ownStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	otherStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("201"))
	ballStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	netStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	noticeStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	winnerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226"))
)

func toCol(x float64) int {
	return clampCell(int(math.Floor(x/game.Width*FieldCols)), FieldCols)
}

func toRow(y float64) int {
	return clampCell(int(math.Floor(y/game.Height*FieldRows)), FieldRows)
}

func clampCell(v, n int) int {
	return max(0, min(n-1, v))
}

// RenderField draws both paddles, the centre net and the ball. ownID picks
// which paddle is highlighted as the local player's.
func RenderField(frame protocol.UpdatePayload, ownID string) string {
	var grid [FieldRows][FieldCols]string
	for r := range grid {
		for c := range grid[r] {
			grid[r][c] = " "
		}
		if r%2 == 0 {
			grid[r][FieldCols/2] = netStyle.Render("┊")
		}
	}

	paddleCols := []int{toCol(game.PaddleInset) - 1, toCol(game.Width-game.PaddleInset) + 1}
	for i, p := range frame.Players {
		if i >= len(paddleCols) {
			break
		}
		style := otherStyle
		if p.ID == ownID {
			style = ownStyle
		}
		col := clampCell(paddleCols[i], FieldCols)
		for r := toRow(p.Y - game.PaddleHalfHeight); r <= toRow(p.Y+game.PaddleHalfHeight-1); r++ {
			grid[r][col] = style.Render("█")
		}
	}

	grid[toRow(frame.Ball.Y)][toCol(frame.Ball.X)] = ballStyle.Render("●")

	var sb strings.Builder
	for r := range grid {
		sb.WriteString(strings.Join(grid[r][:], ""))
		if r < FieldRows-1 {
			sb.WriteString("\n")
		}
	}
	return fieldStyle.Render(sb.String())
}

// RenderScores shows "Ann 2 : 1 Bo", left player first.
func RenderScores(players []protocol.PlayerState) string {
	switch len(players) {
	case 0:
		return ""
	case 1:
		return titleStyle.Render(fmt.Sprintf("%s %d", players[0].Name, players[0].Score))
	}
	return titleStyle.Render(fmt.Sprintf("%s %d : %d %s",
		players[0].Name, players[0].Score, players[1].Score, players[1].Name))
}

func RenderMenu(name string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("51")).
		Align(lipgloss.Center).
		Render(fmt.Sprintf(`
╔══════════════════════════════╗
║           P O N G            ║
║     Two-player online TUI    ║
╚══════════════════════════════╝

   Playing as %s

   [C] Create a room
   [R] Join a random room
   [J] Join a room by code

   Press Q to quit
`, name))
}

func RenderJoinPrompt(code string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("=== JOIN ROOM ===") + "\n\n")
	sb.WriteString(infoStyle.Render("Room code: "+code+"_") + "\n\n")
	sb.WriteString(infoStyle.Render("ENTER to join, ESC to go back") + "\n")
	return sb.String()
}

func RenderWaiting(roomID string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("=== ROOM "+roomID+" ===") + "\n\n")
	sb.WriteString(infoStyle.Render("Waiting for an opponent...") + "\n")
	sb.WriteString(infoStyle.Render("Share the code above with a friend.") + "\n\n")
	sb.WriteString(infoStyle.Render("Press L to leave") + "\n")
	return sb.String()
}

func RenderGameOver(winner string, won bool) string {
	headline := fmt.Sprintf("%s WINS", strings.ToUpper(winner))
	style := errorStyle
	if won {
		headline = "YOU WIN!"
		style = winnerStyle
	}
	return style.Align(lipgloss.Center).Render("\n     "+headline+"     \n") +
		"\n" + infoStyle.Render("[M] Rematch   [L] Leave room")
}

func RenderControls() string {
	return infoStyle.Render("↑/W ↓/S move   M rematch   L leave   Q quit")
}

func RenderNotice(text string, isError bool) string {
	if text == "" {
		return ""
	}
	if isError {
		return errorStyle.Render(text)
	}
	return noticeStyle.Render(text)
}
