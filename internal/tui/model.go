package tui

import (
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hersh/gopong/internal/game"
	"github.com/hersh/gopong/internal/netclient"
	"github.com/hersh/gopong/internal/protocol"
)

const (
	// PaddleStep is how far one key press moves the paddle, in field units.
	PaddleStep    = 20.0
	noticeTTL     = 3 * time.Second
	maxCodeLength = 10
)

type Screen int

const (
	ScreenConnecting Screen = iota
	ScreenMenu
	ScreenJoin
	ScreenWaiting
	ScreenPlaying
	ScreenGameOver
)

// Controller is the set of server requests the UI can make.
// *netclient.Client implements it.
type Controller interface {
	CreateRoom(name string)
	JoinRoom(roomID, name string)
	JoinRandom(name string)
	Move(y float64)
	RequestRematch()
	LeaveRoom()
	Close()
}

type noticeExpiredMsg struct{ seq int }

type Model struct {
	screen     Screen
	playerID   string
	playerName string
	roomID     string
	joinCode   string

	players []protocol.PlayerInfo
	frame   protocol.UpdatePayload
	paddleY float64
	winner  string

	notice      string
	noticeError bool
	noticeSeq   int

	width  int
	height int

	client       Controller
	disconnected bool
	err          error
}

func NewModel(playerName string, client Controller) Model {
	return Model{
		screen:     ScreenConnecting,
		playerName: playerName,
		client:     client,
		paddleY:    game.StartY,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case netclient.ConnectedMsg:
		m.playerID = msg.PlayerID
		m.screen = ScreenMenu
		return m, nil
	case netclient.DisconnectedMsg:
		m.disconnected = true
		m.err = msg.Err
		return m, nil
	case netclient.RoomMsg:
		m.roomID = msg.RoomID
		m.screen = ScreenWaiting
		return m, nil
	case netclient.GameStartMsg:
		m.players = msg.Players
		m.startMatch()
		return m, nil
	case netclient.UpdateMsg:
		m.frame = protocol.UpdatePayload(msg)
		for _, p := range m.frame.Players {
			if p.ID == m.playerID {
				m.paddleY = p.Y
			}
		}
		return m, nil
	case netclient.GameOverMsg:
		m.winner = msg.Winner
		m.screen = ScreenGameOver
		return m, nil
	case netclient.RematchStartMsg:
		m.startMatch()
		return m, nil
	case netclient.NoticeMsg:
		return m.handleNotice(msg)
	}
	return m, nil
}

func (m *Model) startMatch() {
	m.screen = ScreenPlaying
	m.winner = ""
	m.paddleY = game.StartY
}

func (m Model) handleNotice(msg netclient.NoticeMsg) (tea.Model, tea.Cmd) {
	switch msg.Kind {
	case protocol.MsgError:
		// A failed join leaves us where we were before asking.
		if m.screen == ScreenJoin || m.roomID == "" {
			m.screen = ScreenMenu
		}
	case protocol.MsgPlayerLeft:
		m.screen = ScreenWaiting
		m.winner = ""
	}
	return m.setNotice(msg.Text, msg.Kind == protocol.MsgError)
}

func (m Model) setNotice(text string, isError bool) (Model, tea.Cmd) {
	m.notice = text
	m.noticeError = isError
	m.noticeSeq++
	seq := m.noticeSeq
	return m, tea.Tick(noticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
}

// --- Key handlers ---

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "q":
		if m.screen != ScreenJoin {
			return m.quit()
		}
	}

	switch m.screen {
	case ScreenMenu:
		return m.handleMenuKeys(msg)
	case ScreenJoin:
		return m.handleJoinKeys(msg)
	case ScreenWaiting:
		if msg.String() == "l" {
			return m.leave()
		}
	case ScreenPlaying, ScreenGameOver:
		return m.handleMatchKeys(msg)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.client != nil {
		m.client.Close()
	}
	return m, tea.Quit
}

func (m Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		m.client.CreateRoom(m.playerName)
	case "r":
		m.client.JoinRandom(m.playerName)
	case "j":
		m.joinCode = ""
		m.screen = ScreenJoin
	}
	return m, nil
}

func (m Model) handleJoinKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.screen = ScreenMenu
	case tea.KeyBackspace:
		if n := len(m.joinCode); n > 0 {
			m.joinCode = m.joinCode[:n-1]
		}
	case tea.KeyEnter:
		if m.joinCode != "" {
			m.client.JoinRoom(m.joinCode, m.playerName)
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if len(m.joinCode) >= maxCodeLength {
				break
			}
			if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
				m.joinCode += strings.ToUpper(string(r))
			}
		}
	}
	return m, nil
}

func (m Model) handleMatchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "w":
		if m.screen == ScreenPlaying {
			m.movePaddle(-PaddleStep)
		}
	case "down", "s":
		if m.screen == ScreenPlaying {
			m.movePaddle(PaddleStep)
		}
	case "m":
		m.client.RequestRematch()
		return m.setNotice("Rematch requested", false)
	case "l":
		return m.leave()
	}
	return m, nil
}

func (m *Model) movePaddle(dy float64) {
	m.paddleY = game.ClampPaddle(m.paddleY + dy)
	m.client.Move(m.paddleY)
}

func (m Model) leave() (tea.Model, tea.Cmd) {
	m.client.LeaveRoom()
	m.roomID = ""
	m.players = nil
	m.frame = protocol.UpdatePayload{}
	m.winner = ""
	m.screen = ScreenMenu
	return m, nil
}

// --- View ---

func (m Model) View() string {
	if m.disconnected {
		return m.renderCentered("Disconnected from server.\nPress Ctrl+C to exit.")
	}

	var content string
	switch m.screen {
	case ScreenConnecting:
		content = "Connecting to server..."
	case ScreenMenu:
		content = RenderMenu(m.playerName)
	case ScreenJoin:
		content = RenderJoinPrompt(m.joinCode)
	case ScreenWaiting:
		content = RenderWaiting(m.roomID)
	case ScreenPlaying:
		content = m.renderMatch(RenderControls())
	case ScreenGameOver:
		content = m.renderMatch(RenderGameOver(m.winner, m.won()))
	}

	if n := RenderNotice(m.notice, m.noticeError); n != "" {
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", n)
	}
	return m.renderCentered(content)
}

func (m Model) renderMatch(footer string) string {
	header := titleStyle.Render("ROOM "+m.roomID) + "   " + RenderScores(m.frame.Players)
	return lipgloss.JoinVertical(lipgloss.Center,
		header,
		RenderField(m.frame, m.playerID),
		footer,
	)
}

func (m Model) renderCentered(content string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// won reports whether the finished match was won by this client.
func (m Model) won() bool {
	for _, p := range m.frame.Players {
		if p.ID == m.playerID {
			return p.Name == m.winner && p.Score >= game.WinScore
		}
	}
	return false
}

func (m Model) Screen() Screen {
	return m.screen
}

func (m Model) PlayerID() string {
	return m.playerID
}
