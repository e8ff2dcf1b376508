package main

import (
	"flag"
	"fmt"
	"os"
	"os/user"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hersh/gopong/internal/config"
	"github.com/hersh/gopong/internal/logging"
	"github.com/hersh/gopong/internal/netclient"
	"github.com/hersh/gopong/internal/tui"
)

func main() {
	serverAddr := flag.String("server", "ws://localhost:3000/ws", "WebSocket server address")
	playerName := flag.String("name", "", "Player name (defaults to OS username)")
	logFile := flag.String("log", "", "Write debug logs to this file")
	flag.Parse()

	// The terminal belongs to the UI, so logs only go to a file.
	log.Logger = zerolog.Nop()
	if *logFile != "" {
		logs, err := logging.Setup(config.LogConfig{Level: "debug", Format: "json", File: *logFile, MaxSizeMB: 10, MaxBackups: 1})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer logs.Close()
	}

	name := *playerName
	if name == "" {
		if u, err := user.Current(); err == nil && u.Username != "" {
			name = u.Username
		} else {
			name = "Player"
		}
	}

	client, err := netclient.Dial(*serverAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to server at %s: %v\n", *serverAddr, err)
		fmt.Fprintf(os.Stderr, "Make sure the server is running (go run ./cmd/server)\n")
		os.Exit(1)
	}
	defer client.Close()

	p := tea.NewProgram(tui.NewModel(name, client), tea.WithAltScreen())

	// readPump forwards server frames into the program as tea.Msgs.
	client.Start(p)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
