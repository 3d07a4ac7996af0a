package main

import (
	"bufio"
	"chat-room/domain"
	"chat-room/infrastructure/http/client"
	"chat-room/infrastructure/http/protocol"
	"chat-room/projection"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerURL     string        `env:"CHAT_SERVER_URL,default=http://localhost:8080"`
	RoomID        string        `env:"CHAT_ROOM_ID,required=true"`
	Password      string        `env:"CHAT_PASSWORD,required=true"`
	Username      string        `env:"CHAT_USERNAME,required=true"`
	TypingTimeout time.Duration `env:"TYPING_TIMEOUT,default=1500ms"`
	LogLevel      string        `env:"LOG_LEVEL,default=WARN"`
}

const usage = `Commands:
  <text>               send a message
  /reply <n> <text>    reply to message n
  /delete <n>          delete your message n
  /history             show the room timeline
  /who                 show who is online
  /quit                leave the room`

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// 1. Load configuration from environment variables.
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Setup context to handle termination signals (Ctrl+C).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Admission, then the websocket.
	c := client.New(log, config.ServerURL, config.TypingTimeout)
	grant, err := c.Admit(ctx, domain.RoomID(config.RoomID), config.Password, config.Username)
	if err != nil {
		return exitRuntime, fmt.Errorf("admission refused: %w", err)
	}
	color.Green.Println(grant.Message)

	conn, err := c.Connect(ctx, grant)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to %s: %w", config.ServerURL, err)
	}
	defer func() {
		_ = conn.Close()
	}()

	view := &screen{timeline: projection.NewTimeline(grant.Username)}
	go view.follow(conn)

	color.Gray.Println(usage)

	// 4. Input loop, until EOF, /quit or a signal.
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return exitOK, nil
		case <-conn.Done():
			if err := conn.Err(); err != nil {
				return exitRuntime, fmt.Errorf("connection lost: %w", err)
			}
			return exitOK, nil
		case line, ok := <-lines:
			if !ok {
				return exitOK, nil
			}
			quit, err := view.execute(ctx, conn, strings.TrimSpace(line))
			if err != nil {
				color.Red.Println(err)
			}
			if quit {
				return exitOK, nil
			}
		}
	}
}

// screen renders the room and resolves the short message numbers typed by the user.
type screen struct {
	mu       sync.Mutex
	timeline *projection.Timeline
}

func (s *screen) follow(conn *client.Conn) {
	for e := range conn.Events() {
		s.mu.Lock()
		s.timeline.Apply(e)
		s.render(e)
		s.mu.Unlock()
	}
}

func (s *screen) render(e protocol.ServerEvent) {
	switch evt := e.(type) {
	case protocol.History:
		for i, m := range s.timeline.Messages {
			printMessage(i+1, m)
		}
	case protocol.Posted:
		printMessage(len(s.timeline.Messages), evt.Message)
	case protocol.Deleted:
		color.Gray.Printf("  a message was deleted (%s)\n", evt.MessageID)
	case protocol.Presence:
		color.Cyan.Printf("  online: %s\n", strings.Join(evt.Users, ", "))
	case protocol.TypingChanged:
		if len(s.timeline.Typing) > 0 {
			color.Gray.Printf("  %s typing...\n", strings.Join(s.timeline.Typing, ", "))
		}
	case protocol.Failure:
		color.Red.Printf("  %s: %s\n", evt.Code, evt.Message)
	}
}

func printMessage(n int, m protocol.MessageView) {
	if m.ReplyTo != nil {
		color.Gray.Printf("      ↳ %s: %s\n", m.ReplyTo.Author, m.ReplyTo.Content)
	}
	fmt.Printf("%s %s %s\n",
		color.Gray.Sprintf("[%d %s]", n, m.Timestamp.Local().Format(time.TimeOnly)),
		color.Yellow.Sprint(m.Author+":"),
		m.Content,
	)
}

func (s *screen) execute(ctx context.Context, conn *client.Conn, line string) (bool, error) {
	if line == "" {
		return false, nil
	}
	command, rest, _ := strings.Cut(line, " ")
	switch command {
	case "/quit":
		return true, nil
	case "/who":
		s.mu.Lock()
		defer s.mu.Unlock()
		table := newTable([]string{"Online", "Typing"})
		for _, user := range s.timeline.Users {
			typing := ""
			for _, t := range s.timeline.Typing {
				if t == user {
					typing = "yes"
				}
			}
			table.Append([]string{user, typing})
		}
		table.Render()
		return false, nil
	case "/history":
		s.mu.Lock()
		defer s.mu.Unlock()
		table := newTable([]string{"#", "Time", "Author", "Content", "Reply to"})
		for i, m := range s.timeline.Messages {
			reply := ""
			if m.ReplyTo != nil {
				reply = m.ReplyTo.Author + ": " + m.ReplyTo.Content
			}
			table.Append([]string{strconv.Itoa(i + 1), m.Timestamp.Local().Format(time.TimeOnly), m.Author, m.Content, reply})
		}
		table.Render()
		return false, nil
	case "/delete":
		id, err := s.messageID(strings.TrimSpace(rest))
		if err != nil {
			return false, err
		}
		return false, conn.Delete(ctx, id)
	case "/reply":
		n, text, _ := strings.Cut(rest, " ")
		id, err := s.messageID(n)
		if err != nil {
			return false, err
		}
		return false, conn.Send(ctx, text, &id)
	default:
		if err := conn.Typing(ctx); err != nil {
			return false, err
		}
		return false, conn.Send(ctx, line, nil)
	}
}

func (s *screen) messageID(n string) (uuid.UUID, error) {
	index, err := strconv.Atoi(n)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%q is not a message number", n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 1 || index > len(s.timeline.Messages) {
		return uuid.Nil, fmt.Errorf("no message %d", index)
	}
	return uuid.Parse(s.timeline.Messages[index-1].ID)
}

func newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	return table
}
