package e2e

import (
	"chat-room/domain"
	"chat-room/infrastructure/http/client"
	"chat-room/infrastructure/http/protocol"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

const eventTimeout = 3 * time.Second

type BaseChatSuite struct {
	suite.Suite
	Config Config
	log    *slog.Logger
	stack  *stack
	dir    string
}

// SetupSuite loads the environment configuration and starts a server when none is given.
func (s *BaseChatSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	s.log = logs.GetLoggerFromLevel(slog.LevelWarn)

	if s.Config.ServerURL == "" {
		s.dir, err = os.MkdirTemp("", "chat-room-e2e-*")
		s.Require().NoError(err)
		s.stack, err = startStack(s.log, s.dir)
		s.Require().NoError(err)
		s.Config.ServerURL = s.stack.URL()
	}
}

func (s *BaseChatSuite) TearDownSuite() {
	if s.stack != nil {
		s.stack.Close()
		_ = os.RemoveAll(s.dir)
	}
}

// Participant is one user connected to a room.
type Participant struct {
	Name string
	Conn *client.Conn
	s    *BaseChatSuite
}

// Join admits the user and opens its websocket, consuming the history and presence that follow.
func (s *BaseChatSuite) Join(roomID domain.RoomID, password, username string, typingTimeout time.Duration) (*Participant, protocol.History) {
	s.step(fmt.Sprintf("%s joins %s", username, roomID))
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	c := client.New(s.log, s.Config.ServerURL, typingTimeout)
	grant, err := c.Admit(ctx, roomID, password, username)
	s.Require().NoError(err, "admission of "+username)
	conn, err := c.Connect(ctx, grant)
	s.Require().NoError(err, "connection of "+username)
	s.T().Cleanup(func() { _ = conn.Close() })

	p := &Participant{Name: username, Conn: conn, s: s}
	history := Expect[protocol.History](p)
	Expect[protocol.Presence](p)
	return p, history
}

// Admit only asks for a grant.
func (s *BaseChatSuite) Admit(roomID domain.RoomID, password, username string) (protocol.AdmitResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()
	return client.New(s.log, s.Config.ServerURL, 0).Admit(ctx, roomID, password, username)
}

func (s *BaseChatSuite) step(title string) {
	header := fmt.Sprintf("  ====== %s ======", title)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

func (p *Participant) log(e protocol.ServerEvent) {
	line := fmt.Sprintf("%s <- %T", p.Name, e)
	if p.s.Config.DebugJSON {
		if raw, err := json.MarshalIndent(e, "", "  "); err == nil {
			line += "\n" + string(raw)
		}
	}
	if p.s.Config.Colours {
		line = color.Cyan.Sprint(line)
	}
	p.s.T().Log(line)
}

// Expect waits for the next event of the participant, which must be a T.
func Expect[T protocol.ServerEvent](p *Participant) T {
	p.s.T().Helper()
	select {
	case e, ok := <-p.Conn.Events():
		p.s.Require().True(ok, "%s: connection closed", p.Name)
		p.log(e)
		typed, ok := e.(T)
		p.s.Require().Truef(ok, "%s: expected %T, got %T (%+v)", p.Name, *new(T), e, e)
		return typed
	case <-time.After(eventTimeout):
		p.s.Require().FailNowf("no event", "%s: expected %T", p.Name, *new(T))
		return *new(T)
	}
}

// Silent checks nothing arrives for a short while.
func Silent(p *Participant) {
	p.s.T().Helper()
	select {
	case e, ok := <-p.Conn.Events():
		if ok {
			p.s.Require().Failf("unexpected event", "%s: %T %+v", p.Name, e, e)
		}
	case <-time.After(100 * time.Millisecond):
	}
}
