package e2e

import (
	"chat-room/domain"
	"chat-room/errors"
	"chat-room/infrastructure/http/protocol"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type testChatSuite struct {
	BaseChatSuite
}

func TestChatSuite(t *testing.T) {
	suite.Run(t, &testChatSuite{})
}

func (s *testChatSuite) TestConversationBetweenThreeUsers() {
	ctx := context.Background()
	room := domain.RoomID("lunch-" + uuid.NewString()[:8])

	alice, history := s.Join(room, "secret", "alice", 0)
	s.Require().Empty(history.Messages)

	bob, _ := s.Join(room, "secret", "bob", 200*time.Millisecond)
	s.Require().Equal([]string{"alice", "bob"}, Expect[protocol.Presence](alice).Users)

	s.step("Alice asks, Bob replies")
	s.Require().NoError(alice.Conn.Send(ctx, "lunch?", nil))
	question := Expect[protocol.Posted](alice).Message
	s.Require().Equal(question, Expect[protocol.Posted](bob).Message)
	questionID := uuid.MustParse(question.ID)

	s.Require().NoError(bob.Conn.Send(ctx, "yes", &questionID))
	answer := Expect[protocol.Posted](bob).Message
	Expect[protocol.Posted](alice)
	s.Require().NotNil(answer.ReplyTo)
	s.Require().Equal("alice", answer.ReplyTo.Author)
	s.Require().Equal("lunch?", answer.ReplyTo.Content)

	s.step("Bob may not delete Alice's message")
	s.Require().NoError(bob.Conn.Delete(ctx, questionID))
	s.Require().Equal("forbidden", Expect[protocol.Failure](bob).Code)
	Silent(alice)

	s.step("Alice deletes her message")
	s.Require().NoError(alice.Conn.Delete(ctx, questionID))
	s.Require().Equal(questionID, Expect[protocol.Deleted](alice).MessageID)
	s.Require().Equal(questionID, Expect[protocol.Deleted](bob).MessageID)

	s.step("Carol sees the reply without its snapshot")
	carol, history := s.Join(room, "secret", "carol", 0)
	s.Require().Len(history.Messages, 1)
	s.Require().Equal("yes", history.Messages[0].Content)
	s.Require().Nil(history.Messages[0].ReplyTo)
	Expect[protocol.Presence](alice)
	Expect[protocol.Presence](bob)

	s.step("Bob types, the others see it expire")
	s.Require().NoError(bob.Conn.Typing(ctx))
	for _, p := range []*Participant{alice, carol} {
		typing := Expect[protocol.TypingChanged](p)
		s.Require().Equal(protocol.TypingChanged{Username: "bob"}, typing)
	}
	for _, p := range []*Participant{alice, carol} {
		stopped := Expect[protocol.TypingChanged](p)
		s.Require().Equal(protocol.TypingChanged{Username: "bob", Stopped: true}, stopped)
	}
	Silent(bob)

	s.step("Bob leaves")
	s.Require().NoError(bob.Conn.Close())
	s.Require().Equal([]string{"alice", "carol"}, Expect[protocol.Presence](alice).Users)
	s.Require().Equal([]string{"alice", "carol"}, Expect[protocol.Presence](carol).Users)
}

func (s *testChatSuite) TestAdmissionRules() {
	room := domain.RoomID("private-" + uuid.NewString()[:8])

	s.step("The first join creates the room")
	grant, err := s.Admit(room, "secret", "alice")
	s.Require().NoError(err)
	s.Require().True(grant.Created)

	s.step("A wrong password is refused")
	_, err = s.Admit(room, "wrong", "bob")
	s.Require().ErrorIs(err, errors.ErrWrongPassword)

	s.step("An online username is taken")
	s.Join(room, "secret", "carol", 0)
	_, err = s.Admit(room, "secret", "carol")
	s.Require().ErrorIs(err, errors.ErrUsernameTaken)
}
