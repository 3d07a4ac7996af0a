package services_test

import (
	"chat-room/auth"
	"chat-room/domain"
	"chat-room/errors"
	"chat-room/mocks"
	"chat-room/repositories"
	"chat-room/services"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// upsertOn replays the mutation on a copy of the given room, the way the badger repository does.
func upsertOn(stored *domain.Room) func(domain.RoomID, repositories.RoomMutation) (domain.Room, error) {
	return func(roomID domain.RoomID, mutate repositories.RoomMutation) (domain.Room, error) {
		exists := stored != nil
		room := domain.NewRoom(roomID, time.Now().UTC())
		if exists {
			copied := *stored
			copied.Members = append([]string(nil), stored.Members...)
			room = &copied
		}
		if err := mutate(room, exists); err != nil {
			return domain.Room{}, err
		}
		return *room, nil
	}
}

func TestAdmissionService_Admit(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	rooms := mocks.NewMockIRoomRepository(ctrl)
	presence := mocks.NewMockPresenceChecker(ctrl)
	issuer := auth.NewTokenIssuer("a-long-enough-test-secret", time.Hour)
	svc := services.NewAdmissionService(rooms, presence, issuer, log)

	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)
	existing := &domain.Room{ID: "general", PasswordHash: hash, Members: []string{"alice"}}

	t.Run("should create the room on first join", func(t *testing.T) {
		req := require.New(t)
		var saved domain.Room
		rooms.EXPECT().
			Upsert(domain.RoomID("general"), gomock.Any()).
			DoAndReturn(func(roomID domain.RoomID, mutate repositories.RoomMutation) (domain.Room, error) {
				room, err := upsertOn(nil)(roomID, mutate)
				saved = room
				return room, err
			}).
			Times(1)
		presence.EXPECT().HasUsername(domain.RoomID("general"), "alice").Return(false)

		grant, err := svc.Admit(auth.JoinRequest{RoomID: "general", Password: "secret", Username: "alice"})

		req.NoError(err)
		req.True(grant.Created)
		req.Equal("Room general created", grant.Message())
		req.Equal([]string{"alice"}, saved.Members)
		req.NotEqual("secret", saved.PasswordHash)

		claims, err := issuer.Validate(grant.Token)
		req.NoError(err)
		req.Equal("general", claims.Room)
		req.Equal("alice", claims.Username)
	})

	t.Run("should let a known member come back", func(t *testing.T) {
		req := require.New(t)
		rooms.EXPECT().Upsert(domain.RoomID("general"), gomock.Any()).DoAndReturn(upsertOn(existing))
		presence.EXPECT().HasUsername(domain.RoomID("general"), "alice").Return(false)

		grant, err := svc.Admit(auth.JoinRequest{RoomID: "general", Password: "secret", Username: " alice "})

		req.NoError(err)
		req.False(grant.Created)
		req.Equal("alice", grant.Username)
		req.Equal("Joined room general", grant.Message())
	})

	t.Run("should fail with a wrong password", func(t *testing.T) {
		req := require.New(t)
		rooms.EXPECT().Upsert(domain.RoomID("general"), gomock.Any()).DoAndReturn(upsertOn(existing))
		// Presence is never consulted before the password is verified
		presence.EXPECT().HasUsername(gomock.Any(), gomock.Any()).Times(0)

		grant, err := svc.Admit(auth.JoinRequest{RoomID: "general", Password: "guess", Username: "bob"})

		req.ErrorIs(err, errors.ErrWrongPassword)
		req.Empty(grant.Token)
	})

	t.Run("should fail when the username is online", func(t *testing.T) {
		req := require.New(t)
		rooms.EXPECT().Upsert(domain.RoomID("general"), gomock.Any()).DoAndReturn(upsertOn(existing))
		presence.EXPECT().HasUsername(domain.RoomID("general"), "alice").Return(true)

		_, err := svc.Admit(auth.JoinRequest{RoomID: "general", Password: "secret", Username: "alice"})

		req.ErrorIs(err, errors.ErrUsernameTaken)
	})

	t.Run("should fail on an invalid request", func(t *testing.T) {
		req := require.New(t)
		// Repository should NEVER be called
		rooms.EXPECT().Upsert(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Admit(auth.JoinRequest{RoomID: "", Password: "secret", Username: "alice"})

		req.ErrorIs(err, errors.ErrInvalidRequest)
	})
}

func TestAdmissionService_Room(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	rooms := mocks.NewMockIRoomRepository(ctrl)
	svc := services.NewAdmissionService(rooms, mocks.NewMockPresenceChecker(ctrl),
		auth.NewTokenIssuer("a-long-enough-test-secret", time.Hour), log)

	t.Run("should return the durable record", func(t *testing.T) {
		req := require.New(t)
		stored := domain.Room{ID: "general", Members: []string{"alice", "bob"}}
		rooms.EXPECT().GetRoom(domain.RoomID("general")).Return(stored, nil)

		room, err := svc.Room("general")

		req.NoError(err)
		req.Equal(stored, room)
	})

	t.Run("should report an expired room as not found", func(t *testing.T) {
		rooms.EXPECT().GetRoom(domain.RoomID("gone")).Return(domain.Room{}, errors.ErrRoomNotFound)

		_, err := svc.Room("gone")

		require.ErrorIs(t, err, errors.ErrRoomNotFound)
	})
}
