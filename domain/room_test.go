package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRoom_AddMember_IsIdempotent(t *testing.T) {
	req := require.New(t)
	room := NewRoom("R1", time.Now().UTC())

	// Given Alice joined twice and Bob once
	room.AddMember("Alice")
	room.AddMember("Bob")
	room.AddMember("Alice")

	// Then the durable member list holds each username once, in join order
	req.Equal([]string{"Alice", "Bob"}, room.Members)
	req.True(room.HasMember("Bob"))
	req.False(room.HasMember("Carol"))
}
