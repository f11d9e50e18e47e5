package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("What is chlorophyll?")

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, RoleUser, msg.Role)
	assert.Equal(t, "What is chlorophyll?", msg.Content)
	assert.Nil(t, msg.Wolfram)

	ts, err := time.Parse(time.RFC3339, msg.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ts, 5*time.Second)
}

func TestNewUserMessage_UniqueIDs(t *testing.T) {
	a := NewUserMessage("a")
	b := NewUserMessage("b")
	assert.NotEqual(t, a.ID, b.ID)
}
