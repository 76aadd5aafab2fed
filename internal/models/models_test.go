package models_test

import (
	"testing"

	"claimboard/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProfileBeforeCreate_GeneratesUUID(t *testing.T) {
	profile := &models.Profile{Email: "a@example.com", PasswordHash: "x"}
	assert.Empty(t, profile.ID)

	err := profile.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.NotEmpty(t, profile.ID)
	_, parseErr := uuid.Parse(profile.ID)
	assert.NoError(t, parseErr, "Profile ID must be a valid UUID string")
}

func TestProfileBeforeCreate_PreservesExistingID(t *testing.T) {
	existing := uuid.New().String()
	profile := &models.Profile{ID: existing, Email: "a@example.com"}

	err := profile.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existing, profile.ID)
}

func TestProfileName_DefaultsToEmail(t *testing.T) {
	tests := []struct {
		name    string
		profile models.Profile
		want    string
	}{
		{"with display name", models.Profile{Email: "a@example.com", DisplayName: "Alice"}, "Alice"},
		{"without display name", models.Profile{Email: "a@example.com"}, "a@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.Name())
		})
	}
}

func TestValidClaimType(t *testing.T) {
	tests := []struct {
		claimType string
		want      bool
	}{
		{models.ClaimTypeFact, true},
		{models.ClaimTypeValue, true},
		{models.ClaimTypePolicy, true},
		{"opinion", false},
		{"", false},
		{"FACT", false},
	}
	for _, tt := range tests {
		t.Run(tt.claimType, func(t *testing.T) {
			assert.Equal(t, tt.want, models.ValidClaimType(tt.claimType))
		})
	}
}

func TestValidStance(t *testing.T) {
	tests := []struct {
		stance string
		want   bool
	}{
		{models.StanceSupports, true},
		{models.StanceContradicts, true},
		{"neutral", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.stance, func(t *testing.T) {
			assert.Equal(t, tt.want, models.ValidStance(tt.stance))
		})
	}
}

func TestReplyBeforeCreate_DefaultsToPending(t *testing.T) {
	reply := &models.Reply{ClaimID: "c1", Text: "x", Stance: models.StanceSupports, AuthorID: "u1"}

	err := reply.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, reply.Status)
	assert.NotEmpty(t, reply.ID)
	assert.False(t, reply.Terminal())
}

func TestReplyTerminal(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{models.StatusPending, false},
		{models.StatusAccepted, true},
		{models.StatusRejected, true},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			r := models.Reply{Status: tt.status}
			assert.Equal(t, tt.want, r.Terminal())
		})
	}
}

func TestThreadHasParticipant(t *testing.T) {
	thread := models.Thread{ClaimOwnerID: "owner", ReplyAuthorID: "author"}

	assert.True(t, thread.HasParticipant("owner"))
	assert.True(t, thread.HasParticipant("author"))
	assert.False(t, thread.HasParticipant("stranger"))
	assert.False(t, thread.HasParticipant(""))
}

func TestThreadHasParticipant_SelfReply(t *testing.T) {
	// A claim author replying to their own claim yields a thread with both
	// slots pointing at the same account.
	thread := models.Thread{ClaimOwnerID: "solo", ReplyAuthorID: "solo"}

	assert.True(t, thread.HasParticipant("solo"))
	assert.False(t, thread.HasParticipant("other"))
}

func TestMessageEvent(t *testing.T) {
	msg := &models.Message{ThreadID: "t1", SenderID: "u1", Body: "hello"}
	msg.ID = 42

	ev := models.MessageEvent(msg)

	assert.Equal(t, models.EventMessage, ev.Type)
	assert.Equal(t, "t1", ev.ThreadID)
	assert.Equal(t, uint(42), ev.MessageID)
	assert.Equal(t, "u1", ev.SenderID)
	assert.Equal(t, "hello", ev.Body)
}
