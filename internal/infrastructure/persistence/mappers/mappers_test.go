package mappers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxmas/internal/domain/user"
	"boxmas/internal/infrastructure/persistence/models"
)

func TestUserMapper_LegacyRowLoads(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	model := &models.UserModel{
		ID:           3,
		SID:          "usr_legacy",
		Name:         "",
		Email:        "Legacy@Example",
		PasswordHash: "plaintext1",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	entity, err := NewUserMapper().ToEntity(model)
	require.NoError(t, err)
	assert.Equal(t, "Legacy@Example", entity.Email())
	assert.Equal(t, "plaintext1", entity.PasswordHash())

	back := NewUserMapper().ToModel(entity)
	assert.Equal(t, model, back)
}

func TestSessionMapper_StoresUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	issued := time.Date(2024, 1, 1, 8, 0, 0, 0, loc)

	session := &user.Session{
		ID:         "ses_1",
		UserID:     1,
		Token:      "tok",
		ExpiresAt:  issued.Add(time.Hour),
		LastUsedAt: issued,
		CreatedAt:  issued,
	}

	model := NewSessionMapper().ToModel(session)
	assert.Equal(t, time.UTC, model.CreatedAt.Location())
	assert.True(t, model.CreatedAt.Equal(issued))

	assert.Equal(t, "tok", NewSessionMapper().ToDomain(model).Token)
	assert.Nil(t, NewSessionMapper().ToDomain(nil))
}
