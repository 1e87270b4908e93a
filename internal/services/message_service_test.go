package services

import (
	"net/http"
	"testing"

	"poolservice_backend/internal/services/dto"
	"poolservice_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessages_ReadAndReplied(t *testing.T) {
	env := newTestEnv(t)

	for _, subject := range []string{"Spa repair", "Weekly cleaning"} {
		_, err := env.svc.IntakeService.SubmitMessage(env.db, &dto.MessageForm{
			Name: "Sam", Email: "sam@example.com", Subject: subject, Message: "Please call me back.",
		})
		require.NoError(t, err)
	}

	unread, err := env.svc.MessageService.CountUnread(env.db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	list, err := env.svc.MessageService.List(env.db, nil, "spa", 1, 20)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	msg := list.Items[0]

	replied, err := env.svc.MessageService.MarkReplied(env.db, msg.ID)
	require.NoError(t, err)
	assert.True(t, replied.Replied)
	assert.True(t, replied.Read)
	assert.NotNil(t, replied.ReadAt)

	unread, err = env.svc.MessageService.CountUnread(env.db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	read := true
	list, err = env.svc.MessageService.List(env.db, &read, "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
}

func TestMessages_DeleteHidesRow(t *testing.T) {
	env := newTestEnv(t)

	msg, err := env.svc.IntakeService.SubmitMessage(env.db, &dto.MessageForm{
		Name: "Sam", Email: "sam@example.com", Subject: "Hi", Message: "Hello there",
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.MessageService.Delete(env.db, msg.ID))

	_, err = env.svc.MessageService.Get(env.db, msg.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)

	unread, err := env.svc.MessageService.CountUnread(env.db)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
