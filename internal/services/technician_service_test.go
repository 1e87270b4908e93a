package services

import (
	"net/http"
	"sync"
	"testing"

	"poolservice_backend/internal/models"
	"poolservice_backend/internal/repositories"
	"poolservice_backend/internal/testutil"
	"poolservice_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTechnician_DeactivateAndActivate(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateUser(t, env.db, models.UserRoleTechnician, "tech@example.com")

	user, err := env.svc.TechnicianService.Deactivate(env.db, tech.ID)
	require.NoError(t, err)
	assert.False(t, user.IsActive)
	assert.NotNil(t, user.DeactivatedAt)

	_, err = env.svc.TechnicianService.Deactivate(env.db, tech.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)

	user, err = env.svc.TechnicianService.Activate(env.db, tech.ID)
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.Nil(t, user.DeactivatedAt)

	sent := env.mailer.SentTo("tech@example.com")
	require.Len(t, sent, 2)
	assert.Equal(t, "Your account has been deactivated", sent[0].Subject)
	assert.Equal(t, "Your account has been activated", sent[1].Subject)
}

func TestTechnician_EndContractIsFinal(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateUser(t, env.db, models.UserRoleTechnician, "tech@example.com")

	user, err := env.svc.TechnicianService.EndContract(env.db, tech.ID)
	require.NoError(t, err)
	assert.False(t, user.IsActive)
	assert.NotNil(t, user.ContractEndedAt)
	assert.False(t, user.CanSignIn())

	_, err = env.svc.TechnicianService.Activate(env.db, tech.ID)
	require.ErrorIs(t, err, apperrors.ErrContractEnded)

	assert.Len(t, env.mailer.SentTo("tech@example.com"), 1)
}

func TestTechnician_RejectsOtherRoles(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateUser(t, env.db, models.UserRoleAdmin, "admin@pools.test")

	_, err := env.svc.TechnicianService.Deactivate(env.db, admin.ID)
	require.ErrorIs(t, err, apperrors.ErrNotATechnician)
	assert.Empty(t, env.mailer.Sent())
}

func TestTechnician_List(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, models.UserRoleTechnician, "a@example.com")
	b := testutil.CreateUser(t, env.db, models.UserRoleTechnician, "b@example.com")
	testutil.CreateUser(t, env.db, models.UserRoleAdmin, "admin@pools.test")

	_, err := env.svc.TechnicianService.Deactivate(env.db, b.ID)
	require.NoError(t, err)

	all, err := env.svc.TechnicianService.List(env.db, nil, "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)

	active := true
	onlyActive, err := env.svc.TechnicianService.List(env.db, &active, "", 1, 20)
	require.NoError(t, err)
	require.Len(t, onlyActive.Items, 1)
	assert.Equal(t, "a@example.com", onlyActive.Items[0].Email)
}

func TestTechnician_ConcurrentDeactivateSendsOneEmail(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateUser(t, env.db, models.UserRoleTechnician, "tech@example.com")

	const attempts = 5
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.TechnicianService.Deactivate(env.db, tech.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, appErr.HTTPCode)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, env.mailer.SentTo("tech@example.com"), 1)
}

func TestUpdateTechnician_GuardsState(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateUser(t, env.db, models.UserRoleTechnician, "tech@example.com")
	users := repositories.NewUserRepository()

	_, err := env.svc.TechnicianService.Deactivate(env.db, tech.ID)
	require.NoError(t, err)
	_, err = env.svc.TechnicianService.EndContract(env.db, tech.ID)
	require.NoError(t, err)

	// An activation that read the row before the contract ended must not
	// bring it back.
	wasActive := false
	err = users.UpdateTechnician(env.db, tech.ID, &wasActive, map[string]interface{}{"is_active": true})
	require.ErrorIs(t, err, repositories.ErrTechnicianStateChanged)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", tech.ID).Error)
	assert.False(t, stored.IsActive)
	assert.NotNil(t, stored.ContractEndedAt)
}
