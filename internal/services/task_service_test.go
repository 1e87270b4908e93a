package services

import (
	"testing"

	"poolservice_backend/internal/models"
	"poolservice_backend/internal/repositories"
	"poolservice_backend/internal/services/dto"
	"poolservice_backend/internal/testutil"
	"poolservice_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createServiceRequest(t *testing.T, env *testEnv) *models.ServiceRequest {
	t.Helper()
	sr, err := env.svc.ServiceRequestService.Create(env.db, &dto.ServiceRequestRequest{
		Name:        "Dana Whitfield",
		Email:       "dana@example.com",
		Zip:         "33139",
		Phone:       "555-0142",
		Service:     "Weekly cleaning",
		Description: "Green water after the storm.",
	})
	require.NoError(t, err)
	return sr
}

func TestCreateTask_MarksRequestAssigned(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateUser(t, env.db, models.UserRoleTechnician, "tech@example.com")
	sr := createServiceRequest(t, env)

	task, err := env.svc.ServiceRequestService.CreateTask(env.db, sr.ID, &dto.CreateTaskRequest{
		TechnicianID:  tech.ID,
		ScheduledDate: "2026-05-04",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusPending, task.Status)
	require.NotNil(t, task.ScheduledDate)

	stored, err := env.svc.ServiceRequestService.Get(env.db, sr.ID)
	require.NoError(t, err)
	assert.True(t, stored.Assigned)
	require.NotNil(t, stored.UserID)
	assert.Equal(t, tech.ID, *stored.UserID)
	assert.Len(t, stored.Tasks, 1)
}

func TestCreateTask_RequiresActiveTechnician(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateUser(t, env.db, models.UserRoleAdmin, "admin@pools.test")
	tech := testutil.CreateUser(t, env.db, models.UserRoleTechnician, "tech@example.com")
	sr := createServiceRequest(t, env)

	_, err := env.svc.ServiceRequestService.CreateTask(env.db, sr.ID, &dto.CreateTaskRequest{TechnicianID: admin.ID})
	fields, ok := apperrors.Fields(err)
	require.True(t, ok)
	assert.Contains(t, fields, "user_id")

	_, err = env.svc.TechnicianService.Deactivate(env.db, tech.ID)
	require.NoError(t, err)
	_, err = env.svc.ServiceRequestService.CreateTask(env.db, sr.ID, &dto.CreateTaskRequest{TechnicianID: tech.ID})
	_, ok = apperrors.Fields(err)
	require.True(t, ok)

	stored, err := env.svc.ServiceRequestService.Get(env.db, sr.ID)
	require.NoError(t, err)
	assert.False(t, stored.Assigned)
	assert.Empty(t, stored.Tasks)
}

func TestAssignedTaskWorkflow(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateUser(t, env.db, models.UserRoleTechnician, "tech@example.com")
	other := testutil.CreateUser(t, env.db, models.UserRoleTechnician, "other@example.com")
	sr := createServiceRequest(t, env)

	task, err := env.svc.ServiceRequestService.CreateTask(env.db, sr.ID, &dto.CreateTaskRequest{TechnicianID: tech.ID})
	require.NoError(t, err)

	assigned, err := env.svc.TaskService.Assign(env.db, task.ID, &dto.AssignTaskRequest{})
	require.NoError(t, err)
	assert.Equal(t, tech.ID, assigned.UserID)
	assert.Equal(t, models.AssignedTaskStatusAssigned, assigned.Status)

	mine, err := env.svc.TaskService.ListAssigned(env.db, testutil.Identity(tech), "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.Total)

	// Only the owner moves the task.
	_, err = env.svc.TaskService.Start(env.db, testutil.Identity(other), assigned.ID)
	require.ErrorIs(t, err, apperrors.ErrNotTaskOwner)

	// Cannot complete before starting.
	_, err = env.svc.TaskService.Complete(env.db, testutil.Identity(tech), assigned.ID, &dto.CompleteTaskRequest{})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)

	started, err := env.svc.TaskService.Start(env.db, testutil.Identity(tech), assigned.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssignedTaskStatusInProgress, started.Status)
	assert.NotNil(t, started.StartedAt)

	done, err := env.svc.TaskService.Complete(env.db, testutil.Identity(tech), assigned.ID, &dto.CompleteTaskRequest{
		Feedback:   "Shocked and balanced.",
		AfterImage: "uploads/after.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AssignedTaskStatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedAt)
	require.NotNil(t, done.Feedback)
	assert.Equal(t, "Shocked and balanced.", *done.Feedback)
	assert.Nil(t, done.BeforeImage)
}

func TestGetTask_TechnicianSeesOnlyOwn(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateUser(t, env.db, models.UserRoleTechnician, "tech@example.com")
	other := testutil.CreateUser(t, env.db, models.UserRoleTechnician, "other@example.com")
	admin := testutil.CreateUser(t, env.db, models.UserRoleAdmin, "admin@pools.test")
	sr := createServiceRequest(t, env)

	task, err := env.svc.ServiceRequestService.CreateTask(env.db, sr.ID, &dto.CreateTaskRequest{TechnicianID: tech.ID})
	require.NoError(t, err)

	_, err = env.svc.TaskService.Get(env.db, testutil.Identity(tech), task.ID)
	require.NoError(t, err)
	_, err = env.svc.TaskService.Get(env.db, testutil.Identity(admin), task.ID)
	require.NoError(t, err)
	_, err = env.svc.TaskService.Get(env.db, testutil.Identity(other), task.ID)
	require.ErrorIs(t, err, apperrors.ErrNotTaskOwner)

	list, err := env.svc.TaskService.List(env.db, repositories.TaskFilter{UserID: other.ID, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}
