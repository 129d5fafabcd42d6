package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"supaboard/internal/apperrors"
)

func setupProjectTest(t *testing.T) (*ProjectService, *fakeStores) {
	t.Helper()
	stores := newFakeStores()
	return NewProjectService(stores.projects, zap.NewNop()), stores
}

func TestProjectService_CreateProject(t *testing.T) {
	svc, _ := setupProjectTest(t)
	creator := uuid.New()

	project, err := svc.CreateProject(context.Background(), creator, "My Shop", "demo")
	require.NoError(t, err)

	assert.Equal(t, "my-shop-supabase-clone", project.Slug)
	assert.Equal(t, creator, project.CreatorID)
	assert.Equal(t, "demo", project.Description)
	require.Len(t, project.ApiKeys, 1)
	assert.Equal(t, "My Shop Api Key", project.ApiKeys[0].Name)
	assert.Len(t, project.ApiKeys[0].Key, 64)
}

func TestProjectService_CreateProject_SlugSequence(t *testing.T) {
	svc, _ := setupProjectTest(t)
	creator := uuid.New()

	for n := 0; n < 4; n++ {
		project, err := svc.CreateProject(context.Background(), creator, "Shop", "")
		require.NoError(t, err)

		want := "shop-supabase-clone"
		if n > 0 {
			want = fmt.Sprintf("shop-supabase-clone-%d", n)
		}
		assert.Equal(t, want, project.Slug)
	}
}

func TestProjectService_CreateProject_SlugCollidesAcrossUsers(t *testing.T) {
	svc, _ := setupProjectTest(t)

	first, err := svc.CreateProject(context.Background(), uuid.New(), "Shop", "")
	require.NoError(t, err)
	second, err := svc.CreateProject(context.Background(), uuid.New(), "Shop", "")
	require.NoError(t, err)

	assert.Equal(t, "shop-supabase-clone", first.Slug)
	assert.Equal(t, "shop-supabase-clone-1", second.Slug)
}

func TestProjectService_CreateProject_Validation(t *testing.T) {
	svc, stores := setupProjectTest(t)

	_, err := svc.CreateProject(context.Background(), uuid.Nil, "Shop", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateProject(context.Background(), uuid.New(), "   ", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	assert.Zero(t, stores.projects.creates)
}

func TestProjectService_CreateProject_StoreFailure(t *testing.T) {
	svc, stores := setupProjectTest(t)
	stores.projects.createErr = errors.New("connection reset")

	_, err := svc.CreateProject(context.Background(), uuid.New(), "Shop", "")
	require.ErrorIs(t, err, apperrors.ErrInternal)
	assert.Equal(t, "Failed to create project", apperrors.MessageOf(err))
}

func TestProjectService_ListProjects(t *testing.T) {
	svc, _ := setupProjectTest(t)
	ctx := context.Background()
	creator := uuid.New()

	empty, err := svc.ListProjects(ctx, creator)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.CreateProject(ctx, creator, "First", "")
	require.NoError(t, err)
	_, err = svc.CreateProject(ctx, creator, "Second", "")
	require.NoError(t, err)
	_, err = svc.CreateProject(ctx, uuid.New(), "Other", "")
	require.NoError(t, err)

	projects, err := svc.ListProjects(ctx, creator)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Second", projects[0].Name)
	assert.Equal(t, "First", projects[1].Name)
}

func TestProjectService_GetProjectBySlug_ScopedToOwner(t *testing.T) {
	svc, _ := setupProjectTest(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.CreateProject(ctx, owner, "Shop", "")
	require.NoError(t, err)

	got, err := svc.GetProjectBySlug(ctx, owner, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetProjectBySlug(ctx, uuid.New(), created.Slug)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.GetProjectBySlug(ctx, owner, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProjectService_DeleteProject(t *testing.T) {
	svc, _ := setupProjectTest(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.CreateProject(ctx, owner, "Shop", "")
	require.NoError(t, err)

	err = svc.DeleteProject(ctx, uuid.New(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, svc.DeleteProject(ctx, owner, created.ID))

	err = svc.DeleteProject(ctx, owner, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// Register, sign in, then create the same project twice.
func TestEndToEnd_ProjectSlugs(t *testing.T) {
	stores := newFakeStores()
	auth := NewAuthService(stores.users, stores.sessions, testSecret, zap.NewNop())
	projects := NewProjectService(stores.projects, zap.NewNop())
	users := NewUserService(stores.users, zap.NewNop())
	ctx := context.Background()

	_, err := auth.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	token, _, err := auth.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	user, err := auth.CurrentUser(ctx, token)
	require.NoError(t, err)

	first, err := projects.CreateProject(ctx, user.ID, "Shop", "")
	require.NoError(t, err)
	assert.Equal(t, "shop-supabase-clone", first.Slug)

	second, err := projects.CreateProject(ctx, user.ID, "Shop", "")
	require.NoError(t, err)
	assert.Equal(t, "shop-supabase-clone-1", second.Slug)

	me, err := users.GetMe(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, me.Projects, 2)
	assert.Equal(t, second.ID, me.Projects[0].ID)
}

func TestUserService_GetMe_NotFound(t *testing.T) {
	stores := newFakeStores()
	users := NewUserService(stores.users, zap.NewNop())

	_, err := users.GetMe(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
