package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"makemeshort/internal/entities"
	"makemeshort/internal/models"
)

func TestUserGet_InvalidID(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Get("not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestUserGet_NotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Get("11111111-1111-1111-1111-111111111111")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserCreate_RejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Create(&models.CreateUserRequest{
		Username: "bob",
		Password: "secret123",
		Roles:    []string{"Wizard"},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserCreate_HashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	resp, err := svc.Create(&models.CreateUserRequest{
		Username: "bob",
		Password: "secret123",
		Roles:    []string{entities.RoleURLViewer},
	})
	require.NoError(t, err)

	stored, err := repo.FindByID(resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestUserEdit_PartialUpdate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user := seedUser(t, repo, "bob", "secret123", []string{entities.RoleURLViewer})

	name := "Bob Builder"
	resp, err := svc.Edit(user.ID, &models.EditUserRequest{FullName: &name})
	require.NoError(t, err)

	// Untouched fields survive the edit
	assert.Equal(t, "bob", resp.Username)
	assert.Equal(t, []string{entities.RoleURLViewer}, resp.Roles)
	require.NotNil(t, resp.FullName)
	assert.Equal(t, name, *resp.FullName)
}

func TestUserEdit_ReplacesRolesWholesale(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user := seedUser(t, repo, "bob", "secret123", entities.DefaultRoles)

	roles := []string{entities.RoleUserManager}
	resp, err := svc.Edit(user.ID, &models.EditUserRequest{Roles: &roles})
	require.NoError(t, err)
	assert.Equal(t, roles, resp.Roles)
}

func TestUserEdit_RehashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user := seedUser(t, repo, "bob", "secret123", entities.DefaultRoles)

	newPassword := "changed456"
	_, err := svc.Edit(user.ID, &models.EditUserRequest{Password: &newPassword})
	require.NoError(t, err)

	stored, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(newPassword)))
}

func TestUserEdit_RejectsUnknownRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user := seedUser(t, repo, "bob", "secret123", entities.DefaultRoles)

	roles := []string{"Wizard"}
	_, err := svc.Edit(user.ID, &models.EditUserRequest{Roles: &roles})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserList_ExcludesCaller(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	caller := seedUser(t, repo, "admin", "secret123", []string{entities.RoleSuperUser})
	seedUser(t, repo, "alice", "secret123", entities.DefaultRoles)
	seedUser(t, repo, "bob", "secret123", entities.DefaultRoles)

	users, err := svc.List(caller.ID)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, caller.ID, u.ID)
	}
}

func TestUserDelete(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user := seedUser(t, repo, "bob", "secret123", entities.DefaultRoles)

	require.NoError(t, svc.Delete(user.ID))
	assert.ErrorIs(t, svc.Delete(user.ID), ErrNotFound)
	assert.ErrorIs(t, svc.Delete("not-a-uuid"), ErrInvalidID)
}
