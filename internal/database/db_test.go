package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"studio-site/internal/database"
	"studio-site/internal/database/dbtest"
	"studio-site/internal/models"
)

func TestSeedAdminIdempotent(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, database.SeedAdmin(db, "admin@studio.local", "Admin123!"))
	require.NoError(t, database.SeedAdmin(db, "other@studio.local", "Other123!"))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@studio.local", users[0].Username)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].PasswordHash), []byte("Admin123!")))
}

func TestCreateUserValidation(t *testing.T) {
	db := dbtest.New(t)

	_, err := database.CreateUser(db, "ed", "longenough", models.RoleEditor)
	assert.Error(t, err)
	_, err = database.CreateUser(db, "editor", "short", models.RoleEditor)
	assert.Error(t, err)
	_, err = database.CreateUser(db, "editor", "longenough", models.UserRole("root"))
	assert.Error(t, err)

	u, err := database.CreateUser(db, "editor", "longenough", models.RoleEditor)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	_, err = database.CreateUser(db, "editor", "longenough", models.RoleEditor)
	assert.Error(t, err, "username is unique")
}

func TestSeedCategories(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, database.SeedCategories(db))
	require.NoError(t, database.SeedCategories(db))

	var cats []models.InteriorCategory
	require.NoError(t, db.Order("sort_order asc").Find(&cats).Error)
	require.Len(t, cats, len(models.Categories))
	assert.Equal(t, models.CategoryBathroom, cats[0].Key)
	assert.Equal(t, "Living Room", cats[5].Name)
}

func TestAuditLog(t *testing.T) {
	db := dbtest.New(t)
	u, err := database.CreateUser(db, "admin", "Admin123!", models.RoleAdmin)
	require.NoError(t, err)

	database.CreateAuditLog(db, u.ID, "project", "p-1", "create", "Создан проект")
	database.CreateAuditLog(db, u.ID, "inquiry", "i-1", "status_change", "resolved")
	database.CreateAuditLog(nil, u.ID, "project", "p-2", "create", "ignored")

	all, err := database.ListAuditLogs(db, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	projects, err := database.ListAuditLogs(db, "project", 10)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "p-1", projects[0].EntityID)
	assert.Equal(t, "admin", projects[0].User.Username)
}
