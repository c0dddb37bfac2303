package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewisehub/codewisehub-backend/internal/app/migrations"
	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/apperrors"
)

// openTestDB connects to the database named by DATABASE_URL, applies the
// migrations and clears the domain tables so each test starts from an empty
// schema. Everything in this file is skipped when no database is available.
func openTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	if err := pool.Ping(context.Background()); err != nil {
		t.Skipf("database unavailable: %v", err)
	}

	migrator := migrations.NewMigrator(pool)
	require.NoError(t, migrator.MigrateFromDirectory(filepath.Join("..", "..", "..", "migrations")))

	_, err = pool.Exec(context.Background(), `
		TRUNCATE user_progress, projects, achievements, parent_child_relations,
			user_sessions, lessons, courses, robotics_activities, users, schools,
			packages CASCADE`)
	require.NoError(t, err)

	return pool
}

func seedUser(t *testing.T, repo *UserRepository, email string, role models.Role, schoolID *string) *models.User {
	t.Helper()
	user := &models.User{
		Email:              email,
		Name:               "Integration User",
		Role:               role,
		SubscriptionStatus: models.SubscriptionPending,
		SchoolID:           schoolID,
		IsActive:           true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	pool := openTestDB(t)
	repo := NewUserRepository(pool)

	seedUser(t, repo, "taken@example.com", models.RoleStudent, nil)

	dup := &models.User{
		Email:              "taken@example.com",
		Name:               "Second Account",
		Role:               models.RoleParent,
		SubscriptionStatus: models.SubscriptionPending,
		IsActive:           true,
	}
	err := repo.Create(context.Background(), dup)
	require.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.Empty(t, dup.ID, "a conflicting insert must not hand back an id")
}

func TestProgressRepositoryUpsertOverwrites(t *testing.T) {
	pool := openTestDB(t)
	users := NewUserRepository(pool)
	courses := NewCourseRepository(pool)
	progress := NewProgressRepository(pool)

	student := seedUser(t, users, "kid@example.com", models.RoleStudent, nil)
	course := &models.Course{Title: "Scratch Basics", AgeGroup: models.AgeGroupJunior, IsActive: true}
	require.NoError(t, courses.Create(context.Background(), course))

	first := &models.UserProgress{
		UserID: student.ID, CourseID: course.ID,
		LessonsCompleted: 1, TotalScore: 10, Level: 1,
	}
	require.NoError(t, progress.Upsert(context.Background(), first))

	// A second submit for the same (user, course) pair lands on the unique
	// constraint and overwrites the counters instead of adding a row.
	second := &models.UserProgress{
		UserID: student.ID, CourseID: course.ID,
		LessonsCompleted: 5, ProjectsCompleted: 2, TotalScore: 80, Level: 3,
	}
	require.NoError(t, progress.Upsert(context.Background(), second))
	assert.Equal(t, first.ID, second.ID)

	records, err := progress.ListByUser(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 5, records[0].LessonsCompleted)
	assert.Equal(t, 2, records[0].ProjectsCompleted)
	assert.Equal(t, 80, records[0].TotalScore)
	assert.Equal(t, 3, records[0].Level)
}

func TestUserRepositoryCountStudentsBySchool(t *testing.T) {
	pool := openTestDB(t)
	users := NewUserRepository(pool)
	schools := NewSchoolRepository(pool)

	school := &models.School{Name: "Northside Academy"}
	require.NoError(t, schools.Create(context.Background(), school))

	seedUser(t, users, "kid1@example.com", models.RoleStudent, &school.ID)
	seedUser(t, users, "kid2@example.com", models.RoleStudent, &school.ID)
	seedUser(t, users, "teacher@example.com", models.RoleTeacher, &school.ID)
	seedUser(t, users, "elsewhere@example.com", models.RoleStudent, nil)

	count, err := users.CountStudentsBySchool(context.Background(), school.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, schools.SetStudentCount(context.Background(), school.ID, count))
	reloaded, err := schools.GetByID(context.Background(), school.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.CurrentStudents)
}

func TestSessionRepositoryExpiryAndSweep(t *testing.T) {
	pool := openTestDB(t)
	users := NewUserRepository(pool)
	sessions := NewSessionRepository(pool)

	user := seedUser(t, users, "kid@example.com", models.RoleStudent, nil)

	expired := &models.UserSession{
		UserID:       user.ID,
		SessionToken: "expired-token",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}
	require.NoError(t, sessions.Create(context.Background(), expired))

	live := &models.UserSession{
		UserID:       user.ID,
		SessionToken: "live-token",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	require.NoError(t, sessions.Create(context.Background(), live))

	// A stored row past its expiry reads the same as a missing one.
	_, err := sessions.GetByToken(context.Background(), "expired-token")
	assert.ErrorIs(t, err, apperrors.ErrSessionInvalid)

	got, err := sessions.GetByToken(context.Background(), "live-token")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)

	deleted, err := sessions.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	// The live session survives the sweep and disappears on revocation.
	_, err = sessions.GetByToken(context.Background(), "live-token")
	require.NoError(t, err)
	require.NoError(t, sessions.DeleteByToken(context.Background(), "live-token"))
	_, err = sessions.GetByToken(context.Background(), "live-token")
	assert.ErrorIs(t, err, apperrors.ErrSessionInvalid)
}
