package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/app/models/dto"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/apperrors"
)

type progressTestEnv struct {
	progressRepo *fakeProgressRepo
	courseRepo   *fakeCourseRepo
	userRepo     *fakeUserRepo
	relationRepo *fakeRelationRepo
	progress     *ProgressService
	courseID     string
}

func newProgressTestEnv(t *testing.T) *progressTestEnv {
	t.Helper()
	progressRepo := newFakeProgressRepo()
	courseRepo := newFakeCourseRepo()
	userRepo := newFakeUserRepo()
	relationRepo := newFakeRelationRepo(userRepo)
	course := &models.Course{Title: "Intro to Blockly", AgeGroup: models.AgeGroupJunior, IsActive: true}
	require.NoError(t, courseRepo.Create(context.Background(), course))
	return &progressTestEnv{
		progressRepo: progressRepo,
		courseRepo:   courseRepo,
		userRepo:     userRepo,
		relationRepo: relationRepo,
		progress:     NewProgressService(progressRepo, courseRepo, relationRepo, zerolog.Nop()),
		courseID:     course.ID,
	}
}

func TestUpsertProgressCreatesThenOverwrites(t *testing.T) {
	env := newProgressTestEnv(t)

	first, err := env.progress.UpsertProgress(context.Background(), "user-1", &dto.UpsertProgressRequest{
		CourseID:         env.courseID,
		LessonsCompleted: 3,
		TotalScore:       120,
		Level:            1,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	// A second submit replaces the counters wholesale, even if they go down.
	second, err := env.progress.UpsertProgress(context.Background(), "user-1", &dto.UpsertProgressRequest{
		CourseID:         env.courseID,
		LessonsCompleted: 1,
		TotalScore:       40,
		Level:            1,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same (user, course) row")

	records, err := env.progress.ListProgress(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].LessonsCompleted)
	assert.Equal(t, 40, records[0].TotalScore)
}

func TestUpsertProgressPerUser(t *testing.T) {
	env := newProgressTestEnv(t)

	for _, userID := range []string{"user-1", "user-2"} {
		_, err := env.progress.UpsertProgress(context.Background(), userID, &dto.UpsertProgressRequest{
			CourseID:         env.courseID,
			LessonsCompleted: 2,
		})
		require.NoError(t, err)
	}

	records, err := env.progress.ListProgress(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestUpsertProgressUnknownCourse(t *testing.T) {
	env := newProgressTestEnv(t)

	_, err := env.progress.UpsertProgress(context.Background(), "user-1", &dto.UpsertProgressRequest{
		CourseID: "course-404",
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestStudentDataViewerAccess(t *testing.T) {
	env := newProgressTestEnv(t)

	student := &models.User{Email: "kid@example.com", Name: "Kid",
		Role: models.RoleStudent, IsActive: true}
	parent := &models.User{Email: "parent@example.com", Name: "Parent",
		Role: models.RoleParent, IsActive: true}
	stranger := &models.User{Email: "other@example.com", Name: "Other",
		Role: models.RoleParent, IsActive: true}
	for _, u := range []*models.User{student, parent, stranger} {
		require.NoError(t, env.userRepo.Create(context.Background(), u))
	}
	require.NoError(t, env.relationRepo.Create(context.Background(), &models.ParentChildRelation{
		ParentUserID: parent.ID, ChildUserID: student.ID, IsActive: true}))

	_, err := env.progress.UpsertProgress(context.Background(), student.ID, &dto.UpsertProgressRequest{
		CourseID:         env.courseID,
		LessonsCompleted: 2,
	})
	require.NoError(t, err)

	// Students read their own records.
	own, err := env.progress.ListProgressFor(context.Background(), student, student.ID)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	// Linked parents read the child's records.
	viewed, err := env.progress.ListProgressFor(context.Background(), parent, student.ID)
	require.NoError(t, err)
	assert.Len(t, viewed, 1)

	// An unlinked parent is refused, for projects and achievements too.
	_, err = env.progress.ListProgressFor(context.Background(), stranger, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	_, err = env.progress.ListProjectsFor(context.Background(), stranger, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	_, err = env.progress.ListAchievementsFor(context.Background(), stranger, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestProjectsAppendOnly(t *testing.T) {
	env := newProgressTestEnv(t)

	code := `{"blocks":[]}`
	projectType := "blockly"
	for _, title := range []string{"My Robot", "My Robot"} {
		_, err := env.progress.CreateProject(context.Background(), "user-1", &dto.CreateProjectRequest{
			Title:       title,
			Code:        &code,
			ProjectType: &projectType,
		})
		require.NoError(t, err)
	}

	// Same title twice is two saves, not an overwrite.
	projects, err := env.progress.ListProjects(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestAchievements(t *testing.T) {
	env := newProgressTestEnv(t)

	achievement, err := env.progress.CreateAchievement(context.Background(), "user-1", &dto.CreateAchievementRequest{
		BadgeType: "first-steps",
		Title:     "First Steps",
	})
	require.NoError(t, err)
	assert.False(t, achievement.EarnedAt.IsZero())

	list, err := env.progress.ListAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "first-steps", list[0].BadgeType)
}
