package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/app/models/dto"
	"github.com/codewisehub/codewisehub-backend/internal/app/repositories"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/apperrors"
)

func newCatalogService() (*CatalogService, *fakePackageRepo, *fakeCourseRepo, *fakeRoboticsRepo) {
	packageRepo := newFakePackageRepo()
	courseRepo := newFakeCourseRepo()
	roboticsRepo := newFakeRoboticsRepo()
	return NewCatalogService(packageRepo, courseRepo, roboticsRepo, zerolog.Nop()),
		packageRepo, courseRepo, roboticsRepo
}

func TestCreateCourseAndList(t *testing.T) {
	catalog, _, _, _ := newCatalogService()

	course, err := catalog.CreateCourse(context.Background(), "teacher-1", &dto.CreateCourseRequest{
		Title:    "Intro to Blockly",
		AgeGroup: models.AgeGroupJunior,
	})
	require.NoError(t, err)
	assert.True(t, course.IsActive)
	require.NotNil(t, course.TeacherID)
	assert.Equal(t, "teacher-1", *course.TeacherID)

	_, err = catalog.CreateCourse(context.Background(), "teacher-1", &dto.CreateCourseRequest{
		Title:    "Python Basics",
		AgeGroup: models.AgeGroupSenior,
	})
	require.NoError(t, err)

	all, err := catalog.ListCourses(context.Background(), repositories.CourseFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	junior := models.AgeGroupJunior
	filtered, err := catalog.ListCourses(context.Background(), repositories.CourseFilter{AgeGroup: &junior})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Intro to Blockly", filtered[0].Title)
}

func TestLessonsRequireCourse(t *testing.T) {
	catalog, _, _, _ := newCatalogService()

	_, err := catalog.ListLessons(context.Background(), "course-404")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	_, err = catalog.CreateLesson(context.Background(), "course-404", &dto.CreateLessonRequest{
		Title: "Lost Lesson",
		Type:  models.LessonInteractive,
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestCreateLessonDefaults(t *testing.T) {
	catalog, _, _, _ := newCatalogService()

	course, err := catalog.CreateCourse(context.Background(), "teacher-1", &dto.CreateCourseRequest{
		Title:    "Intro to Blockly",
		AgeGroup: models.AgeGroupJunior,
	})
	require.NoError(t, err)

	lesson, err := catalog.CreateLesson(context.Background(), course.ID, &dto.CreateLessonRequest{
		Title: "First Steps",
		Type:  models.LessonInteractive,
	})
	require.NoError(t, err)
	assert.True(t, lesson.IsRequired, "lessons default to required")

	optional := false
	lesson, err = catalog.CreateLesson(context.Background(), course.ID, &dto.CreateLessonRequest{
		Title:      "Bonus Round",
		Type:       models.LessonQuiz,
		IsRequired: &optional,
	})
	require.NoError(t, err)
	assert.False(t, lesson.IsRequired)

	lessons, err := catalog.ListLessons(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Len(t, lessons, 2)
}

func TestRoboticsActivities(t *testing.T) {
	catalog, _, _, _ := newCatalogService()

	_, err := catalog.CreateRoboticsActivity(context.Background(), &dto.CreateRoboticsActivityRequest{
		Title:       "Maze Runner",
		Description: "Guide the robot out of the maze",
		Type:        ptr("maze"),
		Difficulty:  ptr("easy"),
		AgeGroup:    models.AgeGroupJunior,
	})
	require.NoError(t, err)
	_, err = catalog.CreateRoboticsActivity(context.Background(), &dto.CreateRoboticsActivityRequest{
		Title:       "Line Follower",
		Description: "Keep the robot on the track",
		Type:        ptr("challenge"),
		Difficulty:  ptr("medium"),
		AgeGroup:    models.AgeGroupSenior,
	})
	require.NoError(t, err)

	senior := models.AgeGroupSenior
	activities, err := catalog.ListRoboticsActivities(context.Background(), &senior)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "Line Follower", activities[0].Title)
}

func TestCreateAndGetPackage(t *testing.T) {
	catalog, _, _, _ := newCatalogService()

	maxStudents := 30
	created, err := catalog.CreatePackage(context.Background(), &dto.CreatePackageRequest{
		Name:        "Classroom",
		Price:       "299.00",
		Duration:    "yearly",
		MaxStudents: &maxStudents,
		PackageType: models.PackageSchool,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, "USD", created.Currency, "currency defaults when omitted")

	fetched, err := catalog.GetPackage(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Classroom", fetched.Name)
	assert.Equal(t, "299.00", fetched.Price)

	_, err = catalog.GetPackage(context.Background(), "package-404")
	assert.ErrorIs(t, err, apperrors.ErrPackageNotFound)
}

func TestListPackagesByType(t *testing.T) {
	catalog, packageRepo, _, _ := newCatalogService()

	for _, pkg := range []*models.Package{
		{Name: "Explorer", Price: "9.99", Duration: "monthly", PackageType: models.PackageIndividual, IsActive: true},
		{Name: "Classroom", Price: "299.00", Duration: "yearly", PackageType: models.PackageSchool, IsActive: true},
	} {
		require.NoError(t, packageRepo.Create(context.Background(), pkg))
	}

	all, err := catalog.ListPackages(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	school := models.PackageSchool
	schoolOnly, err := catalog.ListPackages(context.Background(), &school)
	require.NoError(t, err)
	require.Len(t, schoolOnly, 1)
	assert.Equal(t, "Classroom", schoolOnly[0].Name)
}
