package services

import (
	"context"
	"fmt"
	"time"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/app/repositories"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/apperrors"
)

// In-memory repository fakes. They mirror the constraint behavior of the real
// repositories (duplicate email, missing-or-expired session rows) so service
// tests exercise the same error paths without a database.

func ptr[T any](v T) *T { return &v }

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, userID string) error {
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

func (r *fakeUserRepo) UpdatePackage(_ context.Context, userID, packageID string) (*models.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	now := time.Now()
	user.PackageID = &packageID
	user.SubscriptionStatus = models.SubscriptionActive
	user.SubscriptionStart = &now
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) UpdateSubscriptionStatus(_ context.Context, userID string, status models.SubscriptionStatus) error {
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.SubscriptionStatus = status
	return nil
}

func (r *fakeUserRepo) LinkSchool(_ context.Context, userID, schoolID string) error {
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.SchoolID = &schoolID
	return nil
}

func (r *fakeUserRepo) SearchStudentByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email && user.Role == models.RoleStudent {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) ListBySchool(_ context.Context, schoolID string, role *models.Role) ([]*models.User, error) {
	var out []*models.User
	for _, user := range r.users {
		if user.SchoolID == nil || *user.SchoolID != schoolID {
			continue
		}
		if role != nil && user.Role != *role {
			continue
		}
		clone := *user
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeUserRepo) CountStudentsBySchool(_ context.Context, schoolID string) (int, error) {
	count := 0
	for _, user := range r.users {
		if user.SchoolID != nil && *user.SchoolID == schoolID && user.Role == models.RoleStudent {
			count++
		}
	}
	return count, nil
}

type fakeSessionRepo struct {
	sessions map[string]*models.UserSession
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.UserSession{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *models.UserSession) error {
	if _, exists := r.sessions[session.SessionToken]; exists {
		return apperrors.ErrSessionInvalid
	}
	r.nextID++
	session.ID = fmt.Sprintf("session-%d", r.nextID)
	session.CreatedAt = time.Now()
	clone := *session
	r.sessions[session.SessionToken] = &clone
	return nil
}

func (r *fakeSessionRepo) GetByToken(_ context.Context, token string) (*models.UserSession, error) {
	session, ok := r.sessions[token]
	if !ok || session.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.ErrSessionInvalid
	}
	clone := *session
	return &clone, nil
}

func (r *fakeSessionRepo) DeleteByToken(_ context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	var deleted int64
	for token, session := range r.sessions {
		if session.ExpiresAt.Before(time.Now()) {
			delete(r.sessions, token)
			deleted++
		}
	}
	return deleted, nil
}

type fakeSchoolRepo struct {
	schools map[string]*models.School
	nextID  int
}

func newFakeSchoolRepo() *fakeSchoolRepo {
	return &fakeSchoolRepo{schools: map[string]*models.School{}}
}

func (r *fakeSchoolRepo) Create(_ context.Context, school *models.School) error {
	if school.SubscriptionStatus == "" {
		school.SubscriptionStatus = models.SubscriptionActive
	}
	if school.MaxStudents == 0 {
		school.MaxStudents = 100
	}
	r.nextID++
	school.ID = fmt.Sprintf("school-%d", r.nextID)
	school.CreatedAt = time.Now()
	clone := *school
	r.schools[school.ID] = &clone
	return nil
}

func (r *fakeSchoolRepo) GetByID(_ context.Context, id string) (*models.School, error) {
	school, ok := r.schools[id]
	if !ok {
		return nil, apperrors.ErrSchoolNotFound
	}
	clone := *school
	return &clone, nil
}

func (r *fakeSchoolRepo) SetStudentCount(_ context.Context, schoolID string, count int) error {
	school, ok := r.schools[schoolID]
	if !ok {
		return apperrors.ErrSchoolNotFound
	}
	school.CurrentStudents = count
	return nil
}

type fakePackageRepo struct {
	packages map[string]*models.Package
	nextID   int
}

func newFakePackageRepo() *fakePackageRepo {
	return &fakePackageRepo{packages: map[string]*models.Package{}}
}

func (r *fakePackageRepo) List(_ context.Context, packageType *models.PackageType) ([]*models.Package, error) {
	var out []*models.Package
	for _, pkg := range r.packages {
		if packageType != nil && pkg.PackageType != *packageType {
			continue
		}
		clone := *pkg
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakePackageRepo) GetByID(_ context.Context, id string) (*models.Package, error) {
	pkg, ok := r.packages[id]
	if !ok {
		return nil, apperrors.ErrPackageNotFound
	}
	clone := *pkg
	return &clone, nil
}

func (r *fakePackageRepo) Create(_ context.Context, pkg *models.Package) error {
	if pkg.Currency == "" {
		pkg.Currency = "USD"
	}
	r.nextID++
	pkg.ID = fmt.Sprintf("package-%d", r.nextID)
	pkg.CreatedAt = time.Now()
	clone := *pkg
	r.packages[pkg.ID] = &clone
	return nil
}

type fakeRelationRepo struct {
	relations []*models.ParentChildRelation
	users     *fakeUserRepo
	nextID    int
}

func newFakeRelationRepo(users *fakeUserRepo) *fakeRelationRepo {
	return &fakeRelationRepo{users: users}
}

func (r *fakeRelationRepo) Create(_ context.Context, relation *models.ParentChildRelation) error {
	if relation.RelationshipType == "" {
		relation.RelationshipType = models.RelationshipParent
	}
	r.nextID++
	relation.ID = fmt.Sprintf("relation-%d", r.nextID)
	relation.CreatedAt = time.Now()
	clone := *relation
	r.relations = append(r.relations, &clone)
	return nil
}

func (r *fakeRelationRepo) Exists(_ context.Context, parentUserID, childUserID string) (bool, error) {
	for _, relation := range r.relations {
		if relation.ParentUserID == parentUserID && relation.ChildUserID == childUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRelationRepo) ListChildren(ctx context.Context, parentUserID string) ([]*models.User, error) {
	var out []*models.User
	for _, relation := range r.relations {
		if relation.ParentUserID != parentUserID {
			continue
		}
		child, err := r.users.GetByID(ctx, relation.ChildUserID)
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

func (r *fakeRelationRepo) ListParents(ctx context.Context, childUserID string) ([]*models.User, error) {
	var out []*models.User
	for _, relation := range r.relations {
		if relation.ChildUserID != childUserID {
			continue
		}
		parent, err := r.users.GetByID(ctx, relation.ParentUserID)
		if err != nil {
			return nil, err
		}
		out = append(out, parent)
	}
	return out, nil
}

type fakeCourseRepo struct {
	courses map[string]*models.Course
	lessons map[string][]*models.Lesson
	nextID  int
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses: map[string]*models.Course{},
		lessons: map[string][]*models.Lesson{},
	}
}

func (r *fakeCourseRepo) List(_ context.Context, filter repositories.CourseFilter) ([]*models.Course, error) {
	var out []*models.Course
	for _, course := range r.courses {
		if filter.AgeGroup != nil && course.AgeGroup != *filter.AgeGroup {
			continue
		}
		clone := *course
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id string) (*models.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	clone := *course
	return &clone, nil
}

func (r *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	r.nextID++
	course.ID = fmt.Sprintf("course-%d", r.nextID)
	course.CreatedAt = time.Now()
	clone := *course
	r.courses[course.ID] = &clone
	return nil
}

func (r *fakeCourseRepo) ListLessons(_ context.Context, courseID string) ([]*models.Lesson, error) {
	return r.lessons[courseID], nil
}

func (r *fakeCourseRepo) CreateLesson(_ context.Context, lesson *models.Lesson) error {
	r.nextID++
	lesson.ID = fmt.Sprintf("lesson-%d", r.nextID)
	lesson.CreatedAt = time.Now()
	clone := *lesson
	r.lessons[lesson.CourseID] = append(r.lessons[lesson.CourseID], &clone)
	return nil
}

type fakeProgressRepo struct {
	progress     map[string]*models.UserProgress // keyed by userID+courseID
	projects     map[string][]*models.Project
	achievements map[string][]*models.Achievement
	nextID       int
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{
		progress:     map[string]*models.UserProgress{},
		projects:     map[string][]*models.Project{},
		achievements: map[string][]*models.Achievement{},
	}
}

func progressKey(userID, courseID string) string {
	return userID + "/" + courseID
}

func (r *fakeProgressRepo) Upsert(_ context.Context, progress *models.UserProgress) error {
	key := progressKey(progress.UserID, progress.CourseID)
	if existing, ok := r.progress[key]; ok {
		progress.ID = existing.ID
	} else {
		r.nextID++
		progress.ID = fmt.Sprintf("progress-%d", r.nextID)
	}
	progress.UpdatedAt = time.Now()
	clone := *progress
	r.progress[key] = &clone
	return nil
}

func (r *fakeProgressRepo) ListByUser(_ context.Context, userID string) ([]*models.UserProgress, error) {
	var out []*models.UserProgress
	for _, record := range r.progress {
		if record.UserID == userID {
			clone := *record
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) CreateProject(_ context.Context, project *models.Project) error {
	r.nextID++
	project.ID = fmt.Sprintf("project-%d", r.nextID)
	project.CreatedAt = time.Now()
	clone := *project
	r.projects[project.UserID] = append(r.projects[project.UserID], &clone)
	return nil
}

func (r *fakeProgressRepo) ListProjects(_ context.Context, userID string) ([]*models.Project, error) {
	return r.projects[userID], nil
}

func (r *fakeProgressRepo) CreateAchievement(_ context.Context, achievement *models.Achievement) error {
	r.nextID++
	achievement.ID = fmt.Sprintf("achievement-%d", r.nextID)
	achievement.EarnedAt = time.Now()
	clone := *achievement
	r.achievements[achievement.UserID] = append(r.achievements[achievement.UserID], &clone)
	return nil
}

func (r *fakeProgressRepo) ListAchievements(_ context.Context, userID string) ([]*models.Achievement, error) {
	return r.achievements[userID], nil
}

type fakeRoboticsRepo struct {
	activities []*models.RoboticsActivity
	nextID     int
}

func newFakeRoboticsRepo() *fakeRoboticsRepo {
	return &fakeRoboticsRepo{}
}

func (r *fakeRoboticsRepo) List(_ context.Context, ageGroup *models.AgeGroup) ([]*models.RoboticsActivity, error) {
	var out []*models.RoboticsActivity
	for _, activity := range r.activities {
		if ageGroup != nil && activity.AgeGroup != *ageGroup {
			continue
		}
		clone := *activity
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeRoboticsRepo) Create(_ context.Context, activity *models.RoboticsActivity) error {
	r.nextID++
	activity.ID = fmt.Sprintf("activity-%d", r.nextID)
	activity.CreatedAt = time.Now()
	clone := *activity
	r.activities = append(r.activities, &clone)
	return nil
}

func (r *fakeRoboticsRepo) Count(_ context.Context) (int, error) {
	return len(r.activities), nil
}
