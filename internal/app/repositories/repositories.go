package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	User     IUserRepository
	Session  ISessionRepository
	School   ISchoolRepository
	Package  IPackageRepository
	Course   ICourseRepository
	Robotics IRoboticsRepository
	Relation IRelationRepository
	Progress IProgressRepository
}

// NewRepositories creates all repositories backed by the given pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Session:  NewSessionRepository(db),
		School:   NewSchoolRepository(db),
		Package:  NewPackageRepository(db),
		Course:   NewCourseRepository(db),
		Robotics: NewRoboticsRepository(db),
		Relation: NewRelationRepository(db),
		Progress: NewProgressRepository(db),
	}
}
