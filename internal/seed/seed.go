package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/codewisehub/codewisehub-backend/internal/app/models"
	appRepos "github.com/codewisehub/codewisehub-backend/internal/app/repositories"
)

func ptr[T any](v T) *T { return &v }

// CreateDefaultData seeds subscription packages and starter robotics
// activities on an empty database. Safe to run on every startup: seeding is
// skipped when the tables already have rows.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	packageRepo := appRepos.NewPackageRepository(dbPool)
	roboticsRepo := appRepos.NewRoboticsRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (packages, robotics activities)...")

	existing, err := packageRepo.List(ctx, nil)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		packages := []*appModels.Package{
			{
				Name:        "Explorer",
				Description: ptr("Individual starter plan with access to junior courses"),
				Price:       "9.99",
				Duration:    "monthly",
				Features:    ptr(`["Junior courses","Blockly playground","Progress tracking"]`),
				PackageType: appModels.PackageIndividual,
				IsActive:    true,
			},
			{
				Name:        "Builder",
				Description: ptr("Individual plan with the full course catalog and robotics labs"),
				Price:       "19.99",
				Duration:    "monthly",
				Features:    ptr(`["All courses","Robotics activities","JavaScript playground","Achievements"]`),
				PackageType: appModels.PackageIndividual,
				IsActive:    true,
			},
			{
				Name:        "Classroom",
				Description: ptr("School license for up to 100 student seats"),
				Price:       "299.00",
				Duration:    "yearly",
				Features:    ptr(`["Teacher dashboard","Student management","All courses","Robotics activities"]`),
				MaxStudents: ptr(100),
				PackageType: appModels.PackageSchool,
				IsActive:    true,
			},
		}
		for _, pkg := range packages {
			if err := packageRepo.Create(ctx, pkg); err != nil {
				lgr.Error().Err(err).Str("package", pkg.Name).Msg("Error seeding package")
				return err
			}
		}
		lgr.Info().Int("count", len(packages)).Msg("Seeded default packages")
	}

	activityCount, err := roboticsRepo.Count(ctx)
	if err != nil {
		return err
	}
	if activityCount == 0 {
		activities := []*appModels.RoboticsActivity{
			{
				Title:       "Robot Maze Runner",
				Description: "Guide the robot through a simple maze using movement blocks",
				Type:        ptr("maze"),
				Difficulty:  ptr("easy"),
				AgeGroup:    appModels.AgeGroupJunior,
				Points:      10,
				IsActive:    true,
			},
			{
				Title:       "Light Sensor Challenge",
				Description: "Program the robot to follow a line using its light sensor",
				Type:        ptr("challenge"),
				Difficulty:  ptr("medium"),
				AgeGroup:    appModels.AgeGroupSenior,
				Points:      25,
				IsActive:    true,
			},
			{
				Title:       "Sorting Puzzle",
				Description: "Sort colored blocks into bins with the robot arm",
				Type:        ptr("puzzle"),
				Difficulty:  ptr("hard"),
				AgeGroup:    appModels.AgeGroupSenior,
				Points:      50,
				IsActive:    true,
			},
		}
		for _, activity := range activities {
			if err := roboticsRepo.Create(ctx, activity); err != nil {
				lgr.Error().Err(err).Str("activity", activity.Title).Msg("Error seeding robotics activity")
				return err
			}
		}
		lgr.Info().Int("count", len(activities)).Msg("Seeded starter robotics activities")
	}

	return nil
}
