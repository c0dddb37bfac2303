package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/codewisehub/codewisehub-backend/internal/app/controllers"
	"github.com/codewisehub/codewisehub-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	schoolController *controllers.SchoolController,
	familyController *controllers.FamilyController,
	catalogController *controllers.CatalogController,
	progressController *controllers.ProgressController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authController.SignUp)
		auth.POST("/signin", authController.SignIn)
	}

	// Pricing is visible before registration
	api.GET("/packages", catalogController.ListPackages)
	api.GET("/packages/:id", catalogController.GetPackage)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.RequireAuth())
	{
		authenticated.POST("/auth/signout", authController.SignOut)
		authenticated.GET("/auth/me", authController.Me)

		authenticated.POST("/users/select-package", userController.SelectPackage)
		authenticated.GET("/users/search-student",
			authMiddleware.RequireCapability(middleware.CapabilityLinkChild), familyController.SearchChild)

		authenticated.POST("/packages",
			authMiddleware.RequireCapability(middleware.CapabilityCreatePackage), catalogController.CreatePackage)

		courses := authenticated.Group("/courses")
		{
			courses.GET("", catalogController.ListCourses)
			courses.GET("/:id", catalogController.GetCourse)
			courses.GET("/:id/lessons", catalogController.ListLessons)
			courses.POST("", authMiddleware.RequireCapability(middleware.CapabilityCreateCourse), catalogController.CreateCourse)
			courses.POST("/:id/lessons", authMiddleware.RequireCapability(middleware.CapabilityCreateLesson), catalogController.CreateLesson)
		}

		robotics := authenticated.Group("/robotics")
		{
			robotics.GET("", catalogController.ListRoboticsActivities)
			robotics.POST("", authMiddleware.RequireCapability(middleware.CapabilityCreateRoboticsActivity), catalogController.CreateRoboticsActivity)
		}

		schools := authenticated.Group("/schools")
		{
			schools.POST("", authMiddleware.RequireCapability(middleware.CapabilityCreateSchool), schoolController.CreateSchool)
			schools.GET("/me", authMiddleware.RequireCapability(middleware.CapabilityViewSchoolUsers), schoolController.GetSchool)
			schools.GET("/users", authMiddleware.RequireCapability(middleware.CapabilityViewSchoolUsers), schoolController.ListUsers)
			schools.POST("/users", authMiddleware.RequireCapability(middleware.CapabilityCreateSchoolUser), schoolController.CreateUser)
		}

		family := authenticated.Group("/family")
		family.Use(authMiddleware.RequireCapability(middleware.CapabilityLinkChild))
		{
			family.POST("/children", familyController.LinkChild)
			family.GET("/children", familyController.ListChildren)
		}

		// Student-scoped reads: access is checked per viewer (self or linked
		// parent) inside the services, not by role table.
		students := authenticated.Group("/students/:id")
		{
			students.GET("/progress", progressController.ListStudentProgress)
			students.GET("/projects", progressController.ListStudentProjects)
			students.GET("/achievements", progressController.ListStudentAchievements)
			students.GET("/parents", familyController.ListParents)
		}

		progress := authenticated.Group("/progress")
		{
			progress.GET("", progressController.ListProgress)
			progress.POST("", authMiddleware.RequireCapability(middleware.CapabilitySubmitProgress), progressController.UpsertProgress)
		}

		projects := authenticated.Group("/projects")
		{
			projects.GET("", progressController.ListProjects)
			projects.POST("", authMiddleware.RequireCapability(middleware.CapabilitySaveProject), progressController.CreateProject)
		}

		achievements := authenticated.Group("/achievements")
		{
			achievements.GET("", progressController.ListAchievements)
			achievements.POST("", authMiddleware.RequireCapability(middleware.CapabilityEarnAchievement), progressController.CreateAchievement)
		}
	}
}
