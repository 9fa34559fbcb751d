package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/researchconnect/internal/app/controllers"
	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/middleware"
	"github.com/yigit/researchconnect/internal/pkg/validation"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	projectController *controllers.ProjectController,
	applicationController *controllers.ApplicationController,
	profileController *controllers.ProfileController,
	roadmapController *controllers.RoadmapController,
	problemStatementController *controllers.ProblemStatementController,
	authMiddleware *middleware.AuthMiddleware,
) {
	validation.MustRegister()

	faculty := authMiddleware.RequireUserType(models.UserTypeFaculty)
	student := authMiddleware.RequireUserType(models.UserTypeStudent)

	// API version group
	v1 := router.Group("/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/register", authController.Signup)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/verify-reset-token", authController.VerifyResetToken)
		auth.POST("/reset-password", authController.ResetPassword)
		auth.POST("/send-verification-code", authController.SendVerificationCode)
		auth.POST("/verify-code", authController.VerifyCode)
		auth.POST("/verify-email", authController.VerifyEmail)
		auth.POST("/resend-verification", authController.ResendVerification)
		auth.GET("/me", authMiddleware.JWTAuth(), authController.Me)
	}

	// --- Public problem statement board ---
	v1.GET("/problem-statements", problemStatementController.ListProblemStatements)
	v1.GET("/problem-statements/search", problemStatementController.SearchProblemStatements)
	v1.GET("/problem-statements/:id", problemStatementController.GetProblemStatement)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	projects := authenticated.Group("/projects")
	{
		projects.GET("", projectController.ListProjects)
		projects.POST("", faculty, projectController.CreateProject)
		projects.GET("/student", student, projectController.ListProjectsForStudent)
		projects.GET("/my", projectController.GetMyProjects)
		projects.GET("/:id", projectController.GetProject)
		projects.PUT("/:id", projectController.UpdateProject)
		projects.DELETE("/:id", projectController.DeleteProject)
		projects.GET("/:id/working-users", projectController.GetProjectWorkingUsers)
		projects.DELETE("/:id/working-users/:uid", faculty, projectController.RemoveWorkingUser)

		// Students apply and track their own application
		projects.POST("/:id/apply", student, applicationController.Apply)
		projects.DELETE("/:id/retract", student, applicationController.Retract)
		projects.GET("/:id/application-status", student, applicationController.ApplicationStatus)

		// Faculty review applications to their projects
		projects.GET("/:id/applications", faculty, applicationController.ProjectApplications)
		projects.GET("/:id/past-applicants", faculty, applicationController.PastApplicants)
		projects.PUT("/:id/applications/:appId", faculty, applicationController.UpdateStatus)
		projects.POST("/:id/applications/:appId/feedback", faculty, applicationController.Feedback)
		projects.POST("/:id/applications/:appId/schedule-interview", faculty, applicationController.ScheduleInterview)
	}

	applications := authenticated.Group("/applications")
	{
		applications.GET("/my", student, applicationController.MyApplications)
		applications.GET("/my/applied-projects", student, applicationController.MyAppliedProjects)
		applications.GET("/all", faculty, applicationController.AllApplications)
	}

	profile := authenticated.Group("/profile")
	{
		profile.GET("/student", student, profileController.GetStudentProfile)
		profile.PUT("/student", student, profileController.UpdateStudentProfile)
		profile.GET("/student/recommendations", student, profileController.GetRecommendations)
		profile.GET("/user/:uid", profileController.GetUserProfile)
		profile.GET("/explore", profileController.Explore)
	}

	roadmap := authenticated.Group("/roadmap")
	{
		roadmap.POST("/preferences", roadmapController.SavePreferences)
		roadmap.GET("/preferences", roadmapController.GetPreferences)
		roadmap.POST("/generate", roadmapController.GenerateRoadmap)
		roadmap.GET("/history", roadmapController.GetHistory)
		roadmap.POST("/placement/preferences", roadmapController.SavePlacementPreferences)
		roadmap.GET("/placement/preferences", roadmapController.GetPlacementPreferences)
		roadmap.POST("/placement/generate", roadmapController.PlacementCooldown(), roadmapController.GeneratePlacementRoadmap)
	}

	problemStatements := authenticated.Group("/problem-statements")
	{
		problemStatements.POST("", problemStatementController.CreateProblemStatement)
		problemStatements.GET("/my", problemStatementController.GetMyProblemStatements)
		problemStatements.PUT("/:id", problemStatementController.UpdateProblemStatement)
		problemStatements.DELETE("/:id", problemStatementController.DeleteProblemStatement)
	}

	// Health check endpoint (public)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Services are Healthy"})
	})
}
