package routes

import (
	"peer-review-api/controllers"
	"peer-review-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Peer Review API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Courses
			protected.GET("/courses/:id/exercises", controllers.ListCourseExercises)

			// Original submissions
			exercises := protected.Group("/exercises")
			{
				exercises.POST("/:id/submissions", controllers.CreateSubmission)
				exercises.GET("/:id/submissions", controllers.GetSubmissions)
			}

			// Staff-only submission state workflow
			protected.PUT("/submissions/:id/state", middleware.RequireStaff(), controllers.UpdateSubmissionState)

			// Peer review
			reviews := protected.Group("/review-exercises")
			{
				reviews.GET("/:id", controllers.GetReviewExercise)
				reviews.GET("/:id/next", controllers.GetNextReview)
				reviews.GET("/:id/choices", controllers.GetReviewChoices)
				reviews.POST("/:id/choose", controllers.ChooseReview)
				reviews.POST("/:id/locks/:ref/complete", controllers.CompleteReview)
				reviews.GET("/:id/received", controllers.GetReceivedReviews)

				// Staff management
				reviews.GET("/:id/stats", middleware.RequireStaff(), controllers.GetExerciseStats)
				reviews.POST("/:id/groups/:group_id/prepare", middleware.RequireStaff(), controllers.PrepareGroupReview)
			}

			// Exercise setup (staff)
			protected.POST("/submission-exercises", middleware.RequireStaff(), controllers.CreateSubmissionExercise)
			protected.POST("/review-exercises", middleware.RequireStaff(), controllers.CreateReviewExercise)
			protected.POST("/deviations", middleware.RequireStaff(), controllers.CreateDeviation)
		}
	}
}
