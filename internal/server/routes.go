package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"ethiowork-backend/internal/auth"
	"ethiowork-backend/internal/controller/account"
	"ethiowork-backend/internal/controller/admin"
	"ethiowork-backend/internal/controller/application"
	"ethiowork-backend/internal/controller/jobposting"
	"ethiowork-backend/internal/controller/notification"
	"ethiowork-backend/internal/controller/rating"
	"ethiowork-backend/internal/controller/savedjob"
	"ethiowork-backend/internal/controller/upload"
	"ethiowork-backend/internal/middleware"
	"ethiowork-backend/internal/model"
)

// RegisterRoutes will register each http endpoint route to the bound
// MyServer instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOriginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrigins := strings.Split(allowOriginsStr, ",")

	lAuth := auth.NewLocalAuthHandler(s.Identity, s.Service, s.Log)
	logout := auth.NewLogoutController(s.Revocation)
	pwReset := auth.NewPasswordResetController(s.Identity, s.Mailer, s.Log)

	accountCtrl := account.NewAccountController(s.Service)
	adminCtrl := admin.NewAdminController(s.Service)
	jobCtrl := jobposting.NewJobPostingController(s.Service)
	appCtrl := application.NewApplicationController(s.Service)
	notifCtrl := notification.NewNotificationController(s.Service)
	savedCtrl := savedjob.NewSavedJobController(s.Service)
	ratingCtrl := rating.NewRatingController(s.Service)
	uploadCtrl := upload.NewUploadController(s.Service, s.Storage)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.SafeHeader())
	r.Use(middleware.EnvRateLimitMiddleware())

	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("register", lAuth.RegisterHandler)
			authRoute.POST("login", lAuth.LoginHandler)
			authRoute.POST("password/forgot", pwReset.ForgotPasswordHandler)
			authRoute.POST("password/reset", pwReset.ResetPasswordHandler)
		}

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.Service), middleware.JwtRevocationCheck(s.Revocation))

			needAuth.POST("/auth/logout", logout.LogoutHandler)

			accountRoute := needAuth.Group("/accounts")
			{
				accountRoute.GET("me", accountCtrl.GetMe)
				accountRoute.PATCH("me", middleware.CheckBanned(), accountCtrl.UpdateProfile)
				accountRoute.GET(":id", accountCtrl.GetAccountByID)
				accountRoute.GET(":id/rating", ratingCtrl.GetRatings)
				accountRoute.POST(":id/rating", middleware.CheckBanned(), ratingCtrl.AddRatingHandler)
			}

			jobRoute := needAuth.Group("/jobposting")
			{
				jobRoute.GET("", jobCtrl.GetPostings)
				jobRoute.GET(":id", jobCtrl.GetPostingByID)
				jobRoute.GET("mine", middleware.CheckRole(model.RoleEmployer), jobCtrl.GetMyPostings)
				jobRoute.POST("", middleware.CheckRole(model.RoleEmployer), middleware.CheckBanned(), jobCtrl.CreateJobPostingHandler)
				jobRoute.PATCH(":id", middleware.CheckRole(model.RoleEmployer, model.RoleAdmin), middleware.CheckBanned(), jobCtrl.EditJobPosting)
				jobRoute.DELETE(":id", middleware.CheckRole(model.RoleEmployer, model.RoleAdmin), jobCtrl.DeleteJobPosting)

				jobRoute.POST(":id/apply", middleware.CheckRole(model.RoleJobSeeker), middleware.CheckBanned(), appCtrl.ApplyHandler)
				jobRoute.GET(":id/applications", middleware.CheckRole(model.RoleEmployer, model.RoleAdmin), appCtrl.GetApplicationsByJob)
			}

			applicationRoute := needAuth.Group("/application")
			{
				applicationRoute.GET("mine", appCtrl.GetMyApplications)
				applicationRoute.PATCH(":id/status", middleware.CheckRole(model.RoleEmployer, model.RoleAdmin), middleware.CheckBanned(), appCtrl.SetStatusHandler)
			}

			notificationRoute := needAuth.Group("/notification")
			{
				notificationRoute.GET("", notifCtrl.GetNotifications)
				notificationRoute.POST(":id/read", notifCtrl.MarkReadHandler)
			}

			savedRoute := needAuth.Group("/savedjob")
			{
				savedRoute.GET("", savedCtrl.GetSavedJobs)
				savedRoute.POST(":id", savedCtrl.SaveHandler)
				savedRoute.DELETE(":id", savedCtrl.UnsaveHandler)
			}

			uploadRoute := needAuth.Group("/upload")
			{
				uploadRoute.Use(middleware.CheckBanned(), middleware.SizeLimit(5<<20))
				uploadRoute.POST("resume", middleware.CheckRole(model.RoleJobSeeker), uploadCtrl.UploadResume)
				uploadRoute.POST("profile-image", middleware.CheckRole(model.RoleJobSeeker), uploadCtrl.UploadProfileImage)
				uploadRoute.POST("logo", middleware.CheckRole(model.RoleEmployer), uploadCtrl.UploadLogo)
			}

			adminRoute := needAuth.Group("/admin")
			{
				adminRoute.Use(middleware.CheckRole(model.RoleAdmin))
				adminRoute.GET("accounts", adminCtrl.ListAccounts)
				adminRoute.POST("accounts/:id/ban", adminCtrl.BanAccount)
				adminRoute.POST("accounts/:id/unban", adminCtrl.UnbanAccount)
				adminRoute.DELETE("accounts/:id", adminCtrl.DeleteAccount)
				adminRoute.GET("stats", adminCtrl.GetStats)
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func (s *MyServer) healthHandler(c *gin.Context) {
	if s.DB == nil {
		c.JSON(http.StatusOK, map[string]string{"status": "up", "backend": "memory"})
		return
	}
	c.JSON(http.StatusOK, s.DB.Health())
}
