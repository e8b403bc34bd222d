// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/auth"
	adminctl "github.com/keshavbardwaj1348/job-portal-backend/internal/controller/admin"
	applicationctl "github.com/keshavbardwaj1348/job-portal-backend/internal/controller/application"
	jobctl "github.com/keshavbardwaj1348/job-portal-backend/internal/controller/job"
	profilectl "github.com/keshavbardwaj1348/job-portal-backend/internal/controller/profile"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/metrics"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/middleware"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/model"

	// Init swagger doc
	_ "github.com/keshavbardwaj1348/job-portal-backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const googleUserInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(s.logger),
		metrics.GinMiddleware(),
		middleware.SafeHeader(),
	)

	googleOauth := &oauth2.Config{
		ClientID:     s.cfg.OAuth.GoogleClientID,
		ClientSecret: s.cfg.OAuth.GoogleClientSecret,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint:    google.Endpoint,
		RedirectURL: s.cfg.OAuth.RedirectURL,
	}

	gAuth := auth.NewOauthLoginHandler(s.db, s.tokens, googleOauth, googleUserInfoEndpoint)
	lAuth := auth.NewLocalAuthHandler(s.db, s.tokens)
	logout := auth.NewLogoutController(s.blacklist)
	jobController := jobctl.NewJobController(s.db)
	applicationController := applicationctl.NewApplicationController(s.db, s.store)
	profileController := profilectl.NewProfileController(s.db, s.store)
	adminController := adminctl.NewAdminController(s.db)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.Server.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRoute := r.Group("/auth")
	{
		authRoute.POST("signup", lAuth.SignupHandler)
		authRoute.POST("login", lAuth.LocalLoginHandler)

		authRoute.POST("google/applicant", gAuth.ApplicantGoogleLoginHandler)
		authRoute.POST("google/recruiter", gAuth.RecruiterGoogleLoginHandler)
		authRoute.GET("google/callback", gAuth.Callback)
	}

	// Everything below requires a live, unrevoked token bound to an
	// unblocked account
	needAuth := r.Group("")
	{
		needAuth.Use(
			middleware.JwtBlacklistCheck(s.blacklist),
			middleware.RequireAuth(s.db, s.tokens),
		)

		needAuth.POST("/auth/logout", logout.LogoutHandler)
		needAuth.GET("/auth/profile", auth.GetProfileHandler)

		jobRoute := needAuth.Group("/jobs")
		{
			jobRoute.GET("", jobController.GetJobs)
			jobRoute.GET(":id", jobController.GetJobByID)

			// Ownership of the posting is checked inside the handlers
			jobRoute.POST("", middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin), jobController.CreateJobHandler)
			jobRoute.PUT(":id", middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin), jobController.EditJob)
			jobRoute.DELETE(":id", middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin), jobController.DeleteJob)
		}

		applicationRoute := needAuth.Group("/applications")
		{
			applicationRoute.POST(":id/apply",
				middleware.CheckRole(model.RoleApplicant),
				middleware.SizeLimit(s.cfg.Storage.MaxUploadBytes),
				applicationController.ApplyHandler)
			applicationRoute.GET(":id", applicationController.GetOwnApplications)
			applicationRoute.GET(":id/applicants",
				middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin),
				applicationController.GetApplicants)
			applicationRoute.PUT(":id/status",
				middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin),
				applicationController.UpdateStatus)
			applicationRoute.GET(":id/resume",
				middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin),
				applicationController.GetResume)
		}

		profileRoute := needAuth.Group("/profile")
		{
			profileRoute.GET("me", profileController.GetMyProfile)
			profileRoute.PUT("update", profileController.EditProfile)
			profileRoute.POST("upload",
				middleware.SizeLimit(s.cfg.Storage.MaxUploadBytes),
				profileController.UploadResume)
			profileRoute.POST("upload-logo",
				middleware.SizeLimit(s.cfg.Storage.MaxUploadBytes),
				profileController.UploadLogo)
		}

		needAdmin := needAuth.Group("/admin")
		{
			needAdmin.Use(middleware.CheckRole(model.RoleAdmin))
			needAdmin.GET("users", adminController.GetUsers)
			needAdmin.PUT("users/:id/toggle", adminController.ToggleBlock)
			needAdmin.GET("jobs", adminController.GetJobs)
			needAdmin.PUT("jobs/:id/approve", adminController.ApproveJob)
			needAdmin.GET("stats", adminController.GetStats)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *Server) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.db.Health())
}
