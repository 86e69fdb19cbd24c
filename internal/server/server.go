package server

import (
	"log"
	"strings"
	"time"

	"github.com/kickstarthq/talent-backend/internal/config"
	"github.com/kickstarthq/talent-backend/internal/middleware"
	"github.com/kickstarthq/talent-backend/internal/ratelimit"
	"github.com/kickstarthq/talent-backend/pkg/storage"

	adminHttp "github.com/kickstarthq/talent-backend/internal/modules/admin/delivery/http"
	adminService "github.com/kickstarthq/talent-backend/internal/modules/admin/service"

	applicationHttp "github.com/kickstarthq/talent-backend/internal/modules/application/delivery/http"
	applicationRepo "github.com/kickstarthq/talent-backend/internal/modules/application/repository"
	applicationService "github.com/kickstarthq/talent-backend/internal/modules/application/service"

	authHttp "github.com/kickstarthq/talent-backend/internal/modules/auth/delivery/http"
	authRepo "github.com/kickstarthq/talent-backend/internal/modules/auth/repository"
	authService "github.com/kickstarthq/talent-backend/internal/modules/auth/service"

	notifHttp "github.com/kickstarthq/talent-backend/internal/modules/notification/delivery/http"
	notifRepo "github.com/kickstarthq/talent-backend/internal/modules/notification/repository"
	notifService "github.com/kickstarthq/talent-backend/internal/modules/notification/service"

	onboardingHttp "github.com/kickstarthq/talent-backend/internal/modules/onboarding/delivery/http"
	onboardingService "github.com/kickstarthq/talent-backend/internal/modules/onboarding/service"

	profileHttp "github.com/kickstarthq/talent-backend/internal/modules/profile/delivery/http"
	profileService "github.com/kickstarthq/talent-backend/internal/modules/profile/service"

	roleHttp "github.com/kickstarthq/talent-backend/internal/modules/role/delivery/http"
	roleRepo "github.com/kickstarthq/talent-backend/internal/modules/role/repository"
	roleService "github.com/kickstarthq/talent-backend/internal/modules/role/service"

	savedHttp "github.com/kickstarthq/talent-backend/internal/modules/saved/delivery/http"
	savedRepo "github.com/kickstarthq/talent-backend/internal/modules/saved/repository"
	savedService "github.com/kickstarthq/talent-backend/internal/modules/saved/service"

	searchService "github.com/kickstarthq/talent-backend/internal/modules/search/service"

	skillHttp "github.com/kickstarthq/talent-backend/internal/modules/skill/delivery/http"
	skillRepo "github.com/kickstarthq/talent-backend/internal/modules/skill/repository"
	skillService "github.com/kickstarthq/talent-backend/internal/modules/skill/service"

	startupHttp "github.com/kickstarthq/talent-backend/internal/modules/startup/delivery/http"
	startupRepo "github.com/kickstarthq/talent-backend/internal/modules/startup/repository"
	startupService "github.com/kickstarthq/talent-backend/internal/modules/startup/service"

	studentHttp "github.com/kickstarthq/talent-backend/internal/modules/student/delivery/http"
	studentRepo "github.com/kickstarthq/talent-backend/internal/modules/student/repository"
	studentService "github.com/kickstarthq/talent-backend/internal/modules/student/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kickstarthq/talent-backend/internal/entity"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Server {
	accountRepo := authRepo.NewAccountRepository(db)

	fileStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		// Uploads come back as 400 until the cloudinary env is set.
		log.Printf("cloudinary storage disabled: %v", err)
		fileStorage = nil
	}

	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := searchService.NewSearchService(meiliClient)

	authSvc := authService.NewAuthService(accountRepo)
	authHandler := authHttp.NewAuthHandler(authSvc)

	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notifHttp.NewNotificationHandler(notificationSvc, redisClient)

	skillRepository := skillRepo.NewSkillRepository(db)
	skillSvc := skillService.NewSkillService(skillRepository)
	skillHandler := skillHttp.NewSkillHandler(skillSvc)

	studentRepository := studentRepo.NewStudentRepository(db)
	studentSvc := studentService.NewStudentService(studentRepository, accountRepo, skillSvc, searchSvc, fileStorage)
	studentHandler := studentHttp.NewStudentHandler(studentSvc)

	startupRepository := startupRepo.NewStartupRepository(db)
	startupSvc := startupService.NewStartupService(startupRepository, searchSvc, fileStorage)
	startupHandler := startupHttp.NewStartupHandler(startupSvc)

	roleRepository := roleRepo.NewRoleRepository(db)
	roleSvc := roleService.NewRoleService(roleRepository, skillSvc, searchSvc)
	roleHandler := roleHttp.NewRoleHandler(roleSvc)

	applicationRepository := applicationRepo.NewApplicationRepository(db)
	applicationSvc := applicationService.NewApplicationService(applicationRepository, roleRepository, notificationSvc, ratelimit.NewRedisLimiter(redisClient), cfg.RateLimitApply)
	applicationHandler := applicationHttp.NewApplicationHandler(applicationSvc)

	savedRepository := savedRepo.NewSavedRepository(db)
	savedSvc := savedService.NewSavedService(savedRepository, roleRepository, studentRepository)
	savedHandler := savedHttp.NewSavedHandler(savedSvc)

	onboardingSvc := onboardingService.NewOnboardingService(accountRepo, studentRepository, startupRepository, skillSvc, searchSvc)
	onboardingHandler := onboardingHttp.NewOnboardingHandler(onboardingSvc)

	profileSvc := profileService.NewProfileService(accountRepo, fileStorage)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	adminSvc := adminService.NewAdminService(accountRepo, startupRepository, roleRepository, applicationRepository, notificationSvc, searchSvc)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(accountRepo)

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.SignUp)
		auth.POST("/login", authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", authHandler.Me)

		// Onboarding
		protected.POST("/onboarding/complete", onboardingHandler.Complete)

		// Account profile
		protected.PUT("/profile", profileHandler.UpdateAccount)
		protected.PUT("/profile/password", profileHandler.ChangePassword)
		protected.POST("/profile/avatar", profileHandler.UploadAvatar)

		// Student routes
		protected.GET("/students", studentHandler.Directory)
		protected.GET("/students/me", studentHandler.GetMe)
		protected.GET("/students/:id", studentHandler.GetStudent)
		protected.PUT("/students/me", studentHandler.UpdateProfile)
		protected.PATCH("/students/me/availability", studentHandler.ToggleAvailability)
		protected.PUT("/students/me/skills", studentHandler.UpdateSkills)
		protected.POST("/students/me/experiences", studentHandler.AddExperience)
		protected.DELETE("/students/me/experiences/:id", studentHandler.DeleteExperience)
		protected.POST("/students/me/resume", studentHandler.UploadResume)

		// Startup routes
		protected.GET("/startups", startupHandler.Directory)
		protected.GET("/startups/me", startupHandler.GetMe)
		protected.GET("/startups/:id", startupHandler.GetStartup)
		protected.PUT("/startups/me", startupHandler.UpdateProfile)
		protected.POST("/startups/me/logo", startupHandler.UploadLogo)

		// Role routes
		protected.GET("/roles", roleHandler.Discover)
		protected.GET("/roles/me", roleHandler.ListMyRoles)
		protected.GET("/roles/:id", roleHandler.GetRole)
		protected.GET("/roles/:id/applications", applicationHandler.ListRoleApplications)

		startupOnly := protected.Group("")
		startupOnly.Use(authMiddleware.RequireRole(entity.RoleStartup))
		{
			startupOnly.POST("/roles", roleHandler.CreateRole)
			startupOnly.PUT("/roles/:id", roleHandler.UpdateRole)
			startupOnly.DELETE("/roles/:id", roleHandler.DeleteRole)
		}

		// Application routes
		protected.POST("/applications", applicationHandler.Apply)
		protected.GET("/applications/me", applicationHandler.ListMyApplications)
		protected.POST("/applications/:id/withdraw", applicationHandler.Withdraw)
		protected.PATCH("/applications/:id/status", applicationHandler.AdvanceStatus)

		// Saved roles and students
		protected.GET("/saved/roles", savedHandler.ListSavedRoles)
		protected.POST("/saved/roles/:id", savedHandler.SaveRole)
		protected.DELETE("/saved/roles/:id", savedHandler.UnsaveRole)
		protected.GET("/saved/students", savedHandler.ListSavedStudents)
		protected.POST("/saved/students/:id", savedHandler.SaveStudent)
		protected.DELETE("/saved/students/:id", savedHandler.UnsaveStudent)

		// Skill vocabulary
		protected.GET("/skills", skillHandler.ListSkills)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.GET("/metrics", adminHandler.Metrics)
			adminGroup.GET("/startups", adminHandler.ListStartups)
			adminGroup.POST("/startups/:id/verify", adminHandler.SetVerified)
			adminGroup.DELETE("/startups/:id", adminHandler.DeclineStartup)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
