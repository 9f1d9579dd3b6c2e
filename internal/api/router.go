package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/tejasoft/business-suite/docs"
	"github.com/tejasoft/business-suite/internal/api/handler"
	"github.com/tejasoft/business-suite/internal/api/middleware"
	"github.com/tejasoft/business-suite/internal/core/domain"
	"github.com/tejasoft/business-suite/internal/core/ports"
	"github.com/tejasoft/business-suite/internal/core/service"
	"github.com/tejasoft/business-suite/internal/infrastructure/config"
	mongodb "github.com/tejasoft/business-suite/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The activity recorder is built by the caller so its worker lifecycle stays
// outside the HTTP layer.
func NewRouter(
	client *mongo.Client,
	db *mongo.Database,
	rdb *redis.Client,
	cfg *config.Config,
	recorder ports.ActivityRecorder,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("suite"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	employeeRepo := mongodb.NewEmployeeRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	assignmentRepo := mongodb.NewAssignmentRepository(db)
	serviceRepo := mongodb.NewServiceRepository(db)
	requestRepo := mongodb.NewRequestRepository(db)
	txRunner := mongodb.NewTxRunner(client)

	// --- Services ---
	authService := service.NewAuthService(userRepo, recorder, cfg.JWTSecret, 0, log)
	messageService := service.NewMessageService(messageRepo, userRepo, recorder, log)
	projectService := service.NewProjectService(projectRepo, assignmentRepo, requestRepo, clientRepo, employeeRepo, txRunner, recorder, log)
	requestService := service.NewRequestService(requestRepo, serviceRepo, clientRepo, recorder, log)
	directoryService := service.NewDirectoryService(userRepo, employeeRepo, clientRepo, projectRepo, log)
	catalogService := service.NewCatalogService(serviceRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, authService.TokenTTL(), cfg.Production())
	messageHandler := handler.NewMessageHandler(messageService)
	projectHandler := handler.NewProjectHandler(projectService)
	requestHandler := handler.NewRequestHandler(requestService)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	profileHandler := handler.NewProfileHandler(directoryService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	pageHandler := handler.NewPageHandler()

	// Session gate runs on every route; public paths pass through inside it.
	e.Use(middleware.Session(authService))

	// --- Auth ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.DELETE("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me)

	// --- Shared API surface (any authenticated role) ---
	messages := e.Group("/api/messages")
	messages.GET("", messageHandler.Conversations)
	messages.POST("", messageHandler.Send)
	messages.PUT("", messageHandler.SetRead)
	messages.GET("/contacts", messageHandler.Contacts)

	profile := e.Group("/api/profile")
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Update)

	// --- Admin API ---
	admin := e.Group("/api/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", directoryHandler.ListUsers)
	admin.POST("/users", authHandler.Register)
	admin.DELETE("/users/:userId", directoryHandler.DeleteUser)
	admin.GET("/employees", directoryHandler.ListEmployees)
	admin.GET("/clients", directoryHandler.ListClients)
	admin.GET("/stats", directoryHandler.Stats)
	admin.GET("/services", catalogHandler.List)
	admin.POST("/services", catalogHandler.Create)
	admin.GET("/requests", requestHandler.List)
	admin.PUT("/requests", requestHandler.UpdateStatus)
	admin.GET("/projects", projectHandler.List)
	admin.POST("/projects", projectHandler.Create)
	admin.PUT("/projects", projectHandler.UpdateStatus)
	admin.GET("/projects/:projectId/employees", projectHandler.Team)
	admin.POST("/projects/:projectId/employees", projectHandler.AddEmployee)
	admin.DELETE("/projects/:projectId/employees", projectHandler.RemoveEmployee)

	// --- Employee API ---
	employee := e.Group("/api/employee", middleware.RBAC(domain.RoleEmployee))
	employee.GET("/projects", projectHandler.List)
	employee.PUT("/projects", projectHandler.UpdateStatus)

	// --- Client API ---
	clientAPI := e.Group("/api/client", middleware.RBAC(domain.RoleClient))
	clientAPI.GET("/projects", projectHandler.List)
	clientAPI.GET("/services", catalogHandler.List)
	clientAPI.GET("/requests", requestHandler.List)
	clientAPI.POST("/requests", requestHandler.Create)

	// --- Pages ---
	e.GET("/", pageHandler.Home)
	e.GET("/login", pageHandler.Login)
	e.GET("/admin", pageHandler.Admin)
	e.GET("/admin/*", pageHandler.Admin)
	e.GET("/employee", pageHandler.Employee)
	e.GET("/employee/*", pageHandler.Employee)
	e.GET("/client", pageHandler.Client)
	e.GET("/client/*", pageHandler.Client)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
