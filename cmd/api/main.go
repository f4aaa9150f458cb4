package main

import (
	"fmt"
	"net/http"

	"github.com/oppstream/oppstream-backend-go/internal/config"
	appHTTP "github.com/oppstream/oppstream-backend-go/internal/handler/http"
	"github.com/oppstream/oppstream-backend-go/internal/pkg/database"
	"github.com/oppstream/oppstream-backend-go/internal/pkg/jwt"
	"github.com/oppstream/oppstream-backend-go/internal/pkg/oauth"
	"github.com/oppstream/oppstream-backend-go/internal/repository/postgresql"
	authService "github.com/oppstream/oppstream-backend-go/internal/service/auth"
	businessUnitService "github.com/oppstream/oppstream-backend-go/internal/service/businessunit"
	dashboardService "github.com/oppstream/oppstream-backend-go/internal/service/dashboard"
	employeeService "github.com/oppstream/oppstream-backend-go/internal/service/employee"
	logService "github.com/oppstream/oppstream-backend-go/internal/service/log"
	summaryService "github.com/oppstream/oppstream-backend-go/internal/service/summary"
	userService "github.com/oppstream/oppstream-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	businessUnitRepo := postgresql.NewBusinessUnitRepository(db)
	logRepo := postgresql.NewLogRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	authSvc := authService.NewAuthService(db, userRepo, jwtService, jwtRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, businessUnitRepo)
	logSvc := logService.NewLogService(db, logRepo, employeeRepo)
	businessUnitSvc := businessUnitService.NewBusinessUnitService(businessUnitRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, employeeRepo, businessUnitRepo, logRepo)
	userSvc := userService.NewUserService(db, userRepo, employeeRepo, businessUnitRepo)
	summarySvc := summaryService.NewSummaryService(cfg.Summary)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	logHandler := appHTTP.NewLogHandler(logSvc)
	businessUnitHandler := appHTTP.NewBusinessUnitHandler(businessUnitSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	adminHandler := appHTTP.NewAdminHandler(userSvc)
	summaryHandler := appHTTP.NewSummaryHandler(summarySvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			FrontendURL: cfg.App.FrontendURL,
			Env:         cfg.App.Env,
		},
		jwtService,
		authHandler,
		employeeHandler,
		logHandler,
		businessUnitHandler,
		dashboardHandler,
		adminHandler,
		summaryHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
