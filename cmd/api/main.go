package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shiftclock/shiftclock-backend-go/internal/config"
	appHTTP "github.com/shiftclock/shiftclock-backend-go/internal/handler/http"
	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/cron"
	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/database"
	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/jwt"
	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/oauth"
	"github.com/shiftclock/shiftclock-backend-go/internal/repository/postgresql"
	authService "github.com/shiftclock/shiftclock-backend-go/internal/service/auth"
	patternService "github.com/shiftclock/shiftclock-backend-go/internal/service/pattern"
	payService "github.com/shiftclock/shiftclock-backend-go/internal/service/pay"
	shiftService "github.com/shiftclock/shiftclock-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgresDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	patternRepo := postgresql.NewPatternRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	rulesetRepo := postgresql.NewRulesetRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	authSvc := authService.NewAuthService(userRepo, jwtService, googleService)
	patternSvc := patternService.NewPatternService(patternRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo, patternRepo)
	paySvc := payService.NewPayService(rulesetRepo, shiftRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	patternHandler := appHTTP.NewPatternHandler(patternSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	payHandler := appHTTP.NewPayHandler(paySvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		patternHandler,
		shiftHandler,
		payHandler,
	)

	scheduler := cron.NewScheduler()
	horizonJobs := cron.NewHorizonJobs(patternRepo, shiftSvc, cfg.Horizon.Days)
	horizonJobs.RegisterJobs(scheduler, time.Duration(cfg.Horizon.IntervalHours)*time.Hour)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
