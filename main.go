package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"

	"rma-backend/internal/platform/auth"
	"rma-backend/internal/platform/db"
	"rma-backend/internal/rma/boards"
	"rma-backend/internal/rma/dashboard"
	"rma-backend/internal/rma/employees"
	"rma-backend/internal/rma/loans"
	"rma-backend/internal/rma/masters"
)

func main() {
	cfg, err := db.LoadConfig("config/config.yaml")
	if err != nil {
		panic(err)
	}

	mode := cfg.Mode
	log.Printf("[INFO] mode:%s\n", mode)

	if cfg.Mode != "dev" && cfg.Mode != "release" {
		fmt.Println("Usage: go run main.go [dev|release]")
		return
	}

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	log.Printf("[INFO] connected to DB: %s", cfg.DB.DBName)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if mode == "dev" {
		// CORS is only needed while the frontend dev server runs separately.
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	secret := []byte(cfg.JWT.Secret)
	authSvc := auth.NewService(conn, secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)
	boardSvc := boards.NewService(conn)
	loanSvc := loans.NewService(conn)

	api := r.Group("/api")
	auth.RegisterRoutes(api, authSvc)
	boards.RegisterRoutes(api, boardSvc)
	loans.RegisterRoutes(api, loanSvc)
	employees.RegisterRoutes(api, employees.NewService(conn))
	dashboard.RegisterRoutes(api, dashboard.NewService(conn))
	masters.RegisterRoutes(api, conn)

	admin := r.Group("/api/admin")
	admin.Use(auth.RequireAuth(secret), auth.RequireRole(auth.RoleAdmin, auth.RoleSubAdmin))
	auth.RegisterAdminRoutes(admin, authSvc)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("[INFO] listening on http://0.0.0.0:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
