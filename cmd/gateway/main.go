package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/MakazhanAlpamys/aibio/internal/api/http"
	"github.com/MakazhanAlpamys/aibio/internal/auth"
	"github.com/MakazhanAlpamys/aibio/internal/chat"
	"github.com/MakazhanAlpamys/aibio/internal/config"
	"github.com/MakazhanAlpamys/aibio/internal/db"
	"github.com/MakazhanAlpamys/aibio/internal/material"
	"github.com/MakazhanAlpamys/aibio/internal/progress"
	"github.com/MakazhanAlpamys/aibio/internal/quiz"
	"github.com/MakazhanAlpamys/aibio/internal/rbac"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()

	// --- Services ---
	authSvc := auth.NewService(cfg.JWTSecret, auth.NewSQLUserStore(dbh))
	quizStore := quiz.NewSQLStore(dbh)
	quizSvc := quiz.NewService(quizStore)
	aggregator := progress.NewAggregator(quizStore)
	materialSvc := material.NewService(material.NewSQLStore(dbh))
	gemini := chat.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(ar chi.Router) {
		ar.Post("/register", api.RegisterHandler(authSvc))
		ar.Post("/login", api.LoginHandler(authSvc))

		// Protected API (JWT → principal in context → RBAC)
		ar.Group(func(pr chi.Router) {
			pr.Use(auth.JWTMiddleware(authSvc))

			pr.With(rbac.Require("material:create")).
				Post("/materials", api.CreateMaterialHandler(materialSvc))
			pr.With(rbac.Require("material:view")).
				Get("/materials", api.ListMaterialsHandler(materialSvc))
			pr.With(rbac.Require("material:view")).
				Get("/materials/{materialID}", api.GetMaterialHandler(materialSvc))

			pr.With(rbac.Require("quiz:create")).
				Post("/quizzes", api.CreateQuizHandler(quizSvc))
			pr.With(rbac.Require("quiz:view")).
				Get("/quizzes", api.ListQuizzesHandler(quizSvc))
			pr.With(rbac.Require("quiz:view")).
				Get("/quizzes/{quizID}", api.GetQuizHandler(quizSvc))
			pr.With(rbac.Require("quiz:delete-own")).
				Delete("/quizzes/{quizID}", api.DeleteQuizHandler(quizSvc))
			pr.With(rbac.Require("quiz:submit")).
				Post("/quizzes/{quizID}/submit", api.SubmitQuizHandler(quizSvc))

			pr.With(rbac.Require("progress:view-own")).
				Get("/progress", api.StudentProgressHandler(aggregator))
			pr.With(rbac.Require("progress:view-all")).
				Get("/teacher/progress", api.TeacherProgressHandler(aggregator))

			pr.With(rbac.Require("qrcode:create")).
				Post("/qrcode", api.QRCodeHandler(cfg.FrontendURL))
			pr.With(rbac.Require("chat:use")).
				Post("/chat", api.ChatHandler(gemini))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-stopCtx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
