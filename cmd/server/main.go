package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/quizhall/server/internal/bank"
	"github.com/quizhall/server/internal/config"
	"github.com/quizhall/server/internal/database"
	"github.com/quizhall/server/internal/middleware"
	"github.com/quizhall/server/internal/quiz"
	"github.com/quizhall/server/internal/sessions"
	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()

	// Load the question bank once; it is read-only afterwards.
	store, err := loadBank(cfg)
	if err != nil {
		log.Fatalf("Failed to load question bank: %v", err)
	}
	log.Printf("Question bank loaded: %d questions, %d categories", store.Len(), len(store.Categories()))

	sessionStore := sessions.NewStore(cfg.SessionLifetime)
	sessionStore.StartSweeper(5*time.Minute, make(chan struct{}))
	codec := sessions.NewCodec(cfg.SecretKey, cfg.SessionLifetime)

	service := quiz.NewService(store, cfg)
	handler := quiz.NewHandler(service, sessionStore, codec)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.ResolveSession(codec))
	handler.RegisterRoutes(api)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, c.Handler(r)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func loadBank(cfg *config.Config) (*bank.Store, error) {
	switch cfg.QuestionsSource {
	case "postgres":
		db, err := database.Connect()
		if err != nil {
			return nil, err
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			return nil, err
		}
		return bank.LoadDB(db)
	default:
		return bank.LoadFile(cfg.QuestionsFile)
	}
}
