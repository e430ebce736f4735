package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/chetan-code/taskmanager/internal/config"
	"github.com/chetan-code/taskmanager/internal/handler"
	"github.com/chetan-code/taskmanager/internal/repository"
)

func initDB(dburl string) *sql.DB {
	db, err := sql.Open("pgx", dburl)
	if err != nil {
		slog.Error("database_initialization_failed", "error", err)
		os.Exit(1)
	}

	//check if connection is alive
	err = db.Ping()
	if err != nil {
		slog.Error("database_connection_ping_failed", "error", err)
		os.Exit(1)
	}

	slog.Info("database_initialization_success")

	return db
}

func loggerMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		//logging completion of a request
		slog.Info("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"ip", r.RemoteAddr,
			//imp : how long does it take a req to complete
			"duration", time.Since(start).String(),
		)
	})
}

func routing(r *mux.Router, auth *handler.AuthHandler, tasks *handler.TaskHandler) {
	r.HandleFunc("/", handler.HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/register", auth.RegisterHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", auth.LoginHandler).Methods(http.MethodPost)

	//task routes require a valid bearer token
	r.HandleFunc("/api/tasks", auth.Middleware(tasks.ListHandler)).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks", auth.Middleware(tasks.CreateHandler)).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{id}", auth.Middleware(tasks.UpdateHandler)).Methods(http.MethodPut)
	r.HandleFunc("/api/tasks/{id}", auth.Middleware(tasks.DeleteHandler)).Methods(http.MethodDelete)
}

func startServer(port string, h http.Handler) {
	slog.Info("server_starting", "port", port)
	err := http.ListenAndServe(port, h)
	if err != nil {
		slog.Error("server_start_failed", "error", err)
	}
}

func setupSlog() {
	//Json handler that writes to standard out
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug, //log debug and above
		AddSource: true,            //adds file name and line number
	})

	//Intialise new logger and set it as default for the server
	logger := slog.New(handler)
	slog.SetDefault(logger)
}

func main() {

	//structure logging
	setupSlog()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", "error", err)
		os.Exit(1)
	}

	db := initDB(cfg.DBURL)
	defer db.Close()

	users, err := repository.NewUserRepo(db)
	if err != nil {
		slog.Error("repository_creation_failed", "error", err)
		os.Exit(1)
	}
	tasks, err := repository.NewTaskRepo(db)
	if err != nil {
		slog.Error("repository_creation_failed", "error", err)
		os.Exit(1)
	}

	authHandler := handler.NewAuthHandler(users, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	taskHandler := handler.NewTaskHandler(tasks)

	//routing
	r := mux.NewRouter()
	routing(r, authHandler, taskHandler)

	//middleweare
	wrappedMux := loggerMW(r)

	startServer(fmt.Sprintf(":%d", cfg.Port), wrappedMux)
}
