package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"movie-quiz-service/internal/app"
	"movie-quiz-service/internal/config"
	"movie-quiz-service/internal/domain"
	"movie-quiz-service/internal/infra/csvfile"
	"movie-quiz-service/internal/infra/memory"
	pgstore "movie-quiz-service/internal/infra/postgres"
	redisstore "movie-quiz-service/internal/infra/redis"
	transport "movie-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the movie quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.MovieLoader
	switch {
	case pool != nil:
		loader = pgstore.NewMovieLoader(pool)
	case moviesFile(cfg) != "":
		loader = csvfile.NewMovieLoader(moviesFile(cfg))
	default:
		loader = memory.NewStaticMovieLoader(sampleMovies())
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	if redisClient != nil {
		loader = redisstore.NewCatalogSource(redisClient, loader, catalogTTL)
	}
	catalog := memory.NewCatalog(loader)

	var sessions app.SessionRepository
	if redisClient != nil {
		sessions = redisstore.NewSessionStore(redisClient, redisTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	var board app.LeaderboardStore
	if pool != nil {
		board = pgstore.NewLeaderboardStore(pool)
	} else {
		board, err = csvfile.NewLeaderboardStore(leaderboardFile(cfg))
		if err != nil {
			return err
		}
	}

	service := app.NewQuizService(sessions, catalog, board)
	handler := transport.NewHandler(service)
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler.Register(mux)
	mux.HandleFunc("GET /ws/leaderboard", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting movie quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func moviesFile(cfg config.Config) string {
	if cfg.Catalog.MoviesFile != "" {
		return cfg.Catalog.MoviesFile
	}
	return os.Getenv("MOVIES_FILE")
}

func leaderboardFile(cfg config.Config) string {
	if cfg.Leaderboard.File != "" {
		return cfg.Leaderboard.File
	}
	if f := os.Getenv("LEADERBOARD_FILE"); f != "" {
		return f
	}
	return "leaderboard.csv"
}

// sampleMovies provides a minimal corpus for demos; point catalog.movies_file
// or postgres.url at real data in production.
func sampleMovies() []domain.Movie {
	return []domain.Movie{
		{
			ID:            1,
			Category:      "Hollywood",
			Director:      "Christopher Nolan",
			Genre:         "Sci-Fi",
			LeadActor:     "Leonardo DiCaprio",
			Title:         "Inception",
			ScrambledHint: "CNIPOTNEI",
		},
		{
			ID:            2,
			Category:      "Hollywood",
			Director:      "Frank Darabont",
			Genre:         "Drama",
			LeadActor:     "Tim Robbins",
			Title:         "The Shawshank Redemption",
			ScrambledHint: "HET WHSKSAHNA MDREETIPON",
		},
		{
			ID:            3,
			Category:      "Hollywood",
			Director:      "Ridley Scott",
			Genre:         "Sci-Fi",
			LeadActor:     "Sigourney Weaver",
			Title:         "Alien",
			ScrambledHint: "ENILA",
		},
	}
}
