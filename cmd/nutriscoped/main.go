// Command nutriscoped is the hosted Nutriscope service.
// It serves the analyze API, the product catalog, and a health check.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nutriscope/nutriscope/internal/analysis"
	"github.com/nutriscope/nutriscope/internal/api"
	"github.com/nutriscope/nutriscope/internal/detector"
	"github.com/nutriscope/nutriscope/internal/platform"
	"github.com/nutriscope/nutriscope/internal/product"
	"github.com/nutriscope/nutriscope/pkg/additive"
	"github.com/nutriscope/nutriscope/pkg/scoring"
)

type config struct {
	Port           string
	DatabaseURL    string
	APIKey         string
	DetectorURL    string
	DetectorAPIKey string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	GCSBucket      string
	LocalStorage   string
}

func loadConfig() config {
	return config{
		Port:           envOrDefault("PORT", "8080"),
		DatabaseURL:    envOrDefault("DATABASE_URL", "postgres://localhost:5432/nutriscope?sslmode=disable"),
		APIKey:         os.Getenv("API_KEY"),
		DetectorURL:    envOrDefault("DETECTOR_URL", "http://localhost:9090"),
		DetectorAPIKey: os.Getenv("DETECTOR_API_KEY"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       os.Getenv("S3_REGION"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		GCSBucket:      os.Getenv("GCS_BUCKET"),
		LocalStorage:   envOrDefault("LOCAL_STORAGE_PATH", "/tmp/nutriscope-data"),
	}
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	db, err := platform.OpenDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	storage, err := buildStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	registry, err := additive.Default()
	if err != nil {
		log.Fatalf("additive knowledge base: %v", err)
	}

	// Initialize services
	products := product.NewService(db)
	det := detector.NewClient(cfg.DetectorURL, cfg.DetectorAPIKey, 30*time.Second)
	engine := scoring.NewEngine(registry, scoring.Defaults())
	analysisSvc := analysis.NewService(db, products, storage, det, engine)

	handler := api.NewHandler(db, products, analysisSvc, registry, nil)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	chain := api.RequestLogger(api.CORS(api.APIKeyAuth(cfg.APIKey)(mux)))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: chain,
	}

	// Graceful shutdown
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("starting nutriscoped on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-shutdownCtx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// buildStorage picks a blob backend from the environment: S3 and GCS for
// deployments, local disk otherwise.
func buildStorage(ctx context.Context, cfg config) (analysis.StorageClient, error) {
	switch {
	case cfg.S3Bucket != "":
		log.Printf("using S3 storage bucket %s", cfg.S3Bucket)
		return analysis.NewS3Storage(ctx, analysis.S3Config{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
		})
	case cfg.GCSBucket != "":
		log.Printf("using GCS storage bucket %s", cfg.GCSBucket)
		return analysis.NewGCSStorage(ctx, cfg.GCSBucket)
	default:
		log.Printf("using local storage at %s", cfg.LocalStorage)
		return analysis.NewLocalStorage(cfg.LocalStorage), nil
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
