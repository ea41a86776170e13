package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/mind-engage/mindengage-quizgen/internal/api/http"
	auth "github.com/mind-engage/mindengage-quizgen/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quizgen/internal/config"
	"github.com/mind-engage/mindengage-quizgen/internal/export"
	"github.com/mind-engage/mindengage-quizgen/internal/extract"
	"github.com/mind-engage/mindengage-quizgen/internal/logger"
	"github.com/mind-engage/mindengage-quizgen/internal/ocr"
	"github.com/mind-engage/mindengage-quizgen/internal/quiz"
)

func main() {
	cfg, err := config.Load(os.Getenv("QUIZ_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// --- Store ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal("open store", "driver", cfg.StoreDriver, "error", err)
	}
	defer st.close()

	// --- Extraction ---
	tess := ocr.NewTesseractOCR(cfg.TesseractPath)
	tess.Lang = cfg.OCRLang
	tess.Timeout = cfg.OCRTimeout
	if err := tess.Check(); err != nil {
		log.Warn("OCR fallback unavailable until tesseract is installed", "error", err)
	}
	raster := ocr.NewPopplerRasterizer(cfg.PopplerBinPath)
	raster.DPI = cfg.OCRDPI
	raster.WorkDir = cfg.TempDir

	pipeline := extract.NewPDFPipeline(extract.TextLayerExtractor{}, extract.NewOCRExtractor(raster, tess), log)
	router := extract.NewRouter(pipeline, cfg.TempDir, log)

	renderer := export.NewPDFRenderer(cfg.TempDir)
	renderer.FontPath = cfg.PDFFontPath

	svc := quiz.NewService(router, st.store, renderer, export.QTIExporter{}, log)
	if st.events != nil {
		svc.Events = st.events
	}
	quizAPI := api.NewQuizAPI(svc, cfg.MaxUploadBytes, log)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)
	r.Group(func(pr chi.Router) {
		if cfg.EnableAuth {
			pr.Post("/auth/login", auth.LoginHandler(authSvc, auth.Account{
				Username: cfg.AdminUser,
				PassHash: cfg.AdminPassHash,
				Role:     "admin",
			}))
			pr.Post("/auth/guest", auth.GuestLoginHandler(authSvc))
			pr.Use(auth.JWTMiddleware(authSvc))
		} else {
			// offline single-user mode
			pr.Use(auth.StaticRole("admin"))
		}
		pr.Route("/quizzes", quizAPI.Routes)
		pr.Route("/api/quizzes", quizAPI.Routes)
	})

	r.Get("/healthz", api.HealthHandler)
	r.Get("/readyz", api.ReadyHandler(map[string]func(context.Context) error{
		"store": st.ping,
	}))

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Info("listening", "addr", cfg.HTTPAddr, "mode", cfg.Mode, "store", cfg.StoreDriver, "auth", cfg.EnableAuth)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
}
