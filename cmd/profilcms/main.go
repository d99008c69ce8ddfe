// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"profilcms/internal/auth"
	"profilcms/internal/cache"
	"profilcms/internal/config"
	"profilcms/internal/content"
	"profilcms/internal/handler/api"
	webhandler "profilcms/internal/handler/web"
	"profilcms/internal/i18n"
	"profilcms/internal/logging"
	"profilcms/internal/middleware"
	"profilcms/internal/render"
	"profilcms/internal/scheduler"
	"profilcms/internal/search"
	"profilcms/internal/seo"
	"profilcms/internal/service"
	"profilcms/internal/session"
	"profilcms/internal/store"
	"profilcms/internal/transfer"
	"profilcms/internal/version"
	"profilcms/web"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	importLegacy := flag.String("import-legacy", "", "Import content from a legacy MySQL DSN and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Profil CMS - personal profile site server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROFIL_SESSION_SECRET  Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROFIL_DB_PATH         SQLite database path (default: ./data/profil.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROFIL_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROFIL_ENV             Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROFIL_SITE_URL        Absolute site URL for canonical links\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROFIL_REDIS_URL       Redis URL for distributed caching (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Println(version.String())
		os.Exit(0)
	}

	if err := run(*importLegacy); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(importLegacy string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("closing database", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// warn and error records also land in the event log table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	queries := store.New(db)
	if err := queries.SeedLanguages(ctx); err != nil {
		return fmt.Errorf("seeding languages: %w", err)
	}
	if cfg.AdminPassword != "" {
		hash, err := auth.HashPassword(cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("hashing admin password: %w", err)
		}
		created, err := queries.SeedAdminUser(ctx, cfg.AdminEmail, cfg.AdminName, hash)
		if err != nil {
			return fmt.Errorf("seeding admin user: %w", err)
		}
		if created {
			logger.Info("admin account created", "email", cfg.AdminEmail)
		}
	}

	contentSvc := content.NewService(db, logger)

	if importLegacy != "" {
		importer, err := transfer.NewImporter(importLegacy, contentSvc, queries, logger)
		if err != nil {
			return fmt.Errorf("opening legacy database: %w", err)
		}
		defer func() { _ = importer.Close() }()
		return importer.Run(ctx)
	}

	catalog, err := i18n.NewCatalog()
	if err != nil {
		return fmt.Errorf("loading locales: %w", err)
	}

	pageCache, err := cache.New(cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	})
	if err != nil {
		logger.Warn("redis unavailable, using memory cache", "error", err)
		pageCache = cache.NewMemory(cache.Options{
			Prefix:     cfg.CachePrefix,
			DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
			MaxSize:    cfg.CacheMaxSize,
		})
	}
	defer func() { _ = pageCache.Close() }()
	if cfg.UseRedisCache() {
		logger.Info("cache initialized", "backend", "redis")
	} else {
		logger.Info("cache initialized", "backend", "memory")
	}

	languages := cache.NewLanguages(queries)
	sessionManager := session.New(db, cfg.IsDevelopment())

	renderer, err := render.New(web.Templates(), catalog)
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}

	media := service.NewMedia(cfg.UploadsDir, logger)
	captcha := service.NewCaptcha(cfg.HCaptchaSecretKey)
	translator := service.NewTranslator(cfg.OpenAIAPIKey)
	geoip, err := service.NewGeoIP(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn("geoip database unavailable", "path", cfg.GeoIPDBPath, "error", err)
	} else {
		defer func() { _ = geoip.Close() }()
	}

	apiHandler := api.NewHandler(api.Config{
		DB:         db,
		Content:    contentSvc,
		Search:     search.NewService(contentSvc, 20),
		Languages:  languages,
		Catalog:    catalog,
		Media:      media,
		Captcha:    captcha,
		Translator: translator,
		GeoIP:      geoip,
		Sessions:   sessionManager,
		Log:        logger,
	})

	site := seo.Site{Name: cfg.SiteName, URL: cfg.SiteURL, PersonName: cfg.SitePerson}
	webHandler := webhandler.NewHandler(webhandler.Config{
		Content:        contentSvc,
		Languages:      languages,
		Catalog:        catalog,
		Renderer:       renderer,
		Pages:          pageCache,
		Site:           site,
		CaptchaSiteKey: cfg.HCaptchaSiteKey,
		Log:            logger,
	})

	sched := scheduler.New(db, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	requireAuth := middleware.RequireAuth(sessionManager, db, apiHandler.Unauthorized)
	formLimiter := middleware.NewRateLimiter(rate.Limit(1), 5)
	apiLimiter := middleware.NewRateLimiter(rate.Limit(100), 200)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.StripSlashes)
	r.Use(middleware.SecurityHeaders)
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.Language(languages, catalog))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(cfg.AllowedOrigins))
		r.Use(middleware.CSRF([]byte(cfg.SessionSecret), trustedHosts(cfg.AllowedOrigins), logger))
		r.Use(apiLimiter.Handler(apiHandler.RateLimited))
		r.Mount("/", apiHandler.Routes(requireAuth, formLimiter))
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(web.Static())))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	r.Mount("/", webHandler.Routes())

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// trustedHosts reduces CORS origins to the host-only form the CSRF
// library expects.
func trustedHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, origin := range origins {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			hosts = append(hosts, u.Host)
			continue
		}
		hosts = append(hosts, origin)
	}
	return hosts
}
