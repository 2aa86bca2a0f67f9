package server

import (
	"context"
	"net/http"
	"time"

	"github.com/diewo77/clinic-admin/auth"
	"github.com/diewo77/clinic-admin/httpx"
	"github.com/diewo77/clinic-admin/internal/handlers"
	"github.com/diewo77/clinic-admin/internal/middleware"
	"github.com/diewo77/clinic-admin/internal/models"
	"github.com/diewo77/clinic-admin/internal/upload"
	"github.com/diewo77/clinic-admin/view"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Options bundles the collaborators the router needs.
type Options struct {
	DB        *gorm.DB
	Uploader  upload.Uploader
	UploadDir string
	Logger    zerolog.Logger
}

// New constructs the root http.Handler with all routes and middlewares applied.
func New(opts Options) http.Handler {
	db := opts.DB

	view.SetLangResolver(middleware.LangFrom)
	view.SetThemeResolver(middleware.ThemeFrom)

	// RequireAuth checks the session user still exists; RequireAdmin
	// additionally checks the admin flag.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})
	auth.SetAdminVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ? AND is_admin = ?", uid, true).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	r := chi.NewRouter()
	r.Use(middleware.Prefs)
	r.Use(requestLogger(opts.Logger))
	r.Use(withRecover)
	r.Use(auth.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		// lightweight DB check
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	ah := handlers.NewAuthHandler(db)
	r.Get("/login", ah.LoginForm)
	r.Post("/login", ah.Login)
	r.Post("/logout", ah.Logout)

	uh := handlers.NewAdminUsersHandler(db, opts.Uploader)
	r.Route("/administrator", func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Get("/users", uh.Index)
		r.Get("/users/create", uh.New)
		r.Post("/users", uh.Store)
		r.Get("/users/{id}", uh.Show)
		r.Get("/users/{id}/edit", uh.Edit)
		// HTML forms cannot send PUT/PATCH/DELETE, so POST aliases exist
		r.Put("/users/{id}", uh.Update)
		r.Patch("/users/{id}", uh.Update)
		r.Post("/users/{id}", uh.Update)
		r.Delete("/users/{id}", uh.Destroy)
		r.Post("/users/{id}/delete", uh.Destroy)
		r.Put("/profiles/{id}", uh.UpdateProfile)
		r.Patch("/profiles/{id}", uh.UpdateProfile)
		r.Post("/profiles/{id}", uh.UpdateProfile)
	})

	if opts.UploadDir != "" {
		fs := http.FileServer(http.Dir(opts.UploadDir))
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", fs))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/administrator/users", http.StatusSeeOther)
	})

	return r
}

// requestLogger emits one structured line per request.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(lw, r)
			log.Info().
				Str("method", r.Method).
				Str("uri", r.RequestURI).
				Int("status", lw.status()).
				Dur("duration", time.Since(start)).
				Int("size", lw.size).
				Send()
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	code int
	size int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

func (w *statusWriter) status() int {
	if w.code == 0 {
		return http.StatusOK
	}
	return w.code
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
