package handlers

import (
	"net/http"
	"strings"

	"github.com/diewo77/clinic-admin/auth"
	"github.com/diewo77/clinic-admin/httpx"
	"github.com/diewo77/clinic-admin/internal/middleware"
	"github.com/diewo77/clinic-admin/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct{ DB *gorm.DB }

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

// LoginForm renders the login page, bouncing already-authenticated admins to
// the user list.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if uid, ok := auth.ParseSession(r); ok && uid != 0 {
		var count int64
		if err := h.DB.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err == nil && count > 0 {
			http.Redirect(w, r, "/administrator/users", http.StatusSeeOther)
			return
		}
		// stale session: clear and fall through to the form
		auth.ClearSession(w)
	}
	render(w, r, "login.html", nil)
}

// Login authenticates with username (or email) and password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	login := strings.TrimSpace(r.FormValue("username"))
	pass := r.FormValue("password")
	if login == "" || pass == "" {
		h.reject(w, r)
		return
	}
	var user models.User
	if err := h.DB.Where("username = ? OR email = ?", login, login).First(&user).Error; err != nil {
		h.reject(w, r)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(pass)) != nil {
		h.reject(w, r)
		return
	}
	auth.CreateSession(w, user.ID)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"id": user.ID})
		return
	}
	http.Redirect(w, r, "/administrator/users", http.StatusSeeOther)
}

func (h *AuthHandler) reject(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	middleware.Flash(w, r, "flash_invalid_password")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout clears the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
