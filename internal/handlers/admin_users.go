package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/diewo77/clinic-admin/httpx"
	"github.com/diewo77/clinic-admin/internal/forms"
	"github.com/diewo77/clinic-admin/internal/middleware"
	"github.com/diewo77/clinic-admin/internal/models"
	"github.com/diewo77/clinic-admin/internal/upload"
	"github.com/diewo77/clinic-admin/internal/validators"
	"github.com/diewo77/clinic-admin/view"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

const usersPerPage = 20

// maxUploadBytes caps the in-memory part of multipart parsing.
const maxUploadBytes = 10 << 20

// Field allowlists per operation. "avatar" travels as a multipart file, not a
// form value, but stays listed to document the accepted input surface.
var (
	storeFields = []string{
		"username", "email", "password", "password_confirmation",
		"first_name", "middle_name", "last_name",
		"address", "birthdate", "avatar", "contact_no",
	}
	updateFields  = []string{"username", "password", "password_confirmation", "email"}
	profileFields = []string{
		"first_name", "middle_name", "last_name",
		"address", "birthdate", "avatar", "contact_no",
	}
)

// AdminUsersHandler orchestrates the administrator's user/profile CRUD:
// allowlisting, validation, entity construction, persistence and flash
// feedback for each operation.
type AdminUsersHandler struct {
	DB       *gorm.DB
	Uploader upload.Uploader
	Users    *validators.UserValidator
	Profiles *validators.ProfileValidator
}

func NewAdminUsersHandler(db *gorm.DB, up upload.Uploader) *AdminUsersHandler {
	return &AdminUsersHandler{
		DB:       db,
		Uploader: up,
		Users:    validators.NewUserValidator(db),
		Profiles: validators.NewProfileValidator(),
	}
}

// parseInput normalizes the request body (form, multipart or JSON object of
// strings) into url.Values so the allowlist extractor sees one shape.
func parseInput(r *http.Request) (url.Values, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var m map[string]string
		if err := httpx.DecodeJSON(r, &m); err != nil {
			return nil, err
		}
		values := url.Values{}
		for k, v := range m {
			values.Set(k, v)
		}
		return values, nil
	}
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, err
		}
		return r.Form, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.Form, nil
}

func parseID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// back redirects to the originating page, or to fallback when the request
// carries no Referer.
func back(w http.ResponseWriter, r *http.Request, fallback string) {
	target := r.Referer()
	if target == "" {
		target = fallback
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// failValidation surfaces a recoverable validation error: field map for JSON
// clients, localized flash + redirect back for browsers.
func (h *AdminUsersHandler) failValidation(w http.ResponseWriter, r *http.Request, ve *validators.ValidationError, fallback string) {
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation_error",
			"fields": ve.Violations,
		})
		return
	}
	middleware.FlashMessage(w, ve.Message(middleware.LangFrom(r)))
	back(w, r, fallback)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	http.NotFound(w, r)
}

func render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Flash"]; !ok {
		if msg, ok := middleware.PopFlash(w, r); ok {
			data["Flash"] = msg
		}
	}
	if err := view.Render(w, r, name, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// Index lists users ordered by id descending, 20 per page.
func (h *AdminUsersHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	var total int64
	if err := h.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	var users []models.User
	if err := h.DB.Preload("Profile").
		Order("id desc").
		Limit(usersPerPage).
		Offset((page - 1) * usersPerPage).
		Find(&users).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}

	pages := int((total + usersPerPage - 1) / usersPerPage)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"items": users,
			"total": total,
			"page":  page,
			"pages": pages,
		})
		return
	}
	render(w, r, "administrator/users/index.html", map[string]any{
		"Users": users,
		"Page":  page,
		"Pages": pages,
		"Total": total,
		"Prev":  page - 1,
		"Next":  page + 1,
	})
}

// New presents the empty create form.
func (h *AdminUsersHandler) New(w http.ResponseWriter, r *http.Request) {
	render(w, r, "administrator/users/create.html", nil)
}

// Store creates a User together with its Profile. The user is saved first to
// obtain its id; the two writes are sequential, not transactional.
func (h *AdminUsersHandler) Store(w http.ResponseWriter, r *http.Request) {
	values, err := parseInput(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	in := forms.Pick(values, storeFields...)

	if err := h.Users.Validate(in, validators.UserRules{}); err != nil {
		ve, _ := validators.AsValidation(err)
		h.failValidation(w, r, ve, "/administrator/users/create")
		return
	}
	if err := h.Profiles.Validate(in); err != nil {
		ve, _ := validators.AsValidation(err)
		h.failValidation(w, r, ve, "/administrator/users/create")
		return
	}

	user, err := models.NewUserFromInput(in)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}

	avatarRef, err := h.uploadAvatar(r)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "upload_error", nil)
		return
	}

	if err := h.DB.Create(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}
	profile := models.Profile{UserID: user.ID}
	models.ApplyProfileInput(&profile, in, avatarRef)
	if err := h.DB.Create(&profile).Error; err != nil {
		// no rollback of the user row: the dual save is best-effort sequential
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, map[string]any{"user": user, "profile": profile})
		return
	}
	middleware.Flash(w, r, "flash_user_created")
	http.Redirect(w, r, "/administrator/users", http.StatusSeeOther)
}

// Show displays a single user with its profile.
func (h *AdminUsersHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		notFound(w, r)
		return
	}
	var user models.User
	if err := h.DB.Preload("Profile").First(&user, id).Error; err != nil {
		notFound(w, r)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, user)
		return
	}
	render(w, r, "administrator/users/edit.html", map[string]any{
		"User":    user,
		"Profile": user.Profile,
	})
}

// Edit presents the edit form for a user and its profile.
func (h *AdminUsersHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		notFound(w, r)
		return
	}
	var user models.User
	if err := h.DB.Preload("Profile").First(&user, id).Error; err != nil {
		notFound(w, r)
		return
	}
	render(w, r, "administrator/users/edit.html", map[string]any{
		"User":    user,
		"Profile": user.Profile,
	})
}

// Update overwrites a user's account fields. The password is replaced only
// when one was submitted; validation runs before the fetch, so a bad payload
// for an unknown id still reads as a validation failure.
func (h *AdminUsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		notFound(w, r)
		return
	}
	values, err := parseInput(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	in := forms.Pick(values, updateFields...)

	rules := validators.UserRules{PasswordOptional: true, ExceptUserID: id}
	if err := h.Users.Validate(in, rules); err != nil {
		ve, _ := validators.AsValidation(err)
		h.failValidation(w, r, ve, "/administrator/users")
		return
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		notFound(w, r)
		return
	}
	if err := models.ApplyUserInput(&user, in); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if err := h.DB.Save(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, user)
		return
	}
	middleware.Flash(w, r, "flash_user_updated")
	back(w, r, "/administrator/users")
}

// UpdateProfile overwrites a profile fetched by its own primary key (not by
// the owning user's id). Optional fields omitted from the input overwrite any
// stored value with null.
func (h *AdminUsersHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		notFound(w, r)
		return
	}
	values, err := parseInput(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	in := forms.Pick(values, profileFields...)

	if err := h.Profiles.Validate(in); err != nil {
		ve, _ := validators.AsValidation(err)
		h.failValidation(w, r, ve, "/administrator/users")
		return
	}

	var profile models.Profile
	if err := h.DB.First(&profile, id).Error; err != nil {
		notFound(w, r)
		return
	}

	avatarRef, err := h.uploadAvatar(r)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "upload_error", nil)
		return
	}

	models.ApplyProfileInput(&profile, in, avatarRef)
	if err := h.DB.Save(&profile).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, profile)
		return
	}
	middleware.Flash(w, r, "flash_profile_updated")
	back(w, r, "/administrator/users")
}

// Destroy soft-deletes the user row only; its profile is left in place.
func (h *AdminUsersHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		notFound(w, r)
		return
	}
	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		notFound(w, r)
		return
	}
	if err := h.DB.Delete(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "db_error", nil)
		return
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
		return
	}
	middleware.Flash(w, r, "flash_user_deleted")
	back(w, r, "/administrator/users")
}

// uploadAvatar stores the "avatar" multipart file if one was submitted.
// A missing file is not an error; a failing upload is, and it aborts the
// request before anything else is written.
func (h *AdminUsersHandler) uploadAvatar(r *http.Request) (string, error) {
	if h.Uploader == nil {
		return "", nil
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		// no avatar part in the request
		return "", nil
	}
	defer file.Close()
	return h.Uploader.Upload(file, header)
}
