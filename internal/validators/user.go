package validators

import (
	"github.com/diewo77/clinic-admin/internal/forms"
	"github.com/diewo77/clinic-admin/internal/models"
	"github.com/diewo77/clinic-admin/validation"
	"gorm.io/gorm"
)

// UserRules overrides the default create-path rules per call-site.
type UserRules struct {
	// PasswordOptional relaxes the password requirement: min-length and
	// confirmation still apply, but only when a password was submitted.
	PasswordOptional bool
	// ExceptUserID excludes one user from the uniqueness checks so an
	// unchanged username/email survives an update of that same user.
	ExceptUserID uint
}

// UserValidator checks account fields against format and uniqueness rules.
// Uniqueness is a pure read of current persisted state.
type UserValidator struct {
	DB *gorm.DB
}

func NewUserValidator(db *gorm.DB) *UserValidator { return &UserValidator{DB: db} }

func (uv *UserValidator) Validate(in forms.Input, rules UserRules) error {
	v := validation.Violations{}

	username := in.Get("username")
	validation.Required("username", username, v)
	validation.AlphaDash("username", username, v)
	if _, taken := v["username"]; !taken && uv.exists("username", username, rules.ExceptUserID) {
		v["username"] = "username_taken"
	}

	email := in.Get("email")
	validation.Required("email", email, v)
	validation.Email("email", email, v)
	if _, bad := v["email"]; !bad && uv.exists("email", email, rules.ExceptUserID) {
		v["email"] = "email_taken"
	}

	password := in.Get("password")
	if !rules.PasswordOptional {
		validation.Required("password", password, v)
	}
	if password != "" || !rules.PasswordOptional {
		validation.MinLen("password", password, 5, v)
		if _, bad := v["password"]; !bad {
			validation.Confirmed("password", password, in.Get("password_confirmation"), v)
		}
	}

	return fail(v)
}

func (uv *UserValidator) exists(column, value string, exceptID uint) bool {
	var count int64
	q := uv.DB.Model(&models.User{}).Where(column+" = ?", value)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Limit(1).Count(&count).Error; err != nil {
		// treat a failed lookup as a conflict rather than letting a
		// duplicate slip through
		return true
	}
	return count > 0
}
