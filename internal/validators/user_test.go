package validators

import (
	"testing"

	"github.com/diewo77/clinic-admin/internal/forms"
	"github.com/diewo77/clinic-admin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func validatorDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Profile{}))
	return db
}

func validInput() forms.Input {
	return forms.Input{
		"username":              "jdoe",
		"email":                 "j@x.com",
		"password":              "secret",
		"password_confirmation": "secret",
	}
}

func TestUserValidatorAcceptsValidCreate(t *testing.T) {
	uv := NewUserValidator(validatorDB(t))
	assert.NoError(t, uv.Validate(validInput(), UserRules{}))
}

func TestUserValidatorRequiredFields(t *testing.T) {
	uv := NewUserValidator(validatorDB(t))
	in := validInput()
	delete(in, "username")
	err := uv.Validate(in, UserRules{})
	ve, ok := AsValidation(err)
	require.True(t, ok, "expected a ValidationError, got %v", err)
	assert.Equal(t, "required", ve.Violations["username"])
}

func TestUserValidatorFormats(t *testing.T) {
	uv := NewUserValidator(validatorDB(t))

	in := validInput()
	in["username"] = "j doe!"
	err := uv.Validate(in, UserRules{})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "alpha_dash", ve.Violations["username"])

	in = validInput()
	in["email"] = "nope"
	err = uv.Validate(in, UserRules{})
	ve, _ = AsValidation(err)
	assert.Equal(t, "email_invalid", ve.Violations["email"])

	in = validInput()
	in["password"] = "abc"
	in["password_confirmation"] = "abc"
	err = uv.Validate(in, UserRules{})
	ve, _ = AsValidation(err)
	assert.Equal(t, "too_short", ve.Violations["password"])

	in = validInput()
	in["password_confirmation"] = "other"
	err = uv.Validate(in, UserRules{})
	ve, _ = AsValidation(err)
	assert.Equal(t, "confirmation_mismatch", ve.Violations["password"])
}

func TestUserValidatorUniqueness(t *testing.T) {
	db := validatorDB(t)
	require.NoError(t, db.Create(&models.User{Username: "jdoe", Email: "j@x.com", Password: "x"}).Error)
	uv := NewUserValidator(db)

	err := uv.Validate(validInput(), UserRules{})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "username_taken", ve.Violations["username"])
	assert.Equal(t, "email_taken", ve.Violations["email"])
}

func TestUserValidatorUniquenessExcludesSelfOnUpdate(t *testing.T) {
	db := validatorDB(t)
	u := models.User{Username: "jdoe", Email: "j@x.com", Password: "x"}
	require.NoError(t, db.Create(&u).Error)
	uv := NewUserValidator(db)

	in := forms.Input{"username": "jdoe", "email": "j@x.com"}
	assert.NoError(t, uv.Validate(in, UserRules{PasswordOptional: true, ExceptUserID: u.ID}))
}

func TestUserValidatorPasswordOptionalOnUpdate(t *testing.T) {
	uv := NewUserValidator(validatorDB(t))

	// no password at all: fine
	in := forms.Input{"username": "jdoe", "email": "j@x.com"}
	assert.NoError(t, uv.Validate(in, UserRules{PasswordOptional: true}))

	// a submitted password still has to meet the rules
	in["password"] = "abc"
	in["password_confirmation"] = "abc"
	err := uv.Validate(in, UserRules{PasswordOptional: true})
	ve, ok := AsValidation(err)
	if assert.True(t, ok) {
		assert.Equal(t, "too_short", ve.Violations["password"])
	}
}

func TestProfileValidator(t *testing.T) {
	pv := NewProfileValidator()

	assert.NoError(t, pv.Validate(forms.Input{
		"first_name": "Jane",
		"last_name":  "Doe",
		"birthdate":  "1990-06-15",
		"contact_no": "555-1234",
	}))

	err := pv.Validate(forms.Input{"middle_name": "Q"})
	ve, ok := AsValidation(err)
	if assert.True(t, ok) {
		assert.Equal(t, "required", ve.Violations["first_name"])
		assert.Equal(t, "required", ve.Violations["last_name"])
	}

	err = pv.Validate(forms.Input{
		"first_name": "Jane",
		"last_name":  "Doe",
		"birthdate":  "not a date",
	})
	ve, _ = AsValidation(err)
	assert.Equal(t, "date_invalid", ve.Violations["birthdate"])
}

func TestValidationErrorMessage(t *testing.T) {
	uv := NewUserValidator(validatorDB(t))
	err := uv.Validate(forms.Input{}, UserRules{})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	msg := ve.Message("en")
	assert.Contains(t, msg, "username: Required")
	assert.Contains(t, msg, "email: Required")
	assert.Contains(t, msg, "password: Required")
}
