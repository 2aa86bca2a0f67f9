package validators

import (
	"github.com/diewo77/clinic-admin/internal/forms"
	"github.com/diewo77/clinic-admin/validation"
)

// ProfileValidator checks personal-detail fields. first_name and last_name
// are required; the rest are optional but format-checked when present.
type ProfileValidator struct{}

func NewProfileValidator() *ProfileValidator { return &ProfileValidator{} }

func (pv *ProfileValidator) Validate(in forms.Input) error {
	v := validation.Violations{}
	validation.Required("first_name", in.Get("first_name"), v)
	validation.Required("last_name", in.Get("last_name"), v)
	validation.Date("birthdate", in.Get("birthdate"), v)
	validation.Phone("contact_no", in.Get("contact_no"), v)
	return fail(v)
}
