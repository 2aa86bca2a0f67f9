package models

import (
	"fmt"

	"github.com/diewo77/clinic-admin/internal/forms"
	"github.com/diewo77/clinic-admin/validation"
	"golang.org/x/crypto/bcrypt"
)

// FullName derives the stored full_name from its three parts.
func FullName(first, middle, last string) string {
	return fmt.Sprintf("%s %s %s", first, middle, last)
}

// NewUserFromInput builds a User from validated input, hashing the password.
func NewUserFromInput(in forms.Input) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Get("password")), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	return User{
		Username: in.Get("username"),
		Email:    in.Get("email"),
		Password: string(hash),
	}, nil
}

// ApplyUserInput overwrites username and email, and the password only when
// one was submitted.
func ApplyUserInput(u *User, in forms.Input) error {
	u.Username = in.Get("username")
	u.Email = in.Get("email")
	if in.Has("password") {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Get("password")), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		u.Password = string(hash)
	}
	return nil
}

// ApplyProfileInput overwrites every profile field from validated input.
// Address and birthdate are reset to null when absent from the input; the
// avatar is overwritten only when a new storage reference is supplied.
func ApplyProfileInput(p *Profile, in forms.Input, avatarRef string) {
	p.FirstName = in.Get("first_name")
	p.MiddleName = in.Get("middle_name")
	p.LastName = in.Get("last_name")
	p.FullName = FullName(p.FirstName, p.MiddleName, p.LastName)
	p.ContactNo = in.Get("contact_no")

	p.Address = nil
	if in.Has("address") {
		addr := in.Get("address")
		p.Address = &addr
	}

	p.Birthdate = nil
	if in.Has("birthdate") {
		if t, ok := validation.ParseDate(in.Get("birthdate")); ok {
			iso := t.Format("2006-01-02")
			p.Birthdate = &iso
		}
	}

	if avatarRef != "" {
		p.Avatar = &avatarRef
	}
}
