package validator

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"cloudnest-api/internal/infrastructure/storage"
	"cloudnest-api/internal/interface/api/rest/dto/auth"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt safe

	maxFolderNameLen = 128
)

// <local-part>@<domain>.<TLD>
var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ValidatePage(page string) (int, error) {
	p := 1
	if page != "" {
		p, err := strconv.Atoi(page)
		if err != nil || p < 1 {
			return p, errors.New("invalid page")
		}
		return p, nil
	}

	return p, nil
}

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

func ValidateRegister(r auth.RegisterRequest) map[string]string {
	errs := make(map[string]string)

	username := strings.TrimSpace(r.Username)
	email := strings.ToLower(strings.TrimSpace(r.Email))

	if username == "" {
		errs["username"] = "username is required"
	} else if l := utf8.RuneCountInString(username); l < 2 || l > 64 {
		errs["username"] = "username length must be 2–64 characters"
	}

	if email == "" {
		errs["email"] = "email is required"
	} else if !emailRe.MatchString(email) {
		errs["email"] = "invalid email format"
	}

	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	} else if l := utf8.RuneCountInString(r.Password); l < minPasswordLen || l > maxPasswordLen {
		errs["password"] = "password length must be 8–72 characters"
	} else if r.Password != r.ConfirmPassword {
		errs["confirm_password"] = "passwords do not match"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	email := strings.ToLower(strings.TrimSpace(r.Email))

	if email == "" {
		errs["email"] = "email is required"
	} else if !emailRe.MatchString(email) {
		errs["email"] = "invalid email format"
	}

	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateFolderName rejects anything that could not serve as a single
// path segment, which keeps traversal defense at the boundary as well as
// in the resolver.
func ValidateFolderName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("folder name is required")
	}
	if utf8.RuneCountInString(name) > maxFolderNameLen {
		return errors.New("folder name too long")
	}
	if err := storage.CheckSegment(name); err != nil {
		return errors.New("folder name contains invalid characters")
	}
	return nil
}
