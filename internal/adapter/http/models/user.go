package models

import (
	"errors"
	"net/mail"
	"strings"
)

type CreateUserRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r CreateUserRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Login) == "" {
		errs = append(errs, "login is required")
	}

	email := strings.TrimSpace(r.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, "email is not a valid address")
	}

	if len(strings.TrimSpace(r.Password)) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type UpdateUserRequest struct {
	Login string `json:"login"`
	Email string `json:"email"`
}

func (r UpdateUserRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Login) == "" {
		errs = append(errs, "login is required")
	}

	email := strings.TrimSpace(r.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, "email is not a valid address")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type UserResponse struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
