package services

import (
	"strings"

	"kriya/internal/domain"
	"kriya/internal/form"
	"kriya/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users *repos.UserRepo
}

type Registration struct {
	Name        string
	Email       string
	Phone       string
	Password    string
	AcceptTerms bool
}

// RegistrationForm declares the sign-up fields and their rules.
func RegistrationForm() *form.Form {
	return form.New(
		form.Field("name", "",
			form.Required("Name is required"),
			form.Length(2, 50, "Name must be between 2 and 50 characters")),
		form.Field("email", "",
			form.Required("Email is required"),
			form.Email("Please enter a valid email address")),
		form.Field("phone", "",
			form.Required("Phone number is required"),
			form.Phone("Please enter a valid Indonesian phone number")),
		form.Field("password", "",
			form.Required("Password is required"),
			form.Password("Password must be at least 8 letters and digits, with at least one of each")),
		form.Field("terms", false,
			form.Accepted("You must accept the terms and conditions")),
	)
}

// Register validates r, creates a USER and signs the session in.
func (s *AuthService) Register(sid string, r Registration) (*domain.User, error) {
	f := RegistrationForm()
	_ = form.Set(f, "name", r.Name)
	_ = form.Set(f, "email", r.Email)
	_ = form.Set(f, "phone", r.Phone)
	_ = form.Set(f, "password", r.Password)
	_ = form.Set(f, "terms", r.AcceptTerms)
	if !f.ValidateForm() {
		return nil, invalid(f.Errors())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:    uuid.NewString(),
		Email: strings.TrimSpace(r.Email),
		Name:  strings.TrimSpace(r.Name),
		Phone: strings.TrimSpace(r.Phone),
		Hash:  string(hash),
		Role:  domain.RoleUser,
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
