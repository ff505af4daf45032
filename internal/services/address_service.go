package services

import (
	"strings"

	"kriya/internal/domain"
	"kriya/internal/form"
	"kriya/internal/repos"

	"github.com/google/uuid"
)

type AddressService struct {
	Addrs *repos.AddressRepo
}

func NewAddressService(addrs *repos.AddressRepo) *AddressService {
	return &AddressService{Addrs: addrs}
}

type AddressInput struct {
	Recipient  string
	Phone      string
	Street     string
	City       string
	PostalCode string
}

func AddressForm() *form.Form {
	return form.New(
		form.Field("recipient", "",
			form.Required("Recipient is required"),
			form.Length(2, 50, "Recipient must be between 2 and 50 characters")),
		form.Field("phone", "",
			form.Required("Phone number is required"),
			form.Phone("Please enter a valid Indonesian phone number")),
		form.Field("street", "",
			form.Required("Street address is required"),
			form.Length(5, 120, "Street address must be between 5 and 120 characters")),
		form.Field("city", "",
			form.Required("City is required"),
			form.Length(2, 50, "City must be between 2 and 50 characters")),
		form.Field("postalCode", "",
			form.Required("Postal code is required"),
			form.PostalCode("Postal code must be 5 digits")),
	)
}

func (s *AddressService) Add(userID string, in AddressInput) (domain.Address, error) {
	f := AddressForm()
	_ = form.Set(f, "recipient", in.Recipient)
	_ = form.Set(f, "phone", in.Phone)
	_ = form.Set(f, "street", in.Street)
	_ = form.Set(f, "city", in.City)
	_ = form.Set(f, "postalCode", in.PostalCode)
	if !f.ValidateForm() {
		return domain.Address{}, invalid(f.Errors())
	}

	a := domain.Address{
		ID:         uuid.NewString(),
		UserID:     userID,
		Recipient:  strings.TrimSpace(in.Recipient),
		Phone:      strings.TrimSpace(in.Phone),
		Street:     strings.TrimSpace(in.Street),
		City:       strings.TrimSpace(in.City),
		PostalCode: strings.TrimSpace(in.PostalCode),
	}
	if err := s.Addrs.Create(a); err != nil {
		return domain.Address{}, err
	}
	return a, nil
}

func (s *AddressService) List(userID string) ([]domain.Address, error) {
	return s.Addrs.ListByUser(userID)
}

func (s *AddressService) Delete(userID, id string) error {
	return s.Addrs.Delete(userID, id)
}
