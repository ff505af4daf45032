package form

import "kriya/internal/validate"

func Check[T any](fn func(T) bool, message string) Rule[T] {
	return Rule[T]{Check: fn, Message: message}
}

func Required(message string) Rule[string] {
	return Check(validate.NotEmpty, message)
}

func Length(min, max int, message string) Rule[string] {
	return Check(func(s string) bool { return validate.WithinLength(s, min, max) }, message)
}

func Email(message string) Rule[string] {
	return Check(func(s string) bool { _, ok := validate.Email(s); return ok }, message)
}

func Password(message string) Rule[string] {
	return Check(validate.Password, message)
}

func Phone(message string) Rule[string] {
	return Check(func(s string) bool { _, ok := validate.Phone(s); return ok }, message)
}

func PostalCode(message string) Rule[string] {
	return Check(func(s string) bool { _, ok := validate.PostalCode(s); return ok }, message)
}

func Accepted(message string) Rule[bool] {
	return Check(validate.Accepted, message)
}
