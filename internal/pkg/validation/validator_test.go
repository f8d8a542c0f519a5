package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
)

func str(s string) *string { return &s }

func validRegister() ports.RegisterInput {
	return ports.RegisterInput{
		Name:     str("Alice Doe"),
		Email:    str("alice@example.com"),
		Password: str("secret1"),
	}
}

func asValidationError(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T (%v)", err, err)
	}
	return ve
}

func TestValidate_RegisterValid(t *testing.T) {
	in := validRegister()
	if err := New().Validate(&in); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}

func TestValidate_LoginValid(t *testing.T) {
	in := ports.LoginInput{Email: str("alice@example.com"), Password: str("secret1")}
	if err := New().Validate(&in); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}

func TestValidate_Messages(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ports.RegisterInput)
		want   string
	}{
		{"missing name", func(in *ports.RegisterInput) { in.Name = nil }, `"name" is required`},
		{"empty name", func(in *ports.RegisterInput) { in.Name = str("") }, `"name" is not allowed to be empty`},
		{"short name", func(in *ports.RegisterInput) { in.Name = str("Al") }, `"name" length must be at least 6 characters long`},
		{"long name", func(in *ports.RegisterInput) { in.Name = str(strings.Repeat("a", 256)) }, `"name" length must be less than or equal to 255 characters long`},
		{"missing email", func(in *ports.RegisterInput) { in.Email = nil }, `"email" is required`},
		{"empty email", func(in *ports.RegisterInput) { in.Email = str("") }, `"email" is not allowed to be empty`},
		{"bad email", func(in *ports.RegisterInput) { in.Email = str("not-an-email") }, `"email" must be a valid email`},
		{"unknown tld", func(in *ports.RegisterInput) { in.Email = str("alice@example.notatld") }, `"email" must be a valid email`},
		{"no tld", func(in *ports.RegisterInput) { in.Email = str("alice@localhost") }, `"email" must be a valid email`},
		{"short email", func(in *ports.RegisterInput) { in.Email = str("a@b.c") }, `"email" length must be at least 6 characters long`},
		{"empty password", func(in *ports.RegisterInput) { in.Password = str("") }, `"password" is not allowed to be empty`},
		{"short password", func(in *ports.RegisterInput) { in.Password = str("12345") }, `"password" length must be at least 6 characters long`},
		{"long password", func(in *ports.RegisterInput) { in.Password = str(strings.Repeat("p", 1025)) }, `"password" length must be less than or equal to 1024 characters long`},
	}

	v := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegister()
			tc.mutate(&in)
			ve := asValidationError(t, v.Validate(&in))
			if ve.Error() != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, ve.Error())
			}
		})
	}
}

func TestValidate_ReportsFirstViolationInSchemaOrder(t *testing.T) {
	in := ports.RegisterInput{Name: str("Al"), Email: str("nope"), Password: str("1")}
	ve := asValidationError(t, New().Validate(&in))

	if len(ve.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %+v", len(ve.Fields), ve.Fields)
	}
	if ve.Fields[0].Field != "name" || ve.Fields[1].Field != "email" || ve.Fields[2].Field != "password" {
		t.Fatalf("unexpected field order: %+v", ve.Fields)
	}
	if ve.Error() != ve.Fields[0].Message {
		t.Fatalf("Error() should report the first violation, got %q", ve.Error())
	}
}

func TestValidate_LengthCountsCharacters(t *testing.T) {
	in := validRegister()
	in.Name = str("Zoë Ñúñez")
	if err := New().Validate(&in); err != nil {
		t.Fatalf("expected multibyte name to be valid, got %v", err)
	}

	in.Name = str("ñññññ")
	ve := asValidationError(t, New().Validate(&in))
	if ve.Fields[0].Rule != "min" {
		t.Fatalf("expected min rule, got %s", ve.Fields[0].Rule)
	}
}

func TestValidate_EmailTopLevelDomains(t *testing.T) {
	v := New()
	for _, email := range []string{"alice@example.com", "alice@example.co.uk", "alice@EXAMPLE.ORG", "alice@mail.example.dev"} {
		in := ports.LoginInput{Email: str(email), Password: str("secret1")}
		if err := v.Validate(&in); err != nil {
			t.Fatalf("expected %s to be accepted, got %v", email, err)
		}
	}

	in := ports.LoginInput{Email: str("alice@example.notatld"), Password: str("secret1")}
	ve := asValidationError(t, v.Validate(&in))
	if ve.Fields[0].Rule != "emailtld" {
		t.Fatalf("expected emailtld rule, got %s", ve.Fields[0].Rule)
	}
}
