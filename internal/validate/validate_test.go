package validate

import (
	"errors"
	"testing"

	"github.com/gaillardy/crm/internal/directory"
)

func TestLogin(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
		fields   []string
	}{
		{"valid", "demo@example.com", "secret1", nil},
		{"bad email", "not-an-email", "secret1", []string{"email"}},
		{"email with spaces", "a b@example.com", "secret1", []string{"email"}},
		{"short password", "demo@example.com", "12345", []string{"password"}},
		{"both wrong", "nope", "123", []string{"email", "password"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Login(tc.email, tc.password)
			checkFields(t, err, tc.fields)
		})
	}
}

func TestClient(t *testing.T) {
	valid := directory.ClientInput{
		FirstName: "Marie",
		LastName:  "Dubois",
		Email:     "marie@example.com",
		Phone:     "+261 33 94 565 45",
	}

	if err := Client(valid); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*directory.ClientInput)
		fields []string
	}{
		{"short first name", func(in *directory.ClientInput) { in.FirstName = "M" }, []string{"first_name"}},
		{"short last name", func(in *directory.ClientInput) { in.LastName = "D" }, []string{"last_name"}},
		{"bad email", func(in *directory.ClientInput) { in.Email = "marie@" }, []string{"email"}},
		{"wrong country code", func(in *directory.ClientInput) { in.Phone = "+33 6 12 34 56 78" }, []string{"phone"}},
		{"bad prefix", func(in *directory.ClientInput) { in.Phone = "+261 31 94 565 45" }, []string{"phone"}},
		{"too short", func(in *directory.ClientInput) { in.Phone = "+261 33 94 565" }, []string{"phone"}},
		{"compact form accepted", func(in *directory.ClientInput) { in.Phone = "+261339456545" }, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			checkFields(t, Client(in), tc.fields)
		})
	}
}

func TestActivity(t *testing.T) {
	valid := directory.ActivityInput{
		Type:        directory.ActivityCall,
		Title:       "Appel de suivi",
		Description: "Discussion sur le renouvellement du contrat",
	}

	if err := Activity(valid); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*directory.ActivityInput)
		fields []string
	}{
		{"unknown type", func(in *directory.ActivityInput) { in.Type = "fax" }, []string{"type"}},
		{"short title", func(in *directory.ActivityInput) { in.Title = "ok" }, []string{"title"}},
		{"short description", func(in *directory.ActivityInput) { in.Description = "too short" }, []string{"description"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			checkFields(t, Activity(in), tc.fields)
		})
	}
}

func TestByField(t *testing.T) {
	err := Client(directory.ClientInput{})
	var errs Errors
	if !errors.As(err, &errs) {
		t.Fatalf("error is %T, want Errors", err)
	}
	if errs.ByField("email") == "" {
		t.Error("no message for email")
	}
	if errs.ByField("notes") != "" {
		t.Error("unexpected message for notes")
	}
}

func checkFields(t *testing.T, err error, want []string) {
	t.Helper()
	if len(want) == 0 {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	var errs Errors
	if !errors.As(err, &errs) {
		t.Fatalf("error is %T, want Errors", err)
	}
	if len(errs) != len(want) {
		t.Fatalf("got %d field errors (%v), want %d", len(errs), errs, len(want))
	}
	for i, field := range want {
		if errs[i].Field != field {
			t.Errorf("field[%d] = %s, want %s", i, errs[i].Field, field)
		}
	}
}
