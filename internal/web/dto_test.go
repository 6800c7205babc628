package web

import (
	"errors"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/parsgolf/server/internal/service"

	"github.com/gofiber/fiber/v2"
)

func Test_validateUserName(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "ok", username: "golfer_42", wantErr: false},
		{name: "empty", username: "", wantErr: true},
		{name: "starts with digit", username: "1golfer", wantErr: true},
		{name: "spaces", username: "bad name", wantErr: true},
		{name: "single char", username: "a", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := validateUserName(tt.username); (err != nil) != tt.wantErr {
				t.Errorf("validateUserName() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_validateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "ok", email: "bob@example.com", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "no at", email: "bob.example.com", wantErr: true},
		{name: "no domain", email: "bob@", wantErr: true},
		{name: "spaces", email: "bob @example.com", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := validateEmail(tt.email); (err != nil) != tt.wantErr {
				t.Errorf("validateEmail() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_validatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "ok", password: "longenough", wantErr: false},
		{name: "empty", password: "", wantErr: true},
		{name: "short", password: "seven77", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := validatePassword(tt.password); (err != nil) != tt.wantErr {
				t.Errorf("validatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// A malformed numeric field must surface as a validation error so form
// handlers re-render with a message instead of failing the request.
func Test_parseClubFormBadNumberIsValidation(t *testing.T) {
	app := fiber.New()
	app.Post("/clubs", func(c *fiber.Ctx) error {
		_, err := parseClubForm(c)
		switch {
		case err == nil:
			return c.SendStatus(fiber.StatusOK)
		case errors.Is(err, service.ErrValidation):
			return c.SendStatus(fiber.StatusBadRequest)
		default:
			return c.SendStatus(fiber.StatusInternalServerError)
		}
	})

	form := url.Values{}
	form.Set("name", "Stealth 2 Driver")
	form.Set("brand", "TaylorMade")
	form.Set("club_type", "Driver")
	form.Set("price", "abc")

	req := httptest.NewRequest(fiber.MethodPost, "/clubs", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}
}

func Test_joinInt(t *testing.T) {
	v, err := joinInt(nil, " 42 ", "par")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Errorf("joinInt() = %d, want 42", v)
	}

	v, err = joinInt(nil, "", "par")
	if err != nil || v != 0 {
		t.Errorf("empty value should be zero without error, got %d, %v", v, err)
	}

	_, err = joinInt(nil, "abc", "par")
	if err == nil {
		t.Error("expected error for non-numeric value")
	}
}
