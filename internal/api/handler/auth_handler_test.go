package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/bizsphere/marketplace/internal/core/domain"
	"github.com/bizsphere/marketplace/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.Account, string, error)
	loginFn    func(ctx context.Context, email, password string) (*domain.Account, string, error)
	logoutFn   func(ctx context.Context, token string) error
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, string, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.Account, error) {
	return nil, errors.New("not used by handlers")
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.Account, string, error) {
			if in.Name != "Jane" || in.Email != "jane@shop.test" || in.Role != "owner" || in.BusinessName != "Jane's" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Account{
				ID:                 "acc-1",
				Name:               in.Name,
				Email:              in.Email,
				PasswordHash:       "$2a$10$hash",
				Role:               domain.RoleOwner,
				BusinessName:       in.BusinessName,
				VerificationStatus: domain.VerificationPending,
			}, "jwt-token", nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newRequestContext(http.MethodPost, "/auth/register",
		`{"name":"Jane","email":"jane@shop.test","password":"pw","role":"owner","businessName":"Jane's"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertStatus(t, rec, http.StatusCreated)

	var resp map[string]any
	decodeBody(t, rec, &resp)
	if resp["message"] != "User registered successfully" || resp["token"] != "jwt-token" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["email"] != "jane@shop.test" || user["role"] != "owner" || user["verificationStatus"] != "pending" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash must never be serialized")
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.Account, string, error) {
			t.Fatalf("should not be called")
			return nil, "", nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newRequestContext(http.MethodPost, "/auth/register", `{"name":"Jane","password":"pw"}`)
	he := assertHTTPError(t, h.Register(c), http.StatusBadRequest)
	if he.Message != "email is required" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newRequestContext(http.MethodPost, "/auth/register", "not-json")
	assertHTTPError(t, h.Register(c), http.StatusBadRequest)
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.Account, string, error) {
			return nil, "", domain.ErrDuplicateEmail
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newRequestContext(http.MethodPost, "/auth/register", `{"name":"J","email":"j@shop.test","password":"pw"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*domain.Account, string, error) {
			if email != "jane@shop.test" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &domain.Account{ID: "acc-1", Email: email, Role: domain.RoleCustomer}, "jwt-token", nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newRequestContext(http.MethodPost, "/auth/login", `{"email":"jane@shop.test","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertStatus(t, rec, http.StatusOK)

	var resp authResponseBody
	decodeBody(t, rec, &resp)
	if resp.Message != "Login successful" || resp.Token != "jwt-token" || resp.User.ID != "acc-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

type authResponseBody struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
}

func TestAuthHandler_Login_MissingPassword(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.Account, string, error) {
			t.Fatalf("should not be called")
			return nil, "", nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newRequestContext(http.MethodPost, "/auth/login", `{"email":"jane@shop.test"}`)
	he := assertHTTPError(t, h.Login(c), http.StatusBadRequest)
	if he.Message != "Email and password are required" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestAuthHandler_Login_Refused(t *testing.T) {
	for _, want := range []error{domain.ErrInvalidCredentials, domain.ErrTooManyAttempts} {
		stub := &stubAuthService{
			loginFn: func(context.Context, string, string) (*domain.Account, string, error) {
				return nil, "", want
			},
		}
		h := NewAuthHandler(stub)

		c, _ := newRequestContext(http.MethodPost, "/auth/login", `{"email":"jane@shop.test","password":"bad"}`)
		if err := h.Login(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestLoginResult(t *testing.T) {
	cases := map[error]string{
		domain.ErrInvalidCredentials: "invalid_credentials",
		domain.ErrTooManyAttempts:    "throttled",
		errors.New("boom"):           "error",
	}
	for err, want := range cases {
		if got := loginResult(err); got != want {
			t.Fatalf("loginResult(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	account := &domain.Account{ID: "acc-7", Name: "Jane", Role: domain.RoleRider}

	c, rec := newRequestContext(http.MethodGet, "/auth/me", "")
	if err := asAccount(c, account, h.Me); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertStatus(t, rec, http.StatusOK)

	var resp authResponseBody
	decodeBody(t, rec, &resp)
	if resp.User.ID != "acc-7" || resp.User.Role != "rider" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestAuthHandler_Me_Unguarded(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newRequestContext(http.MethodGet, "/auth/me", "")
	if err := h.Me(c); !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	var revoked string
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, token string) error {
			revoked = token
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newRequestContext(http.MethodPost, "/auth/logout", "")
	c.Request().Header.Set("Authorization", "Bearer abc.def.ghi")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertStatus(t, rec, http.StatusOK)
	if revoked != "abc.def.ghi" {
		t.Fatalf("expected token to be revoked, got %q", revoked)
	}
}

func TestAuthHandler_Logout_NoToken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newRequestContext(http.MethodPost, "/auth/logout", "")
	if err := h.Logout(c); !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}
