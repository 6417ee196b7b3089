package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"munchmarket/cart"
	"munchmarket/directory"
	"munchmarket/middleware"
	"munchmarket/models"
	"munchmarket/validate"
	"munchmarket/vendorstore"
)

// AuthController handles login, signup, logout and password resets
type AuthController struct {
	Directory *directory.Client
	Carts     cart.Store
	Logger    *zap.Logger

	pending *inflight
}

// NewAuthController creates a new AuthController
func NewAuthController(dir *directory.Client, carts cart.Store, logger *zap.Logger) *AuthController {
	return &AuthController{
		Directory: dir,
		Carts:     carts,
		Logger:    logger,
		pending:   newInflight(),
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
	Phone    string `json:"phone"`

	// Seller business fields
	BusinessName     string `json:"businessName"`
	BusinessLocation string `json:"businessLocation"`
	Description      string `json:"description"`
	BusinessType     string `json:"businessType"`
	CuisineType      string `json:"cuisineType"`
	DeliveryTime     int    `json:"deliveryTime"`
	MinPrice         int64  `json:"minPrice"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles account creation for buyers and sellers
func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	opKey := middleware.SessionFrom(r.Context()) + ":signup"
	if !ac.pending.begin(opKey) {
		writeError(w, http.StatusConflict, "Signup already in progress")
		return
	}
	defer ac.pending.end(opKey)

	// Field validation is advisory; the directory re-validates on its
	// own and its errors win.
	fieldErrors := signupFieldErrors(req)

	if req.UserType == "" {
		req.UserType = models.UserTypeBuyer
	}

	session, err := ac.Directory.SignUp(r.Context(), directory.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		UserType: req.UserType,
		Business: vendorstore.ProfileInput{
			BusinessName:     req.BusinessName,
			BusinessLocation: req.BusinessLocation,
			Description:      req.Description,
			BusinessType:     req.BusinessType,
			CuisineType:      req.CuisineType,
			OwnerEmail:       req.Email,
			DeliveryTime:     req.DeliveryTime,
			MinPrice:         req.MinPrice,
		},
	})
	if err != nil {
		var authErr *directory.AuthError
		if errors.As(err, &authErr) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":       authErr.Message,
				"fieldErrors": fieldErrors,
			})
			return
		}
		ac.Logger.Error("signup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Signup failed. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token":                  session.Token,
		"user":                   session.User,
		"profileSetupIncomplete": session.ProfileSetupIncomplete,
		"fieldErrors":            fieldErrors,
	})
}

// Login handles user authentication
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	opKey := middleware.SessionFrom(r.Context()) + ":login"
	if !ac.pending.begin(opKey) {
		writeError(w, http.StatusConflict, "Login already in progress")
		return
	}
	defer ac.pending.end(opKey)

	session, err := ac.Directory.Login(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		var authErr *directory.AuthError
		if errors.As(err, &authErr) {
			writeError(w, http.StatusUnauthorized, authErr.Message)
			return
		}
		ac.Logger.Error("login failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Login failed. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": session.Token,
		"user":  session.User,
	})
}

// Logout signs the user out and drops the session's cart
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	token := ""
	if parts := strings.Split(r.Header.Get("Authorization"), " "); len(parts) == 2 {
		token = parts[1]
	}

	if err := ac.Directory.SignOut(r.Context(), token); err != nil {
		ac.Logger.Warn("sign-out error", zap.Error(err))
	}

	// The cart's lifecycle ends with the session.
	if sid := middleware.SessionFrom(r.Context()); sid != "" {
		if err := ac.Carts.Delete(r.Context(), sid); err != nil {
			ac.Logger.Warn("cart delete at logout failed", zap.String("session", sid), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}

// ResetPassword sends a password reset email
func (ac *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := ac.Directory.ResetPassword(r.Context(), strings.TrimSpace(req.Email)); err != nil {
		var authErr *directory.AuthError
		if errors.As(err, &authErr) {
			writeError(w, http.StatusBadRequest, authErr.Message)
			return
		}
		ac.Logger.Error("password reset failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Password reset failed. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset email sent"})
}

func signupFieldErrors(req signupRequest) map[string]string {
	fields := map[string]validate.Field{
		"name":     {Type: validate.TypeText, Value: req.Name, Required: true},
		"email":    {Type: validate.TypeEmail, Value: req.Email, Required: true},
		"password": {Type: validate.TypePassword, Value: req.Password, Required: true},
		"phone":    {Type: validate.TypeText, Value: req.Phone, Phone: true},
	}

	errs := make(map[string]string)
	for name, field := range fields {
		if result := validate.Validate(field); !result.Valid {
			errs[name] = result.Message
		}
	}
	return errs
}
