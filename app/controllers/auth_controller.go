package controllers

import (
	"errors"
	"net/http"

	"github.com/vendralabs/vendra/app/services"
	"github.com/vendralabs/vendra/app/store"
	"github.com/vendralabs/vendra/pkg/bind"
	"github.com/vendralabs/vendra/pkg/response"
)

type registerInput struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenPayload struct {
	Token string `json:"token"`
}

// AuthController serves /api/auth/register and /api/auth/login.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(a *services.AuthService) *AuthController {
	return &AuthController{auth: a}
}

// Register handles POST /api/auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.auth.Register(in.Username, in.Password)
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			response.Error(w, http.StatusBadRequest, "User already exists")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.Created(w, tokenPayload{Token: token})
}

// Login handles POST /api/auth/login. Unknown user and wrong password get
// the same answer.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.auth.Login(in.Username, in.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Error(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.Success(w, tokenPayload{Token: token})
}
