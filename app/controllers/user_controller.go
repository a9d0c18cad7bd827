package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/omikunle/app/repositories"
	"github.com/shashiranjanraj/omikunle/app/services"
	"github.com/shashiranjanraj/omikunle/pkg/bind"
	"github.com/shashiranjanraj/omikunle/pkg/response"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// List returns every account; password hashes are never serialised.
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.List(r.Context())
	if err != nil {
		response.FailErr(w, err)
		return
	}
	response.Success(w, users)
}

func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r)
	if !ok {
		return
	}

	user, err := c.users.Get(r.Context(), id)
	if err != nil {
		response.FailErr(w, err)
		return
	}
	if user == nil {
		response.NotFound(w, "the user with the given ID was not found.")
		return
	}
	response.Success(w, user)
}

func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterInput
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.users.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			response.Fail(w, http.StatusBadRequest, "a user with that email already exists")
			return
		}
		response.Fail(w, http.StatusBadRequest, "the user cannot be created!")
		return
	}
	response.Created(w, user)
}

func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Fail(w, http.StatusBadRequest, "password is wrong")
			return
		}
		response.FailErr(w, err)
		return
	}

	response.Success(w, map[string]string{"user": user.Email, "token": token})
}

func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r)
	if !ok {
		return
	}

	deleted, err := c.users.Delete(r.Context(), id)
	if err != nil {
		response.FailErr(w, err)
		return
	}
	if !deleted {
		response.NotFound(w, "user not found!")
		return
	}
	response.OK(w, "the user is deleted!")
}

func (c *UserController) Count(w http.ResponseWriter, r *http.Request) {
	count, err := c.users.Count(r.Context())
	if err != nil {
		response.FailErr(w, err)
		return
	}
	response.Success(w, map[string]int64{"userCount": count})
}
