package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *Router) signup(c *gin.Context) {
	var req signupRequest
	if err := bindAndValidate(c, &req, r.validate); err != nil {
		return
	}

	token, err := r.auth.SignUp(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

func (r *Router) login(c *gin.Context) {
	var req loginRequest
	if err := bindAndValidate(c, &req, r.validate); err != nil {
		return
	}

	token, err := r.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (r *Router) logout(c *gin.Context) {
	if err := r.auth.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// session resolves the bearer token. An anonymous request is a normal
// response, not an error.
func (r *Router) session(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "identity": identity})
}
