package httpapi

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/adilaitelhoucine1/gestion-des-documents/internal/audit"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type loginResponse struct {
	Token string   `json:"token"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// handleLogin exchanges credentials for a signed token. Every
// credential failure collapses into the same 401 body so the response
// does not reveal whether the account exists.
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := a.creds.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case auth.ErrUnknownUser, auth.ErrInactiveUser, auth.ErrBadCredentials:
			writeError(w, r, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
		default:
			writeError(w, r, http.StatusInternalServerError, "INTERNAL", "authentication failed")
		}
		return
	}

	token, _, err := a.tokens.Issue(user.Email, user.Roles)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "token generation failed")
		return
	}

	ctx := auth.ContextWithPrincipal(r.Context(), auth.Principal{Email: user.Email, Roles: user.Roles})
	_ = audit.LogEvent(ctx, "auth.login", map[string]any{
		"email": user.Email,
		"roles": auth.RoleNames(user.Roles),
	})

	writeJSON(w, http.StatusOK, loginResponse{
		Token: token,
		Email: user.Email,
		Roles: auth.RoleNames(user.Roles),
	})
}
