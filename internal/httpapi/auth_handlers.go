package httpapi

import (
	"net/http"
)

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpResponse struct {
	Email string `json:"email"`
	Sub   string `json:"sub"`
}

func (a *API) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, r, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		badRequest(w, r, "email and password are required")
		return
	}
	sub, err := a.auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, "signup", err)
		return
	}
	logger.InfoContext(r.Context(), "user signed up", "email", req.Email)
	respondJSON(w, r, http.StatusOK, signUpResponse{Email: req.Email, Sub: sub})
}

type confirmSignUpRequest struct {
	Email            string `json:"email"`
	ConfirmationCode string `json:"confirmationCode"`
}

func (a *API) handleConfirmSignUp(w http.ResponseWriter, r *http.Request) {
	var req confirmSignUpRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, r, "invalid request body")
		return
	}
	if req.Email == "" || req.ConfirmationCode == "" {
		badRequest(w, r, "email and confirmationCode are required")
		return
	}
	if err := a.auth.ConfirmSignUp(r.Context(), req.Email, req.ConfirmationCode); err != nil {
		respondError(w, r, "confirm signup", err)
		return
	}
	respondJSON(w, r, http.StatusOK, messageResponse{Message: "user confirmed successfully"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, r, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		badRequest(w, r, "email and password are required")
		return
	}
	result, err := a.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, "login", err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

type refreshRequest struct {
	Sub          string `json:"sub"`
	RefreshToken string `json:"refreshToken"`
}

func (a *API) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, r, "invalid request body")
		return
	}
	if req.Sub == "" || req.RefreshToken == "" {
		badRequest(w, r, "sub and refreshToken are required")
		return
	}
	tokens, err := a.auth.Refresh(r.Context(), req.Sub, req.RefreshToken)
	if err != nil {
		respondError(w, r, "refresh", err)
		return
	}
	respondJSON(w, r, http.StatusOK, tokens)
}

type logoutRequest struct {
	AccessToken string `json:"accessToken"`
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, r, "invalid request body")
		return
	}
	if req.AccessToken == "" {
		badRequest(w, r, "accessToken is required")
		return
	}
	if err := a.auth.Logout(r.Context(), req.AccessToken); err != nil {
		respondError(w, r, "logout", err)
		return
	}
	respondJSON(w, r, http.StatusOK, messageResponse{Message: "user logged out successfully"})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (a *API) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, r, "invalid request body")
		return
	}
	if req.Email == "" {
		badRequest(w, r, "email is required")
		return
	}
	if err := a.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		respondError(w, r, "forgot password", err)
		return
	}
	respondJSON(w, r, http.StatusOK, messageResponse{Message: "password reset code sent"})
}

type confirmForgotPasswordRequest struct {
	Email            string `json:"email"`
	ConfirmationCode string `json:"confirmationCode"`
	NewPassword      string `json:"newPassword"`
}

func (a *API) handleConfirmForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req confirmForgotPasswordRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, r, "invalid request body")
		return
	}
	if req.Email == "" || req.ConfirmationCode == "" || req.NewPassword == "" {
		badRequest(w, r, "email, confirmationCode and newPassword are required")
		return
	}
	if err := a.auth.ConfirmForgotPassword(r.Context(), req.Email, req.ConfirmationCode, req.NewPassword); err != nil {
		respondError(w, r, "confirm forgot password", err)
		return
	}
	respondJSON(w, r, http.StatusOK, messageResponse{Message: "password reset successfully"})
}

type changePasswordRequest struct {
	AccessToken string `json:"accessToken"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (a *API) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, r, "invalid request body")
		return
	}
	if req.AccessToken == "" || req.OldPassword == "" || req.NewPassword == "" {
		badRequest(w, r, "accessToken, oldPassword and newPassword are required")
		return
	}
	if err := a.auth.ChangePassword(r.Context(), req.AccessToken, req.OldPassword, req.NewPassword); err != nil {
		respondError(w, r, "change password", err)
		return
	}
	respondJSON(w, r, http.StatusOK, messageResponse{Message: "password changed successfully"})
}
