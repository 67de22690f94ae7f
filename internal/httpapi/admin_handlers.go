package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/sparcsup/auth-service/internal/admin"
	"github.com/sparcsup/auth-service/internal/identity"
	"github.com/sparcsup/auth-service/internal/notify"
)

type inviteRequest struct {
	Email         string `json:"email"`
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	Position      string `json:"position,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
}

// handleInvite provisions an invited admin: a suppressed-email user account
// with a temporary password, membership of the admin group, an admin record,
// and an invitation email carrying the temporary password.
func (a *API) handleInvite(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("auth-api")
	ctx, span := tracer.Start(r.Context(), "InviteAdmin")
	defer span.End()

	caller, _ := identity.FromContext(ctx)

	var req inviteRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, r, "invalid request body")
		return
	}
	if req.Email == "" {
		badRequest(w, r, "email is required")
		return
	}

	tempPassword := temporaryPassword()
	sub, err := a.auth.AdminCreateUser(ctx, req.Email, tempPassword)
	if err != nil {
		respondError(w, r, "invite", err)
		return
	}
	if err := a.auth.AdminAddToGroup(ctx, req.Email, identity.GroupAdmin); err != nil {
		a.rollbackInvite(ctx, req.Email)
		respondError(w, r, "invite", err)
		return
	}

	in := admin.CreateInput{
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Position:      req.Position,
		ContactNumber: req.ContactNumber,
	}
	if _, err := a.admins.CreateAdmin(ctx, sub, in, caller.Sub); err != nil {
		a.rollbackInvite(ctx, req.Email)
		respondError(w, r, "invite", err)
		return
	}

	// The invitation is best effort. A failed email leaves a valid account
	// the inviter can resend credentials for.
	if err := notify.SendAdminInvitation(ctx, a.notifier, req.Email, tempPassword, a.frontendURL); err != nil {
		logger.ErrorContext(ctx, "invitation email failed", "email", req.Email, "error", err)
	}

	logger.InfoContext(ctx, "admin invited", "email", req.Email, "invitedBy", caller.Sub)
	respondJSON(w, r, http.StatusOK, signUpResponse{Email: req.Email, Sub: sub})
}

// rollbackInvite removes a half-provisioned user account so the invite can
// be retried cleanly.
func (a *API) rollbackInvite(ctx context.Context, email string) {
	if err := a.auth.AdminDeleteUser(ctx, email); err != nil {
		logger.ErrorContext(ctx, "invite rollback failed", "email", email, "error", err)
	}
}

// temporaryPassword generates a one-time credential for an invited admin.
// The mixed-class prefix keeps it valid under the pool's password policy.
func temporaryPassword() string {
	return fmt.Sprintf("Tmp!%s", uuid.New())
}

type updatePasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
	Session     string `json:"session"`
}

// handleUpdatePassword completes the forced-password-change challenge an
// invited admin receives on first login.
func (a *API) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req updatePasswordRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, r, "invalid request body")
		return
	}
	if req.Email == "" || req.NewPassword == "" || req.Session == "" {
		badRequest(w, r, "email, newPassword and session are required")
		return
	}
	tokens, err := a.auth.RespondToNewPasswordChallenge(r.Context(), req.Email, req.NewPassword, req.Session)
	if err != nil {
		respondError(w, r, "update password", err)
		return
	}
	respondJSON(w, r, http.StatusOK, tokens)
}

func (a *API) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := a.admins.ListAdmins(r.Context())
	if err != nil {
		respondError(w, r, "list admins", err)
		return
	}
	respondJSON(w, r, http.StatusOK, admins)
}

func (a *API) handleGetAdmin(w http.ResponseWriter, r *http.Request) {
	record, err := a.admins.GetAdmin(r.Context(), chi.URLParam(r, "entryId"))
	if err != nil {
		respondError(w, r, "get admin", err)
		return
	}
	respondJSON(w, r, http.StatusOK, record)
}

func (a *API) handleUpdateAdmin(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	var patch admin.Patch
	if err := decode(r, &patch); err != nil {
		badRequest(w, r, "invalid request body")
		return
	}
	record, err := a.admins.UpdateAdmin(r.Context(), chi.URLParam(r, "entryId"), patch, caller.Sub)
	if err != nil {
		respondError(w, r, "update admin", err)
		return
	}
	respondJSON(w, r, http.StatusOK, record)
}

func (a *API) handleDeleteAdmin(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	if err := a.admins.DeleteAdmin(r.Context(), chi.URLParam(r, "entryId"), caller.Sub); err != nil {
		respondError(w, r, "delete admin", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
