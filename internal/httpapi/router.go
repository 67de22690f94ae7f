package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Router builds the HTTP routing table. Auth endpoints are public; the
// admin management endpoints sit behind the user-pool authorizer and the
// super-admin gate.
func (a *API) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(a.withIdentity)

	r.Get("/", a.handleWelcome)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", a.handleSignUp)
		r.Post("/confirm", a.handleConfirmSignUp)
		r.Post("/login", a.handleLogin)
		r.Post("/refresh", a.handleRefresh)
		r.Post("/logout", a.handleLogout)
		r.Post("/forgot-password", a.handleForgotPassword)
		r.Post("/confirm-forgot-password", a.handleConfirmForgotPassword)
		r.Post("/change-password", a.handleChangePassword)
	})

	r.Route("/admin/auth", func(r chi.Router) {
		// Invited admins complete the password challenge before they can
		// log in, so this endpoint cannot require a token.
		r.Post("/update-password", a.handleUpdatePassword)

		r.Group(func(r chi.Router) {
			r.Use(a.requireSuperAdmin)
			r.Post("/invite", a.handleInvite)
			r.Get("/", a.handleListAdmins)
			r.Get("/{entryId}", a.handleGetAdmin)
			r.Put("/{entryId}", a.handleUpdateAdmin)
			r.Delete("/{entryId}", a.handleDeleteAdmin)
		})
	})

	return r
}

func (a *API) handleWelcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(welcomePage))
}

const welcomePage = `<!DOCTYPE html>
<html>
<head><title>SPARCS Auth Service</title></head>
<body>
<h1>SPARCS Auth Service</h1>
<p>The authentication API is running.</p>
</body>
</html>
`
