package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"mesa-console/internal/adapter/http/views"
	"mesa-console/internal/core/domain"
	"mesa-console/internal/core/port"
)

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// handleHome sends the viewer to the landing page of their role.
func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	switch {
	case st.auth.IsLoading():
		h.renderLoading(w, r)
	case st.auth.IsAuthenticated():
		redirect(w, r, views.HomePath(st.auth.User().Role), http.StatusFound)
	default:
		redirect(w, r, "/login", http.StatusFound)
	}
}

func (h *Handler) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	if st.auth.IsAuthenticated() {
		redirect(w, r, views.HomePath(st.auth.User().Role), http.StatusFound)
		return
	}
	h.page(w, r, http.StatusOK, st.loc.T("auth.title"), views.LoginForm(st.loc, "", ""))
}

// handleLogin exchanges the posted credentials for a token. Bad input and
// rejected credentials re-render the form with an inline message.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	f, err := newFormReader(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := loginInput{Email: f.str("email"), Password: r.PostForm.Get("password")}
	if errs := h.check(f, in); errs != nil {
		var msgs []string
		for _, name := range []string{"email", "password"} {
			if msg, ok := errs[name]; ok {
				msgs = append(msgs, st.loc.T("field."+name)+": "+msg)
			}
		}
		h.page(w, r, http.StatusUnprocessableEntity, st.loc.T("auth.title"),
			views.LoginForm(st.loc, in.Email, strings.Join(msgs, " ")))
		return
	}

	auth, err := h.deps.Auth.Login(r.Context(), st.session, in.Email, in.Password)
	switch {
	case errors.Is(err, port.ErrUnauthorized):
		h.page(w, r, http.StatusUnauthorized, st.loc.T("auth.title"),
			views.LoginForm(st.loc, in.Email, st.loc.T("auth.invalid_credentials")))
		return
	case err != nil:
		h.logger.ErrorContext(r.Context(), "login failed", slog.Any("error", err))
		h.page(w, r, http.StatusBadGateway, st.loc.T("auth.title"),
			views.LoginForm(st.loc, in.Email, st.loc.T("auth.failed")))
		return
	}
	h.logger.InfoContext(r.Context(), "signed in", slog.Int64("user", auth.User().ID), slog.String("role", string(auth.User().Role)))
	seeOther(w, r, views.HomePath(auth.User().Role))
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	if err := h.deps.Auth.Logout(r.Context(), st.session); err != nil {
		h.logger.ErrorContext(r.Context(), "logout", slog.Any("error", err))
	}
	seeOther(w, r, "/login")
}

func (h *Handler) handleUnauthorized(w http.ResponseWriter, r *http.Request) {
	v := h.viewer(r)
	h.page(w, r, http.StatusForbidden, v.Loc.T("unauthorized.title"), views.Unauthorized(v))
}

// handleTheme stores the posted theme, or toggles it when none is given.
func (h *Handler) handleTheme(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	var err error
	if t := r.PostForm.Get("theme"); t != "" {
		err = h.deps.Theme.Set(r.Context(), st.session, domain.ParseTheme(t))
	} else {
		_, err = h.deps.Theme.Toggle(r.Context(), st.session)
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "set theme", slog.Any("error", err))
	}
	seeOther(w, r, localPath(r.PostForm.Get("redirect"), "/"))
}

func (h *Handler) handleLanguage(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if _, err := h.deps.Language.Set(r.Context(), st.session, r.PostForm.Get("language")); err != nil {
		h.logger.ErrorContext(r.Context(), "set language", slog.Any("error", err))
	}
	seeOther(w, r, localPath(r.PostForm.Get("redirect"), "/"))
}
