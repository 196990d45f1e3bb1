package web

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/services"
	"github.com/gorilla/mux"
)

type accountPage struct {
	Error string
	Name  string
	Email string
}

type dashboardPage struct {
	User  *models.Identity
	Notes []*models.Note
	Draft noteDraft
}

type notePage struct {
	ID    string
	Seq   int64
	Error string
	Draft noteDraft
}

type adminPage struct {
	User  *models.Identity
	Users []adminUserRow
	Notes []*models.Note
}

type adminUserRow struct {
	*models.User
	Issued int64
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(r.Context(), w, http.StatusOK, "register.html", accountPage{})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := accountPage{Name: r.PostFormValue("name"), Email: r.PostFormValue("email")}

	_, err := s.users.Register(ctx, page.Email, page.Name, r.PostFormValue("password"))
	switch {
	case err == nil:
		s.logger.Info(ctx, "Registered", "email", page.Email)
		seeOther(w, r, "/login")
	case errors.Is(err, common.ErrDuplicateEmail):
		page.Error = "Email already exists"
		s.render(ctx, w, http.StatusOK, "register.html", page)
	case errors.Is(err, common.ErrInvalidInput):
		page.Error = "Please fill in name, email and a password of at most 72 bytes"
		s.render(ctx, w, http.StatusOK, "register.html", page)
	default:
		s.internalError(ctx, w, err)
	}
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(r.Context(), w, http.StatusOK, "login.html", accountPage{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := r.PostFormValue("email")

	user, err := s.users.Login(ctx, email, r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			s.render(ctx, w, http.StatusOK, "login.html", accountPage{Email: email, Error: "Invalid email or password"})
			return
		}
		s.internalError(ctx, w, err)
		return
	}

	token, expires, err := s.sessions.Create(user)
	if err != nil {
		s.internalError(ctx, w, err)
		return
	}
	s.setSessionCookie(w, token, expires)

	if user.Role == common.RoleAdmin {
		seeOther(w, r, "/admin/dashboard")
		return
	}
	seeOther(w, r, "/dashboard")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if c, err := r.Cookie(common.SessionCookieName); err == nil {
		if err := s.sessions.Clear(ctx, c.Value); err != nil {
			s.logger.Error(ctx, "session clear failed", "error", err)
		}
	}
	s.clearSessionCookie(w)
	seeOther(w, r, "/login")
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := IdentityFrom(ctx)

	list, err := s.notes.ListFor(ctx, id.UserID)
	if err != nil {
		s.internalError(ctx, w, err)
		return
	}
	s.render(ctx, w, http.StatusOK, "dashboard.html", dashboardPage{User: id, Notes: list})
}

func (s *Server) handleAddNotePage(w http.ResponseWriter, r *http.Request) {
	s.render(r.Context(), w, http.StatusOK, "add_note.html", notePage{})
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := IdentityFrom(ctx)
	d := draftFromForm(r)

	n, err := s.notes.Create(ctx, id.UserID, d.Title, d.Body, d.TagsCSV, d.Category)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			s.render(ctx, w, http.StatusOK, "add_note.html", notePage{Error: "Title is required", Draft: d})
			return
		}
		s.internalError(ctx, w, err)
		return
	}

	s.logger.Debug(ctx, "note created", "owner", id.UserID, "seq", n.Seq)
	seeOther(w, r, "/dashboard")
}

func (s *Server) handleEditNotePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := IdentityFrom(ctx)

	n, err := s.notes.Get(ctx, mux.Vars(r)["id"], id.UserID)
	if err != nil {
		if services.IsOwnershipMiss(err) {
			seeOther(w, r, "/dashboard")
			return
		}
		s.internalError(ctx, w, err)
		return
	}

	s.render(ctx, w, http.StatusOK, "edit_note.html", notePage{ID: n.ID, Seq: n.Seq, Draft: draftOf(n)})
}

func (s *Server) handleEditNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := IdentityFrom(ctx)
	noteID := mux.Vars(r)["id"]
	d := draftFromForm(r)

	err := s.notes.Update(ctx, noteID, id.UserID, d.Title, d.Body, d.TagsCSV, d.Category)
	switch {
	case err == nil:
		seeOther(w, r, "/dashboard")
	case services.IsOwnershipMiss(err):
		s.logger.Warn(ctx, "edit refused", "note", noteID, "user", id.UserID, "error", err)
		seeOther(w, r, "/dashboard")
	case errors.Is(err, common.ErrInvalidInput):
		n, err := s.notes.Get(ctx, noteID, id.UserID)
		if err != nil {
			if services.IsOwnershipMiss(err) {
				seeOther(w, r, "/dashboard")
				return
			}
			s.internalError(ctx, w, err)
			return
		}
		s.render(ctx, w, http.StatusOK, "edit_note.html", notePage{ID: n.ID, Seq: n.Seq, Error: "Title is required", Draft: d})
	default:
		s.internalError(ctx, w, err)
	}
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := IdentityFrom(ctx)
	noteID := mux.Vars(r)["id"]

	err := s.notes.Delete(ctx, noteID, id.UserID)
	if err != nil && !services.IsOwnershipMiss(err) {
		s.internalError(ctx, w, err)
		return
	}
	if err != nil {
		s.logger.Warn(ctx, "delete refused", "note", noteID, "user", id.UserID, "error", err)
	}
	seeOther(w, r, "/dashboard")
}

func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := IdentityFrom(ctx)

	users, err := s.users.ListAll(ctx)
	if err != nil {
		s.internalError(ctx, w, err)
		return
	}
	rows := make([]adminUserRow, 0, len(users))
	for _, u := range users {
		issued, err := s.notes.LastIssued(ctx, u.ID)
		if err != nil {
			s.internalError(ctx, w, err)
			return
		}
		rows = append(rows, adminUserRow{User: u, Issued: issued})
	}
	notes, err := s.notes.ListAll(ctx)
	if err != nil {
		s.internalError(ctx, w, err)
		return
	}

	s.render(ctx, w, http.StatusOK, "admin_dashboard.html", adminPage{User: id, Users: rows, Notes: notes})
}
