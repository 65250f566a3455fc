package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/filex"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/validation"
	"github.com/go-chi/chi/v5"
)

const msgBadCredentials = "Email or password is wrong"

type userResponse struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
	AvatarURL    string `json:"avatarURL"`
}

type sessionUserResponse struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
}

type signupResponse struct {
	User userResponse `json:"user"`
}

type loginResponse struct {
	Token string              `json:"token"`
	User  sessionUserResponse `json:"user"`
}

type avatarResponse struct {
	AvatarURL string `json:"avatarURL"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{Email: u.Email, Subscription: u.Subscription, AvatarURL: u.AvatarURL}
}

func (h *handler) signup(w http.ResponseWriter, r *http.Request) {
	var req validation.Signup
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.users.Signup(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, signupResponse{User: toUserResponse(user)})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req validation.Login
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	token, user, err := h.users.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeMessage(w, http.StatusUnauthorized, msgBadCredentials)
			return
		}
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  sessionUserResponse{Email: user.Email, Subscription: user.Subscription},
	})
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if err := h.users.Logout(r.Context(), user.ID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) current(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserResponse(UserFromContext(r.Context())))
}

// updateAvatar spools the "avatar" form file to disk for processing. The temp
// file is removed before the handler returns, whatever the outcome.
func (h *handler) updateAvatar(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	file, _, err := r.FormFile("avatar")
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	if err != nil {
		h.writeError(w, r, validation.NewError(`"avatar" is required`))
		return
	}
	defer file.Close()

	tmp, cleanup, err := filex.SpoolTemp(h.tempDir, "avatar-*", file)
	defer cleanup()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	url, err := h.users.UpdateAvatar(r.Context(), user.ID, tmp)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, avatarResponse{AvatarURL: url})
}

func (h *handler) confirmVerification(w http.ResponseWriter, r *http.Request) {
	if err := h.users.ConfirmVerification(r.Context(), chi.URLParam(r, "token")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Verification successful")
}

func (h *handler) requestVerification(w http.ResponseWriter, r *http.Request) {
	var req validation.VerifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.users.RequestVerification(r.Context(), req); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Verification email sent")
}
