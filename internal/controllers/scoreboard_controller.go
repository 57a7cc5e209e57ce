package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"warboard/internal/providers"
	"warboard/internal/scoreboard"
	"warboard/internal/session"

	"github.com/spf13/cast"
)

// maxUploadSize bounds the whole logo form: two logos plus the form fields.
const maxUploadSize = 2*scoreboard.MaxLogoSize + 1<<20

type ScoreboardController struct {
	logger   providers.Logger
	sessions session.ManagerInterface
	bridge   scoreboard.BridgeInterface
}

func NewScoreboardController(logger providers.Logger, sessions session.ManagerInterface, bridge scoreboard.BridgeInterface) *ScoreboardController {
	return &ScoreboardController{
		logger:   logger,
		sessions: sessions,
		bridge:   bridge,
	}
}

func (sc *ScoreboardController) Open(w http.ResponseWriter, r *http.Request) {
	tag, ok := requireTag(w, r)
	if !ok {
		return
	}

	spec, err := sc.bridge.Open(r.Context(), sc.sessions.Open(tag))
	if errors.Is(err, scoreboard.ErrScoreboardAlreadyOpen) {
		http.Error(w, "Scoreboard already open", http.StatusConflict)
		return
	}
	if err != nil {
		sc.logger.Errorf(providers.TypePost, "%s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, spec)
}

func (sc *ScoreboardController) Close(w http.ResponseWriter, r *http.Request) {
	tag, ok := requireTag(w, r)
	if !ok {
		return
	}
	s, ok := sc.sessions.Get(tag)
	if !ok {
		http.Error(w, "No session for "+tag, http.StatusNotFound)
		return
	}
	if err := sc.bridge.Close(s); err != nil {
		sc.logger.Errorf(providers.TypePost, "%s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Back returns to the search window: the main window shrinks, the scoreboard
// closes and the clan session ends.
func (sc *ScoreboardController) Back(w http.ResponseWriter, r *http.Request) {
	tag, ok := requireTag(w, r)
	if !ok {
		return
	}
	s, ok := sc.sessions.Get(tag)
	if !ok {
		http.Error(w, "No session for "+tag, http.StatusNotFound)
		return
	}
	if err := sc.bridge.Back(s); err != nil {
		sc.logger.Errorf(providers.TypePost, "%s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	sc.sessions.Close(tag)
	w.WriteHeader(http.StatusNoContent)
}

// Logo accepts the logo form: a checkbox and an optional file per side.
func (sc *ScoreboardController) Logo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	req := scoreboard.LogoRequest{
		Tag:                    r.FormValue(tagParam),
		UseDefaultClanLogo:     formBool(r, "clan_default_logo"),
		UseDefaultOpponentLogo: formBool(r, "opponent_default_logo"),
	}
	clan, err := formFile(r, "clan_custom_logo")
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if clan != nil {
		defer clan.Close()
		req.ClanLogo = clan
	}
	opponent, err := formFile(r, "opponent_custom_logo")
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if opponent != nil {
		defer opponent.Close()
		req.OpponentLogo = opponent
	}

	update, err := sc.bridge.UpdateLogos(r.Context(), req)
	if errors.Is(err, scoreboard.ErrLogoTooLarge) {
		http.Error(w, "Logo too large", http.StatusRequestEntityTooLarge)
		return
	}
	if err != nil {
		sc.logger.Errorf(providers.TypePost, "Logo update failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, update)
}

// formBool treats a ticked checkbox ("on") or any truthy value as set.
func formBool(r *http.Request, field string) bool {
	v := r.FormValue(field)
	return v == "on" || cast.ToBool(v)
}

// formFile returns nil when the field is absent or the file is empty.
func formFile(r *http.Request, field string) (multipart.File, error) {
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if hdr.Size == 0 {
		_ = f.Close()
		return nil, nil
	}
	return f, nil
}
