package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aussiebroadwan/noteful/internal/noteful/domain"
	"github.com/aussiebroadwan/noteful/internal/noteful/service"
	"github.com/aussiebroadwan/noteful/pkg/authsdk"
	"github.com/aussiebroadwan/noteful/pkg/httpx"
	"github.com/aussiebroadwan/noteful/pkg/slogx"
)

const (
	msgInvalidBody     = "Request body must be a JSON object"
	msgFolderNotFound  = "Folder doesn't exist"
	msgNoteNotFound    = "Note doesn't exist"
	folderLocationBase = "/api/folders/"
	noteLocationBase   = "/api/notes/"
)

// decodeBody reads a JSON object into dst, answering 400 itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// writeServiceError maps resource service errors onto responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, production bool) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteMessage(w, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, service.ErrFolderNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, msgFolderNotFound)
	case errors.Is(err, service.ErrNoteNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, msgNoteNotFound)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteServerError(w, err, production)
	}
}

// FoldersHandler serves /api/folders
type FoldersHandler struct {
	FolderService *service.FolderService
	Production    bool
}

// HandleList godoc
//
//	@Summary	List folders
//	@Tags		Folders
//	@Security	CookieAuth
//	@Produce	json
//	@Success	200	{array}		authsdk.Folder
//	@Failure	403	"empty body"
//	@Failure	500	{object}	httpx.ErrorResponse
//	@Router		/api/folders [get].
func (h *FoldersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	folders, err := h.FolderService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.Production)
		return
	}
	if folders == nil {
		folders = []domain.Folder{}
	}
	httpx.WriteJSON(w, http.StatusOK, folders)
}

// HandleGet godoc
//
//	@Summary	Get a folder
//	@Tags		Folders
//	@Security	CookieAuth
//	@Produce	json
//	@Param		id	path		string	true	"Folder ID"
//	@Success	200	{object}	authsdk.Folder
//	@Failure	404	{object}	authsdk.MessageResponse
//	@Router		/api/folders/{id} [get].
func (h *FoldersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	folder, err := h.FolderService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, h.Production)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, folder)
}

// HandleCreate godoc
//
//	@Summary	Create a folder
//	@Tags		Folders
//	@Security	CookieAuth
//	@Accept		json
//	@Produce	json
//	@Param		folder	body		authsdk.FolderRequest	true	"folder_name"
//	@Success	201		{object}	authsdk.Folder
//	@Header		201		{string}	Location	"/api/folders/{id}"
//	@Failure	400		{object}	authsdk.MessageResponse
//	@Router		/api/folders [post].
func (h *FoldersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.FolderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	folder, err := h.FolderService.Create(r.Context(), req.FolderName)
	if err != nil {
		writeServiceError(w, r, err, h.Production)
		return
	}

	slogx.FromContext(r.Context()).Info("folder created", "folder_id", folder.ID)
	w.Header().Set("Location", folderLocationBase+folder.ID)
	httpx.WriteJSON(w, http.StatusCreated, folder)
}

// HandleRename godoc
//
//	@Summary	Rename a folder
//	@Tags		Folders
//	@Security	CookieAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Folder ID"
//	@Param		folder	body		authsdk.FolderRequest	true	"folder_name"
//	@Success	200		{object}	authsdk.Folder
//	@Failure	400		{object}	authsdk.MessageResponse
//	@Failure	404		{object}	authsdk.MessageResponse
//	@Router		/api/folders/{id} [patch].
func (h *FoldersHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	var req authsdk.FolderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	folder, err := h.FolderService.Rename(r.Context(), chi.URLParam(r, "id"), req.FolderName)
	if err != nil {
		writeServiceError(w, r, err, h.Production)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, folder)
}

// HandleDelete godoc
//
//	@Summary		Delete a folder
//	@Description	Deletes the folder and every note in it
//	@Tags			Folders
//	@Security		CookieAuth
//	@Param			id	path	string	true	"Folder ID"
//	@Success		204
//	@Failure		404	{object}	authsdk.MessageResponse
//	@Router			/api/folders/{id} [delete].
func (h *FoldersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.FolderService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, h.Production)
		return
	}

	slogx.FromContext(r.Context()).Info("folder deleted", "folder_id", id)
	httpx.WriteStatus(w, http.StatusNoContent)
}

// NotesHandler serves /api/notes
type NotesHandler struct {
	NoteService *service.NoteService
	Production  bool
}

func noteInput(req authsdk.NoteRequest) service.NoteInput {
	return service.NoteInput{
		NoteName: req.NoteName,
		FolderID: req.FolderID,
		Content:  req.Content,
	}
}

// HandleList godoc
//
//	@Summary	List notes
//	@Tags		Notes
//	@Security	CookieAuth
//	@Produce	json
//	@Param		folder_id	query	string	false	"Only notes in this folder"
//	@Success	200			{array}	authsdk.Note
//	@Router		/api/notes [get].
func (h *NotesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := domain.NoteFilter{FolderID: r.URL.Query().Get("folder_id")}

	notes, err := h.NoteService.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err, h.Production)
		return
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	httpx.WriteJSON(w, http.StatusOK, notes)
}

// HandleGet godoc
//
//	@Summary	Get a note
//	@Tags		Notes
//	@Security	CookieAuth
//	@Produce	json
//	@Param		id	path		string	true	"Note ID"
//	@Success	200	{object}	authsdk.Note
//	@Failure	404	{object}	authsdk.MessageResponse
//	@Router		/api/notes/{id} [get].
func (h *NotesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	note, err := h.NoteService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, h.Production)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, note)
}

// HandleCreate godoc
//
//	@Summary	Create a note
//	@Tags		Notes
//	@Security	CookieAuth
//	@Accept		json
//	@Produce	json
//	@Param		note	body		authsdk.NoteRequest	true	"note_name, folder_id, content"
//	@Success	201		{object}	authsdk.Note
//	@Header		201		{string}	Location	"/api/notes/{id}"
//	@Failure	400		{object}	authsdk.MessageResponse
//	@Router		/api/notes [post].
func (h *NotesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.NoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	note, err := h.NoteService.Create(r.Context(), noteInput(req))
	if err != nil {
		writeServiceError(w, r, err, h.Production)
		return
	}

	slogx.FromContext(r.Context()).Info("note created", "note_id", note.ID, "folder_id", note.FolderID)
	w.Header().Set("Location", noteLocationBase+note.ID)
	httpx.WriteJSON(w, http.StatusCreated, note)
}

// HandleUpdate godoc
//
//	@Summary		Update a note
//	@Description	Replaces name, folder and content and stamps a new modified time
//	@Tags			Notes
//	@Security		CookieAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Note ID"
//	@Param			note	body		authsdk.NoteRequest	true	"note_name, folder_id, content"
//	@Success		200		{object}	authsdk.Note
//	@Failure		400		{object}	authsdk.MessageResponse
//	@Failure		404		{object}	authsdk.MessageResponse
//	@Router			/api/notes/{id} [patch].
func (h *NotesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.NoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	note, err := h.NoteService.Update(r.Context(), chi.URLParam(r, "id"), noteInput(req))
	if err != nil {
		writeServiceError(w, r, err, h.Production)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, note)
}

// HandleDelete godoc
//
//	@Summary	Delete a note
//	@Tags		Notes
//	@Security	CookieAuth
//	@Param		id	path	string	true	"Note ID"
//	@Success	204
//	@Failure	404	{object}	authsdk.MessageResponse
//	@Router		/api/notes/{id} [delete].
func (h *NotesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.NoteService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, h.Production)
		return
	}

	slogx.FromContext(r.Context()).Info("note deleted", "note_id", id)
	httpx.WriteStatus(w, http.StatusNoContent)
}
