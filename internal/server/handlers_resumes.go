package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

// resumeAccessHeader carries the token issued by the verify endpoint.
const resumeAccessHeader = "X-Resume-Access"

// maxBodyBytes bounds request bodies, full documents included.
const maxBodyBytes = 4 << 20

// requireUser returns the authenticated user ID or writes 401.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a UUID path value or writes 400.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody decodes a JSON request body or writes 400.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// ownerAndID resolves the authenticated user and the {id} path value.
func (s *Server) ownerAndID(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

// handleListResumes handles GET /resumes?tags=a,b&sort=name
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	req := &types.ListResumesRequest{Sort: types.ResumeSort(r.URL.Query().Get("sort"))}
	if raw := r.URL.Query().Get("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				req.Tags = append(req.Tags, tag)
			}
		}
	}

	resumes, err := s.resumes.List(r.Context(), userID, req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if resumes == nil {
		resumes = []types.Resume{}
	}
	s.jsonResponse(w, http.StatusOK, resumes)
}

// handleListTags handles GET /resumes/tags
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	tags, err := s.resumes.Tags(r.Context(), userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if tags == nil {
		tags = []string{}
	}
	s.jsonResponse(w, http.StatusOK, tags)
}

// handleCreateResume handles POST /resumes
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req types.CreateResumeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	resume, err := s.resumes.Create(r.Context(), userID, &req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, resume)
}

// handleImportResume handles POST /resumes/import
func (s *Server) handleImportResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req types.ImportResumeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	resume, err := s.resumes.Import(r.Context(), userID, &req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, resume)
}

// handleGetResume handles GET /resumes/{id}
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}
	resume, err := s.resumes.Get(r.Context(), userID, id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleUpdateResume handles PATCH /resumes/{id}
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}
	var req types.UpdateResumeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	resume, err := s.resumes.Update(r.Context(), userID, id, &req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleDeleteResume handles DELETE /resumes/{id}
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}
	if err := s.resumes.Delete(r.Context(), userID, id); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDuplicateResume handles POST /resumes/{id}/duplicate
func (s *Server) handleDuplicateResume(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}
	var req types.DuplicateResumeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	resume, err := s.resumes.Duplicate(r.Context(), userID, id, &req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, resume)
}

// handleSetLocked handles PUT /resumes/{id}/lock
func (s *Server) handleSetLocked(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}
	var req struct {
		Locked *bool `json:"locked"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Locked == nil {
		s.errorResponse(w, http.StatusBadRequest, "locked is required")
		return
	}
	resume, err := s.resumes.SetLocked(r.Context(), userID, id, *req.Locked)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleSetPassword handles PUT /resumes/{id}/password
func (s *Server) handleSetPassword(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}
	var req types.SetPasswordRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.resumes.SetPassword(r.Context(), userID, id, &req); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRemovePassword handles DELETE /resumes/{id}/password
func (s *Server) handleRemovePassword(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}
	if err := s.resumes.RemovePassword(r.Context(), userID, id); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetStatistics handles GET /resumes/{id}/statistics
func (s *Server) handleGetStatistics(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}
	stats, err := s.resumes.Statistics(r.Context(), userID, id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

// viewerID is the authenticated user or uuid.Nil for anonymous requests.
func viewerID(r *http.Request) uuid.UUID {
	id, err := middleware.GetUserID(r)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// handleGetPublicResume handles GET /public/{userId}/{slug}
func (s *Server) handleGetPublicResume(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.pathUUID(w, r, "userId")
	if !ok {
		return
	}
	resume, err := s.resumes.GetPublic(r.Context(), ownerID, r.PathValue("slug"), viewerID(r), r.Header.Get(resumeAccessHeader))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleVerifyPassword handles POST /public/{userId}/{slug}/verify
func (s *Server) handleVerifyPassword(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.pathUUID(w, r, "userId")
	if !ok {
		return
	}
	var req struct {
		Password string `json:"password"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	token, err := s.resumes.VerifyPassword(r.Context(), ownerID, r.PathValue("slug"), req.Password)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"token": token})
}

// handleRecordDownload handles POST /public/{userId}/{slug}/downloads
func (s *Server) handleRecordDownload(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.pathUUID(w, r, "userId")
	if !ok {
		return
	}
	if err := s.resumes.RecordDownload(r.Context(), ownerID, r.PathValue("slug"), viewerID(r)); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
