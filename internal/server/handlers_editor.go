package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
)

// MoveResponse is the body returned by a successful move.
type MoveResponse struct {
	Resume *types.Resume      `json:"resume"`
	Result *editor.MoveResult `json:"result"`
}

// handleMoveTargets handles GET /resumes/{id}/move-targets?type=experience&sourceSectionId=...
func (s *Server) handleMoveTargets(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	targets, err := s.resumes.MoveTargets(r.Context(), userID, id, types.CustomSectionType(q.Get("type")), q.Get("sourceSectionId"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if targets == nil {
		targets = []editor.MoveTargetPage{}
	}
	s.jsonResponse(w, http.StatusOK, targets)
}

// handleMove handles POST /resumes/{id}/move
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}
	var cmd editor.MoveCommand
	if !s.decodeBody(w, r, &cmd) {
		return
	}
	resume, result, err := s.resumes.Move(r.Context(), userID, id, cmd)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, MoveResponse{Resume: resume, Result: result})
}

// handleLayoutIssues handles GET /resumes/{id}/layout/issues
func (s *Server) handleLayoutIssues(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}
	issues, err := s.resumes.CheckLayout(r.Context(), userID, id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if issues == nil {
		issues = []layout.Issue{}
	}
	s.jsonResponse(w, http.StatusOK, issues)
}
