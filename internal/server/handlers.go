package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/diaflow/pkg/diagram"
	"github.com/matzehuels/diaflow/pkg/generate"
	"github.com/matzehuels/diaflow/pkg/graph"
	"github.com/matzehuels/diaflow/pkg/project"
	"github.com/matzehuels/diaflow/pkg/render"
)

type generateRequest struct {
	Kind   string `json:"kind"`
	Prompt string `json:"prompt"`
}

type graphResponse struct {
	Kind       string         `json:"kind"`
	Nodes      []graph.Node   `json:"nodes"`
	Edges      []graph.Edge   `json:"edges"`
	Validation diagram.Result `json:"validation"`
}

// handleGenerate runs prompt -> model -> pipeline and replaces the live
// graph. Validation errors come back in the response body, not as an HTTP
// failure, so clients can surface them next to the degraded diagram.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if s.generator == nil {
		writeError(w, http.StatusServiceUnavailable, generate.ErrAPIKeyNotConfigured.Error())
		return
	}

	kind, ok := diagram.ParseKind(req.Kind)
	if !ok {
		kind = diagram.KindClass
	}
	var history []generate.Turn
	for _, m := range s.manager.Messages() {
		history = append(history, generate.Turn{Role: m.Role, Content: m.Content})
	}
	current := graph.ToDiagram(s.manager.Kind(), s.manager.Nodes(), s.manager.Edges())

	s.manager.SetLoading(true)
	defer s.manager.SetLoading(false)

	payload, err := s.generator.Generate(r.Context(), generate.Request{
		Kind:    kind,
		Prompt:  req.Prompt,
		History: history,
		Current: current,
	})
	if err != nil {
		s.logger.Error("generation failed", "err", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	validation, err := s.manager.UpdateFromPayload(r.Context(), payload)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, project.ErrNoActiveProject) {
			status = http.StatusConflict
		}
		writeError(w, status, err.Error())
		return
	}
	s.manager.AddMessage(project.RoleUser, req.Prompt)
	s.manager.AddMessage(project.RoleAssistant, "Updated the diagram.")

	s.writeGraph(w, validation)
}

// handleLayout accepts a raw diagram payload and returns the laid-out graph
// without touching any project. This is the stateless pipeline endpoint.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var payload any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	validation, err := s.manager.UpdateFromPayload(r.Context(), payload)
	if err != nil {
		if errors.Is(err, project.ErrNoActiveProject) {
			writeError(w, http.StatusConflict, "no active project")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeGraph(w, validation)
}

func (s *Server) handleExportSVG(w http.ResponseWriter, r *http.Request) {
	dot := render.ToDOT(s.manager.Kind(), s.manager.Nodes(), s.manager.Edges())
	svg, err := render.ToSVG(r.Context(), dot)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.RefreshIndex(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.manager.Projects())
}

type createProjectRequest struct {
	Kind string `json:"kind"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	kind, ok := diagram.ParseKind(req.Kind)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown diagram kind")
		return
	}

	p := s.manager.CreateProject(kind)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, p := range s.manager.Projects() {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeError(w, http.StatusNotFound, "project not found")
}

func (s *Server) handleLoadProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.manager.Load(r.Context(), id); err != nil {
		if errors.Is(err, project.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeGraph(w, diagram.Result{Valid: true})
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.manager.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Save(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeGraph(w http.ResponseWriter, validation diagram.Result) {
	writeJSON(w, http.StatusOK, graphResponse{
		Kind:       string(s.manager.Kind()),
		Nodes:      s.manager.Nodes(),
		Edges:      s.manager.Edges(),
		Validation: validation,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
