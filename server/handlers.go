package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hupe1980/agentdesk/model"
	"github.com/hupe1980/agentdesk/pipeline"
)

type taskRequest struct {
	Task string `json:"task"`
	Text string `json:"text"`
}

type taskResponse struct {
	MainResult       string `json:"mainResult"`
	RefinementResult string `json:"refinementResult"`
	ValidationResult string `json:"validationResult"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type testResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	if s.llm == nil {
		writeJSON(w, http.StatusInternalServerError, testResponse{
			Error:   "no model configured",
			Details: "Failed to connect to the model backend",
		})
		return
	}

	resp, err := model.Complete(r.Context(), s.llm, model.Request{
		Messages: []model.Message{model.UserMessage(testPrompt)},
	})
	if err != nil {
		s.opts.Logger.Error("Model connectivity check failed", "request_id", RequestIDFromContext(r.Context()), "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, testResponse{
			Error:   err.Error(),
			Details: "Failed to connect to the model backend",
		})
		return
	}
	writeJSON(w, http.StatusOK, testResponse{Success: true, Message: resp.Content})
}

func (s *Server) handleTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body", Details: err.Error()})
		return
	}
	if strings.TrimSpace(req.Task) == "" || strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Task and text are required"})
		return
	}
	task, err := pipeline.ParseTask(req.Task)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid task type"})
		return
	}

	res, err := s.runner.Run(r.Context(), task, req.Text)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, pipeline.ErrEmptyInput) || errors.Is(err, pipeline.ErrUnknownTask) {
			status = http.StatusBadRequest
		}
		s.opts.Logger.Error("Task failed", "request_id", RequestIDFromContext(r.Context()), "task", task.String(), "error", err.Error())
		writeJSON(w, status, errorResponse{Error: "Failed to process task", Details: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, taskResponse{
		MainResult:       res.MainResult,
		RefinementResult: res.RefinementResult,
		ValidationResult: res.ValidationResult,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
