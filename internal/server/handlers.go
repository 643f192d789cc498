package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/gradekit/internal/answer"
	"github.com/abhisek/gradekit/internal/grading"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type validateRequest struct {
	Question answer.Question `json:"question"`
	Answer   answer.Answer   `json:"answer"`
}

type submissionRequest struct {
	ID        string         `json:"id" binding:"max=128"`
	LearnerID string         `json:"learnerId" binding:"max=128"`
	Items     []grading.Item `json:"items" binding:"required,min=1,max=500"`
}

// handleValidate grades one answer. With ?strict=true a malformed question
// is a 422 instead of an Ungradable result.
func (s *Server) handleValidate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	if strict, _ := strconv.ParseBool(c.Query("strict")); strict {
		if _, err := s.engine.Check(req.Question, req.Answer); err != nil {
			var ae *answer.Error
			if errors.As(err, &ae) {
				c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: ae.Msg, Code: string(ae.Kind)})
				return
			}
		}
	}

	res := s.engine.ValidateContext(c.Request.Context(), req.Question, req.Answer)
	if s.metrics != nil {
		s.metrics.ObserveAnswer(string(req.Question.Type), res.Outcome.String())
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleGrade(c *gin.Context) {
	var req submissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	report, err := s.grader.Grade(c.Request.Context(), grading.Submission{
		ID:        req.ID,
		LearnerID: req.LearnerID,
		Items:     req.Items,
	})
	if err != nil {
		s.logger.Error("grading failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "grading was interrupted", Code: "GRADING_INTERRUPTED"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleResponses(c *gin.Context) {
	events, err := s.grader.Responses(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.logger.Error("query responses failed", "submission", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not load responses", Code: "STORE_ERROR"})
		return
	}
	if len(events) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no responses for submission", Code: "NOT_FOUND"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissionId": c.Param("id"), "responses": events})
}

func (s *Server) badRequest(c *gin.Context, err error) {
	s.logger.Warn("invalid request body", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
}
