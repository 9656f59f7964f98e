package server

import (
	"net/http"

	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/server/middlewares"
	"github.com/Luismorlan/logosarena/server/resolver"
	"github.com/gin-gonic/gin"
)

const invalidBodyMessage = "invalid request body"

var failureStatus = map[resolver.FailureKind]int{
	resolver.AuthRequired:     http.StatusUnauthorized,
	resolver.ValidationFailed: http.StatusBadRequest,
	resolver.RateLimited:      http.StatusTooManyRequests,
	resolver.NotAuthorized:    http.StatusForbidden,
	resolver.NotFound:         http.StatusNotFound,
	resolver.StoreError:       http.StatusInternalServerError,
}

// StatusOf maps a failure kind to its http status.
func StatusOf(kind resolver.FailureKind) int {
	if status, ok := failureStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// fail renders {"success": false, "error": msg}.
func fail(c *gin.Context, err error) {
	f := resolver.AsFailure(err)
	c.AbortWithStatusJSON(StatusOf(f.Kind), gin.H{
		"success": false,
		"error":   f.Message,
		"kind":    f.Kind,
	})
}

// succeed renders {"success": true} plus the payload under key, if any.
func succeed(c *gin.Context, key string, payload interface{}) {
	body := gin.H{"success": true}
	if key != "" {
		body[key] = payload
	}
	c.JSON(http.StatusOK, body)
}

// respond renders err as a failure, or payload as a success.
func respond(c *gin.Context, key string, payload interface{}, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	succeed(c, key, payload)
}

// requireSession renders AuthRequired for anonymous callers.
func requireSession(c *gin.Context) bool {
	if middlewares.Identity(c) == nil {
		fail(c, &resolver.Failure{Kind: resolver.AuthRequired, Message: resolver.LoginRequiredMessage})
		return false
	}
	return true
}

// bind decodes the json body of a mutation into v. The session is checked
// first, so anonymous callers get AuthRequired whatever they sent.
func bind(c *gin.Context, v interface{}) bool {
	if !requireSession(c) {
		return false
	}
	if err := c.ShouldBindJSON(v); err != nil {
		fail(c, &resolver.Failure{Kind: resolver.ValidationFailed, Message: invalidBodyMessage})
		return false
	}
	return true
}

// --- debates ---

func (s *Server) listDebates(c *gin.Context) {
	debates, err := s.Resolver.ListDebates(c.Request.Context())
	respond(c, "debates", debates, err)
}

func (s *Server) getActiveDebate(c *gin.Context) {
	debate, err := s.Resolver.GetActiveDebate(c.Request.Context())
	respond(c, "debate", debate, err)
}

func (s *Server) getDebate(c *gin.Context) {
	debate, err := s.Resolver.GetDebate(c.Request.Context(), c.Param("id"))
	respond(c, "debate", debate, err)
}

func (s *Server) createDebate(c *gin.Context) {
	var input resolver.DebateInput
	if !bind(c, &input) {
		return
	}
	debate, err := s.Resolver.CreateDebate(c.Request.Context(), middlewares.Identity(c), input)
	respond(c, "debate", debate, err)
}

func (s *Server) updateDebate(c *gin.Context) {
	var input resolver.DebateInput
	if !bind(c, &input) {
		return
	}
	debate, err := s.Resolver.UpdateDebate(c.Request.Context(), middlewares.Identity(c), c.Param("id"), input)
	respond(c, "debate", debate, err)
}

func (s *Server) deleteDebate(c *gin.Context) {
	err := s.Resolver.DeleteDebate(c.Request.Context(), middlewares.Identity(c), c.Param("id"))
	respond(c, "", nil, err)
}

func (s *Server) listArguments(c *gin.Context) {
	groups, err := s.Resolver.ListArguments(c.Request.Context(), middlewares.Identity(c), c.Param("id"))
	respond(c, "sides", groups, err)
}

// --- arguments ---

func (s *Server) submitArgument(c *gin.Context) {
	var input resolver.SubmitArgumentInput
	if !bind(c, &input) {
		return
	}
	argument, err := s.Resolver.SubmitArgument(c.Request.Context(), middlewares.Identity(c), input)
	respond(c, "argument", argument, err)
}

func (s *Server) updateArgument(c *gin.Context) {
	var input resolver.ContentInput
	if !bind(c, &input) {
		return
	}
	argument, err := s.Resolver.UpdateArgument(c.Request.Context(), middlewares.Identity(c), c.Param("id"), input.Content)
	respond(c, "argument", argument, err)
}

func (s *Server) deleteArgument(c *gin.Context) {
	err := s.Resolver.DeleteArgument(c.Request.Context(), middlewares.Identity(c), c.Param("id"))
	respond(c, "", nil, err)
}

func (s *Server) listComments(c *gin.Context) {
	comments, err := s.Resolver.ListComments(c.Request.Context(), middlewares.Identity(c), c.Param("id"))
	respond(c, "comments", comments, err)
}

// --- comments ---

func (s *Server) postComment(c *gin.Context) {
	var input resolver.PostCommentInput
	if !bind(c, &input) {
		return
	}
	comment, err := s.Resolver.PostComment(c.Request.Context(), middlewares.Identity(c), input)
	respond(c, "comment", comment, err)
}

func (s *Server) updateComment(c *gin.Context) {
	var input resolver.ContentInput
	if !bind(c, &input) {
		return
	}
	comment, err := s.Resolver.UpdateComment(c.Request.Context(), middlewares.Identity(c), c.Param("id"), input.Content)
	respond(c, "comment", comment, err)
}

func (s *Server) deleteComment(c *gin.Context) {
	err := s.Resolver.DeleteComment(c.Request.Context(), middlewares.Identity(c), c.Param("id"))
	respond(c, "", nil, err)
}

// --- notices ---

func (s *Server) listNotices(c *gin.Context) {
	notices, err := s.Resolver.ListNotices(c.Request.Context(), middlewares.Identity(c))
	respond(c, "notices", notices, err)
}

func (s *Server) createNotice(c *gin.Context) {
	var input resolver.NoticeInput
	if !bind(c, &input) {
		return
	}
	notice, err := s.Resolver.CreateNotice(c.Request.Context(), middlewares.Identity(c), input)
	respond(c, "notice", notice, err)
}

func (s *Server) updateNotice(c *gin.Context) {
	var input resolver.NoticeInput
	if !bind(c, &input) {
		return
	}
	notice, err := s.Resolver.UpdateNotice(c.Request.Context(), middlewares.Identity(c), c.Param("id"), input)
	respond(c, "notice", notice, err)
}

func (s *Server) deleteNotice(c *gin.Context) {
	err := s.Resolver.DeleteNotice(c.Request.Context(), middlewares.Identity(c), c.Param("id"))
	respond(c, "", nil, err)
}

func (s *Server) listNoticeComments(c *gin.Context) {
	comments, err := s.Resolver.ListNoticeComments(c.Request.Context(), middlewares.Identity(c), c.Param("id"))
	respond(c, "comments", comments, err)
}

func (s *Server) postNoticeComment(c *gin.Context) {
	var input resolver.PostNoticeCommentInput
	if !bind(c, &input) {
		return
	}
	comment, err := s.Resolver.PostNoticeComment(c.Request.Context(), middlewares.Identity(c), input)
	respond(c, "comment", comment, err)
}

func (s *Server) updateNoticeComment(c *gin.Context) {
	var input resolver.ContentInput
	if !bind(c, &input) {
		return
	}
	comment, err := s.Resolver.UpdateNoticeComment(c.Request.Context(), middlewares.Identity(c), c.Param("id"), input.Content)
	respond(c, "comment", comment, err)
}

func (s *Server) deleteNoticeComment(c *gin.Context) {
	err := s.Resolver.DeleteNoticeComment(c.Request.Context(), middlewares.Identity(c), c.Param("id"))
	respond(c, "", nil, err)
}

// --- likes ---

func (s *Server) toggleLike(kind model.LikeKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := s.Resolver.ToggleLike(c.Request.Context(), middlewares.Identity(c), kind, c.Param("id"))
		respond(c, "like", state, err)
	}
}

// --- profiles ---

func (s *Server) ranking(c *gin.Context) {
	ranking, err := s.Resolver.Ranking(c.Request.Context())
	respond(c, "ranking", ranking, err)
}

func (s *Server) me(c *gin.Context) {
	profile, err := s.Resolver.Me(c.Request.Context(), middlewares.Identity(c))
	respond(c, "profile", profile, err)
}

type usernameInput struct {
	Username string `json:"username"`
}

func (s *Server) updateUsername(c *gin.Context) {
	var input usernameInput
	if !bind(c, &input) {
		return
	}
	profile, err := s.Resolver.UpdateUsername(c.Request.Context(), middlewares.Identity(c), input.Username)
	respond(c, "profile", profile, err)
}

func (s *Server) setupProfile(c *gin.Context) {
	var input resolver.ProfileSetupInput
	if !bind(c, &input) {
		return
	}
	profile, err := s.Resolver.SetupProfile(c.Request.Context(), middlewares.Identity(c), input)
	respond(c, "profile", profile, err)
}

type roleInput struct {
	Role model.Role `json:"role"`
}

func (s *Server) setRole(c *gin.Context) {
	var input roleInput
	if !bind(c, &input) {
		return
	}
	err := s.Resolver.SetRole(c.Request.Context(), middlewares.Identity(c), c.Param("id"), input.Role)
	respond(c, "", nil, err)
}

// --- reports ---

func (s *Server) submitReport(c *gin.Context) {
	var input resolver.ReportInput
	if !bind(c, &input) {
		return
	}
	report, err := s.Resolver.SubmitReport(c.Request.Context(), middlewares.Identity(c), input)
	respond(c, "report", report, err)
}
