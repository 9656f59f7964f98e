package server

import (
	"net/http"

	"github.com/Luismorlan/logosarena/server/middlewares"
	"github.com/Luismorlan/logosarena/server/resolver"
	"github.com/Luismorlan/logosarena/storage"
	"github.com/Luismorlan/logosarena/utils"
	Logger "github.com/Luismorlan/logosarena/utils/log"
	"github.com/gin-gonic/gin"
)

const (
	oauthStateCookie = "arena_oauth_state"
	sessionMaxAge    = 60 * 60 * 24 * 30
	setupPath        = "/auth/setup"
)

func (s *Server) uploadImage(c *gin.Context) {
	if !requireSession(c) {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxImageBytes+1024*1024)
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		fail(c, &resolver.Failure{Kind: resolver.ValidationFailed, Message: "attach an image file"})
		return
	}
	defer file.Close()

	if err := storage.ValidateImageUpload(header.Header.Get("Content-Type"), header.Size); err != nil {
		fail(c, &resolver.Failure{Kind: resolver.ValidationFailed, Message: err.Error()})
		return
	}
	url, err := s.Images.Upload(c.Request.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		Logger.Log.Errorln("failed to upload image: ", err)
		fail(c, &resolver.Failure{Kind: resolver.StoreError, Message: "failed to upload the image"})
		return
	}
	succeed(c, "url", url)
}

func (s *Server) login(c *gin.Context) {
	state := utils.RandomAlphabetString(16)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", utils.IsProdEnv(), true)
	c.Redirect(http.StatusFound, s.OAuth.AuthCodeURL(state))
}

// callback completes the authorization code flow, stores the access token in
// the session cookie and sends first time users to the profile setup page.
func (s *Server) callback(c *gin.Context) {
	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		fail(c, &resolver.Failure{Kind: resolver.ValidationFailed, Message: "invalid login state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", utils.IsProdEnv(), true)

	token, err := s.OAuth.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		Logger.Log.Info("failed to exchange authorization code: ", err)
		fail(c, &resolver.Failure{Kind: resolver.AuthRequired, Message: "login failed"})
		return
	}
	ident, err := s.Auth.GetUser(c.Request.Context(), token.AccessToken)
	if err != nil {
		fail(c, &resolver.Failure{Kind: resolver.AuthRequired, Message: "login failed"})
		return
	}
	c.SetCookie(middlewares.TokenCookie, token.AccessToken, sessionMaxAge, "/", "", utils.IsProdEnv(), true)

	profile, err := s.Resolver.EnsureProfile(c.Request.Context(), ident)
	if err != nil {
		fail(c, err)
		return
	}
	if profile.Username == nil {
		c.Redirect(http.StatusFound, s.AppURL+setupPath)
		return
	}
	c.Redirect(http.StatusFound, s.AppURL+"/")
}

func (s *Server) logout(c *gin.Context) {
	if token := middlewares.Token(c); token != "" {
		if err := s.Auth.SignOut(c.Request.Context(), token); err != nil {
			Logger.Log.Info("failed to sign out: ", err)
		}
	}
	c.SetCookie(middlewares.TokenCookie, "", -1, "/", "", utils.IsProdEnv(), true)
	succeed(c, "", nil)
}
