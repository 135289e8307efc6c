package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pomi-ng/StatusCodesApi/api/responses"
)

const redirectTarget = "/redirecttest/target"

// POST /redirecttest/target
//
// The target only accepts POST, so a client arriving here after a 301
// downgrade shows up as GET and receives the router's 405 instead.
func (s *Server) redirectTarget(c *gin.Context) {
	responses.OK(c, "Redirect target reached with POST")
}

// POST /redirecttest/redirect301
func (s *Server) redirect301(c *gin.Context) {
	c.Redirect(http.StatusMovedPermanently, redirectTarget)
}

// POST /redirecttest/redirect308
func (s *Server) redirect308(c *gin.Context) {
	c.Redirect(http.StatusPermanentRedirect, redirectTarget)
}
