package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pomi-ng/StatusCodesApi/api/responses"
	"github.com/pomi-ng/StatusCodesApi/pkg/metrics"
)

// createRequest carries the form payload of the create endpoint
type createRequest struct {
	Name string `form:"name" json:"name" validate:"required"`
}

// resourceRequest carries the JSON payload of the conflict and
// validate-content endpoints
type resourceRequest struct {
	Name string `json:"name"`
}

// unprocessableRequest carries the JSON payload of the unprocessable endpoint
type unprocessableRequest struct {
	Name string `json:"name" validate:"required,min=3"`
}

// ok always succeeds
// @Summary Plain success
// @Description Always returns 200 with a fixed message
// @Tags statuscodes
// @Produce json
// @Success 200 {object} responses.StandardResponse
// @Router /statuscodes/ok [get]
func (s *Server) ok(c *gin.Context) {
	responses.OK(c, "Everything is fine")
}

// create returns 201 echoing the resource, or 400 when name is missing
// @Summary Create a resource
// @Description Returns 201 echoing name and id, 400 when name is empty or absent
// @Tags statuscodes
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id query int true "Resource id"
// @Param name formData string true "Resource name"
// @Success 201 {object} responses.ResourceResponse
// @Failure 400 {object} errors.ProblemDetails
// @Router /statuscodes/create [post]
func (s *Server) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBind(&req); err != nil {
		responses.BadRequest(c, "Request binding failed: "+err.Error())
		return
	}
	if fieldErrs := s.validator.Validate(req); fieldErrs != nil {
		responses.BadRequest(c, "The 'name' field must not be empty", fieldErrs...)
		return
	}

	id, err := strconv.Atoi(c.Query("id"))
	if err != nil {
		responses.BadRequest(c, "The 'id' parameter must be an integer")
		return
	}

	responses.Created(c, fmt.Sprintf("Resource created with id %d", id), id, req.Name)
}

// delete always reports empty success, whatever the id
// @Summary Delete a resource
// @Description Always returns 204 regardless of the id
// @Tags statuscodes
// @Param id path int true "Resource id"
// @Success 204 "No Content"
// @Router /statuscodes/delete/{id} [delete]
func (s *Server) delete(c *gin.Context) {
	responses.NoContent(c)
}

// badRequest fails unless value is an integer
// @Summary Integer parameter check
// @Description Returns 400 when value is absent or not an integer, 200 otherwise
// @Tags statuscodes
// @Produce json
// @Param value query string true "Value to parse"
// @Success 200 {object} responses.StandardResponse
// @Failure 400 {object} errors.ProblemDetails
// @Router /statuscodes/badrequest [get]
func (s *Server) badRequest(c *gin.Context) {
	raw := c.Query("value")
	if raw == "" {
		responses.BadRequest(c, "The 'value' parameter is required")
		return
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		responses.BadRequest(c, fmt.Sprintf("The 'value' parameter %q is not an integer", raw))
		return
	}
	responses.OK(c, fmt.Sprintf("Received valid value %d", value))
}

// unauthorized requires any Authorization header
// @Summary Authorization presence check
// @Description Returns 401 when no Authorization header is present, 200 otherwise
// @Tags statuscodes
// @Produce json
// @Success 200 {object} responses.StandardResponse
// @Failure 401 {object} errors.ProblemDetails
// @Router /statuscodes/unauthorized [get]
func (s *Server) unauthorized(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		responses.Unauthorized(c, "Authorization header required")
		return
	}
	responses.OK(c, "Credentials accepted")
}

// forbidden requires the exact bearer token. A missing header is 401 like
// its unauthorized sibling; a present but wrong value is 403.
// @Summary Exact bearer token check
// @Description Returns 401 without an Authorization header, 403 unless the header is exactly "Bearer VALID_TOKEN", 200 on a match
// @Tags statuscodes
// @Produce json
// @Success 200 {object} responses.StandardResponse
// @Failure 401 {object} errors.ProblemDetails
// @Failure 403 {object} errors.ProblemDetails
// @Router /statuscodes/forbidden [get]
func (s *Server) forbidden(c *gin.Context) {
	authz := c.GetHeader("Authorization")
	if authz == "" {
		responses.Unauthorized(c, "Authorization header required")
		return
	}
	// Byte-for-byte comparison, case-sensitive.
	if authz != "Bearer "+s.cfg.Auth.Token {
		responses.Forbidden(c, "The supplied token does not grant access")
		return
	}
	responses.OK(c, "Token accepted")
}

// notFound knows exactly one resource
// @Summary Single known resource
// @Description Returns 200 only when id equals 1, 404 for anything else
// @Tags statuscodes
// @Produce json
// @Param id path int true "Resource id"
// @Success 200 {object} responses.StandardResponse
// @Failure 404 {object} errors.ProblemDetails
// @Router /statuscodes/notfound/{id} [get]
func (s *Server) notFound(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id != 1 {
		responses.NotFound(c, fmt.Sprintf("No resource with id %q exists", c.Param("id")))
		return
	}
	responses.OK(c, "Resource 1 found")
}

// conflict rejects the reserved name "Duplicate" in any casing
// @Summary Duplicate name check
// @Description Returns 409 when name case-insensitively equals "Duplicate", 201 with fixed id 2 otherwise
// @Tags statuscodes
// @Accept json
// @Produce json
// @Param request body resourceRequest true "Resource to create"
// @Success 201 {object} responses.ResourceResponse
// @Failure 409 {object} errors.ProblemDetails
// @Router /statuscodes/conflict [post]
func (s *Server) conflict(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Request binding failed: "+err.Error())
		return
	}
	if strings.EqualFold(req.Name, "Duplicate") {
		responses.Conflict(c, fmt.Sprintf("A resource named %q already exists", req.Name))
		return
	}
	responses.Created(c, "Resource created with id 2", 2, req.Name)
}

// unprocessable requires a name of at least three characters
// @Summary Minimum length check
// @Description Returns 422 when name is absent or shorter than 3 characters, 201 with fixed id 3 otherwise
// @Tags statuscodes
// @Accept json
// @Produce json
// @Param request body unprocessableRequest true "Resource to create"
// @Success 201 {object} responses.ResourceResponse
// @Failure 422 {object} errors.ProblemDetails
// @Router /statuscodes/unprocessable [post]
func (s *Server) unprocessable(c *gin.Context) {
	var req unprocessableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Request binding failed: "+err.Error())
		return
	}
	if fieldErrs := s.validator.Validate(req); fieldErrs != nil {
		responses.UnprocessableEntity(c, "The 'name' field must be at least 3 characters long", fieldErrs...)
		return
	}
	responses.Created(c, "Resource created with id 3", 3, req.Name)
}

// tooMany simulates rate limiting on a client-supplied counter
// @Summary Rate limit simulation
// @Description Returns 429 when the requests parameter exceeds 5, 200 echoing the count otherwise
// @Tags statuscodes
// @Produce json
// @Param requests query int false "Observed request count"
// @Success 200 {object} responses.CountResponse
// @Failure 429 {object} errors.ProblemDetails
// @Router /statuscodes/toomany [get]
func (s *Server) tooMany(c *gin.Context) {
	requests, err := strconv.Atoi(c.DefaultQuery("requests", "0"))
	if err != nil {
		requests = 0
	}
	if requests > 5 {
		metrics.SimulatedFailuresTotal.WithLabelValues("429").Inc()
		responses.TooManyRequests(c, fmt.Sprintf("Received %d requests, limit is 5", requests))
		return
	}
	responses.CountOK(c, fmt.Sprintf("Received %d requests", requests), requests)
}

// internalError panics on demand. The panic crosses the handler and is
// turned into a generic 500 by the recovery boundary on the router.
// @Summary Unrecoverable failure simulation
// @Description Panics when trigger=true, which the top-level boundary maps to 500; returns 200 otherwise
// @Tags statuscodes
// @Produce json
// @Param trigger query bool false "Trigger the failure"
// @Success 200 {object} responses.StandardResponse
// @Failure 500 {object} errors.ProblemDetails
// @Router /statuscodes/internalerror [get]
func (s *Server) internalError(c *gin.Context) {
	if trigger, _ := strconv.ParseBool(c.Query("trigger")); trigger {
		panic("simulated unrecoverable failure")
	}
	responses.OK(c, "No failure triggered")
}

// badGateway simulates an upstream failure
// @Summary Bad gateway simulation
// @Description Returns 502 when simulate=true, 200 otherwise
// @Tags statuscodes
// @Produce json
// @Param simulate query bool false "Simulate the upstream failure"
// @Success 200 {object} responses.StandardResponse
// @Failure 502 {object} errors.ProblemDetails
// @Router /statuscodes/badgateway [get]
func (s *Server) badGateway(c *gin.Context) {
	if simulate, _ := strconv.ParseBool(c.Query("simulate")); simulate {
		metrics.SimulatedFailuresTotal.WithLabelValues("502").Inc()
		responses.BadGateway(c, "Upstream server returned an invalid response")
		return
	}
	responses.OK(c, "Upstream is healthy")
}

// serviceUnavailable simulates a maintenance window
// @Summary Service unavailable simulation
// @Description Returns 503 when maintenance=true, 200 otherwise
// @Tags statuscodes
// @Produce json
// @Param maintenance query bool false "Simulate maintenance"
// @Success 200 {object} responses.StandardResponse
// @Failure 503 {object} errors.ProblemDetails
// @Router /statuscodes/serviceunavailable [get]
func (s *Server) serviceUnavailable(c *gin.Context) {
	if maintenance, _ := strconv.ParseBool(c.Query("maintenance")); maintenance {
		metrics.SimulatedFailuresTotal.WithLabelValues("503").Inc()
		responses.ServiceUnavailable(c, "Service is down for maintenance")
		return
	}
	responses.OK(c, "Service is available")
}

// gatewayTimeout simulates a slow upstream
// @Summary Gateway timeout simulation
// @Description Returns 504 when timeout=true, 200 otherwise
// @Tags statuscodes
// @Produce json
// @Param timeout query bool false "Simulate the timeout"
// @Success 200 {object} responses.StandardResponse
// @Failure 504 {object} errors.ProblemDetails
// @Router /statuscodes/gatewaytimeout [get]
func (s *Server) gatewayTimeout(c *gin.Context) {
	if timeout, _ := strconv.ParseBool(c.Query("timeout")); timeout {
		metrics.SimulatedFailuresTotal.WithLabelValues("504").Inc()
		responses.GatewayTimeout(c, "Upstream server did not respond in time")
		return
	}
	responses.OK(c, "Upstream responded in time")
}

// negotiate accepts clients that can take JSON
// @Summary Content negotiation check
// @Description Returns 406 unless the Accept header contains application/json
// @Tags statuscodes
// @Produce json
// @Success 200 {object} responses.StandardResponse
// @Failure 406 {object} errors.ProblemDetails
// @Router /statuscodes/negotiate [get]
func (s *Server) negotiate(c *gin.Context) {
	if !strings.Contains(c.GetHeader("Accept"), "application/json") {
		responses.NotAcceptable(c, "Only application/json responses are produced")
		return
	}
	responses.OK(c, "Content negotiation succeeded")
}

// validateContent requires an exact JSON content type before validating the
// body. Media type parameters (e.g. a charset) fail the check on purpose.
// @Summary Content type and body check
// @Description Returns 415 unless Content-Type equals application/json, 400 when name is empty, 201 otherwise
// @Tags statuscodes
// @Accept json
// @Produce json
// @Param request body resourceRequest true "Resource to create"
// @Success 201 {object} responses.ResourceResponse
// @Failure 400 {object} errors.ProblemDetails
// @Failure 415 {object} errors.ProblemDetails
// @Router /statuscodes/validate-content [post]
func (s *Server) validateContent(c *gin.Context) {
	if !strings.EqualFold(c.GetHeader("Content-Type"), "application/json") {
		responses.UnsupportedMediaType(c, "Content-Type must be exactly application/json")
		return
	}
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Request binding failed: "+err.Error())
		return
	}
	if req.Name == "" {
		responses.BadRequest(c, "The 'name' field must not be empty")
		return
	}
	responses.Created(c, "Resource created with id 4", 4, req.Name)
}

// movedPermanently issues a classic 301
// @Summary Moved permanently redirect
// @Description Unconditionally redirects with 301; clients commonly downgrade the method to GET
// @Tags statuscodes
// @Success 301 "Moved Permanently"
// @Router /statuscodes/notHereAnymore [get]
func (s *Server) movedPermanently(c *gin.Context) {
	c.Redirect(http.StatusMovedPermanently, s.cfg.Redirect.MovedLocation)
}

// permanentRedirect issues a 308, which mandates method preservation
// @Summary Permanent redirect
// @Description Unconditionally redirects with 308; clients must preserve the original method
// @Tags statuscodes
// @Success 308 "Permanent Redirect"
// @Router /statuscodes/willRedirectToTarget [get]
func (s *Server) permanentRedirect(c *gin.Context) {
	c.Redirect(http.StatusPermanentRedirect, s.cfg.Redirect.PermanentLocation)
}
