package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/middleware"
)

// principal is only called behind RequireAuth.
func principal(c *gin.Context) domain.Principal {
	p, _ := middleware.PrincipalFrom(c)
	return p
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func invalidBody(c *gin.Context, err error) {
	httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
}

// parseStart accepts an RFC 3339 timestamp, or a date and a wall-clock time
// read in loc.
func parseStart(loc *time.Location, startTime, date, clock string) (time.Time, error) {
	if startTime != "" {
		return time.Parse(time.RFC3339, startTime)
	}
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
}

func parseDay(loc *time.Location, s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	return t, err == nil
}
