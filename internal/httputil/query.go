package httputil

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledger-zero/backend/internal/types"
)

// QueryTime parses the query parameter as RFC 3339 time. If it is not set,
// fallback is returned.
func QueryTime(c *gin.Context, param string, fallback time.Time) (time.Time, error) {
	value, ok := c.GetQuery(param)
	if !ok || value == "" {
		return fallback, nil
	}

	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		NewError(c, http.StatusBadRequest, ErrInvalidTime)
		return time.Time{}, ErrInvalidTime
	}

	return t, nil
}

// QueryTimespan parses the start and end query parameters. Unset parameters
// leave the timespan unbounded on that side.
func QueryTimespan(c *gin.Context) (types.Timespan, error) {
	var timespan types.Timespan

	start, err := queryBound(c, "start")
	if err != nil {
		return types.Timespan{}, err
	}
	timespan.Start = start

	end, err := queryBound(c, "end")
	if err != nil {
		return types.Timespan{}, err
	}
	timespan.End = end

	return timespan, nil
}

// queryBound parses one bound of a timespan. Any time that is given is a
// bound, including the zero time.
func queryBound(c *gin.Context, param string) (*time.Time, error) {
	if value, ok := c.GetQuery(param); !ok || value == "" {
		return nil, nil
	}

	t, err := QueryTime(c, param, time.Time{})
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// QueryBool parses the query parameter as boolean. It returns nil if the
// parameter is not set.
func QueryBool(c *gin.Context, param string) (*bool, error) {
	value, ok := c.GetQuery(param)
	if !ok || value == "" {
		return nil, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		NewError(c, http.StatusBadRequest, ErrInvalidBool)
		return nil, ErrInvalidBool
	}

	return &b, nil
}

// QueryOffset parses the offset query parameter. It defaults to 0.
func QueryOffset(c *gin.Context) (int32, error) {
	value, ok := c.GetQuery("offset")
	if !ok || value == "" {
		return 0, nil
	}

	offset, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		NewError(c, http.StatusBadRequest, ErrInvalidOffset)
		return 0, ErrInvalidOffset
	}

	return int32(offset), nil
}
