package httputil

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ContextURL is the key under which the URLMiddleware stores the base URL of the API.
const ContextURL = "baseURL"

// BaseURL returns the base URL of the API for the request.
func BaseURL(c *gin.Context) string {
	return c.GetString(ContextURL)
}

// ParseID parses the path parameter as resource ID.
//
// If the parameter is not a valid ID, the error response is written and
// the error returned.
func ParseID(c *gin.Context, param string) (uint64, error) {
	parsed, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		NewError(c, http.StatusBadRequest, ErrInvalidID)
		return 0, ErrInvalidID
	}

	return parsed, nil
}

// BindData binds the data from the request body to the value data points to.
//
// If the body cannot be bound, the error response is written and the error returned.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			NewError(c, http.StatusBadRequest, ErrRequestBodyEmpty)
			return ErrRequestBodyEmpty
		}

		log.Debug().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		NewError(c, http.StatusBadRequest, ErrInvalidBody)
		return ErrInvalidBody
	}

	return nil
}
