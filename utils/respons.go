package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/wildeats-cart/cart"
	"github.com/yeremiapane/wildeats-cart/services"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// StatusFromError maps domain errors to HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, cart.ErrItemNotFound), errors.Is(err, services.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnknownModifier),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidItem),
		errors.Is(err, cart.ErrEmptyCartCheckout):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrShopNotOperational), errors.Is(err, services.ErrItemUnavailable):
		return http.StatusConflict
	case errors.Is(err, cart.ErrPersistenceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError writes err with the status StatusFromError picks. Server
// errors are logged and their detail is not sent to the client.
func RespondDomainError(c *gin.Context, err error) {
	code := StatusFromError(err)
	if code == http.StatusInternalServerError {
		if ErrorLogger != nil {
			ErrorLogger.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
		}
		RespondError(c, code, errors.New("internal server error"))
		return
	}
	RespondError(c, code, err)
}
