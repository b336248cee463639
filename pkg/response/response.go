package response

import (
	"errors"
	"net/http"

	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Data = data
	resp.Message = message

	return c.JSON(http.StatusOK, resp)
}

// WriteJSON writes data as the whole body, without the success envelope.
func WriteJSON(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, data)
}

// WriteJSONBlob writes an already encoded JSON body unchanged.
func WriteJSONBlob(c echo.Context, statusCode int, body []byte) error {
	return c.JSONBlob(statusCode, body)
}

// WriteErrorResponse writes a not-found message for not-found errors and a
// generic server error carrying the underlying text for everything else.
func WriteErrorResponse(c echo.Context, err error) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Status = "error"

	if statusCode == errs.ErrStatusNotFound {
		resp.Message = notFoundMessage(err)
		return c.JSON(statusCode, resp)
	}

	resp.Message = errs.ErrInternalServer.Error()
	resp.Error = err.Error()

	return c.JSON(statusCode, resp)
}

func notFoundMessage(err error) string {
	for _, sentinel := range []error{errs.ErrProductNotFound, errs.ErrNoFeatured} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	return errs.ErrNotFound.Error()
}
