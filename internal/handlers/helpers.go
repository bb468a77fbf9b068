package handlers

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/snapgram/backend/internal/errs"
)

// httpError maps a facade error to an echo HTTP error by its kind.
func httpError(err error) *echo.HTTPError {
	switch errs.KindOf(err) {
	case errs.KindValidation:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errs.KindUnauthorized:
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errs.KindNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errs.KindConflict:
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// formFile reads an optional multipart file field. A missing field returns
// empty content and no error; handlers leave required-file decisions to the
// facade.
func formFile(c echo.Context, field string) ([]byte, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, "", nil
	}
	src, err := fileHeader.Open()
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "Cannot open uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "Cannot read uploaded file")
	}
	return data, fileHeader.Header.Get("Content-Type"), nil
}

// sessionToken returns the bearer token the auth middleware stored.
func sessionToken(c echo.Context) string {
	token, _ := c.Get("sessionToken").(string)
	return token
}
