package booking

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// pageParams reads the from/size window, defaulting to 0/100.
func pageParams(c echo.Context) (from, size int, err error) {
	from, size = 0, 100
	if raw := c.QueryParam("from"); raw != "" {
		from, err = strconv.Atoi(raw)
		if err != nil || from < 0 {
			return 0, 0, errors.New("from must be a non-negative integer")
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size < 1 {
			return 0, 0, errors.New("size must be a positive integer")
		}
	}
	return from, size, nil
}
