package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/agrodash/internal/service/query"
)

// HeadlineStats serves one global total per variable-of-interest, summed
// across all module partitions.
func (c *Controller) HeadlineStats(ctx echo.Context) error {
	year, err := yearParam(ctx, "year")
	if err != nil {
		return err
	}
	item := ctx.QueryParams().Get("item")

	stats, err := c.query.HeadlineStats(ctx.Request().Context(), year, item)
	if err != nil {
		return err
	}

	type response struct {
		Stats map[string]query.HeadlineStat `json:"stats"`
	}

	return ctx.JSON(http.StatusOK, response{Stats: stats})
}
