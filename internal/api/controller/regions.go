package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/agrodash/internal/domain"
)

func (c *Controller) ListRegions(ctx echo.Context) error {
	regions, err := c.query.ListRegions(ctx.Request().Context())
	if err != nil {
		return err
	}
	if regions == nil {
		regions = []*domain.Region{}
	}

	type response struct {
		Regions []*domain.Region `json:"regions"`
	}

	return ctx.JSON(http.StatusOK, response{Regions: regions})
}
