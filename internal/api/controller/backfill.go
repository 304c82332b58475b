package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type backfillRequest struct {
	Path string `json:"path" validate:"required"`
}

// BackfillProjections triggers an ingestion run from a server-local CSV.
// Administrative endpoint; the caller is responsible for not running two
// ingestions against the same module at once.
func (c *Controller) BackfillProjections(ctx echo.Context) error {
	var req backfillRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	summary, err := c.ingest.RunFile(ctx.Request().Context(), req.Path)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, summary)
}
