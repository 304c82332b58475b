package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ougirez/agrodash/internal/domain"
	"github.com/ougirez/agrodash/internal/pkg/constants"
	"github.com/ougirez/agrodash/internal/pkg/store"
	"github.com/ougirez/agrodash/internal/service/query"
)

func yearParam(ctx echo.Context, name string) (*domain.Year, error) {
	raw := ctx.QueryParams().Get(name)
	if raw == "" {
		return nil, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil, constants.InvalidFilterf("%s must be an integer, got %q", name, raw)
	}
	return &year, nil
}

func filterFromQuery(ctx echo.Context) (query.Filter, error) {
	params := ctx.QueryParams()

	if params.Get("module") == "" {
		return query.Filter{}, constants.NewCodedError(http.StatusBadRequest, "module parameter is required")
	}

	yearStart, err := yearParam(ctx, "year_start")
	if err != nil {
		return query.Filter{}, err
	}
	yearEnd, err := yearParam(ctx, "year_end")
	if err != nil {
		return query.Filter{}, err
	}

	return query.Filter{
		Module:    params.Get("module"),
		Item:      params.Get("item"),
		Variable:  params.Get("variable"),
		Region:    params.Get("region"),
		YearStart: yearStart,
		YearEnd:   yearEnd,
	}, nil
}

func (c *Controller) ListProjections(ctx echo.Context) error {
	filter, err := filterFromQuery(ctx)
	if err != nil {
		return err
	}

	projections, err := c.query.ListProjections(ctx.Request().Context(), filter)
	if err != nil {
		return err
	}
	if projections == nil {
		projections = []*domain.Projection{}
	}

	type response struct {
		Projections []*domain.Projection `json:"projections"`
	}

	return ctx.JSON(http.StatusOK, response{Projections: projections})
}

func (c *Controller) AggregateProjections(ctx echo.Context) error {
	filter, err := filterFromQuery(ctx)
	if err != nil {
		return err
	}

	groupBy := store.GroupBy(ctx.QueryParams().Get("group_by"))
	if groupBy == "" {
		groupBy = store.GroupByYear
	}

	groups, unit, err := c.query.Aggregate(ctx.Request().Context(), filter, groupBy)
	if err != nil {
		return err
	}

	type response struct {
		Groups map[string]decimal.Decimal `json:"groups"`
		Unit   string                     `json:"unit"`
	}

	return ctx.JSON(http.StatusOK, response{Groups: groups, Unit: unit})
}
