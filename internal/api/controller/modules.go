package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/agrodash/internal/domain"
	"github.com/ougirez/agrodash/internal/pkg/registry"
)

type moduleInfo struct {
	Name      string          `json:"name"`
	Label     string          `json:"label"`
	Items     []registry.Code `json:"items"`
	Variables []registry.Code `json:"variables"`
}

// ListModules serves the static module catalog: item and variable codes
// with display labels, used by the presentation layer to build filters.
func (c *Controller) ListModules(ctx echo.Context) error {
	modules := make([]moduleInfo, 0, len(domain.Modules()))
	for _, m := range domain.Modules() {
		modules = append(modules, moduleInfo{
			Name:      string(m),
			Label:     m.Label(),
			Items:     registry.ModuleItems(m),
			Variables: registry.ModuleVariables(m),
		})
	}

	type response struct {
		Modules []moduleInfo `json:"modules"`
	}

	return ctx.JSON(http.StatusOK, response{Modules: modules})
}
