package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/directory"
)

type directoryApi struct {
	svc *directory.Service
}

func registerDirectoryAPI(g *echo.Group, svc *directory.Service) {
	api := directoryApi{svc: svc}

	g.GET("/search", api.search)
	g.GET("/students", api.queryStudents)
}

// Handlers

func (api *directoryApi) search(ctx echo.Context) error {
	query := core.CleanString(ctx.QueryParam("q"))

	res, err := api.svc.Search(ctx.Request().Context(), query)
	if err != nil {
		return errors.Wrap(err, "searching directory")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *directoryApi) queryStudents(ctx echo.Context) error {
	filter := core.CleanString(ctx.QueryParam("q"))

	students, err := api.svc.ActiveStudents(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []directory.Student{}
	}
	return ctx.JSON(http.StatusOK, StudentListResponse{Students: students})
}

type StudentListResponse struct {
	Students []directory.Student `json:"students"`
}
