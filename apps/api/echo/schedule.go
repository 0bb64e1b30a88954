package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/schedule"
)

type scheduleApi struct {
	svc *schedule.Service
}

func registerScheduleAPI(g *echo.Group, svc *schedule.Service) {
	api := scheduleApi{svc: svc}

	sg := g.Group("/schedule")
	sg.POST("", api.create)
	sg.GET("/day", api.day)
	sg.GET("/today", api.today)
}

// Handlers

func (api *scheduleApi) create(ctx echo.Context) error {
	var data schedule.NewSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSession")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	sess, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating session")
	}
	return ctx.JSON(http.StatusCreated, SessionCreatedResponse{SessionID: sess.ID})
}

func (api *scheduleApi) day(ctx echo.Context) error {
	date := core.CleanString(ctx.QueryParam("date"))

	sessions, err := api.svc.Day(ctx.Request().Context(), date)
	if err != nil {
		return err
	}
	if sessions == nil {
		sessions = []schedule.DaySession{}
	}
	return ctx.JSON(http.StatusOK, DayScheduleResponse{Sessions: sessions})
}

func (api *scheduleApi) today(ctx echo.Context) error {
	sessions, err := api.svc.Today(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying today's sessions")
	}
	if sessions == nil {
		sessions = []schedule.DaySession{}
	}
	return ctx.JSON(http.StatusOK, DayScheduleResponse{Sessions: sessions})
}

type (
	SessionCreatedResponse struct {
		SessionID string `json:"session_id"`
	}

	DayScheduleResponse struct {
		Sessions []schedule.DaySession `json:"sessions"`
	}
)
