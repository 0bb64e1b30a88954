package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/directory"
	"github.com/nzaba/tempo/core/timeclock"
)

const (
	clockActionIn  = "in"
	clockActionOut = "out"
)

type staffApi struct {
	dirSvc   *directory.Service
	clockSvc *timeclock.Service
}

func registerStaffAPI(g *echo.Group, dirSvc *directory.Service, clockSvc *timeclock.Service) {
	api := staffApi{dirSvc: dirSvc, clockSvc: clockSvc}

	sg := g.Group("/staff")
	sg.GET("/instructors", api.queryInstructors)
	sg.POST("/clock", api.clock)
}

// Handlers

func (api *staffApi) queryInstructors(ctx echo.Context) error {
	instructors, err := api.dirSvc.ActiveInstructors(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying instructors")
	}
	if instructors == nil {
		instructors = []directory.Instructor{}
	}
	return ctx.JSON(http.StatusOK, InstructorListResponse{Instructors: instructors})
}

func (api *staffApi) clock(ctx echo.Context) error {
	var data ClockRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ClockRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	var res timeclock.Result
	var err error
	switch data.Action {
	case clockActionIn:
		res, err = api.clockSvc.ClockIn(ctx.Request().Context(), data.InstructorID, data.PIN)
	case clockActionOut:
		res, err = api.clockSvc.ClockOut(ctx.Request().Context(), data.InstructorID, data.PIN)
	}
	if err != nil {
		// a clock attempt against an unknown instructor is a bad request,
		// not a missing resource
		if errors.Cause(err) == directory.ErrNotFound {
			return core.NewValidationError(nil, core.FieldError{Field: "instructor_id", Error: "unknown instructor"})
		}
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

type (
	InstructorListResponse struct {
		Instructors []directory.Instructor `json:"instructors"`
	}

	ClockRequest struct {
		InstructorID string `json:"instructor_id" validate:"required"`
		PIN          string `json:"pin" validate:"required"`
		Action       string `json:"action" validate:"required,oneof=in out"`
	}
)

func (cr *ClockRequest) Validate() error {
	cr.InstructorID = core.CleanString(cr.InstructorID)
	cr.Action = core.CleanString(cr.Action, true /* lower */)
	return core.Validate.Struct(cr)
}
