package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/attendance"
	"github.com/nzaba/tempo/core/directory"
)

type checkinApi struct {
	dirSvc *directory.Service
	svc    *attendance.Service
}

func registerCheckinAPI(g *echo.Group, dirSvc *directory.Service, svc *attendance.Service) {
	api := checkinApi{dirSvc: dirSvc, svc: svc}

	cg := g.Group("/checkin")
	cg.GET("/students", api.queryStudents)
	cg.POST("", api.checkIn)
}

// Handlers

// queryStudents feeds the kiosk picker. Names and ids only; the PIN stays
// server-side and is verified on POST.
func (api *checkinApi) queryStudents(ctx echo.Context) error {
	students, err := api.dirSvc.ActiveStudents(ctx.Request().Context(), "")
	if err != nil {
		return errors.Wrap(err, "querying students")
	}

	kiosk := make([]KioskStudent, 0, len(students))
	for _, st := range students {
		kiosk = append(kiosk, KioskStudent{ID: st.ID, Name: st.Name})
	}
	return ctx.JSON(http.StatusOK, KioskStudentListResponse{Students: kiosk})
}

func (api *checkinApi) checkIn(ctx echo.Context) error {
	var data CheckinRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CheckinRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	conf, err := api.svc.CheckIn(ctx.Request().Context(), data.StudentID, data.PIN)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, conf)
}

type (
	KioskStudent struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	KioskStudentListResponse struct {
		Students []KioskStudent `json:"students"`
	}

	CheckinRequest struct {
		StudentID string `json:"student_id" validate:"required"`
		PIN       string `json:"pin" validate:"required"`
	}
)

func (cr *CheckinRequest) Validate() error {
	cr.StudentID = core.CleanString(cr.StudentID)
	return core.Validate.Struct(cr)
}
