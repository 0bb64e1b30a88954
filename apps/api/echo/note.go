package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/directory"
	"github.com/nzaba/tempo/core/note"
)

type noteApi struct {
	dirSvc *directory.Service
	svc    *note.Service
}

func registerNoteAPI(g *echo.Group, dirSvc *directory.Service, svc *note.Service) {
	api := noteApi{dirSvc: dirSvc, svc: svc}

	ng := g.Group("/notes")
	ng.GET("", api.query)
	ng.POST("", api.create)
}

// Handlers

func (api *noteApi) query(ctx echo.Context) error {
	studentID := core.CleanString(ctx.QueryParam("student_id"))
	if studentID == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "student_id", Error: "this field is required"})
	}

	notes, err := api.svc.ForStudent(ctx.Request().Context(), studentID)
	if err != nil {
		return errors.Wrap(err, "querying notes")
	}
	if notes == nil {
		notes = []note.Note{}
	}
	return ctx.JSON(http.StatusOK, NoteListResponse{Notes: notes})
}

func (api *noteApi) create(ctx echo.Context) error {
	var data note.NewNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNote")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	// the log references a real student; unknown ids are rejected up front
	if _, err := api.dirSvc.GetStudent(ctx.Request().Context(), data.StudentID); err != nil {
		if errors.Cause(err) == directory.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding student")
	}

	n, err := api.svc.Add(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding note")
	}
	return ctx.JSON(http.StatusCreated, n)
}

type NoteListResponse struct {
	Notes []note.Note `json:"notes"`
}
