package httpapi

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-records-api/internal/auth"
	"github.com/i474232898/weather-records-api/internal/store"
	"github.com/i474232898/weather-records-api/internal/weather"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Let `required` see through the calendar-date wrapper.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(weather.Date); ok {
			return d.Time()
		}
		return nil
	}, weather.Date{})
	return v
}

// pageEnvelope is the wire shape of a listing response.
type pageEnvelope struct {
	Content       []weather.Record `json:"content"`
	TotalElements int64            `json:"totalElements"`
	TotalPages    int              `json:"totalPages"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. Creation is
// admin-only; reads are open to both roles.
func RegisterRoutes(app *fiber.App, service *weather.Service, guard *auth.Guard) {
	app.Post("/weather", guard.Require(auth.RoleAdmin), func(c *fiber.Ctx) error {
		var rec weather.Record
		if err := c.BodyParser(&rec); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(rec); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		created, err := service.Create(c.Context(), rec)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to create weather record")
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	app.Get("/weather", guard.Require(auth.RoleUser, auth.RoleAdmin), func(c *fiber.Ctx) error {
		page, err := service.List(c.Context(),
			c.Query("date"),
			c.Query("city"),
			c.Query("sort"),
			c.QueryInt("page", 0),
			c.QueryInt("size", weather.DefaultPageSize),
		)
		if err != nil {
			if errors.Is(err, weather.ErrInvalidDate) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to list weather records")
		}

		return c.JSON(pageEnvelope{
			Content:       page.Items,
			TotalElements: page.TotalCount,
			TotalPages:    page.TotalPages(),
		})
	})

	app.Get("/weather/:id", guard.Require(auth.RoleUser, auth.RoleAdmin), func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "id must be an integer")
		}

		rec, err := service.GetByID(c.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Empty body on purpose; SendStatus would add the status text.
				return c.Status(fiber.StatusNotFound).Send(nil)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather record")
		}
		return c.JSON(rec)
	})
}
