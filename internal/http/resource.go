package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"
	"gorm.io/gorm"

	"portfolio/internal/cache"
	"portfolio/internal/metrics"
)

// resource serves the CRUD endpoints of one content collection. Reads go
// through the public cache; writes invalidate it.
type resource[T any, In any] struct {
	kind    string
	subject string

	list   func(db *gorm.DB) ([]T, error)
	find   func(db *gorm.DB, id string) (*T, error)
	create func(db *gorm.DB, in In) (*T, error)
	update func(db *gorm.DB, id string, in In) (*T, error)
	remove func(db *gorm.DB, id string) error
}

func (r resource[T, In]) index(content *Content) cartridge.HandlerFunc {
	return func(ctx *cartridge.Context) error {
		rows, err := cache.Remember(content.Cache, r.kind+":list", func() ([]T, error) {
			return r.list(ctx.DB())
		})
		if err != nil {
			return respondError(ctx, err, r.subject, "fetch "+r.kind)
		}
		return ctx.JSON(rows)
	}
}

func (r resource[T, In]) show(content *Content) cartridge.HandlerFunc {
	return func(ctx *cartridge.Context) error {
		id := ctx.Params("id")
		row, err := cache.Remember(content.Cache, r.kind+":"+id, func() (*T, error) {
			return r.find(ctx.DB(), id)
		})
		if err != nil {
			return respondError(ctx, err, r.subject, "fetch "+r.kind)
		}
		return ctx.JSON(row)
	}
}

func (r resource[T, In]) store(content *Content) cartridge.HandlerFunc {
	return func(ctx *cartridge.Context) error {
		var in In
		if ok, err := parseBody(ctx, &in); !ok {
			return err
		}

		row, err := r.create(ctx.DB(), in)
		if err != nil {
			return respondError(ctx, err, r.subject, "create "+r.kind)
		}

		r.changed(content, "create")
		return ctx.Status(fiber.StatusCreated).JSON(row)
	}
}

func (r resource[T, In]) replace(content *Content) cartridge.HandlerFunc {
	return func(ctx *cartridge.Context) error {
		var in In
		if ok, err := parseBody(ctx, &in); !ok {
			return err
		}

		row, err := r.update(ctx.DB(), ctx.Params("id"), in)
		if err != nil {
			return respondError(ctx, err, r.subject, "update "+r.kind)
		}

		r.changed(content, "update")
		return ctx.JSON(row)
	}
}

func (r resource[T, In]) destroy(content *Content) cartridge.HandlerFunc {
	return func(ctx *cartridge.Context) error {
		if err := r.remove(ctx.DB(), ctx.Params("id")); err != nil {
			return respondError(ctx, err, r.subject, "delete "+r.kind)
		}

		r.changed(content, "delete")
		return ctx.JSON(fiber.Map{"message": r.subject + " deleted successfully"})
	}
}

func (r resource[T, In]) changed(content *Content, operation string) {
	metrics.ContentWrite(r.kind, operation)
	content.Changed(r.kind)
}
