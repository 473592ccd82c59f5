package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"portfolio/internal/contacts"
	"portfolio/internal/metrics"
	"portfolio/internal/pkg/geoip"
)

// ContactsIndexAction lists received messages, newest first.
func ContactsIndexAction(ctx *cartridge.Context) error {
	rows, err := contacts.List(ctx.DB())
	if err != nil {
		return respondError(ctx, err, "Message", "fetch messages")
	}
	return ctx.JSON(rows)
}

// ContactsShowAction returns one message by id.
func ContactsShowAction(ctx *cartridge.Context) error {
	row, err := contacts.Find(ctx.DB(), ctx.Params("id"))
	if err != nil {
		return respondError(ctx, err, "Message", "fetch message")
	}
	return ctx.JSON(row)
}

// ContactsCreateAction returns the public contact form handler. The sender's
// country is resolved through locator when a GeoIP database is configured.
func ContactsCreateAction(locator *geoip.Locator) cartridge.HandlerFunc {
	return func(ctx *cartridge.Context) error {
		var in contacts.Input
		if ok, err := parseBody(ctx, &in); !ok {
			metrics.ContactMessage(metrics.ContactRejected)
			return err
		}

		country := locator.CountryCode(clientIP(ctx.Ctx))

		contact, err := contacts.Create(ctx.DB(), in, country)
		if err != nil {
			metrics.ContactMessage(metrics.ContactRejected)
			return respondError(ctx, err, "Message", "send message")
		}

		metrics.ContactMessage(metrics.ContactAccepted)
		ctx.Logger.Info("Contact message received",
			slog.String("id", contact.ID),
			slog.String("country", country))

		return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Message sent successfully",
			"id":      contact.ID,
		})
	}
}

type contactUpdateInput struct {
	Read *bool `json:"read"`
}

// ContactsUpdateAction sets the read flag of a message.
func ContactsUpdateAction(ctx *cartridge.Context) error {
	var in contactUpdateInput
	if ok, err := parseBody(ctx, &in); !ok {
		return err
	}
	if in.Read == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Read flag is required"})
	}

	contact, err := contacts.SetRead(ctx.DB(), ctx.Params("id"), *in.Read)
	if err != nil {
		return respondError(ctx, err, "Message", "update message")
	}
	return ctx.JSON(contact)
}

// ContactsDeleteAction deletes a message.
func ContactsDeleteAction(ctx *cartridge.Context) error {
	if err := contacts.Delete(ctx.DB(), ctx.Params("id")); err != nil {
		return respondError(ctx, err, "Message", "delete message")
	}
	return ctx.JSON(fiber.Map{"message": "Message deleted successfully"})
}
