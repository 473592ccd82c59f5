package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"portfolio/internal/sections"
)

var placeholders = map[string]string{
	"Projects":   sections.NoProjects,
	"Skills":     sections.NoSkills,
	"Experience": sections.NoExperience,
	"Education":  sections.NoEducation,
}

// HomeIndexAction renders the public portfolio page. Fully loaded pages are
// cached; degraded ones are rendered but never cached.
func HomeIndexAction(loader *sections.Loader, content *Content) cartridge.HandlerFunc {
	return func(ctx *cartridge.Context) error {
		home, ok := cachedHome(ctx, content)
		if !ok {
			home = loader.LoadHome(ctx.UserContext(), ctx.DB())
			if home.Degraded() {
				ctx.Logger.Warn("Rendering home page with fallback sections")
			} else {
				content.Cache.Set(HomeCacheKey, home)
			}
		}

		return ctx.Render("index", fiber.Map{
			"Home":         home,
			"Placeholders": placeholders,
		})
	}
}

func cachedHome(ctx *cartridge.Context, content *Content) (*sections.Home, bool) {
	cached, ok := content.Cache.Get(HomeCacheKey)
	if !ok {
		return nil, false
	}
	home, ok := cached.(*sections.Home)
	if !ok {
		ctx.Logger.Debug("Unexpected home cache entry", slog.Any("value", cached))
	}
	return home, ok
}
