package http

import (
	"github.com/karloscodes/cartridge"

	"portfolio/internal/cache"
	"portfolio/internal/homestats"
	"portfolio/internal/metrics"
	"portfolio/internal/profiles"
)

// ProfileShowAction returns the site owner's profile, or null when none has
// been saved yet.
func ProfileShowAction(content *Content) cartridge.HandlerFunc {
	return func(ctx *cartridge.Context) error {
		profile, err := cache.Remember(content.Cache, "profile:"+profiles.ProfileID, func() (*profiles.Profile, error) {
			return profiles.Get(ctx.DB())
		})
		if err != nil {
			return respondError(ctx, err, "Profile", "fetch profile")
		}
		if profile == nil {
			return ctx.JSON(nil)
		}
		return ctx.JSON(profile)
	}
}

// ProfileUpsertAction creates or replaces the profile. It serves both POST
// and PUT.
func ProfileUpsertAction(content *Content) cartridge.HandlerFunc {
	return func(ctx *cartridge.Context) error {
		var in profiles.Input
		if ok, err := parseBody(ctx, &in); !ok {
			return err
		}

		profile, err := profiles.Upsert(ctx.DB(), in)
		if err != nil {
			return respondError(ctx, err, "Profile", "save profile")
		}

		metrics.ContentWrite("profile", "upsert")
		content.Changed("profile")
		return ctx.JSON(profile)
	}
}

// HomeStatsShowAction returns the hero statistics, creating the defaults on
// first read.
func HomeStatsShowAction(content *Content) cartridge.HandlerFunc {
	return func(ctx *cartridge.Context) error {
		stats, err := cache.Remember(content.Cache, "home-stats:"+homestats.HomeStatsID, func() (*homestats.HomeStats, error) {
			return homestats.Get(ctx.DB())
		})
		if err != nil {
			return respondError(ctx, err, "Home stats", "fetch home stats")
		}
		return ctx.JSON(stats)
	}
}

// HomeStatsUpdateAction replaces the hero statistics; every field is required.
func HomeStatsUpdateAction(content *Content) cartridge.HandlerFunc {
	return func(ctx *cartridge.Context) error {
		var in homestats.Input
		if ok, err := parseBody(ctx, &in); !ok {
			return err
		}

		stats, err := homestats.Upsert(ctx.DB(), in)
		if err != nil {
			return respondError(ctx, err, "Home stats", "update home stats")
		}

		metrics.ContentWrite("home-stats", "upsert")
		content.Changed("home-stats")
		return ctx.JSON(stats)
	}
}
