package http

import (
	"github.com/karloscodes/cartridge"
	"gorm.io/gorm"

	"portfolio/internal/contacts"
	"portfolio/internal/education"
	"portfolio/internal/experiences"
	"portfolio/internal/projects"
	"portfolio/internal/skills"
)

// DashboardStats are the counters shown on the admin dashboard.
type DashboardStats struct {
	Projects       int64 `json:"projects"`
	Skills         int64 `json:"skills"`
	Experiences    int64 `json:"experiences"`
	Education      int64 `json:"education"`
	Messages       int64 `json:"messages"`
	UnreadMessages int64 `json:"unreadMessages"`
}

// AdminStatsAction returns the dashboard counters.
func AdminStatsAction(ctx *cartridge.Context) error {
	db := ctx.DB()
	var stats DashboardStats

	counters := []struct {
		target *int64
		count  func(*gorm.DB) (int64, error)
	}{
		{&stats.Projects, projects.Count},
		{&stats.Skills, skills.Count},
		{&stats.Experiences, experiences.Count},
		{&stats.Education, education.Count},
		{&stats.Messages, contacts.Count},
		{&stats.UnreadMessages, contacts.CountUnread},
	}

	for _, c := range counters {
		n, err := c.count(db)
		if err != nil {
			return respondError(ctx, err, "Stats", "fetch dashboard stats")
		}
		*c.target = n
	}

	return ctx.JSON(stats)
}
