// Package sections loads the content of the public home page. Each section is
// loaded independently; a failed load never fails the page and is replaced by
// built-in fallback content.
package sections

import (
	"context"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"portfolio/internal/education"
	"portfolio/internal/experiences"
	"portfolio/internal/homestats"
	"portfolio/internal/metrics"
	"portfolio/internal/pkg/async"
	"portfolio/internal/pkg/markdown"
	"portfolio/internal/profiles"
	"portfolio/internal/projects"
	"portfolio/internal/skills"
)

// Built-in content used when a section has no data or failed to load.
const (
	FallbackName      = "Your Name"
	FallbackTitle     = "Full Stack Developer"
	FallbackHeroBio   = "I create beautiful, functional, and user-friendly websites and applications. Welcome to my digital portfolio where you can explore my work and get to know me better."
	FallbackAboutName = "a Developer"
	FallbackAboutBio  = "I'm a passionate full-stack developer with a love for creating innovative digital solutions. My journey in web development started several years ago, and I've been constantly learning and evolving ever since."

	NoProjects   = "No projects available yet. Check back soon!"
	NoSkills     = "No skills found for this category. Check back soon!"
	NoExperience = "No work experience data available yet. Check back soon!"
	NoEducation  = "No education data available yet. Check back soon!"
)

// Section wraps one section's data with its load outcome.
type Section[T any] struct {
	Data T
	// Fallback is set when the load failed and Data holds built-in content.
	Fallback bool
	// Empty is set when the load succeeded with nothing to show.
	Empty bool
}

// Hero is the page header.
type Hero struct {
	Name               string
	Title              string
	Bio                string
	Avatar             string
	Resume             string
	YearsExperience    string
	ProjectsDone       string
	ClientSatisfaction string
}

// About introduces the site owner.
type About struct {
	Name      string
	Title     string
	Bio       string
	Email     string
	Phone     string
	Location  string
	Website   string
	Github    string
	Linkedin  string
	Twitter   string
	Instagram string
}

// ProjectCard is a project with its content rendered to HTML.
type ProjectCard struct {
	projects.Project
	ContentHTML template.HTML
	Summary     string
}

// SkillGroup holds the skills of one category.
type SkillGroup struct {
	Category string
	Heading  string
	Skills   []skills.Skill
}

// Home is everything the public page renders.
type Home struct {
	Hero       Section[Hero]
	About      Section[About]
	Projects   Section[[]ProjectCard]
	Skills     Section[[]SkillGroup]
	Experience Section[[]experiences.Experience]
	Education  Section[[]education.Education]
	Year       int
}

// Degraded reports whether any section fell back to built-in content.
func (h *Home) Degraded() bool {
	return h.Hero.Fallback || h.About.Fallback || h.Projects.Fallback ||
		h.Skills.Fallback || h.Experience.Fallback || h.Education.Fallback
}

// Loader fetches the home page sections.
type Loader struct {
	pool    *async.Pool
	logger  *slog.Logger
	timeout time.Duration
}

// NewLoader creates a loader running section loads in parallel.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{pool: async.NewPool(6), logger: logger, timeout: 5 * time.Second}
}

// LoadHome loads every section. It never returns an error: failed sections
// carry fallback content and are flagged.
func (l *Loader) LoadHome(ctx context.Context, db *gorm.DB) *Home {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	tasks := []async.Task{
		{Name: "profile", Execute: func(ctx context.Context) (interface{}, error) {
			return profiles.Get(db.WithContext(ctx))
		}},
		{Name: "stats", Execute: func(ctx context.Context) (interface{}, error) {
			return homestats.Get(db.WithContext(ctx))
		}},
		{Name: "projects", Execute: func(ctx context.Context) (interface{}, error) {
			return projects.List(db.WithContext(ctx))
		}},
		{Name: "skills", Execute: func(ctx context.Context) (interface{}, error) {
			return skills.List(db.WithContext(ctx))
		}},
		{Name: "experience", Execute: func(ctx context.Context) (interface{}, error) {
			return experiences.List(db.WithContext(ctx))
		}},
		{Name: "education", Execute: func(ctx context.Context) (interface{}, error) {
			return education.List(db.WithContext(ctx))
		}},
	}

	results := l.pool.Execute(ctx, tasks)
	for name, result := range results {
		if result.Err != nil {
			l.logger.Error("Failed to load home section",
				slog.String("section", name),
				slog.Any("error", result.Err))
		}
	}

	profile, profileErr := resultAs[*profiles.Profile](results["profile"])
	stats, statsErr := resultAs[*homestats.HomeStats](results["stats"])

	home := &Home{
		Hero:  buildHero(profile, profileErr, stats, statsErr),
		About: buildAbout(profile, profileErr),
		Year:  time.Now().Year(),
	}

	projectList, err := resultAs[[]projects.Project](results["projects"])
	home.Projects = buildProjects(projectList, err)

	skillList, err := resultAs[[]skills.Skill](results["skills"])
	home.Skills = buildSkills(skillList, err)

	experienceList, err := resultAs[[]experiences.Experience](results["experience"])
	home.Experience = listSection(experienceList, err)

	educationList, err := resultAs[[]education.Education](results["education"])
	home.Education = listSection(educationList, err)

	l.recordFallbacks(home)
	return home
}

func (l *Loader) recordFallbacks(home *Home) {
	for name, fallback := range map[string]bool{
		"hero":       home.Hero.Fallback,
		"about":      home.About.Fallback,
		"projects":   home.Projects.Fallback,
		"skills":     home.Skills.Fallback,
		"experience": home.Experience.Fallback,
		"education":  home.Education.Fallback,
	} {
		if fallback {
			metrics.SectionFallback(name)
		}
	}
}

func resultAs[T any](result async.Result) (T, error) {
	var zero T
	if result.Err != nil {
		return zero, result.Err
	}
	value, ok := result.Data.(T)
	if !ok {
		return zero, nil
	}
	return value, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func buildHero(profile *profiles.Profile, profileErr error, stats *homestats.HomeStats, statsErr error) Section[Hero] {
	defaults := homestats.Defaults()
	if statsErr != nil || stats == nil {
		stats = &defaults
	}
	if profileErr != nil || profile == nil {
		profile = &profiles.Profile{}
	}

	hero := Hero{
		Name:               firstNonEmpty(profile.Name, FallbackName),
		Title:              firstNonEmpty(profile.Title, stats.HeroTitle, FallbackTitle),
		Bio:                firstNonEmpty(profile.Bio, stats.HeroBio, FallbackHeroBio),
		Avatar:             profile.Avatar,
		Resume:             profile.Resume,
		YearsExperience:    stats.YearsExperience,
		ProjectsDone:       stats.ProjectsDone,
		ClientSatisfaction: stats.ClientSatisfaction,
	}
	return Section[Hero]{Data: hero, Fallback: profileErr != nil || statsErr != nil}
}

func buildAbout(profile *profiles.Profile, err error) Section[About] {
	if err != nil || profile == nil {
		return Section[About]{
			Data:     About{Name: FallbackAboutName, Title: FallbackTitle, Bio: FallbackAboutBio},
			Fallback: err != nil,
			Empty:    err == nil,
		}
	}

	return Section[About]{Data: About{
		Name:      firstNonEmpty(profile.Name, FallbackAboutName),
		Title:     firstNonEmpty(profile.Title, FallbackTitle),
		Bio:       firstNonEmpty(profile.Bio, FallbackAboutBio),
		Email:     profile.Email,
		Phone:     profile.Phone,
		Location:  profile.Location,
		Website:   profile.Website,
		Github:    profile.Github,
		Linkedin:  profile.Linkedin,
		Twitter:   profile.Twitter,
		Instagram: profile.Instagram,
	}}
}

func buildProjects(list []projects.Project, err error) Section[[]ProjectCard] {
	if err != nil {
		return Section[[]ProjectCard]{Data: []ProjectCard{}, Fallback: true}
	}
	cards := make([]ProjectCard, 0, len(list))
	for _, p := range list {
		cards = append(cards, ProjectCard{
			Project:     p,
			ContentHTML: markdown.Render(p.Content),
			Summary:     markdown.Excerpt(p.Description, 180),
		})
	}
	return Section[[]ProjectCard]{Data: cards, Empty: len(cards) == 0}
}

// GroupSkills groups an ordered skill list by category, keeping the order in
// which categories first appear.
func GroupSkills(list []skills.Skill) []SkillGroup {
	caser := cases.Title(language.English)
	groups := []SkillGroup{}
	index := map[string]int{}

	for _, s := range list {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillGroup{Category: s.Category, Heading: caser.String(s.Category)})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}
	return groups
}

func buildSkills(list []skills.Skill, err error) Section[[]SkillGroup] {
	if err != nil {
		return Section[[]SkillGroup]{Data: []SkillGroup{}, Fallback: true}
	}
	groups := GroupSkills(list)
	return Section[[]SkillGroup]{Data: groups, Empty: len(groups) == 0}
}

func listSection[T any](list []T, err error) Section[[]T] {
	if err != nil {
		return Section[[]T]{Data: []T{}, Fallback: true}
	}
	if list == nil {
		list = []T{}
	}
	return Section[[]T]{Data: list, Empty: len(list) == 0}
}
