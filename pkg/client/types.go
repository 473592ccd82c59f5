package client

import "time"

// Base carries the identity and timestamps the API returns on every row.
type Base struct {
	ID        string    `json:"id,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Key returns the row id.
func (b Base) Key() string { return b.ID }

// Entity is a row managed through a collection endpoint.
type Entity interface {
	Key() string
}

// Dates are exchanged as strings. The API accepts "2006-01-02",
// "2006-01-02T15:04" and RFC 3339, and answers with RFC 3339 or null.

type Project struct {
	Base
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Content      string   `json:"content"`
	Image        string   `json:"image"`
	Images       []string `json:"images"`
	Technologies []string `json:"technologies"`
	LiveURL      string   `json:"liveUrl"`
	GithubURL    string   `json:"githubUrl"`
	Featured     bool     `json:"featured"`
	Status       string   `json:"status"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Order        int      `json:"order"`
}

// Clone returns a copy that shares no slices with p. Absent lists become empty.
func (p Project) Clone() Project {
	p.Images = append([]string{}, p.Images...)
	p.Technologies = append([]string{}, p.Technologies...)
	return p
}

type Skill struct {
	Base
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    int    `json:"level"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	Order    int    `json:"order"`
}

type Experience struct {
	Base
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Description  string   `json:"description"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Current      bool     `json:"current"`
	Location     string   `json:"location"`
	Website      string   `json:"website"`
	Technologies []string `json:"technologies"`
	Order        int      `json:"order"`
}

// Clone returns a copy that shares no slices with e.
func (e Experience) Clone() Experience {
	e.Technologies = append([]string{}, e.Technologies...)
	return e
}

type Education struct {
	Base
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	GPA         string `json:"gpa"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Website     string `json:"website"`
	Order       int    `json:"order"`
}

// Message is a contact form submission.
type Message struct {
	Base
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Read    bool   `json:"read"`
	Country string `json:"country,omitempty"`
}

// MessageInput is what the public contact form posts.
type MessageInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type Profile struct {
	Base
	Name      string `json:"name"`
	Title     string `json:"title"`
	Bio       string `json:"bio"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Website   string `json:"website"`
	Avatar    string `json:"avatar"`
	Resume    string `json:"resume"`
	Github    string `json:"github"`
	Linkedin  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
}

type HomeStats struct {
	Base
	YearsExperience    string `json:"yearsExperience"`
	ProjectsDone       string `json:"projectsDone"`
	ClientSatisfaction string `json:"clientSatisfaction"`
	HeroTitle          string `json:"heroTitle"`
	HeroBio            string `json:"heroBio"`
}

// User is an account allowed into the admin area.
type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Token is a bearer credential for non-browser callers.
type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// DashboardStats holds the admin overview counters.
type DashboardStats struct {
	Projects       int64 `json:"projects"`
	Skills         int64 `json:"skills"`
	Experiences    int64 `json:"experiences"`
	Education      int64 `json:"education"`
	Messages       int64 `json:"messages"`
	UnreadMessages int64 `json:"unreadMessages"`
}

type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	DBStatus  string    `json:"db_status"`
}
