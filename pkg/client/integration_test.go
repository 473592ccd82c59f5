package client_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/testsupport"
	"portfolio/internal/users"
	"portfolio/pkg/client"
)

// startServer serves the full application on a loopback port.
func startServer(t *testing.T) string {
	t.Helper()

	db := testsupport.SetupTestDB(t)
	testsupport.CreateTestUser(db, "admin@example.com", "admin-password", users.RoleAdmin)
	testsupport.CreateTestUser(db, "editor@example.com", "editor-password", users.RoleEditor)
	app := testsupport.NewTestApp(t, db)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String()
}

func TestClientAgainstServer(t *testing.T) {
	baseURL := startServer(t)
	ctx := context.Background()

	public, err := client.New(baseURL)
	require.NoError(t, err)

	health, err := public.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)

	_, err = public.Projects().Create(ctx, client.Project{Title: "T", Description: "D"})
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	admin, err := client.New(baseURL)
	require.NoError(t, err)
	user, err := admin.Login(ctx, "admin@example.com", "admin-password")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)

	_, err = admin.Projects().Create(ctx, client.Project{Title: "No description"})
	var validation *client.ValidationError
	assert.ErrorAs(t, err, &validation)

	created, err := admin.Projects().Create(ctx, client.Project{
		Title:        "Site",
		Description:  "A site",
		Technologies: []string{"Go", "SQLite"},
		StartDate:    "2024-01-01",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := public.Projects().Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQLite"}, got.Technologies)

	_, err = public.Projects().Get(ctx, "missing")
	assert.ErrorIs(t, err, client.ErrNotFound)

	profile, err := public.Profile(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)

	saved, err := admin.SaveProfile(ctx, client.Profile{Name: "Jane Doe"})
	require.NoError(t, err)
	again, err := admin.SaveProfile(ctx, client.Profile{Name: "Jane D."})
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)

	id, err := public.SendMessage(ctx, client.MessageInput{Name: "Sam", Email: "sam@example.com", Message: "Hello"})
	require.NoError(t, err)

	_, err = public.Messages(ctx)
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	msg, err := admin.MarkRead(ctx, id, true)
	require.NoError(t, err)
	assert.True(t, msg.Read)

	stats, err := admin.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Projects)
	assert.Equal(t, int64(1), stats.Messages)
	assert.Zero(t, stats.UnreadMessages)

	require.NoError(t, admin.Logout(ctx))
	_, err = admin.Session(ctx)
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestClientBearerTokenAndRoles(t *testing.T) {
	baseURL := startServer(t)
	ctx := context.Background()

	c, err := client.New(baseURL)
	require.NoError(t, err)

	token, err := c.IssueToken(ctx, "editor@example.com", "editor-password")
	require.NoError(t, err)
	assert.Equal(t, "editor", token.User.Role)

	c.SetToken(token.Token)
	me, err := c.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, "editor@example.com", me.Email)

	_, err = c.Skills().Create(ctx, client.Skill{Name: "Go", Category: "backend"})
	assert.ErrorIs(t, err, client.ErrForbidden)

	_, err = c.Messages(ctx)
	assert.NoError(t, err, "editors may read messages")

	_, err = c.IssueToken(ctx, "editor@example.com", "wrong")
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestScreenAgainstServer(t *testing.T) {
	baseURL := startServer(t)
	ctx := context.Background()

	admin, err := client.New(baseURL)
	require.NoError(t, err)
	_, err = admin.Login(ctx, "admin@example.com", "admin-password")
	require.NoError(t, err)

	screen := client.NewScreen[client.Skill](admin.Skills())
	require.NoError(t, screen.Load(ctx))
	assert.Empty(t, screen.Rows())

	require.NoError(t, screen.OpenCreate())
	require.NoError(t, screen.SetDraft(client.Skill{Name: "Go", Category: "backend", Level: 5}))
	require.NoError(t, screen.Submit(ctx))
	require.Len(t, screen.Rows(), 1)

	id := screen.Rows()[0].ID
	require.NoError(t, screen.OpenEdit(id))
	draft := screen.Draft()
	draft.Level = 9
	require.NoError(t, screen.SetDraft(draft))

	err = screen.Submit(ctx)
	var validation *client.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, client.Editing, screen.State())

	draft.Level = 4
	require.NoError(t, screen.SetDraft(draft))
	require.NoError(t, screen.Submit(ctx))
	assert.Equal(t, 4, screen.Rows()[0].Level)

	require.NoError(t, screen.Delete(ctx, id, func(client.Skill) bool { return true }))
	assert.Empty(t, screen.Rows())
	assert.Equal(t, client.Listing, screen.State())
}
