package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext("Dashboard", "dashboard", "overview")

	assert.Equal(t, "Dashboard", ctx.PageTitle)
	assert.Equal(t, "dashboard", ctx.ActiveSection)
	assert.Equal(t, "overview", ctx.ActivePage)
	assert.NotNil(t, ctx.Breadcrumbs)
	assert.Empty(t, ctx.Breadcrumbs)
	assert.Empty(t, ctx.Menu)
}

func TestContext_AddBreadcrumb_Chaining(t *testing.T) {
	ctx := NewContext("Dashboard", "dashboard", "overview").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Profile", "/dashboard/profile", true)

	assert.Equal(t, []Link{
		{Title: "Home", URL: "/dashboard"},
		{Title: "Profile", URL: "/dashboard/profile", Active: true},
	}, ctx.Breadcrumbs)
}

func TestContext_AddMenu(t *testing.T) {
	ctx := NewContext("Dashboard", "dashboard", "overview").
		AddMenu("Dashboard", "/dashboard", "dashboard").
		AddMenu("Logout", "/logout", "logout")

	assert.Len(t, ctx.Menu, 2)
	assert.True(t, ctx.Menu[0].Active)
	assert.False(t, ctx.Menu[1].Active)
}

func TestContext_IsActive(t *testing.T) {
	ctx := NewContext("Dashboard", "dashboard", "overview")

	assert.True(t, ctx.IsActive("dashboard", "overview"))
	assert.False(t, ctx.IsActive("auth", "overview"))
	assert.False(t, ctx.IsActive("dashboard", "profile"))
	assert.True(t, ctx.IsSectionActive("dashboard"))
	assert.False(t, ctx.IsSectionActive("auth"))
}
