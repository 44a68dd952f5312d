// Package navigation holds the page title, breadcrumbs and menu of a rendered page.
package navigation

// Link is a single breadcrumb or menu link.
type Link struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	PageTitle     string
	Breadcrumbs   []Link
	Menu          []Link
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]Link, 0),
		Menu:          make([]Link, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, Link{Title: title, URL: url, Active: active})

	return c
}

// AddMenu adds a menu entry. It is active if section is the active section.
func (c *Context) AddMenu(title, url, section string) *Context {
	c.Menu = append(c.Menu, Link{Title: title, URL: url, Active: c.IsSectionActive(section)})

	return c
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
