package http

import (
	"github.com/karloscodes/cartridge"

	"portfolio/internal/projects"
)

var projectResource = resource[projects.Project, projects.Input]{
	kind:    "projects",
	subject: "Project",
	list:    projects.List,
	find:    projects.Find,
	create:  projects.Create,
	update:  projects.Update,
	remove:  projects.Delete,
}

// ProjectsIndexAction lists projects in display order.
func ProjectsIndexAction(content *Content) cartridge.HandlerFunc {
	return projectResource.index(content)
}

// ProjectsShowAction returns one project by id.
func ProjectsShowAction(content *Content) cartridge.HandlerFunc {
	return projectResource.show(content)
}

// ProjectsCreateAction creates a project.
func ProjectsCreateAction(content *Content) cartridge.HandlerFunc {
	return projectResource.store(content)
}

// ProjectsUpdateAction replaces a project with the request payload.
func ProjectsUpdateAction(content *Content) cartridge.HandlerFunc {
	return projectResource.replace(content)
}

// ProjectsDeleteAction deletes a project.
func ProjectsDeleteAction(content *Content) cartridge.HandlerFunc {
	return projectResource.destroy(content)
}
