package http

import (
	"github.com/karloscodes/cartridge"

	"portfolio/internal/experiences"
)

var experienceResource = resource[experiences.Experience, experiences.Input]{
	kind:    "experiences",
	subject: "Experience",
	list:    experiences.List,
	find:    experiences.Find,
	create:  experiences.Create,
	update:  experiences.Update,
	remove:  experiences.Delete,
}

// ExperiencesIndexAction lists work experience, current positions first.
func ExperiencesIndexAction(content *Content) cartridge.HandlerFunc {
	return experienceResource.index(content)
}

// ExperiencesShowAction returns one experience entry.
func ExperiencesShowAction(content *Content) cartridge.HandlerFunc {
	return experienceResource.show(content)
}

// ExperiencesCreateAction creates an experience entry.
func ExperiencesCreateAction(content *Content) cartridge.HandlerFunc {
	return experienceResource.store(content)
}

// ExperiencesUpdateAction replaces an experience entry with the request payload.
func ExperiencesUpdateAction(content *Content) cartridge.HandlerFunc {
	return experienceResource.replace(content)
}

// ExperiencesDeleteAction deletes an experience entry.
func ExperiencesDeleteAction(content *Content) cartridge.HandlerFunc {
	return experienceResource.destroy(content)
}
