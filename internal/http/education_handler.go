package http

import (
	"github.com/karloscodes/cartridge"

	"portfolio/internal/education"
)

var educationResource = resource[education.Education, education.Input]{
	kind:    "education",
	subject: "Education",
	list:    education.List,
	find:    education.Find,
	create:  education.Create,
	update:  education.Update,
	remove:  education.Delete,
}

// EducationIndexAction lists education entries in display order.
func EducationIndexAction(content *Content) cartridge.HandlerFunc {
	return educationResource.index(content)
}

func EducationShowAction(content *Content) cartridge.HandlerFunc {
	return educationResource.show(content)
}

func EducationCreateAction(content *Content) cartridge.HandlerFunc {
	return educationResource.store(content)
}

func EducationUpdateAction(content *Content) cartridge.HandlerFunc {
	return educationResource.replace(content)
}

// EducationDeleteAction deletes an education entry.
func EducationDeleteAction(content *Content) cartridge.HandlerFunc {
	return educationResource.destroy(content)
}
