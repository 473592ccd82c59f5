package http

import (
	"github.com/karloscodes/cartridge"

	"portfolio/internal/skills"
)

var skillResource = resource[skills.Skill, skills.Input]{
	kind:    "skills",
	subject: "Skill",
	list:    skills.List,
	find:    skills.Find,
	create:  skills.Create,
	update:  skills.Update,
	remove:  skills.Delete,
}

// SkillsIndexAction lists skills in display order.
func SkillsIndexAction(content *Content) cartridge.HandlerFunc {
	return skillResource.index(content)
}

func SkillsShowAction(content *Content) cartridge.HandlerFunc {
	return skillResource.show(content)
}

// SkillsCreateAction creates a skill.
func SkillsCreateAction(content *Content) cartridge.HandlerFunc {
	return skillResource.store(content)
}

func SkillsUpdateAction(content *Content) cartridge.HandlerFunc {
	return skillResource.replace(content)
}

func SkillsDeleteAction(content *Content) cartridge.HandlerFunc {
	return skillResource.destroy(content)
}
