package store

import "github.com/lseungyeop/portfolio-admin/models"

// HydrateSkillIDs translates the server's skill-name list into skill
// identifiers by lookup in a registry snapshot. The server returns skills
// by name on the read side, but the write side wants identifiers, so edit
// mode has to reconcile the two. Names with no match in the snapshot are
// dropped: without an identifier they cannot appear in a draft. Order and
// duplicates of the input are preserved.
func HydrateSkillIDs(names []string, skills []models.Skill) []int64 {
	byName := make(map[string]int64, len(skills))
	for _, s := range skills {
		byName[s.Name] = s.ID
	}

	ids := make([]int64, 0, len(names))
	for _, name := range names {
		if id, ok := byName[name]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
