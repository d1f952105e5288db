package model

import "strings"

// AgentAssignment maps an agent to the templates they may book from,
// stored as a comma-delimited name list.
type AgentAssignment struct {
	ID        int64  `gorm:"primaryKey"`
	AgentID   string `gorm:"uniqueIndex;size:128;not null"`
	Templates string `gorm:"not null"`
}

// TemplateNames splits the delimited assignment into clean names.
func (a *AgentAssignment) TemplateNames() []string {
	var names []string
	for _, n := range strings.Split(a.Templates, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// RebookMark records that the once-per-day within-day clear has already run
// for an agent on a given date, so a later dashboard entry does not wipe a
// rebooked selection.
type RebookMark struct {
	ID      int64  `gorm:"primaryKey"`
	AgentID string `gorm:"uniqueIndex:idx_rebook_agent_date;size:128;not null"`
	Date    string `gorm:"uniqueIndex:idx_rebook_agent_date;size:10;not null"`
}
