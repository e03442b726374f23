package jira

import (
	"github.com/rs/zerolog/log"
)

// MapIssue transforms a Jira DTO into a domain Issue. Field presence is
// resolved here once; downstream code never re-checks the raw payload.
func MapIssue(item IssueDTO) Issue {
	issue := Issue{
		Key:      item.Key,
		Summary:  item.Fields.Summary,
		Status:   item.Fields.Status.Name,
		Category: categoryLabel(item.Fields.Category),
	}

	if item.Fields.Assignee != nil {
		issue.Assignee = item.Fields.Assignee.DisplayName
	}

	if t, err := ParseTime(item.Fields.Created); err == nil {
		issue.Created = t
	} else {
		log.Warn().Str("key", item.Key).Str("created", item.Fields.Created).Msg("Unparsable created timestamp")
	}

	if item.Fields.ResolutionDate != "" {
		if t, err := ParseTime(item.Fields.ResolutionDate); err == nil {
			issue.Resolved = &t
		}
	}

	if item.Changelog != nil {
		issue.Transitions = MapChangelog(item.Key, item.Changelog)
	}

	return issue
}

// MapChangelog extracts status transitions from a changelog. Histories whose
// timestamp cannot be parsed are skipped so one bad entry never drops the
// issue; non-status items are ignored. Transitions are returned in changelog
// order, not sorted.
func MapChangelog(key string, changelog *ChangelogDTO) []StatusTransition {
	var transitions []StatusTransition
	skipped := 0

	for _, h := range changelog.Histories {
		hDate, err := ParseTime(h.Created)
		if err != nil {
			skipped++
			continue
		}
		for _, itm := range h.Items {
			if itm.Field != "status" {
				continue
			}
			transitions = append(transitions, StatusTransition{
				FromStatus: itm.FromString,
				ToStatus:   itm.ToString,
				Date:       hDate,
			})
		}
	}

	if skipped > 0 {
		log.Warn().Str("key", key).Int("skipped", skipped).Msg("Skipped changelog entries with unparsable timestamps")
	}

	return transitions
}

// categoryLabel normalizes the category custom field, which Jira returns as
// null, a plain string, or a select-option object with a "value" key.
func categoryLabel(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case map[string]any:
		if val, ok := v["value"].(string); ok {
			return val
		}
	}
	return ""
}
