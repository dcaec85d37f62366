package orchestrator

import "github.com/fenilsonani/smartcare/internal/scan"

// Group identifiers. Groups are composed in the fixed order listed
// here; a domain with no qualifying items yields an empty group list.
const (
	GroupSystemJunk = "system_junk"
	GroupLogs       = "logs"
	GroupDownloads  = "downloads"
	GroupTrash      = "trash"
	GroupDevJunk    = "developer_junk"
	GroupHidden     = "hidden_space"

	GroupMaintenance = "maintenance"
	GroupLoginItems  = "login_items"

	GroupApplications = "applications"
)

// groupMeta holds the presentation metadata for one group
type groupMeta struct {
	id          string
	domain      scan.Domain
	title       string
	description string
}

var cleanupGroupOrder = []groupMeta{
	{GroupSystemJunk, scan.DomainCleanup, "System Junk", "Caches, temporary files and leftover junk"},
	{GroupLogs, scan.DomainCleanup, "Logs", "Application and system log files"},
	{GroupDownloads, scan.DomainCleanup, "Downloads", "Downloads split by age for review"},
	{GroupTrash, scan.DomainCleanup, "Trash", "Files already in the trash"},
	{GroupDevJunk, scan.DomainCleanup, "Developer Junk", "Build artifacts and developer tool caches"},
	{GroupHidden, scan.DomainCleanup, "Hidden Space", "Space consumed by hidden directories"},
}

var performanceGroupOrder = []groupMeta{
	{GroupMaintenance, scan.DomainPerformance, "Maintenance", "One-click system maintenance tasks"},
	{GroupLoginItems, scan.DomainPerformance, "Login Items", "Agents and daemons started at login"},
}

var applicationsGroupOrder = []groupMeta{
	{GroupApplications, scan.DomainApplications, "Applications", "Unused, duplicate and oversized applications"},
}

// maintenanceActions is the fixed list of no-path optimization items
// offered in the performance domain
var maintenanceActions = []scan.MaintenanceAction{
	{ID: "dns_flush", Title: "Flush DNS cache", Description: "Clear stale DNS resolver entries"},
	{ID: "purgeable_space", Title: "Free purgeable space", Description: "Ask the system to release purgeable storage"},
	{ID: "spotlight_reindex", Title: "Reindex Spotlight", Description: "Rebuild the search index"},
	{ID: "launch_services_rebuild", Title: "Rebuild launch services", Description: "Repair app-to-file-type associations"},
}

// composeGroups distributes items into groups following the fixed
// order, dropping groups that end up with no items
func composeGroups(order []groupMeta, items []scan.CleanupItem) []scan.CleanupGroup {
	groups := make([]scan.CleanupGroup, 0, len(order))
	for _, meta := range order {
		group := scan.CleanupGroup{
			ID:          meta.id,
			Domain:      meta.domain,
			Title:       meta.title,
			Description: meta.description,
		}
		for _, item := range items {
			if item.GroupID == meta.id {
				group.Items = append(group.Items, item)
			}
		}
		if len(group.Items) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}
