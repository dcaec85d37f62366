package orchestrator

import (
	"math"

	"github.com/fenilsonani/smartcare/internal/ledger"
	"github.com/fenilsonani/smartcare/internal/scan"
	"github.com/fenilsonani/smartcare/internal/sizer"
	"github.com/google/uuid"
)

// ItemBuilder turns raw scan findings into normalized cleanup items:
// paths deduplicated through the shared ledger, size recomputed from
// the accepted paths, and a bounded score impact attached.
type ItemBuilder struct {
	ledger *ledger.Ledger
	sizes  *sizer.Resolver
}

// NewItemBuilder creates an ItemBuilder sharing the run's ledger and
// size resolver
func NewItemBuilder(l *ledger.Ledger, sizes *sizer.Resolver) *ItemBuilder {
	return &ItemBuilder{ledger: l, sizes: sizes}
}

// Build creates a CleanupItem from one job result. Every accepted path
// is permanently claimed in the ledger for the remainder of the run,
// and the size is recomputed from accepted paths only: filtering
// changes the true total, so the scanner-reported size is never
// trusted after the claim.
func (b *ItemBuilder) Build(domain scan.Domain, groupID, title, subtitle string, action scan.ItemAction, result scan.CategoryJobResult) scan.CleanupItem {
	accepted := b.ledger.Claim(result.Paths)
	size := b.sizes.SizeAll(accepted)

	count := len(accepted)
	if len(result.Paths) == 0 && result.ItemCount > count {
		// Aggregate scans may report logical items without paths
		count = result.ItemCount
	}

	return b.assemble(domain, groupID, title, subtitle, action, size, count, accepted, result.SafeToDelete)
}

// BuildAggregate creates an item from pre-aggregated findings that are
// not reconciled against the ledger (application-level findings do not
// overlap filesystem cache paths).
func (b *ItemBuilder) BuildAggregate(domain scan.Domain, groupID, title, subtitle string, action scan.ItemAction, size int64, count int, paths []string, safe bool) scan.CleanupItem {
	return b.assemble(domain, groupID, title, subtitle, action, size, count, paths, safe)
}

func (b *ItemBuilder) assemble(domain scan.Domain, groupID, title, subtitle string, action scan.ItemAction, size int64, count int, paths []string, safe bool) scan.CleanupItem {
	return scan.CleanupItem{
		ID:            uuid.NewString(),
		Domain:        domain,
		GroupID:       groupID,
		Title:         title,
		Subtitle:      subtitle,
		Size:          size,
		Count:         count,
		SafeToRun:     safe,
		IsRecommended: safe && size > 0,
		Action:        action,
		Paths:         paths,
		ScoreImpact:   scoreImpact(size, safe),
	}
}

// scoreImpact converts a byte size into a bounded cleanup-value score:
// roughly 4 points per GB, at least 1 and at most 12 for any safe
// nonzero item, and 0 when the item is unsafe or empty. The cap keeps a
// single huge folder from dominating a health score.
func scoreImpact(size int64, safe bool) int {
	if !safe || size <= 0 {
		return 0
	}
	gb := float64(size) / float64(1<<30)
	impact := int(math.Round(gb * 4))
	if impact < 1 {
		impact = 1
	}
	if impact > 12 {
		impact = 12
	}
	return impact
}
