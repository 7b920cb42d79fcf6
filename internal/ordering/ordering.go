// Package ordering maintains the dense 1..N order ranks of videos within a
// course. The rank field drifts under manual edits and partial failures, so
// nothing here assumes it is dense: reads detect violations and callers
// repair lazily.
package ordering

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"madrasa/course-admin/internal/domain"
)

// OrderUpdate is one order rewrite produced by ReindexPlan.
type OrderUpdate struct {
	ID    primitive.ObjectID
	Order int
}

// HasGap reports whether the videos' order values deviate from the dense
// sequence 1..N. An empty list has no gap.
func HasGap(videos []domain.Video) bool {
	sorted := sortedByOrder(videos)
	for i, v := range sorted {
		if v.Order != i+1 {
			return true
		}
	}
	return false
}

// ReindexPlan computes the order rewrites that make the sequence dense:
// videos sorted by order ascending, ids ascending as the tie-break for
// duplicate orders, then assigned their 1-based position. Applying the plan
// to an already-dense sequence yields the same values back.
func ReindexPlan(videos []domain.Video) []OrderUpdate {
	sorted := append([]domain.Video(nil), videos...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].ID.Hex() < sorted[j].ID.Hex()
	})
	plan := make([]OrderUpdate, len(sorted))
	for i, v := range sorted {
		plan[i] = OrderUpdate{ID: v.ID, Order: i + 1}
	}
	return plan
}

// NextOrder returns the order for a video appended to the end of the
// course: max existing order plus one, missing orders counting as zero. An
// empty course starts at 1.
func NextOrder(videos []domain.Video) int {
	max := 0
	for _, v := range videos {
		if v.Order > max {
			max = v.Order
		}
	}
	return max + 1
}

// Renumber returns a copy of the videos sorted by order with ranks rewritten
// to 1..N. It is the display fallback when a detected gap could not be
// repaired in the store yet.
func Renumber(videos []domain.Video) []domain.Video {
	renumbered := sortedByOrder(videos)
	for i := range renumbered {
		renumbered[i].Order = i + 1
	}
	return renumbered
}

func sortedByOrder(videos []domain.Video) []domain.Video {
	sorted := append([]domain.Video(nil), videos...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}
