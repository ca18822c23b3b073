// Package feed paginates ordered post lists for the UI. The index, group,
// profile and following feeds all share this exact contract.
package feed

import (
	"github.com/Luismorlan/postboard/model"
	"github.com/Luismorlan/postboard/utils"
)

// PageSize is the fixed number of posts per page across every feed.
const PageSize = 10

// Page is one window into an ordered post list, plus the totals the UI
// pagination controls need.
type Page struct {
	Posts      []model.Post `json:"posts"`
	Number     int          `json:"number"`
	TotalItems int          `json:"total_items"`
	TotalPages int          `json:"total_pages"`
	HasPrev    bool         `json:"has_prev"`
	HasNext    bool         `json:"has_next"`
}

// Paginate partitions an ordered post list into fixed pages of PageSize and
// returns the requested page (1-based). Out-of-range page numbers clamp to
// the nearest valid page instead of erroring: page <= 0 clamps to the first
// page, page > TotalPages clamps to the last. An empty list yields a single
// empty page.
func Paginate(posts []model.Post, page int) Page {
	totalItems := len(posts)
	totalPages := (totalItems + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := utils.Min((page-1)*PageSize, totalItems)
	end := utils.Min(start+PageSize, totalItems)

	return Page{
		Posts:      posts[start:end],
		Number:     page,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}
