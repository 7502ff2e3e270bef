package catalog

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// maxListedIDs is the longest selection labelled by listing every id.
const maxListedIDs = 6

// Label describes a selection for the recent history list.
//
//	[3 1 2]      -> "Shlok 1, 2, 3"
//	[1 2 ... 50] -> "Shlok 1–50 (50 total)"
func Label(ids []int) string {
	if len(ids) == 0 {
		return "Empty selection"
	}
	sorted := slices.Clone(ids)
	slices.Sort(sorted)

	if len(sorted) <= maxListedIDs {
		parts := make([]string, len(sorted))
		for i, id := range sorted {
			parts[i] = strconv.Itoa(id)
		}
		return "Shlok " + strings.Join(parts, ", ")
	}
	return fmt.Sprintf("Shlok %d–%d (%d total)", sorted[0], sorted[len(sorted)-1], len(sorted))
}
