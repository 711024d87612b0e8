package todo

import (
	"slices"
)

// CompareUpdatedAtDesc orders the most recently updated item first.
func CompareUpdatedAtDesc(a, b Item) int {
	return b.UpdatedAt.Compare(a.UpdatedAt)
}

// SortByUpdatedAtDesc sorts items in place, most recently updated first.
// Items with the same UpdatedAt keep their relative order.
func SortByUpdatedAtDesc(items []Item) {
	slices.SortStableFunc(items, CompareUpdatedAtDesc)
}
