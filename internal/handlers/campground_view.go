package handlers

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"campmate/internal/models"
)

/*
=======================
  LIST VIEW BUILDER
=======================

Filtering and sorting run in-process over the materialized campground list,
matching the small scale this listing serves.
*/

// filterCampgrounds keeps campgrounds whose title or location contains the
// search term, case-insensitively. An empty term keeps everything.
func filterCampgrounds(campgrounds []models.Campground, search string) []models.Campground {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return campgrounds
	}

	filtered := make([]models.Campground, 0, len(campgrounds))
	for _, campground := range campgrounds {
		if strings.Contains(strings.ToLower(campground.Title), term) ||
			strings.Contains(strings.ToLower(campground.Location), term) {
			filtered = append(filtered, campground)
		}
	}
	return filtered
}

// sortCampgrounds orders the list by one of five keys. Unknown or empty keys
// leave the store's natural order untouched.
func sortCampgrounds(campgrounds []models.Campground, key string) {
	switch key {
	case "alphabetic":
		collator := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(campgrounds, func(i, j int) bool {
			return collator.CompareString(campgrounds[i].Title, campgrounds[j].Title) < 0
		})
	case "most-reviews":
		sort.SliceStable(campgrounds, func(i, j int) bool {
			return len(campgrounds[i].Reviews) > len(campgrounds[j].Reviews)
		})
	case "highest-rating":
		sort.SliceStable(campgrounds, func(i, j int) bool {
			return campgrounds[i].AverageRating > campgrounds[j].AverageRating
		})
	case "price-low-to-high":
		sort.SliceStable(campgrounds, func(i, j int) bool {
			return campgrounds[i].Price < campgrounds[j].Price
		})
	case "price-high-to-low":
		sort.SliceStable(campgrounds, func(i, j int) bool {
			return campgrounds[i].Price > campgrounds[j].Price
		})
	}
}
