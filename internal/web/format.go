package web

import (
	"time"

	"github.com/yhteys/backend/internal/model"
)

// DateLayout renders timestamps the way Finnish readers expect them.
const DateLayout = "02.01.2006 klo 15.04"

var categoryLabels = map[string]string{
	model.CategoryGeneral:  "Yleinen kysymys",
	model.CategoryFeedback: "Palaute",
	model.CategoryBug:      "Virheilmoitus",
}

// CategoryLabel returns the Finnish display name of a message type, or the
// type itself when it has none.
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}

// FormatDate renders t in loc, or nothing for a missing timestamp.
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}
