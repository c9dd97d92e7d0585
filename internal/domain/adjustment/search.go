package adjustment

import (
	"strconv"
	"strings"
	"time"
)

// OccurredDateLayout is the rendering used when matching a search term against
// the occurred date (DD/MM/YYYY), independent of the user's locale.
const OccurredDateLayout = "02/01/2006"

// fieldComparator reports whether a single field of item matches the
// lower-cased, non-empty term.
type fieldComparator func(item *LineItem, term string) bool

// searchableField binds a field name to its comparison rule.
type searchableField struct {
	name  string
	match fieldComparator
}

// searchableFields is the complete list of fields a keyword is compared against.
var searchableFields = []searchableField{
	{name: "productCode", match: textField(func(li *LineItem) *string { return &li.Orderable.ProductCode })},
	{name: "fullProductName", match: textField(func(li *LineItem) *string { return &li.Orderable.FullProductName })},
	{name: "stockOnHand", match: numericField(func(li *LineItem) *int { return li.StockOnHand })},
	{name: "quantity", match: numericField(func(li *LineItem) *int { return li.Quantity })},
	{name: "reasonName", match: textField(func(li *LineItem) *string { return &li.Reason.Name })},
	{name: "reasonFreeText", match: textField(func(li *LineItem) *string { return li.ReasonFreeText })},
	{name: "occurredDate", match: dateField(func(li *LineItem) time.Time { return li.OccurredDate })},
}

// SearchableFieldNames lists the fields consulted by Matches, in evaluation order.
func SearchableFieldNames() []string {
	names := make([]string, len(searchableFields))
	for i, f := range searchableFields {
		names[i] = f.name
	}
	return names
}

func textField(get func(*LineItem) *string) fieldComparator {
	return func(li *LineItem, term string) bool {
		v := get(li)
		if v == nil || *v == "" {
			return false
		}
		return strings.Contains(strings.ToLower(*v), term)
	}
}

func numericField(get func(*LineItem) *int) fieldComparator {
	return func(li *LineItem, term string) bool {
		v := get(li)
		if v == nil {
			return false
		}
		return strings.Contains(strconv.Itoa(*v), term)
	}
}

func dateField(get func(*LineItem) time.Time) fieldComparator {
	return func(li *LineItem, term string) bool {
		v := get(li)
		if v.IsZero() {
			return false
		}
		return strings.Contains(v.Format(OccurredDateLayout), term)
	}
}

// Matches reports whether any searchable field of item matches term.
// The term is compared case-insensitively; an empty term matches every item.
func Matches(term string, item LineItem) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range searchableFields {
		if f.match(&item, term) {
			return true
		}
	}
	return false
}

// Search returns the items matching term in their original order.
// items is never modified; the result is always a new slice.
func Search(term string, items []LineItem) []LineItem {
	result := make([]LineItem, 0, len(items))
	for _, item := range items {
		if Matches(term, item) {
			result = append(result, item)
		}
	}
	return result
}
