package adjustment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockadmin/internal/core/id"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return v
}

func fixtureLineItems(t *testing.T) []LineItem {
	t.Helper()
	clinicReturn := Reason{ID: id.MustParse("0b5c1ae0-6e2b-4a5e-8b51-3b1a8f5d9a01"), Name: "clinic return"}
	damage := Reason{ID: id.MustParse("0b5c1ae0-6e2b-4a5e-8b51-3b1a8f5d9a02"), Name: "damage"}

	return []LineItem{
		{
			ID: id.New(),
			Orderable: Orderable{
				ID:              id.MustParse("c9e65f02-f84f-4ba2-85f7-e2cb6f0989af"),
				ProductCode:     "C1",
				FullProductName: "Streptococcus Pneumoniae Vaccine II",
			},
			StockOnHand:    intPtr(100),
			Quantity:       intPtr(233),
			Reason:         clinicReturn,
			ReasonFreeText: strPtr("free"),
			OccurredDate:   mustTime(t, "2016-04-01T03:23:34Z"),
		},
		{
			ID: id.New(),
			Orderable: Orderable{
				ID:              id.MustParse("2400e410-b8dd-4954-b1c0-80d8a8e785fc"),
				ProductCode:     "C2",
				FullProductName: "Acetylsalicylic Acid",
			},
			StockOnHand:    nil,
			Quantity:       intPtr(4),
			Reason:         clinicReturn,
			ReasonFreeText: strPtr("donate"),
			OccurredDate:   mustTime(t, "2017-04-01T04:23:34Z"),
		},
		{
			ID: id.New(),
			Orderable: Orderable{
				ID:              id.MustParse("2400e410-b8dd-4954-b1c0-80d8a8e785fc"),
				ProductCode:     "C2",
				FullProductName: "Acetylsalicylic Acid",
			},
			StockOnHand:  intPtr(1000),
			Quantity:     nil,
			Reason:       damage,
			OccurredDate: mustTime(t, "2017-04-01T05:23:34Z"),
		},
	}
}

func TestSearch_ByField(t *testing.T) {
	items := fixtureLineItems(t)

	tests := []struct {
		name    string
		keyword string
		want    []int
	}{
		{name: "product code", keyword: "c2", want: []int{1, 2}},
		{name: "full product name", keyword: "Vaccine", want: []int{0}},
		{name: "stock on hand substring", keyword: "10", want: []int{0, 2}},
		{name: "reason name", keyword: "damage", want: []int{2}},
		{name: "reason free text", keyword: "donate", want: []int{1}},
		{name: "quantity", keyword: "233", want: []int{0}},
		{name: "occurred date", keyword: "01/04/2017", want: []int{1, 2}},
		{name: "occurred date year", keyword: "2016", want: []int{0}},
		{name: "no match", keyword: "insulin", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := make([]LineItem, 0, len(tt.want))
			for _, i := range tt.want {
				want = append(want, items[i])
			}
			assert.Equal(t, want, Search(tt.keyword, items))
		})
	}
}

func TestSearch_EmptyKeywordReturnsAllInOrder(t *testing.T) {
	items := fixtureLineItems(t)

	got := Search("", items)

	assert.Equal(t, items, got)
	require.Len(t, got, len(items))
	got[0].Orderable.ProductCode = "changed"
	assert.Equal(t, "C1", items[0].Orderable.ProductCode, "result must not alias the input")
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	items := fixtureLineItems(t)
	before := fixtureLineItems(t)
	for i := range before {
		before[i].ID = items[i].ID
	}

	_ = Search("C2", items)

	assert.Equal(t, before, items)
}

func TestMatches_AbsentFieldsNeverMatch(t *testing.T) {
	item := LineItem{
		Orderable:    Orderable{ID: id.New(), ProductCode: "X9"},
		OccurredDate: mustTime(t, "2020-12-31T10:00:00Z"),
	}

	assert.False(t, Matches("0", LineItem{Orderable: Orderable{ProductCode: "X9"}}), "zero date must not render")
	assert.True(t, Matches("x9", item))
	assert.True(t, Matches("31/12", item))
	assert.False(t, Matches("free", item))
}

func TestMatches_NumericSubstring(t *testing.T) {
	for _, n := range []int{10, 100, 1000, 2010} {
		item := LineItem{Quantity: intPtr(n)}
		assert.True(t, Matches("10", item), "quantity %d", n)
	}
	assert.False(t, Matches("10", LineItem{Quantity: intPtr(1)}))
}

func TestSearchableFieldNames(t *testing.T) {
	assert.Equal(t, []string{
		"productCode", "fullProductName", "stockOnHand", "quantity",
		"reasonName", "reasonFreeText", "occurredDate",
	}, SearchableFieldNames())
}
