package listing_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/amirasaad/shoplist/pkg/listing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item listing.Entry

func (i item) Entry() listing.Entry { return listing.Entry(i) }

func uids(items []item) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.UID)
	}
	return out
}

func TestSort_StableOnEqualKeys(t *testing.T) {
	items := []item{
		{UID: "b", Position: 1, Name: "b"},
		{UID: "a", Position: 1, Name: "a"},
	}

	asc := listing.SortItems(items, listing.Sort{By: listing.SortByPosition, Ascending: true})
	assert.Equal(t, []string{"b", "a"}, uids(asc))

	desc := listing.SortItems(items, listing.Sort{By: listing.SortByPosition, Ascending: false})
	assert.Equal(t, []string{"b", "a"}, uids(desc))

	assert.Equal(t, []string{"b", "a"}, uids(items), "input must not be reordered")
}

func TestSort_Keys(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []item{
		{UID: "1", Position: 2, Name: "banana", Created: t0.Add(2 * time.Hour), LastModified: t0, Total: decimal.NewFromInt(5)},
		{UID: "2", Position: 0, Name: "Apple", Created: t0, LastModified: t0.Add(time.Hour), Total: decimal.RequireFromString("12.5")},
		{UID: "3", Position: 1, Name: "cherry", Created: t0.Add(time.Hour), LastModified: t0.Add(2 * time.Hour), Total: decimal.NewFromInt(1)},
	}

	tests := []struct {
		sort     listing.Sort
		expected []string
	}{
		{listing.Sort{By: listing.SortByPosition, Ascending: true}, []string{"2", "3", "1"}},
		{listing.Sort{By: listing.SortByCreated, Ascending: true}, []string{"2", "3", "1"}},
		{listing.Sort{By: listing.SortByLastModified, Ascending: false}, []string{"3", "2", "1"}},
		{listing.Sort{By: listing.SortByName, Ascending: true}, []string{"2", "1", "3"}},
		{listing.Sort{By: listing.SortByTotal, Ascending: false}, []string{"2", "1", "3"}},
		{listing.Sort{By: listing.SortByTotal, Ascending: true}, []string{"3", "1", "2"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s asc=%v", tt.sort.By, tt.sort.Ascending), func(t *testing.T) {
			assert.Equal(t, tt.expected, uids(listing.SortItems(items, tt.sort)))
		})
	}
}

func TestSort_Empty(t *testing.T) {
	assert.Empty(t, listing.SortItems([]item{}, listing.DefaultSort))
	assert.Empty(t, listing.SortItems[item](nil, listing.DefaultSort))
}

func TestPartitionPinned(t *testing.T) {
	items := []item{
		{UID: "pinned-active", Pinned: true},
		{UID: "pinned-completed", Pinned: true, Completed: true},
		{UID: "plain"},
	}

	pinned, other := listing.PartitionPinned(items, listing.DisplayCompletedLast)
	assert.Equal(t, []string{"pinned-active"}, uids(pinned))
	assert.Equal(t, []string{"pinned-completed", "plain"}, uids(other))

	pinned, other = listing.PartitionPinned(items, listing.DisplayCompletedNoSplit)
	assert.Equal(t, []string{"pinned-active", "pinned-completed"}, uids(pinned))
	assert.Equal(t, []string{"plain"}, uids(other))
}

func TestSplitByCompletion(t *testing.T) {
	items := []item{
		{UID: "a"},
		{UID: "b", Completed: true},
		{UID: "c"},
		{UID: "d", Completed: true},
	}

	tests := []struct {
		mode     listing.DisplayCompleted
		expected []string
	}{
		{listing.DisplayCompletedFirst, []string{"b", "d", "a", "c"}},
		{listing.DisplayCompletedLast, []string{"a", "c", "b", "d"}},
		{listing.DisplayCompletedHide, []string{"a", "c"}},
		{listing.DisplayCompletedNoSplit, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, uids(listing.SplitByCompletion(items, tt.mode)))
		})
	}
}

func TestArrange(t *testing.T) {
	items := []item{
		{UID: "z", Name: "z", Pinned: true},
		{UID: "done", Name: "a", Completed: true},
		{UID: "m", Name: "m"},
		{UID: "b", Name: "b", Pinned: true},
		{UID: "c", Name: "c"},
	}

	arranged := listing.Arrange(items, listing.Sort{By: listing.SortByName, Ascending: true}, listing.DisplayCompletedLast)
	assert.Equal(t, []string{"b", "z"}, uids(arranged.Pinned))
	assert.Equal(t, []string{"c", "m", "done"}, uids(arranged.Other))
	assert.Equal(t, []string{"b", "z", "c", "m", "done"}, uids(arranged.All()))
}

func TestArrange_PartitionCompleteness(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	modes := []listing.DisplayCompleted{
		listing.DisplayCompletedFirst,
		listing.DisplayCompletedLast,
		listing.DisplayCompletedNoSplit,
	}
	for round := 0; round < 50; round++ {
		items := make([]item, rng.Intn(40))
		for i := range items {
			items[i] = item{
				UID:       fmt.Sprintf("%d-%d", round, i),
				Position:  rng.Intn(5),
				Pinned:    rng.Intn(3) == 0,
				Completed: rng.Intn(2) == 0,
			}
		}
		for _, mode := range modes {
			arranged := listing.Arrange(items, listing.DefaultSort, mode)
			assert.ElementsMatch(t, uids(items), uids(arranged.All()))
		}
	}
}

func TestMove(t *testing.T) {
	items := []item{{UID: "a"}, {UID: "b"}, {UID: "c"}}

	up, err := listing.MoveUp(items, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, uids(up))

	down, err := listing.MoveDown(items, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, uids(down))

	first, err := listing.MoveUp(items, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, uids(first))

	_, err = listing.MoveDown(items, "missing")
	assert.ErrorIs(t, err, listing.ErrItemNotFound)

	_, err = listing.MoveUp(items[:1], "a")
	assert.ErrorIs(t, err, listing.ErrUnsupportedOperation)

	_, err = listing.MoveDown([]item{}, "a")
	assert.ErrorIs(t, err, listing.ErrUnsupportedOperation)
}

func TestRenumber(t *testing.T) {
	positions := listing.Renumber([]item{{UID: "x", Position: 7}, {UID: "y", Position: 3}})
	assert.Equal(t, map[string]int{"x": 0, "y": 1}, positions)
}
