package leaderboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestMerge_BestPerName(t *testing.T) {
	board := []Entry{{Name: "ANN", Score: 10, Level: 3, Date: t0}}

	board, changed := Merge(board, Entry{Name: "ANN", Score: 7, Level: 2, Date: t0.Add(time.Minute)}, MaxEntries)
	assert.False(t, changed)
	require.Len(t, board, 1)
	assert.Equal(t, 10, board[0].Score)

	board, changed = Merge(board, Entry{Name: "ANN", Score: 10, Level: 3, Date: t0.Add(2 * time.Minute)}, MaxEntries)
	assert.False(t, changed, "equal score must not replace")
	assert.Equal(t, t0, board[0].Date)

	board, changed = Merge(board, Entry{Name: "ANN", Score: 12, Level: 3, Date: t0.Add(3 * time.Minute)}, MaxEntries)
	assert.True(t, changed)
	require.Len(t, board, 1)
	assert.Equal(t, 12, board[0].Score)
}

func TestMerge_RanksAndTrims(t *testing.T) {
	var board []Entry
	for i := 0; i < 15; i++ {
		board, _ = Merge(board, Entry{Name: fmt.Sprintf("P%02d", i), Score: i, Date: t0}, MaxEntries)
	}
	require.Len(t, board, MaxEntries)
	assert.Equal(t, 14, board[0].Score)
	assert.Equal(t, 5, board[len(board)-1].Score)

	board, changed := Merge(board, Entry{Name: "LOW", Score: 1, Date: t0}, MaxEntries)
	assert.False(t, changed, "entry that falls off the board is not a change")
	assert.Len(t, board, MaxEntries)
}

func TestRank_TieBreakByDate(t *testing.T) {
	entries := []Entry{
		{Name: "B", Score: 5, Date: t0.Add(time.Hour)},
		{Name: "A", Score: 5, Date: t0},
		{Name: "C", Score: 9, Date: t0.Add(2 * time.Hour)},
	}
	Rank(entries)
	assert.Equal(t, []string{"C", "A", "B"}, []string{entries[0].Name, entries[1].Name, entries[2].Name})
}
