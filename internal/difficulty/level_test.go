package difficulty

import (
	"testing"
	"time"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{-3, 0},
		{0, 0},
		{4, 0},
		{5, 1},
		{9, 1},
		{10, 2},
		{19, 2},
		{20, 3},
		{29, 3},
		{30, 4},
		{5000, 4},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.score); got != tt.want {
			t.Errorf("LevelFor(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestLevelFor_Monotonic(t *testing.T) {
	prev := LevelFor(0)
	for s := 1; s <= 100; s++ {
		cur := LevelFor(s)
		if cur < prev {
			t.Fatalf("LevelFor(%d) = %d dropped below %d", s, cur, prev)
		}
		prev = cur
	}
}

func TestLevels_TableIsValid(t *testing.T) {
	if err := Validate(Levels()); err != nil {
		t.Fatalf("built-in table invalid: %v", err)
	}
	if Count() != 5 {
		t.Errorf("Count() = %d, want 5", Count())
	}
	if At(0).TimeBudget != 10*time.Second || At(4).TimeBudget != 22*time.Second {
		t.Error("unexpected time budgets")
	}
	if !At(4).Terminal() || At(3).Terminal() {
		t.Error("only the last level should be terminal")
	}
}

func TestLevels_ReturnsCopy(t *testing.T) {
	ls := Levels()
	ls[0].OperandMax = 999
	if At(0).OperandMax != 10 {
		t.Error("mutating Levels() result changed the table")
	}
}

func TestAt_Clamps(t *testing.T) {
	if At(-1).Index != 0 {
		t.Error("At(-1) should clamp to 0")
	}
	if At(99).Index != 4 {
		t.Error("At(99) should clamp to last")
	}
	if At(2).Number() != 3 {
		t.Errorf("Number() = %d, want 3", At(2).Number())
	}
}

func TestValidate_Degenerate(t *testing.T) {
	bad := Levels()
	bad[1].OperandMax = 5
	if err := Validate(bad); err == nil {
		t.Error("expected error for max < min")
	}

	bad = Levels()
	bad[2].ScoreThreshold = 9
	if err := Validate(bad); err == nil {
		t.Error("expected error for non-increasing threshold")
	}

	if err := Validate(nil); err == nil {
		t.Error("expected error for empty table")
	}
}
