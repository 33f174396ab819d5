package gamify

import "testing"

func TestLevelForPointsBoundaries(t *testing.T) {
	cases := []struct {
		points int64
		want   int
	}{
		{0, 1},
		{1, 1},
		{99, 1},
		{100, 2},
		{999, 2},
		{1000, 3},
		{4999, 3},
		{5000, 4},
		{9999, 4},
		{10000, 5},
		{1000000, 5},
	}
	for _, c := range cases {
		if got := LevelForPoints(c.points); got != c.want {
			t.Errorf("LevelForPoints(%d) = %d, want %d", c.points, got, c.want)
		}
	}
}

func TestLevelForPointsMonotone(t *testing.T) {
	prev := LevelForPoints(0)
	for p := int64(1); p <= 12000; p++ {
		cur := LevelForPoints(p)
		if cur < prev {
			t.Fatalf("level decreased from %d to %d at %d points", prev, cur, p)
		}
		if cur < MinLevel || cur > MaxLevel {
			t.Fatalf("level %d out of range at %d points", cur, p)
		}
		prev = cur
	}
}

func TestInfoForLevelClampsInvalidInput(t *testing.T) {
	fallback := InfoForLevel(1)
	for _, level := range []int{-3, 0, 6, 99} {
		got := InfoForLevel(level)
		if got != fallback {
			t.Errorf("InfoForLevel(%d) = %+v, want level-1 info", level, got)
		}
	}
}

func TestInfoForLevelIsPure(t *testing.T) {
	for level := MinLevel; level <= MaxLevel; level++ {
		a, b := InfoForLevel(level), InfoForLevel(level)
		if a != b {
			t.Errorf("InfoForLevel(%d) not stable: %+v vs %+v", level, a, b)
		}
		if a.Level != level || a.Name == "" {
			t.Errorf("InfoForLevel(%d) returned %+v", level, a)
		}
	}
}
