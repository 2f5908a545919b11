package components

import (
	"strings"
	"testing"
)

func TestProgress_View_ZeroPercent(t *testing.T) {
	result := NewProgress(0, 8).View()

	if !strings.HasPrefix(result, "□□□□□□□□") {
		t.Errorf("expected all empty boxes, got: %s", result)
	}
	if !strings.HasSuffix(result, " 0%") {
		t.Errorf("expected 0%%, got: %s", result)
	}
}

func TestProgress_View_FiftyPercent(t *testing.T) {
	result := NewProgress(50, 8).View()

	if result != "■■■■□□□□ 50%" {
		t.Errorf("expected ■■■■□□□□ 50%%, got: %s", result)
	}
}

func TestProgress_View_HundredPercent(t *testing.T) {
	result := NewProgress(100, 8).View()

	if result != "■■■■■■■■ 100%" {
		t.Errorf("expected all filled, got: %s", result)
	}
}

func TestProgress_View_RoundedPercentKeepsLabel(t *testing.T) {
	// 2 of 3 complete rounds to 67.
	result := NewProgress(67, 10).View()

	if !strings.HasPrefix(result, "■■■■■■□□□□") {
		t.Errorf("expected 6 filled boxes, got: %s", result)
	}
	if !strings.HasSuffix(result, "67%") {
		t.Errorf("expected 67%%, got: %s", result)
	}
}

func TestProgress_View_ClampsBar(t *testing.T) {
	over := NewProgress(150, 4).View()
	if !strings.HasPrefix(over, "■■■■ ") {
		t.Errorf("expected bar clamped to full, got: %s", over)
	}

	under := NewProgress(-20, 4).View()
	if !strings.HasPrefix(under, "□□□□ ") {
		t.Errorf("expected bar clamped to empty, got: %s", under)
	}
}

func TestProgress_View_ZeroWidth(t *testing.T) {
	result := NewProgress(40, 0).View()

	if result != "40%" {
		t.Errorf("expected bare percentage, got: %s", result)
	}
}
