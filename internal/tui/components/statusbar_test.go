package components

import (
	"strings"
	"testing"
)

func TestStatusBar_Render_SingleItem(t *testing.T) {
	result := NewStatusBar().Render(50, []string{"q Quit"})

	if !strings.Contains(result, "q Quit") {
		t.Errorf("expected result to contain 'q Quit', got: %s", result)
	}
}

func TestStatusBar_Render_MultipleItems(t *testing.T) {
	items := []string{"↑↓ Navigate", "n New", "q Quit"}
	result := NewStatusBar().Render(60, items)

	for _, item := range items {
		if !strings.Contains(result, item) {
			t.Errorf("expected result to contain %q, got: %s", item, result)
		}
	}
	if !strings.Contains(result, " • ") {
		t.Errorf("expected result to contain ' • ' separator, got: %s", result)
	}
}

func TestStatusBar_Render_EmptyItems(t *testing.T) {
	result := NewStatusBar().Render(50, nil)

	if strings.TrimSpace(result) != "" {
		t.Errorf("expected blank bar, got: %q", result)
	}
}

func TestStatusBar_Render_DropsItemsThatDoNotFit(t *testing.T) {
	items := []string{"↑↓ Navigate", "space Toggle", "q Quit"}
	result := NewStatusBar().Render(20, items)

	if !strings.Contains(result, "↑↓ Navigate") {
		t.Errorf("expected first item to be kept, got: %s", result)
	}
	if strings.Contains(result, "q Quit") {
		t.Errorf("expected trailing item to be dropped, got: %s", result)
	}
}
