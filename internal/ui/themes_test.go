package ui

import "testing"

func TestSetThemeByName(t *testing.T) {
	defer SetTheme(&DefaultTheme)

	for _, name := range GetAvailableThemes() {
		if !SetThemeByName(name) {
			t.Errorf("Expected theme %s to exist", name)
		}
		if GetTheme().Name != name {
			t.Errorf("Expected active theme %s, got %s", name, GetTheme().Name)
		}
	}
	if SetThemeByName("neon") {
		t.Error("Expected unknown theme to be rejected")
	}
}

func TestIsColorDisabled(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if !IsColorDisabled() {
		t.Error("Expected NO_COLOR to disable colors")
	}
	t.Setenv("NO_COLOR", "")
	if IsColorDisabled() {
		t.Error("Expected colors to be enabled")
	}
}
