package main

import (
	"strings"
	"testing"
)

func TestRenderDescription(t *testing.T) {
	text := RenderDescription("prfilter")

	expected := []string{
		"List GitHub pull requests and filter them by label.",
		"divvydose/ui-coding-challenge",
		"~/.config/prfilter/config.yaml",
		"Examples:",
		"prfilter -r owner/repo list --label bug --detailed",
		"prfilter -r owner/repo labels",
		"prfilter -r owner/repo browse",
		"prfilter -r owner/repo serve --listen :8080",
	}

	for _, want := range expected {
		if !strings.Contains(text, want) {
			t.Errorf("Description should contain %q", want)
		}
	}
}

func TestRenderDescription_ProgramName(t *testing.T) {
	text := RenderDescription("custom-name")

	if strings.Contains(text, "prfilter -r") {
		t.Error("Examples should use the supplied program name")
	}
	if !strings.Contains(text, "custom-name -r owner/repo browse") {
		t.Error("Examples should mention custom-name")
	}
}
