package cmd

import (
	"strings"
	"testing"
)

func TestPreviewCommandFlags(t *testing.T) {
	for _, flag := range []string{"host", "port"} {
		if f := previewCmd.Flags().Lookup(flag); f == nil {
			t.Errorf("expected flag %q to be defined", flag)
		}
	}
}

func TestPreviewCommandRequiresFile(t *testing.T) {
	_, err := runCommand(t, nil, "preview")
	if err == nil {
		t.Fatal("expected error when no file is given")
	}
	if !strings.Contains(err.Error(), "arg") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPreviewCommandHelp(t *testing.T) {
	output, err := runCommand(t, nil, "preview", "--help")
	if err != nil {
		t.Fatalf("preview --help failed: %v", err)
	}

	for _, expected := range []string{"live HTML preview", "--host", "--port"} {
		if !strings.Contains(output, expected) {
			t.Errorf("expected help to contain %q, got:\n%s", expected, output)
		}
	}
}
