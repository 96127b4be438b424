package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetFormatter(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{name: "text format", format: "text"},
		{name: "terminal alias", format: "terminal"},
		{name: "empty defaults to text", format: ""},
		{name: "json format", format: "json"},
		{name: "markdown format", format: "markdown"},
		{name: "md alias", format: "md"},
		{name: "unknown format", format: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := getFormatter(tt.format)
			if tt.wantErr {
				if err == nil {
					t.Errorf("getFormatter(%q) expected error, got nil", tt.format)
				}
				return
			}
			if err != nil {
				t.Fatalf("getFormatter(%q) unexpected error: %v", tt.format, err)
			}
			if f == nil {
				t.Errorf("getFormatter(%q) returned nil formatter", tt.format)
			}
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(existing, []byte("A sentence."), 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "existing file", path: existing},
		{name: "empty path", path: "", wantErr: true},
		{name: "missing file", path: filepath.Join(dir, "missing.txt"), wantErr: true},
		{name: "directory", path: dir, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFilePath(tt.path)
			if tt.wantErr && err == nil {
				t.Errorf("validateFilePath(%q) expected error, got nil", tt.path)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("validateFilePath(%q) unexpected error: %v", tt.path, err)
			}
		})
	}
}

func TestReadDocumentsFromFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(first, []byte("The first document."), 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if err := os.WriteFile(second, []byte("The second document."), 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	docs, names, err := readDocuments([]string{first, second})
	if err != nil {
		t.Fatalf("readDocuments() unexpected error: %v", err)
	}
	if len(docs) != 2 || len(names) != 2 {
		t.Fatalf("readDocuments() returned %d docs and %d names, want 2 and 2", len(docs), len(names))
	}
	if !strings.Contains(docs[0], "first") || !strings.Contains(docs[1], "second") {
		t.Errorf("readDocuments() returned documents out of order: %q, %q", docs[0], docs[1])
	}
	if names[0] != first || names[1] != second {
		t.Errorf("readDocuments() names = %v, want input paths", names)
	}
}

func TestReadDocumentsMissingFile(t *testing.T) {
	_, _, err := readDocuments([]string{filepath.Join(t.TempDir(), "missing.txt")})
	if err == nil {
		t.Error("readDocuments() expected error for missing file, got nil")
	}
}

func TestBuildSummarizerRequiresModel(t *testing.T) {
	oldModel := summarizeModel
	summarizeModel = ""
	defer func() { summarizeModel = oldModel }()

	if _, err := buildSummarizer(); err == nil {
		t.Error("buildSummarizer() expected error without a model path, got nil")
	}
}
