package models

import (
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected Category
		wantErr  bool
	}{
		{"all", CategoryAll, false},
		{"", CategoryAll, false},
		{"DOCUMENT", CategoryDocument, false},
		{" image ", CategoryImage, false},
		{"Video", CategoryVideo, false},
		{"audio", CategoryAudio, false},
		{"archive", CategoryArchive, false},
		{"spreadsheet", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCategory_Matches(t *testing.T) {
	tests := []struct {
		name      string
		category  Category
		extension string
		expected  bool
	}{
		{"All matches anything", CategoryAll, "xyz", true},
		{"All matches no extension", CategoryAll, "", true},
		{"Document pdf", CategoryDocument, "pdf", true},
		{"Document uppercase", CategoryDocument, "PDF", true},
		{"Document with dot", CategoryDocument, ".docx", true},
		{"Document rejects image", CategoryDocument, "png", false},
		{"Image webp", CategoryImage, "webp", true},
		{"Video mkv", CategoryVideo, "MKV", true},
		{"Audio ogg", CategoryAudio, "ogg", true},
		{"Archive 7z", CategoryArchive, "7z", true},
		{"Archive rejects empty", CategoryArchive, "", false},
		{"Unknown category", Category("bogus"), "pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.category.Matches(tt.extension); got != tt.expected {
				t.Errorf("%v.Matches(%q) = %v, want %v", tt.category, tt.extension, got, tt.expected)
			}
		})
	}
}

func TestCategory_ExtensionsIsCopy(t *testing.T) {
	exts := CategoryImage.Extensions()
	exts[0] = "tampered"

	if CategoryImage.Matches("tampered") {
		t.Error("modifying Extensions() result changed the category table")
	}
	if CategoryAll.Extensions() != nil {
		t.Error("CategoryAll.Extensions() should be nil")
	}
}

func TestCategories(t *testing.T) {
	got := Categories()
	if len(got) != 6 {
		t.Fatalf("Categories() length = %d, want 6", len(got))
	}
	if got[0] != CategoryAll {
		t.Errorf("Categories()[0] = %v, want %v", got[0], CategoryAll)
	}
	for _, c := range got {
		if !c.Valid() {
			t.Errorf("%v.Valid() = false", c)
		}
	}
}
