package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedLanguages(t *testing.T) {
	for _, lang := range []string{"en", "id"} {
		words, err := Load(lang, "")
		if err != nil {
			t.Fatalf("load %s: %v", lang, err)
		}
		if len(words) == 0 {
			t.Fatalf("embedded %s list is empty", lang)
		}
		for _, w := range words {
			if !filterLowerASCII(w) {
				t.Fatalf("embedded %s list contains unfiltered word %q", lang, w)
			}
		}
	}
}

func TestLoadUnknownLanguage(t *testing.T) {
	if _, err := Load("xx", ""); err == nil {
		t.Fatalf("unknown language should error")
	}
}

func TestLoadUserPathOverridesEmbedded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.txt")
	if err := os.WriteFile(path, []byte("alpha\n\nbeta\n"), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	words, err := Load("en", path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(words) != 2 || words[0] != "alpha" || words[1] != "beta" {
		t.Fatalf("words = %v, want [alpha beta]", words)
	}
}

func TestLoadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("\n\n"), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("empty word list should error")
	}
}

func TestLangsIncludesUserDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "fr.txt"), []byte("oui\n"), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	langs, err := Langs(dir)
	if err != nil {
		t.Fatalf("langs: %v", err)
	}
	want := map[string]bool{"en": false, "fr": false, "id": false}
	for _, lang := range langs {
		if _, ok := want[lang]; ok {
			want[lang] = true
		}
	}
	for lang, found := range want {
		if !found {
			t.Fatalf("language %s missing from %v", lang, langs)
		}
	}
}

func TestLimitPool(t *testing.T) {
	pool := make([]string, MaxPoolSize+50)
	for i := range pool {
		pool[i] = "w"
	}
	if got := len(LimitPool(pool)); got != MaxPoolSize {
		t.Fatalf("limited pool size = %d, want %d", got, MaxPoolSize)
	}
	small := []string{"a", "b"}
	if got := LimitPool(small); len(got) != 2 {
		t.Fatalf("small pool should be untouched, got %v", got)
	}
}

func TestSplitWords(t *testing.T) {
	got := SplitWords("  the quick\nbrown\tfox  ")
	want := []string{"the", "quick", "brown", "fox"}
	if len(got) != len(want) {
		t.Fatalf("words = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("words = %v, want %v", got, want)
		}
	}
}
