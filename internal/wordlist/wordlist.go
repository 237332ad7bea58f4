// Package wordlist loads word lists from embedded data and files.
package wordlist

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
)

//go:embed data/*.txt
var embedded embed.FS

// MaxPoolSize caps how many words are held in memory for a play session.
const MaxPoolSize = 300

// Load returns the word pool for a language. A user-installed list at
// userPath takes precedence over the embedded one.
func Load(lang, userPath string) ([]string, error) {
	if userPath != "" {
		if _, err := os.Stat(userPath); err == nil {
			return LoadFile(userPath)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat word list: %w", err)
		}
	}
	file, err := embedded.Open("data/" + lang + ".txt")
	if err != nil {
		return nil, fmt.Errorf("no word list for language %q", lang)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for embedded word list.
			_ = cerr
		}
	}()
	return readWords(file, FilterForLang(lang))
}

// LoadFile reads one word per line from the provided file path.
func LoadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return readWords(file, nil)
}

// Langs lists languages with an embedded word list, plus any found in
// userDir, sorted and de-duplicated.
func Langs(userDir string) ([]string, error) {
	seen := map[string]struct{}{}
	entries, err := fs.ReadDir(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded word lists: %w", err)
	}
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), ".txt"); ok {
			seen[name] = struct{}{}
		}
	}
	if userDir != "" {
		userEntries, err := os.ReadDir(userDir)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read word list directory: %w", err)
		}
		for _, entry := range userEntries {
			if entry.IsDir() {
				continue
			}
			if name, ok := strings.CutSuffix(entry.Name(), ".txt"); ok {
				seen[name] = struct{}{}
			}
		}
	}
	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

// SplitWords breaks free-form text into its whitespace-separated words.
// Used for custom/sandbox text.
func SplitWords(text string) []string {
	return strings.Fields(text)
}

// LimitPool truncates a pool to MaxPoolSize words.
func LimitPool(words []string) []string {
	if len(words) <= MaxPoolSize {
		return words
	}
	return words[:MaxPoolSize]
}

func readWords(r io.Reader, keep FilterFunc) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if keep != nil && !keep(line) {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
