package moderation

import (
	"bufio"
	"bytes"
	"chat-poll/errors"
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed censored/*.txt
var censoredFS embed.FS

// CensoredData carries the loaded words and the languages they come from.
type CensoredData struct {
	Words     []string
	Languages []string
}

// CensoredLoader reads word lists, one word per line, one file per language.
type CensoredLoader struct {
	fs  fs.FS
	dir string
}

// NewCensoredLoader reads from the word lists embedded in the binary.
func NewCensoredLoader() *CensoredLoader {
	return &CensoredLoader{fs: censoredFS, dir: "censored"}
}

func NewCensoredLoaderFS(fsys fs.FS, dir string) *CensoredLoader {
	return &CensoredLoader{fs: fsys, dir: dir}
}

// LoadAll parses every .txt file of the directory into a sorted list of
// unique words. A file name gives its language: "fr.txt" is "fr".
func (l *CensoredLoader) LoadAll() (*CensoredData, error) {
	entries, err := fs.ReadDir(l.fs, l.dir)
	if err != nil {
		return nil, err
	}

	var languages []string
	uniqueWords := make(map[string]struct{})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := fs.ReadFile(l.fs, path.Join(l.dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		// The scanner copes with both \n and \r\n line endings
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				uniqueWords[line] = struct{}{}
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(uniqueWords) == 0 {
		return nil, errors.ErrEmptyWords
	}

	words := make([]string, 0, len(uniqueWords))
	for w := range uniqueWords {
		words = append(words, w)
	}
	sort.Strings(words)

	return &CensoredData{Words: words, Languages: languages}, nil
}
