// Package discover locates complete five-language document sets on disk.
//
// Source documents are grouped by stripping a per-language filename suffix;
// a group is a set only when all five language editions are present.
// Discovery order is deterministic: sets are sorted lexically by folder then
// base name, and that single ordering is what consolidation later applies
// identically to every language.
package discover

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"coalign/core/errors"
	"coalign/core/para"
)

// Config controls discovery.
type Config struct {
	// Folders are the subdirectories scanned under the input root. Empty
	// means every subdirectory plus the root itself.
	Folders []string `yaml:"folders" json:"folders"`

	// Patterns maps each language code to the filename suffix regexp that
	// identifies its edition. The matched suffix is stripped to obtain the
	// document base name.
	Patterns map[string]string `yaml:"patterns" json:"patterns"`
}

// DefaultConfig returns the suffix patterns used by the government document
// naming conventions, including the historical variants.
func DefaultConfig() Config {
	return Config{
		Patterns: map[string]string{
			"es": `[_-](castellano|es)\.docx$`,
			"ca": `[_-](ca-ES|ca_ES)\.docx$`,
			"vl": `[_-](ca-ES-valencia|va_ES|vl_ES)\.docx$`,
			"gl": `[_-](gl-ES|gl_ES|ga_ES)\.docx$`,
			"eu": `[_-](eu-ES|eu_ES)\.docx$`,
		},
	}
}

// Set is one discovered document set.
type Set struct {
	// Folder is the subdirectory the set was found in, relative to the
	// input root. Empty for files at the root itself.
	Folder string `json:"folder"`

	// Name is the document base name with the language suffix stripped.
	Name string `json:"name"`

	// Paths maps each present language to its source file path.
	Paths map[para.Language]string `json:"paths"`
}

// ID returns the set identifier used for output paths and reporting.
func (s *Set) ID() string {
	if s.Folder == "" {
		return s.Name
	}
	return s.Folder + "/" + s.Name
}

// Missing returns the language codes absent from the set, in reporting
// order.
func (s *Set) Missing() []para.Language {
	var missing []para.Language
	for _, lang := range para.Languages() {
		if _, ok := s.Paths[lang]; !ok {
			missing = append(missing, lang)
		}
	}
	return missing
}

type compiled struct {
	lang para.Language
	re   *regexp.Regexp
}

func compile(cfg Config) ([]compiled, error) {
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = DefaultConfig().Patterns
	}

	out := make([]compiled, 0, len(patterns))
	for _, lang := range para.Languages() {
		expr, ok := patterns[lang.String()]
		if !ok {
			return nil, errors.NewValidation("patterns", "no suffix pattern for language "+lang.String())
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, &errors.ValidationError{
				Field:   "patterns." + lang.String(),
				Value:   expr,
				Message: "invalid suffix pattern",
				Err:     err,
			}
		}
		out = append(out, compiled{lang: lang, re: re})
	}
	return out, nil
}

// Discover scans root and returns the complete document sets in
// deterministic order, plus the incomplete groups found along the way for
// reporting.
func Discover(root string, cfg Config) (complete, incomplete []Set, err error) {
	patterns, err := compile(cfg)
	if err != nil {
		return nil, nil, err
	}

	folders := cfg.Folders
	if len(folders) == 0 {
		folders, err = subfolders(root)
		if err != nil {
			return nil, nil, err
		}
	}

	groups := make(map[string]*Set)
	for _, folder := range folders {
		dir := filepath.Join(root, folder)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, nil, errors.NewIO("read directory", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), "~") {
				continue
			}
			lang, base, ok := match(patterns, entry.Name())
			if !ok {
				continue
			}

			key := folder + "\x00" + base
			set, exists := groups[key]
			if !exists {
				set = &Set{
					Folder: folder,
					Name:   base,
					Paths:  make(map[para.Language]string),
				}
				groups[key] = set
			}
			set.Paths[lang] = filepath.Join(dir, entry.Name())
		}
	}

	for _, set := range groups {
		if len(set.Paths) == len(para.Languages()) {
			complete = append(complete, *set)
		} else {
			incomplete = append(incomplete, *set)
		}
	}

	sort.Slice(complete, func(i, j int) bool { return complete[i].ID() < complete[j].ID() })
	sort.Slice(incomplete, func(i, j int) bool { return incomplete[i].ID() < incomplete[j].ID() })
	return complete, incomplete, nil
}

func match(patterns []compiled, name string) (para.Language, string, bool) {
	for _, p := range patterns {
		if loc := p.re.FindStringIndex(name); loc != nil {
			return p.lang, name[:loc[0]], true
		}
	}
	return "", "", false
}

func subfolders(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.NewIO("read directory", root, err)
	}

	folders := []string{""}
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			folders = append(folders, entry.Name())
		}
	}
	return folders, nil
}
