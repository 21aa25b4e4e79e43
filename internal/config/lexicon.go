package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"atscore/internal/textproc"
)

// maxLexiconFileSize bounds custom lexicon files
const maxLexiconFileSize = 1024 * 1024

// LoadLexicon reads a custom skill lexicon from a JSON file. The file holds
// an array of skill entries: {"id": "...", "name": "...", "synonyms": [...]}.
func LoadLexicon(path string) ([]textproc.Skill, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve lexicon file '%s': %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("lexicon file not found: %s", absPath)
	}
	if info.Size() > maxLexiconFileSize {
		return nil, fmt.Errorf("lexicon file too large: %s (%d bytes, limit %d)", absPath, info.Size(), maxLexiconFileSize)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file '%s': %w", absPath, err)
	}

	var skills []textproc.Skill
	if err := json.Unmarshal(content, &skills); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file '%s': %w", absPath, err)
	}
	if len(skills) == 0 {
		return nil, fmt.Errorf("lexicon file '%s' holds no skills", absPath)
	}

	return skills, nil
}

// BuildMatcher constructs the active skill matcher from the scoring
// configuration: the custom lexicon file when set, the built-in lexicon
// otherwise.
func (c *Config) BuildMatcher() (*textproc.Matcher, error) {
	if c.Scoring.LexiconFile == "" {
		return textproc.DefaultMatcher(), nil
	}
	skills, err := LoadLexicon(c.Scoring.LexiconFile)
	if err != nil {
		return nil, err
	}
	return textproc.NewMatcher(skills)
}
