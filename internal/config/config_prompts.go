package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// maxPromptFileSize bounds system prompt files so a mistaken path to a large
// file cannot balloon every request.
const maxPromptFileSize = 64 * 1024

// loadSystemPrompts loads system prompt files into the inline prompt fields.
// Inline config values take precedence over files.
func (c *Config) loadSystemPrompts() error {
	if err := loadSystemPromptFile(&c.AI.SystemPrompt, c.AI.SystemPromptFile, "global"); err != nil {
		return err
	}
	if err := loadSystemPromptFile(&c.AI.Suggest.SystemPrompt, c.AI.Suggest.SystemPromptFile, "suggest"); err != nil {
		return err
	}
	return nil
}

// loadSystemPromptFile reads one prompt file into target unless target is
// already set inline.
func loadSystemPromptFile(target *string, filePath, scope string) error {
	if filePath == "" {
		return nil
	}
	if *target != "" {
		log.Printf("[CONFIG] Inline %s system prompt set, ignoring file: %s", scope, filePath)
		return nil
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s system prompt file '%s': %w", scope, filePath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("%s system prompt file not found: %s", scope, absPath)
	}
	if info.Size() > maxPromptFileSize {
		return fmt.Errorf("%s system prompt file too large: %s (%d bytes, limit %d)", scope, absPath, info.Size(), maxPromptFileSize)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("failed to read %s system prompt file '%s': %w", scope, absPath, err)
	}

	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return fmt.Errorf("%s system prompt file '%s' is empty", scope, absPath)
	}

	log.Printf("[CONFIG] Loaded %s system prompt from file: %s (%d characters)", scope, absPath, len(trimmed))
	*target = trimmed
	return nil
}
