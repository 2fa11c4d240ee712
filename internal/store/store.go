// Package store loads and saves the category rule list.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"
	"spendly/sms-extract/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// DefaultCategoriesFile is looked up when no file is configured.
const DefaultCategoriesFile = "categories.yaml"

// CategoryStore manages the categories YAML file.
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a store for categoriesFile. An empty name means
// DefaultCategoriesFile.
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &CategoryStore{CategoriesFile: categoriesFile, logger: logger}
}

func (s *CategoryStore) filename() string {
	if s.CategoriesFile == "" {
		return DefaultCategoriesFile
	}
	return s.CategoriesFile
}

// FindConfigFile looks for a configuration file in the current directory,
// ./config and ~/.sms-extract.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".sms-extract", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadCategories reads the rule list. A missing file yields an empty list
// and no error so callers fall back to the built-in rules. Rule order in the
// file is the match priority.
//
// Three layouts are accepted: a top-level "categories:" list, a bare list,
// and a mapping from category name to {keywords: [...]}.
func (s *CategoryStore) LoadCategories() ([]models.CategoryRule, error) {
	path, err := s.FindConfigFile(s.filename())
	if err != nil {
		s.logger.Debug("Categories file not found, using built-in rules",
			logging.F(logging.FieldFile, s.filename()))
		return []models.CategoryRule{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	rules, err := decodeRules(data)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "categories YAML",
			Msg:            "cannot decode category rules",
			Err:            err,
		}
	}
	if err := validateRules(path, rules); err != nil {
		return nil, err
	}

	s.logger.Debug("Loaded category rules",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(rules)))
	return rules, nil
}

// SaveCategories writes rules in the "categories:" layout, creating parent
// directories as needed.
func (s *CategoryStore) SaveCategories(rules []models.CategoryRule) error {
	path := s.filename()
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(models.CategoriesConfig{Categories: rules})
	if err != nil {
		return fmt.Errorf("error marshaling categories: %w", err)
	}
	if err := os.WriteFile(path, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing categories file: %w", err)
	}

	s.logger.Debug("Saved category rules",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(rules)))
	return nil
}

func decodeRules(data []byte) ([]models.CategoryRule, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return []models.CategoryRule{}, nil
	}
	doc := root.Content[0]

	switch doc.Kind {
	case yaml.SequenceNode:
		var rules []models.CategoryRule
		if err := doc.Decode(&rules); err != nil {
			return nil, err
		}
		return rules, nil

	case yaml.MappingNode:
		if len(doc.Content) >= 2 && doc.Content[0].Value == "categories" {
			var cfg models.CategoriesConfig
			if err := doc.Decode(&cfg); err != nil {
				return nil, err
			}
			return cfg.Categories, nil
		}
		return decodeRuleMap(doc)
	}

	return nil, errors.New("expected a list or a mapping of categories")
}

// decodeRuleMap reads the "name: {keywords: [...]}" layout. Mapping order is
// kept, which a Go map would lose.
func decodeRuleMap(doc *yaml.Node) ([]models.CategoryRule, error) {
	rules := make([]models.CategoryRule, 0, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		var body struct {
			Keywords []string `yaml:"keywords"`
		}
		if err := doc.Content[i+1].Decode(&body); err != nil {
			return nil, fmt.Errorf("category %q: %w", doc.Content[i].Value, err)
		}
		rules = append(rules, models.CategoryRule{
			Name:     models.Category(doc.Content[i].Value),
			Keywords: body.Keywords,
		})
	}
	return rules, nil
}

func validateRules(path string, rules []models.CategoryRule) error {
	for i := range rules {
		name, err := models.ParseCategory(string(rules[i].Name))
		if err != nil {
			return &parsererror.ValidationError{
				Source: path,
				Field:  fmt.Sprintf("categories[%d].name", i),
				Reason: err.Error(),
			}
		}
		rules[i].Name = name

		keywords := rules[i].Keywords[:0]
		for _, kw := range rules[i].Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) == 0 {
			return &parsererror.ValidationError{
				Source: path,
				Field:  fmt.Sprintf("categories[%d].keywords", i),
				Reason: "at least one keyword is required",
			}
		}
		rules[i].Keywords = keywords
	}
	return nil
}
