package store

import "spendly/sms-extract/internal/models"

// MockCategoryStore is an in-memory CategoryStore for tests.
type MockCategoryStore struct {
	Categories []models.CategoryRule

	LoadCategoriesError error
	SaveCategoriesError error
}

// LoadCategories returns the mock rules.
func (m *MockCategoryStore) LoadCategories() ([]models.CategoryRule, error) {
	if m.LoadCategoriesError != nil {
		return nil, m.LoadCategoriesError
	}
	return m.Categories, nil
}

// SaveCategories replaces the mock rules.
func (m *MockCategoryStore) SaveCategories(rules []models.CategoryRule) error {
	if m.SaveCategoriesError != nil {
		return m.SaveCategoriesError
	}
	m.Categories = append([]models.CategoryRule(nil), rules...)
	return nil
}
