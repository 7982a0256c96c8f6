package services

import (
	"context"

	"artisan-marketplace-backend/internal/models"
)

// DictionaryService serves the static reference data.
type DictionaryService struct {
	dictionaries DictionaryStore
}

func NewDictionaryService(dictionaries DictionaryStore) *DictionaryService {
	return &DictionaryService{dictionaries: dictionaries}
}

func (s *DictionaryService) Categories(ctx context.Context) ([]models.Category, error) {
	items, err := s.dictionaries.ListCategories(ctx)
	if err != nil {
		return nil, internalErr("list categories", err)
	}
	return items, nil
}

func (s *DictionaryService) Materials(ctx context.Context) ([]models.Material, error) {
	items, err := s.dictionaries.ListMaterials(ctx)
	if err != nil {
		return nil, internalErr("list materials", err)
	}
	return items, nil
}

func (s *DictionaryService) Specializations(ctx context.Context) ([]models.Specialization, error) {
	items, err := s.dictionaries.ListSpecializations(ctx)
	if err != nil {
		return nil, internalErr("list specializations", err)
	}
	return items, nil
}
