package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yeremiapane/table-booking/models"
	"gorm.io/gorm"
)

var (
	ErrNotJSONFile       = &ValidationError{"File must be a JSON file"}
	ErrInvalidJSONFormat = &ValidationError{"Invalid JSON format"}
)

// JSONAccessPath is appended to the base URL to form a document's access URL.
const JSONAccessPath = "/api/json/"

type DocumentService struct {
	DB *gorm.DB
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{DB: db}
}

// LooksLikeJSON only checks that the trimmed content is wrapped in a matching
// pair of braces or brackets. The interior is not parsed.
func LooksLikeJSON(content string) bool {
	content = strings.TrimSpace(content)
	return (strings.HasPrefix(content, "{") && strings.HasSuffix(content, "}")) ||
		(strings.HasPrefix(content, "[") && strings.HasSuffix(content, "]"))
}

// Save validates and stores an uploaded document, then points its access URL
// at baseURL + JSONAccessPath + id.
func (s *DocumentService) Save(ctx context.Context, filename, content, baseURL string) (*models.JSONDocument, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".json") {
		return nil, ErrNotJSONFile
	}
	if !LooksLikeJSON(content) {
		return nil, ErrInvalidJSONFormat
	}

	prefix := strings.TrimRight(baseURL, "/") + JSONAccessPath
	doc := models.JSONDocument{
		Filename:  filename,
		Content:   content,
		AccessURL: prefix,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
		doc.AccessURL = fmt.Sprintf("%s%d", prefix, doc.ID)
		return tx.Model(&doc).Update("access_url", doc.AccessURL).Error
	})
	if err != nil {
		return nil, fmt.Errorf("save json document: %w", err)
	}
	return &doc, nil
}

func (s *DocumentService) Get(ctx context.Context, id uint) (*models.JSONDocument, error) {
	var doc models.JSONDocument
	if err := s.DB.WithContext(ctx).First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load json document %d: %w", id, err)
	}
	return &doc, nil
}

// Content returns the raw stored text of a document.
func (s *DocumentService) Content(ctx context.Context, id uint) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return doc.Content, nil
}
