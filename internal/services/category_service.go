package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// categoryService maintains the category directory. Codes are the join
// key used by reports, so they are unique and immutable.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory adds a new directory entry.
func (s *categoryService) CreateCategory(
	code, name string,
	categoryType models.TransactionType,
	color, icon string,
) (*models.Category, error) {
	if code == "" || name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category code and name are required")
	}
	switch categoryType {
	case models.TransactionTypeIncome, models.TransactionTypeExpense:
	default:
		return nil, apperrors.ErrInvalidTransactionType
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCode
	}

	category := &models.Category{
		Code:  code,
		Name:  name,
		Type:  categoryType,
		Color: color,
		Icon:  icon,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetCategories retrieves a paginated list of directory entries.
func (s *categoryService) GetCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	base := s.db.Model(&models.Category{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Scopes(pagination.Paginate(page)).Order("code ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryByCode retrieves a single directory entry.
func (s *categoryService) GetCategoryByCode(code string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("code = ?", code).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates display metadata. The code itself never changes.
func (s *categoryService) UpdateCategory(code string, name, color, icon *string) (*models.Category, error) {
	category, err := s.GetCategoryByCode(code)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil && *name != "" {
		updates["name"] = *name
	}
	if color != nil {
		updates["color"] = *color
	}
	if icon != nil {
		updates["icon"] = *icon
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory soft-deletes a directory entry. Existing transactions
// keep their code; they simply stop resolving in joined views.
func (s *categoryService) DeleteCategory(code string) error {
	category, err := s.GetCategoryByCode(code)
	if err != nil {
		return err
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
