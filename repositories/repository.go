package repositories

import (
	"errors"
	"fmt"

	"github.com/adsboard-api/domain"
	"gorm.io/gorm"
)

// Page selects a slice of an ordered collection. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

// Offset returns the number of rows to skip
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

func paginate(db *gorm.DB, p Page) *gorm.DB {
	return db.Limit(p.Size).Offset(p.Offset())
}

// notFound maps gorm's missing-record error onto domain.ErrNotFound
func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, domain.ErrNotFound)
	}
	return err
}
