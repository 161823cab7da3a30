// Package repositories defines the repository interfaces for domain entities.
// These repositories abstract the data persistence details, ensuring the core
// application is clean and decoupled from the database.
package repositories

import (
	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
)

// ComponentRepository persists page-builder components. Find methods return
// nil without error when nothing matches.
type ComponentRepository interface {
	FindByID(id string) (*component.Component, error)
	FindByPage(pageID string) ([]*component.Component, error)
	FindAll() ([]*component.Component, error)
	NextPosition(pageID string) (int, error)
	Store(c *component.Component) error
	Update(c *component.Component) error
	Delete(id string) error
}
