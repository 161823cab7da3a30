// Package content provides the components repository
package content

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/caching/interfaces"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-inspector/pkg/config"
)

const componentColumns = `id, page_id, position, component_type, name, props_payload, styles_payload, responsive_payload, css_classes, custom_css, html_id, custom_attributes, created, changed`

type ComponentRepository struct {
	db     *sql.DB
	cache  interfaces.ComponentCache
	logger *logging.ChanneledLogger
}

func NewComponentRepository(db *sql.DB, cache interfaces.ComponentCache, logger *logging.ChanneledLogger) *ComponentRepository {
	return &ComponentRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *ComponentRepository) FindByID(id string) (*component.Component, error) {
	if c, found := r.cache.GetComponent(id); found {
		return c, nil
	}

	c, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}

	r.cache.SetComponent(c)
	return c, nil
}

// FindByPage retrieves the components of a page in position order, employing
// a cache-first strategy.
func (r *ComponentRepository) FindByPage(pageID string) ([]*component.Component, error) {
	if ids, found := r.cache.GetPageComponentIDs(pageID); found {
		return r.FindByIDs(ids)
	}

	ids, err := r.loadIDsFromDB(`SELECT id FROM components WHERE page_id = ? ORDER BY position, created`, pageID)
	if err != nil {
		return nil, err
	}
	r.cache.SetPageComponentIDs(pageID, ids)
	return r.FindByIDs(ids)
}

// FindAll retrieves every component grouped by page, employing a cache-first
// strategy.
func (r *ComponentRepository) FindAll() ([]*component.Component, error) {
	if ids, found := r.cache.GetAllComponentIDs(); found {
		return r.FindByIDs(ids)
	}

	ids, err := r.loadIDsFromDB(`SELECT id FROM components ORDER BY page_id, position, created`)
	if err != nil {
		return nil, err
	}
	r.cache.SetAllComponentIDs(ids)
	return r.FindByIDs(ids)
}

// FindByIDs loads the given components, keeping the order of ids. Unknown IDs
// are skipped.
func (r *ComponentRepository) FindByIDs(ids []string) ([]*component.Component, error) {
	found := make(map[string]*component.Component, len(ids))
	var missingIDs []string

	for _, id := range ids {
		if c, ok := r.cache.GetComponent(id); ok {
			found[id] = c
		} else {
			missingIDs = append(missingIDs, id)
		}
	}

	if len(missingIDs) > 0 {
		loaded, err := r.loadMultipleFromDB(missingIDs)
		if err != nil {
			return nil, err
		}
		for _, c := range loaded {
			r.cache.SetComponent(c)
			found[c.ID] = c
		}
	}

	result := make([]*component.Component, 0, len(ids))
	for _, id := range ids {
		if c, ok := found[id]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

// NextPosition returns the position that appends a component to pageID.
func (r *ComponentRepository) NextPosition(pageID string) (int, error) {
	query := `SELECT COALESCE(MAX(position) + 1, 0) FROM components WHERE page_id = ?`

	start := time.Now()
	var next int
	if err := r.db.QueryRow(query, pageID).Scan(&next); err != nil {
		r.logger.Database().Error("Failed to read next position", "error", err.Error(), "pageId", pageID)
		return 0, fmt.Errorf("failed to read next position: %w", err)
	}
	r.checkSlow(query, start)
	return next, nil
}

func (r *ComponentRepository) Store(c *component.Component) error {
	payloads, err := encodePayloads(c)
	if err != nil {
		return err
	}

	query := `INSERT INTO components (` + componentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing component insert", "id", c.ID)

	_, err = r.db.Exec(query,
		c.ID, c.PageID, c.Position, string(c.Type), c.Name,
		payloads.props, payloads.styles, payloads.responsive,
		c.CSSClasses, c.CustomCSS, c.HTMLID, c.CustomAttributes,
		formatTime(c.Created), formatTimePtr(c.Changed))
	if err != nil {
		r.logger.Database().Error("Component insert failed", "error", err.Error(), "id", c.ID)
		return fmt.Errorf("failed to insert component: %w", err)
	}

	r.logger.Database().Info("Component insert completed", "id", c.ID, "duration", time.Since(start))
	r.checkSlow(query, start)
	r.cache.SetComponent(c)
	r.cache.InvalidatePage(c.PageID)
	return nil
}

func (r *ComponentRepository) Update(c *component.Component) error {
	payloads, err := encodePayloads(c)
	if err != nil {
		return err
	}

	query := `UPDATE components SET page_id = ?, position = ?, component_type = ?, name = ?, props_payload = ?, styles_payload = ?, responsive_payload = ?, css_classes = ?, custom_css = ?, html_id = ?, custom_attributes = ?, changed = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing component update", "id", c.ID)

	res, err := r.db.Exec(query,
		c.PageID, c.Position, string(c.Type), c.Name,
		payloads.props, payloads.styles, payloads.responsive,
		c.CSSClasses, c.CustomCSS, c.HTMLID, c.CustomAttributes,
		formatTimePtr(c.Changed), c.ID)
	if err != nil {
		r.logger.Database().Error("Component update failed", "error", err.Error(), "id", c.ID)
		return fmt.Errorf("failed to update component: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to update component %s: no such row", c.ID)
	}

	r.logger.Database().Info("Component update completed", "id", c.ID, "duration", time.Since(start))
	r.checkSlow(query, start)

	if previous, ok := r.cache.GetComponent(c.ID); ok && previous.PageID != c.PageID {
		r.cache.InvalidatePage(previous.PageID)
	}
	r.cache.SetComponent(c)
	r.cache.InvalidatePage(c.PageID)
	return nil
}

func (r *ComponentRepository) Delete(id string) error {
	var pageID string
	if c, ok := r.cache.GetComponent(id); ok {
		pageID = c.PageID
	} else if err := r.db.QueryRow(`SELECT page_id FROM components WHERE id = ?`, id).Scan(&pageID); err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to look up component page: %w", err)
	}

	query := `DELETE FROM components WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing component delete", "id", id)

	if _, err := r.db.Exec(query, id); err != nil {
		r.logger.Database().Error("Component delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete component: %w", err)
	}

	r.logger.Database().Info("Component delete completed", "id", id, "duration", time.Since(start))
	r.checkSlow(query, start)
	r.cache.InvalidateComponent(id)
	r.cache.InvalidatePage(pageID)
	return nil
}

func (r *ComponentRepository) loadIDsFromDB(query string, args ...any) ([]string, error) {
	start := time.Now()
	r.logger.Database().Debug("Loading component IDs from database")

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Database().Error("Failed to query component IDs", "error", err.Error())
		return nil, fmt.Errorf("failed to query components: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan component ID: %w", err)
		}
		ids = append(ids, id)
	}

	r.logger.Database().Info("Loaded component IDs from database", "count", len(ids), "duration", time.Since(start))
	r.checkSlow(query, start)
	return ids, rows.Err()
}

func (r *ComponentRepository) loadFromDB(id string) (*component.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading component from database", "id", id)

	c, err := scanComponent(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan component", "error", err.Error(), "id", id)
		return nil, err
	}

	r.logger.Database().Info("Component loaded from database", "id", id, "duration", time.Since(start))
	r.checkSlow(query, start)
	return c, nil
}

func (r *ComponentRepository) loadMultipleFromDB(ids []string) ([]*component.Component, error) {
	if len(ids) == 0 {
		return []*component.Component{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `SELECT ` + componentColumns + ` FROM components WHERE id IN (` + strings.Join(placeholders, ",") + `)`

	start := time.Now()
	r.logger.Database().Debug("Loading multiple components from database", "count", len(ids))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Database().Error("Failed to query multiple components", "error", err.Error(), "count", len(ids))
		return nil, fmt.Errorf("failed to query components: %w", err)
	}
	defer rows.Close()

	var components []*component.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			// Skip malformed records but continue processing others
			r.logger.Database().Warn("Skipping malformed component row", "error", err.Error())
			continue
		}
		components = append(components, c)
	}

	r.logger.Database().Info("Multiple components loaded from database", "requested", len(ids), "loaded", len(components), "duration", time.Since(start))
	r.checkSlow(query, start)
	return components, rows.Err()
}

func (r *ComponentRepository) checkSlow(query string, start time.Time) {
	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComponent(row rowScanner) (*component.Component, error) {
	var c component.Component
	var componentType, propsJSON, stylesJSON, respJSON, createdStr string
	var changedStr sql.NullString

	err := row.Scan(&c.ID, &c.PageID, &c.Position, &componentType, &c.Name,
		&propsJSON, &stylesJSON, &respJSON,
		&c.CSSClasses, &c.CustomCSS, &c.HTMLID, &c.CustomAttributes,
		&createdStr, &changedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan component: %w", err)
	}
	c.Type = component.Type(componentType)

	if err := json.Unmarshal([]byte(propsJSON), &c.Props); err != nil {
		return nil, fmt.Errorf("failed to parse props payload for %s: %w", c.ID, err)
	}
	if err := json.Unmarshal([]byte(stylesJSON), &c.Styles); err != nil {
		return nil, fmt.Errorf("failed to parse styles payload for %s: %w", c.ID, err)
	}
	if err := json.Unmarshal([]byte(respJSON), &c.Responsive); err != nil {
		return nil, fmt.Errorf("failed to parse responsive payload for %s: %w", c.ID, err)
	}

	if t, err := time.Parse(time.RFC3339Nano, createdStr); err == nil {
		c.Created = t
	}
	if changedStr.Valid && changedStr.String != "" {
		if t, err := time.Parse(time.RFC3339Nano, changedStr.String); err == nil {
			c.Changed = &t
		}
	}
	return &c, nil
}

type encodedPayloads struct {
	props, styles, responsive string
}

func encodePayloads(c *component.Component) (encodedPayloads, error) {
	var out encodedPayloads
	encode := func(v any, name string) (string, error) {
		raw, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to encode %s payload for %s: %w", name, c.ID, err)
		}
		if string(raw) == "null" {
			return "{}", nil
		}
		return string(raw), nil
	}
	var err error
	if out.props, err = encode(c.Props, "props"); err != nil {
		return out, err
	}
	if out.styles, err = encode(c.Styles, "styles"); err != nil {
		return out, err
	}
	if out.responsive, err = encode(c.Responsive, "responsive"); err != nil {
		return out, err
	}
	return out, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}
