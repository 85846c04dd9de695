package persistence

import (
	"context"
	"fmt"

	"veridor-server/internal/governance/usecases"
	"veridor-server/internal/infra/sql"
	shareddomain "veridor-server/internal/shared_kernel/domain"
	"veridor-server/internal/shared_kernel/querydsl"
)

func NewDatabaseSearchBackend(orm sql.ORM) *DatabaseSearchBackend {
	return &DatabaseSearchBackend{orm: orm}
}

var _ usecases.SearchBackend = (*DatabaseSearchBackend)(nil)

// DatabaseSearchBackend runs searches directly on the entity tables.
// Tenant scoping and soft-delete exclusion are applied before any
// user-supplied predicate, so filter input can never widen the result
// set beyond the tenant's live rows.
type DatabaseSearchBackend struct {
	orm sql.ORM
}

func (b *DatabaseSearchBackend) Search(ctx context.Context, tenantID shareddomain.ID, entity usecases.EntityDescriptor, query usecases.SearchQuery) ([]map[string]any, int, error) {
	base := func() (sql.ORM, error) {
		q := b.orm.
			WithContext(ctx).
			Table(entity.TableName).
			Where(entity.TableName+".tenant_id = ?", tenantID.String()).
			Where(entity.TableName+".is_deleted = ?", false)

		if query.Text != "" {
			fragment, err := querydsl.Compile(freeTextGroup(query), entity.TableName)
			if err != nil {
				return nil, err
			}
			if !fragment.IsZero() {
				q = q.Where(fragment.SQL, fragment.Args)
			}
		}

		return querydsl.Apply(q, query.Filter, entity.TableName)
	}

	q, err := base()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	err = q.Count(&total).Error()
	if err != nil {
		return nil, 0, fmt.Errorf("counting %s: %w", entity.TableName, err)
	}

	q, err = base()
	if err != nil {
		return nil, 0, err
	}

	var items []map[string]any
	err = q.
		Order(fmt.Sprintf("%s.%s %s", entity.TableName, query.SortBy, query.SortOrder)).
		Limit(query.PageSize).
		Offset((query.Page - 1) * query.PageSize).
		Find(&items).
		Error()
	if err != nil {
		return nil, 0, fmt.Errorf("querying %s: %w", entity.TableName, err)
	}

	return items, int(total), nil
}

// freeTextGroup turns the free-text query into one OR group of
// case-insensitive substring matches over the search fields. The
// compiler brackets it, so it combines with the base predicates as a
// single conjunct.
func freeTextGroup(query usecases.SearchQuery) querydsl.Group {
	group := querydsl.Group{Logical: querydsl.LogicalOr}
	for _, field := range query.SearchFields {
		group.Conditions = append(group.Conditions, querydsl.Condition{
			Field: field,
			Op:    string(querydsl.OperatorContains),
			Value: query.Text,
		})
	}

	return group
}
