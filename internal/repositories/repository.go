package repositories

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/authz"
)

type Join struct {
	Table    string
	Alias    string
	OnLeft   string
	OnRight  string
	JoinType string
}

func (j *Join) EffectiveAlias() string {
	if j.Alias != "" {
		return j.Alias
	}
	return getBaseName(j.Table)
}

func (j *Join) sqlIdentifier() string {
	alias := j.EffectiveAlias()
	if alias != "" && alias != getBaseName(j.Table) && alias != j.Table {
		return fmt.Sprintf("%s AS %s", j.Table, alias)
	}
	return j.Table
}

// Params drives the generic list query builder. Scope is applied before any
// caller-supplied filter so an office-scoped user can never widen the result
// set through query parameters.
type Params struct {
	WithPg               bool
	Table                string
	Alias                string
	Columns              string
	Relations            []Join
	Filter               map[string]interface{}
	Where                map[string]interface{}
	Limit                uint64
	Offset               uint64
	Search               string
	SortBy               map[string]string
	AllowedFilterColumns []string
	AllowedSearchColumns []string
	AllowedSortColumns   []string

	Scope       authz.Scope
	ScopeColumn string
}

func (p *Params) effectiveBaseAlias() string {
	if p.Alias != "" {
		return p.Alias
	}
	return getBaseName(p.Table)
}

func contains(list []string, item string) bool {
	for _, val := range list {
		if strings.EqualFold(val, item) {
			return true
		}
	}
	return false
}

func getBaseName(identifier string) string {
	parts := strings.Split(identifier, ".")
	return parts[len(parts)-1]
}

func applyQueryConditions(builder sq.SelectBuilder, params Params) sq.SelectBuilder {
	if params.Scope.OfficeID != nil && params.ScopeColumn != "" {
		builder = builder.Where(sq.Eq{params.ScopeColumn: *params.Scope.OfficeID})
	}

	for key, val := range params.Filter {
		if contains(params.AllowedFilterColumns, key) {
			builder = builder.Where(sq.Eq{key: val})
		}
	}

	for key, val := range params.Where {
		builder = builder.Where(sq.Eq{key: val})
	}

	if params.Search != "" && len(params.AllowedSearchColumns) > 0 {
		var conditions []sq.Sqlizer
		for _, col := range params.AllowedSearchColumns {
			pattern := fmt.Sprintf("%%%s%%", params.Search)
			conditions = append(conditions, sq.Expr(fmt.Sprintf("%s ILIKE ?", col), pattern))
		}
		builder = builder.Where(sq.Or(conditions))
	}

	for _, join := range params.Relations {
		onClause := fmt.Sprintf("%s = %s", join.OnLeft, join.OnRight)
		joinTarget := join.sqlIdentifier()
		switch strings.ToUpper(join.JoinType) {
		case "LEFT":
			builder = builder.LeftJoin(fmt.Sprintf("%s ON %s", joinTarget, onClause))
		case "RIGHT":
			builder = builder.RightJoin(fmt.Sprintf("%s ON %s", joinTarget, onClause))
		default:
			builder = builder.Join(fmt.Sprintf("%s ON %s", joinTarget, onClause))
		}
	}
	return builder
}

func applySort(builder sq.SelectBuilder, params Params) sq.SelectBuilder {
	for col, dir := range params.SortBy {
		if !contains(params.AllowedSortColumns, col) {
			continue
		}
		direction := "ASC"
		if strings.EqualFold(dir, "desc") {
			direction = "DESC"
		}
		builder = builder.OrderBy(fmt.Sprintf("%s %s", col, direction))
	}
	return builder
}

// FetchDataAndCount runs the list query plus, when pagination is requested,
// a COUNT(*) with the identical conditions. Rows come back as generic maps
// keyed by column name; repositories map them onto DTOs.
func FetchDataAndCount(ctx context.Context, dbPool *pgxpool.Pool, params Params) ([]map[string]interface{}, uint64, error) {
	if params.Table == "" {
		return nil, 0, fmt.Errorf("params.Table cannot be empty")
	}
	if params.Columns == "" {
		return nil, 0, fmt.Errorf("params.Columns cannot be empty")
	}

	baseAlias := params.effectiveBaseAlias()
	fromTarget := params.Table
	if baseAlias != "" && baseAlias != getBaseName(params.Table) && baseAlias != params.Table {
		fromTarget = fmt.Sprintf("%s AS %s", params.Table, baseAlias)
	}

	builder := sq.Select(params.Columns).From(fromTarget).PlaceholderFormat(sq.Dollar)
	builder = applyQueryConditions(builder, params)
	builder = applySort(builder, params)

	if params.WithPg && params.Limit > 0 {
		builder = builder.Limit(params.Limit).Offset(params.Offset)
	}

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := dbPool.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list query failed: %w", err)
	}
	defer rows.Close()

	var resultData []map[string]interface{}
	fieldDescriptions := rows.FieldDescriptions()

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, 0, fmt.Errorf("rows.Values: %w", err)
		}
		rowMap := make(map[string]interface{}, len(fieldDescriptions))
		for i, fd := range fieldDescriptions {
			rowMap[string(fd.Name)] = values[i]
		}
		resultData = append(resultData, rowMap)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows.Err: %w", err)
	}

	var total uint64
	if params.WithPg {
		countBuilder := sq.Select("COUNT(*)").From(fromTarget).PlaceholderFormat(sq.Dollar)
		countBuilder = applyQueryConditions(countBuilder, params)
		countSQL, countArgs, err := countBuilder.ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("build count query: %w", err)
		}
		if err := dbPool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count query failed: %w", err)
		}
	}

	return resultData, total, nil
}
