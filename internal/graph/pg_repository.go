package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS entities (
	id UUID DEFAULT gen_random_uuid() PRIMARY KEY,
	name TEXT UNIQUE NOT NULL,
	entity_type TEXT NOT NULL,
	observations TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS relations (
	id UUID DEFAULT gen_random_uuid() PRIMARY KEY,
	"from" TEXT NOT NULL REFERENCES entities(name) ON DELETE CASCADE,
	"to" TEXT NOT NULL REFERENCES entities(name) ON DELETE CASCADE,
	relation_type TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE ("from", "to", relation_type)
);
`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *postgresRepository {
	return &postgresRepository{pool: pool}
}

// Migrate creates the entities and relations tables if they do not exist
func (r *postgresRepository) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schemaSQL)
	return err
}

func (r *postgresRepository) ReadGraph(ctx context.Context) (Graph, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name, entity_type, observations, created_at, updated_at FROM entities ORDER BY name`)
	if err != nil {
		return Graph{}, fmt.Errorf("failed to query entities: %w", err)
	}
	entities, err := pgx.CollectRows(rows, pgx.RowToStructByName[Entity])
	if err != nil {
		return Graph{}, fmt.Errorf("failed to read entities: %w", err)
	}

	rows, err = r.pool.Query(ctx,
		`SELECT "from", "to", relation_type, created_at, updated_at FROM relations ORDER BY "from", "to", relation_type`)
	if err != nil {
		return Graph{}, fmt.Errorf("failed to query relations: %w", err)
	}
	relations, err := pgx.CollectRows(rows, pgx.RowToStructByName[Relation])
	if err != nil {
		return Graph{}, fmt.Errorf("failed to read relations: %w", err)
	}

	return Graph{Entities: entities, Relations: relations}, nil
}

func (r *postgresRepository) CreateEntities(ctx context.Context, entities []Entity) ([]Entity, error) {
	var created []Entity
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		created = make([]Entity, 0, len(entities))
		for _, e := range entities {
			if e.Observations == nil {
				e.Observations = []string{}
			}
			err := tx.QueryRow(ctx,
				`INSERT INTO entities (name, entity_type, observations)
				 VALUES ($1, $2, $3)
				 RETURNING created_at, updated_at`,
				e.Name, e.EntityType, e.Observations,
			).Scan(&e.CreatedAt, &e.UpdatedAt)
			if err != nil {
				return fmt.Errorf("entity %q: %w", e.Name, translate(err))
			}
			created = append(created, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *postgresRepository) CreateRelations(ctx context.Context, relations []Relation) ([]Relation, error) {
	var created []Relation
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		created = make([]Relation, 0, len(relations))
		for _, rel := range relations {
			err := tx.QueryRow(ctx,
				`INSERT INTO relations ("from", "to", relation_type)
				 VALUES ($1, $2, $3)
				 RETURNING created_at, updated_at`,
				rel.From, rel.To, rel.RelationType,
			).Scan(&rel.CreatedAt, &rel.UpdatedAt)
			if err != nil {
				return fmt.Errorf("relation %s -[%s]-> %s: %w", rel.From, rel.RelationType, rel.To, translate(err))
			}
			created = append(created, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// translate maps constraint violations onto the package's sentinel errors.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		return ErrConflict
	case foreignKeyViolation:
		return ErrUnknownEntity
	default:
		return err
	}
}
