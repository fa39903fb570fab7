package fraud

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the fraud relationship graph from PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

var _ RepositoryInterface = (*Repository)(nil)

// NewRepository creates a new fraud graph repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// LoadGraph reads nodes and connections inside one read-only repeatable-read
// transaction so both come from the same snapshot.
func (r *Repository) LoadGraph(ctx context.Context) (*Graph, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("begin graph snapshot: %w", err)
	}
	defer tx.Rollback(ctx)

	nodes, err := listNodes(ctx, tx)
	if err != nil {
		return nil, err
	}
	connections, err := listConnections(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit graph snapshot: %w", err)
	}

	return &Graph{Nodes: nodes, Connections: connections}, nil
}

// listNodes returns every flagged account in insertion order
func listNodes(ctx context.Context, tx pgx.Tx) ([]FraudNode, error) {
	query := `
		SELECT id, name, node_type, risk_score, incidents, status
		FROM fraud_nodes
		ORDER BY created_at, id
	`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query fraud nodes: %w", err)
	}
	defer rows.Close()

	nodes := make([]FraudNode, 0)
	for rows.Next() {
		var n FraudNode
		if err := rows.Scan(&n.ID, &n.Name, &n.Type, &n.RiskScore, &n.Incidents, &n.Status); err != nil {
			return nil, fmt.Errorf("scan fraud node: %w", err)
		}
		nodes = append(nodes, n)
	}

	return nodes, rows.Err()
}

// listConnections returns every recorded relationship in insertion order
func listConnections(ctx context.Context, tx pgx.Tx) ([]FraudConnection, error) {
	query := `
		SELECT from_id, to_id, reason, confidence, connection_type
		FROM fraud_connections
		ORDER BY created_at, id
	`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query fraud connections: %w", err)
	}
	defer rows.Close()

	connections := make([]FraudConnection, 0)
	for rows.Next() {
		var c FraudConnection
		if err := rows.Scan(&c.From, &c.To, &c.Reason, &c.Confidence, &c.Type); err != nil {
			return nil, fmt.Errorf("scan fraud connection: %w", err)
		}
		connections = append(connections, c)
	}

	return connections, rows.Err()
}
