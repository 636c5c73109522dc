package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"clientportal/internal/apperr"
	"clientportal/internal/model"
)

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{db: db, logger: logger}
}

const projectColumns = `id, name, description, status, client_id, priority, progress, update_note, tasks, version, created_at, updated_at`

// Create inserts a new project with version 1.
func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Tasks == nil {
		p.Tasks = []model.ProjectTask{}
	}
	p.Version = 1
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	tasks, err := json.Marshal(p.Tasks)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO projects (id, name, description, status, client_id, priority, progress, update_note, tasks, version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `
	_, err = r.db.Exec(ctx, query,
		p.ID, p.Name, p.Description, string(p.Status), p.ClientID, p.Priority,
		p.Progress, p.UpdateNote, tasks, p.Version, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert project", zap.Error(err))
		return err
	}

	r.logger.Info("Project created",
		zap.String("id", p.ID),
		zap.String("client_id", p.ClientID),
	)
	return nil
}

// Update overwrites the full project row. The write is guarded by the
// version the caller read; a stale version on an existing row fails with
// ErrConflict so the caller can re-read and retry.
func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	tasks, err := json.Marshal(p.Tasks)
	if err != nil {
		return err
	}
	p.UpdatedAt = time.Now()

	query := `
        UPDATE projects
        SET name = $2, description = $3, status = $4, client_id = $5, priority = $6,
            progress = $7, update_note = $8, tasks = $9, version = version + 1, updated_at = $10
        WHERE id = $1 AND version = $11
    `
	tag, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Description, string(p.Status), p.ClientID, p.Priority,
		p.Progress, p.UpdateNote, tasks, p.UpdatedAt, p.Version,
	)
	if err != nil {
		r.logger.Error("Failed to update project", zap.Error(err), zap.String("id", p.ID))
		return err
	}
	if tag.RowsAffected() == 0 {
		exists, err := r.exists(ctx, p.ID)
		if err != nil {
			return err
		}
		if exists {
			r.logger.Warn("Project version conflict",
				zap.String("id", p.ID),
				zap.Int64("version", p.Version),
			)
			return apperr.Conflict("Project was modified concurrently, please retry")
		}
		return apperr.NotFound("Project not found")
	}
	p.Version++
	return nil
}

func (r *ProjectRepository) exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *ProjectRepository) scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	var status string
	var tasks []byte
	err := row.Scan(&p.ID, &p.Name, &p.Description, &status, &p.ClientID, &p.Priority,
		&p.Progress, &p.UpdateNote, &tasks, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, err
	}
	// legacy free-text statuses fold into the enum at load time
	p.Status = model.NormalizeStatus(status)
	if err := json.Unmarshal(tasks, &p.Tasks); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	return r.scanProject(r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

func (r *ProjectRepository) findMany(ctx context.Context, query string, args ...any) ([]*model.Project, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		p, err := r.scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) FindAll(ctx context.Context) ([]*model.Project, error) {
	return r.findMany(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
}

func (r *ProjectRepository) FindByClientID(ctx context.Context, clientID string) ([]*model.Project, error) {
	return r.findMany(ctx, `SELECT `+projectColumns+` FROM projects WHERE client_id = $1 ORDER BY created_at DESC`, clientID)
}

func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count)
	return count, err
}

func (r *ProjectRepository) CountByStatus(ctx context.Context, status model.ProjectStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE status = $1`, string(status)).Scan(&count)
	return count, err
}

func (r *ProjectRepository) CountByClientIDAndStatus(ctx context.Context, clientID string, status model.ProjectStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM projects WHERE client_id = $1 AND status = $2`,
		clientID, string(status),
	).Scan(&count)
	return count, err
}
