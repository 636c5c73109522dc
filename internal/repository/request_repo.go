package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clientportal/internal/apperr"
	"clientportal/internal/model"
)

type ServiceRequestRepository struct {
	db *pgxpool.Pool
}

func NewServiceRequestRepository(db *pgxpool.Pool) *ServiceRequestRepository {
	return &ServiceRequestRepository{db: db}
}

const requestColumns = `id, full_name, email, company_name, phone_number, service_type, description,
    project_name, priority, budget_range, timeline, reference_links, request_type, status,
    COALESCE(client_id, ''), COALESCE(project_id, ''), created_at`

func (r *ServiceRequestRepository) Create(ctx context.Context, req *model.ServiceRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	query := `
        INSERT INTO service_requests (id, full_name, email, company_name, phone_number, service_type,
            description, project_name, priority, budget_range, timeline, reference_links,
            request_type, status, client_id, project_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NULLIF($15, ''), NULLIF($16, ''), $17)
    `
	_, err := r.db.Exec(ctx, query,
		req.ID, req.FullName, req.Email, req.CompanyName, req.PhoneNumber, req.ServiceType,
		req.Description, req.ProjectName, req.Priority, req.BudgetRange, req.Timeline,
		req.ReferenceLinks, req.RequestType, string(req.Status), req.ClientID, req.ProjectID, req.CreatedAt,
	)
	return err
}

func (r *ServiceRequestRepository) scanRequest(row pgx.Row) (*model.ServiceRequest, error) {
	var req model.ServiceRequest
	var status string
	err := row.Scan(&req.ID, &req.FullName, &req.Email, &req.CompanyName, &req.PhoneNumber,
		&req.ServiceType, &req.Description, &req.ProjectName, &req.Priority, &req.BudgetRange,
		&req.Timeline, &req.ReferenceLinks, &req.RequestType, &status,
		&req.ClientID, &req.ProjectID, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	req.Status = model.RequestStatus(status)
	return &req, nil
}

func (r *ServiceRequestRepository) FindByID(ctx context.Context, id string) (*model.ServiceRequest, error) {
	return r.scanRequest(r.db.QueryRow(ctx, `SELECT `+requestColumns+` FROM service_requests WHERE id = $1`, id))
}

func (r *ServiceRequestRepository) findMany(ctx context.Context, query string, args ...any) ([]*model.ServiceRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*model.ServiceRequest
	for rows.Next() {
		req, err := r.scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *ServiceRequestRepository) FindAll(ctx context.Context) ([]*model.ServiceRequest, error) {
	return r.findMany(ctx, `SELECT `+requestColumns+` FROM service_requests ORDER BY created_at DESC`)
}

func (r *ServiceRequestRepository) FindByClientID(ctx context.Context, clientID string) ([]*model.ServiceRequest, error) {
	return r.findMany(ctx,
		`SELECT `+requestColumns+` FROM service_requests WHERE client_id = $1 ORDER BY created_at DESC`, clientID)
}

// UpdateStatus moves a request to a new status.
func (r *ServiceRequestRepository) UpdateStatus(ctx context.Context, id string, status model.RequestStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE service_requests SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Service request not found with id: %s", id)
	}
	return nil
}

func (r *ServiceRequestRepository) CountByStatus(ctx context.Context, status model.RequestStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM service_requests WHERE status = $1`, string(status)).Scan(&count)
	return count, err
}
