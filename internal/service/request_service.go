package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	mqcontracts "clientportal/contracts/mq"
	"clientportal/internal/apperr"
	"clientportal/internal/model"
	"clientportal/pkg/metrics"
	"clientportal/pkg/mq"
)

// RequestStore is the slice of the service-request repository the service needs.
type RequestStore interface {
	Create(ctx context.Context, req *model.ServiceRequest) error
	FindAll(ctx context.Context) ([]*model.ServiceRequest, error)
	FindByClientID(ctx context.Context, clientID string) ([]*model.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id string, status model.RequestStatus) error
}

type RequestService struct {
	requests  RequestStore
	publisher *mq.Publisher
	logger    *zap.Logger
}

func NewRequestService(requests RequestStore, publisher *mq.Publisher, logger *zap.Logger) *RequestService {
	return &RequestService{
		requests:  requests,
		publisher: publisher,
		logger:    logger,
	}
}

// Submit stores a service request. Authenticated submissions are linked to
// the principal and backfilled with their contact details; anonymous ones are
// forced to NEW_CLIENT with no client or project linkage.
func (s *RequestService) Submit(ctx context.Context, principal *model.Principal, req *model.ServiceRequest) (*model.ServiceRequest, error) {
	if principal != nil {
		req.ClientID = principal.ID
		if req.FullName == "" {
			req.FullName = principal.Username
		}
		if req.Email == "" {
			req.Email = principal.Email
		}
		if req.RequestType == "" {
			req.RequestType = model.RequestTypeNewProject
		}
	} else {
		req.RequestType = model.RequestTypeNewClient
		req.ClientID = ""
		req.ProjectID = ""
	}

	req.Status = model.RequestPending
	req.CreatedAt = time.Now()

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	s.publish(mqcontracts.RoutingKeyRequestSubmitted, mqcontracts.RequestSubmittedEvent{
		RequestID:   req.ID,
		RequestType: req.RequestType,
		ServiceType: req.ServiceType,
		ClientID:    req.ClientID,
		CreatedAt:   req.CreatedAt,
	})

	s.logger.Info("Service request submitted",
		zap.String("id", req.ID),
		zap.String("request_type", req.RequestType),
	)
	return req, nil
}

func (s *RequestService) GetAllRequests(ctx context.Context) ([]*model.ServiceRequest, error) {
	return s.requests.FindAll(ctx)
}

func (s *RequestService) GetMyRequests(ctx context.Context, clientID string) ([]*model.ServiceRequest, error) {
	return s.requests.FindByClientID(ctx, clientID)
}

// UpdateStatus moves a request to a new status after validating it.
func (s *RequestService) UpdateStatus(ctx context.Context, id, status string) error {
	if !model.ValidRequestStatus(status) {
		return apperr.Invalid("Invalid status value")
	}
	return s.requests.UpdateStatus(ctx, id, model.RequestStatus(status))
}

// publish is best-effort: a broker failure must never fail the request cycle.
func (s *RequestService) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		metrics.IncrementEventPublish(routingKey, "failed")
		s.logger.Warn("Failed to publish event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
		return
	}
	metrics.IncrementEventPublish(routingKey, "ok")
}
