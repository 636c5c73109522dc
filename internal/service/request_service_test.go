package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clientportal/internal/apperr"
	"clientportal/internal/model"
)

type fakeRequestStore struct {
	requests map[string]*model.ServiceRequest
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{requests: make(map[string]*model.ServiceRequest)}
}

func (f *fakeRequestStore) Create(_ context.Context, req *model.ServiceRequest) error {
	if req.ID == "" {
		req.ID = "req-1"
	}
	copied := *req
	f.requests[req.ID] = &copied
	return nil
}

func (f *fakeRequestStore) FindAll(_ context.Context) ([]*model.ServiceRequest, error) {
	var out []*model.ServiceRequest
	for _, r := range f.requests {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRequestStore) FindByClientID(_ context.Context, clientID string) ([]*model.ServiceRequest, error) {
	var out []*model.ServiceRequest
	for _, r := range f.requests {
		if r.ClientID == clientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestStore) UpdateStatus(_ context.Context, id string, status model.RequestStatus) error {
	r, ok := f.requests[id]
	if !ok {
		return apperr.NotFound("Service request not found with id: %s", id)
	}
	r.Status = status
	return nil
}

func newRequestService(store *fakeRequestStore) *RequestService {
	return NewRequestService(store, nil, zap.NewNop())
}

func TestSubmitAnonymousIsForcedToNewClient(t *testing.T) {
	store := newFakeRequestStore()
	svc := newRequestService(store)

	req, err := svc.Submit(context.Background(), nil, &model.ServiceRequest{
		FullName:    "Walk In",
		Email:       "walkin@example.com",
		RequestType: model.RequestTypeProjectUpdate,
		ClientID:    "sneaky-client",
		ProjectID:   "sneaky-project",
	})
	require.NoError(t, err)
	require.Equal(t, model.RequestTypeNewClient, req.RequestType)
	require.Empty(t, req.ClientID)
	require.Empty(t, req.ProjectID)
	require.Equal(t, model.RequestPending, req.Status)
	require.False(t, req.CreatedAt.IsZero())
}

func TestSubmitAuthenticatedLinksClient(t *testing.T) {
	store := newFakeRequestStore()
	svc := newRequestService(store)

	principal := &model.Principal{
		ID:       "client-1",
		Username: "carol",
		Email:    "carol@example.com",
		Roles:    []model.Role{model.RoleClient},
	}

	req, err := svc.Submit(context.Background(), principal, &model.ServiceRequest{
		ServiceType: "Web Development",
	})
	require.NoError(t, err)
	require.Equal(t, "client-1", req.ClientID)
	require.Equal(t, "carol", req.FullName)
	require.Equal(t, "carol@example.com", req.Email)
	require.Equal(t, model.RequestTypeNewProject, req.RequestType)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc := newRequestService(newFakeRequestStore())

	err := svc.UpdateStatus(context.Background(), "req-1", "SHIPPED")
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestUpdateStatus(t *testing.T) {
	store := newFakeRequestStore()
	svc := newRequestService(store)

	req, err := svc.Submit(context.Background(), nil, &model.ServiceRequest{Email: "x@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), req.ID, "APPROVED"))
	require.Equal(t, model.RequestApproved, store.requests[req.ID].Status)

	err = svc.UpdateStatus(context.Background(), "missing", "REJECTED")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
