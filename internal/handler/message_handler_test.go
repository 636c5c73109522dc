package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clientportal/internal/model"
)

type fakeMessageStore struct {
	messages []*model.Message
	ops      []string
}

func (f *fakeMessageStore) Create(_ context.Context, m *model.Message) error {
	f.ops = append(f.ops, "create")
	f.messages = append(f.messages, m)
	return nil
}

func (f *fakeMessageStore) FindConversation(_ context.Context, userA, userB string) ([]*model.Message, error) {
	f.ops = append(f.ops, "find")
	var out []*model.Message
	for _, m := range f.messages {
		if (m.SenderID == userA && m.ReceiverID == userB) ||
			(m.SenderID == userB && m.ReceiverID == userA) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageStore) MarkConversationRead(_ context.Context, receiverID, senderID string) error {
	f.ops = append(f.ops, "mark")
	for _, m := range f.messages {
		if m.ReceiverID == receiverID && m.SenderID == senderID && !m.Read {
			m.Read = true
		}
	}
	return nil
}

type fakeUserDirectory struct {
	byRole map[model.Role][]*model.User
}

func (f *fakeUserDirectory) FindByRole(_ context.Context, role model.Role) ([]*model.User, error) {
	return f.byRole[role], nil
}

func messageTestRouter(h *MessageHandler, principal *model.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if principal != nil {
			c.Set(PrincipalKey, principal)
		}
	})
	r.GET("/api/messages/conversation/:userId", h.Conversation)
	r.GET("/api/messages/contacts", h.Contacts)
	return r
}

func unread(id, sender, receiver string) *model.Message {
	return &model.Message{
		ID:         id,
		SenderID:   sender,
		ReceiverID: receiver,
		Content:    "hello",
		Priority:   "NORMAL",
		CreatedAt:  time.Now(),
	}
}

func TestConversationMarksOnlyCallerSideRead(t *testing.T) {
	store := &fakeMessageStore{messages: []*model.Message{
		unread("m1", "client-1", "admin-1"),
		unread("m2", "client-1", "admin-1"),
		unread("m3", "admin-1", "client-1"),
		unread("m4", "client-2", "admin-1"),
	}}
	h := NewMessageHandler(store, &fakeUserDirectory{}, nil, zap.NewNop())
	caller := &model.Principal{ID: "admin-1", Username: "admin", Roles: []model.Role{model.RoleAdmin}}
	r := messageTestRouter(h, caller)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/messages/conversation/client-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.messages[0].Read, "client-1 -> caller should be read")
	assert.True(t, store.messages[1].Read, "client-1 -> caller should be read")
	assert.False(t, store.messages[2].Read, "caller's own outgoing message stays unread")
	assert.False(t, store.messages[3].Read, "other conversation is untouched")
}

func TestConversationMarksReadBeforeFetching(t *testing.T) {
	store := &fakeMessageStore{messages: []*model.Message{
		unread("m1", "client-1", "admin-1"),
	}}
	h := NewMessageHandler(store, &fakeUserDirectory{}, nil, zap.NewNop())
	caller := &model.Principal{ID: "admin-1", Username: "admin", Roles: []model.Role{model.RoleAdmin}}
	r := messageTestRouter(h, caller)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/messages/conversation/client-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"mark", "find"}, store.ops)
	assert.Contains(t, w.Body.String(), `"read":true`)
}

func TestConversationWithoutPrincipal(t *testing.T) {
	h := NewMessageHandler(&fakeMessageStore{}, &fakeUserDirectory{}, nil, zap.NewNop())
	r := messageTestRouter(h, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/messages/conversation/client-1", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestContactsRoleScoping(t *testing.T) {
	dir := &fakeUserDirectory{byRole: map[model.Role][]*model.User{
		model.RoleAdmin:  {{ID: "admin-1", Username: "admin"}},
		model.RoleClient: {{ID: "client-1", Username: "testclient"}},
	}}
	h := NewMessageHandler(&fakeMessageStore{}, dir, nil, zap.NewNop())

	admin := &model.Principal{ID: "admin-1", Roles: []model.Role{model.RoleAdmin}}
	w := httptest.NewRecorder()
	messageTestRouter(h, admin).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/messages/contacts", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "testclient")

	client := &model.Principal{ID: "client-1", Roles: []model.Role{model.RoleClient}}
	w = httptest.NewRecorder()
	messageTestRouter(h, client).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/messages/contacts", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"admin"`)
}
