package resthttp_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"daylist/internal/backend/resthttp"
	"daylist/internal/server"
	"daylist/internal/service"
	"daylist/internal/store"
)

var secret = []byte("client-test-secret")

// newClient spins up the real server over an in-memory store and returns
// a client authenticated as userID.
func newClient(t *testing.T, userID string) *resthttp.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	srv := httptest.NewServer(server.NewServer(st, secret).Handler())
	t.Cleanup(func() {
		srv.Close()
		st.Close()
	})

	token, err := server.MintToken(userID, secret, time.Hour)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}
	return resthttp.NewWithToken(context.Background(), srv.URL, token)
}

func TestListRoundTrip(t *testing.T) {
	c := newClient(t, "u1")
	ctx := context.Background()

	lists, err := c.ListLists(ctx)
	if err != nil {
		t.Fatalf("ListLists: %v", err)
	}
	if len(lists) != 1 || !lists[0].IsDefault {
		t.Fatalf("expected the implicit default list, got %v", lists)
	}

	work, err := c.CreateList(ctx, "Work")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if _, err := c.CreateList(ctx, "Work"); !errors.Is(err, service.ErrValidation) {
		t.Errorf("expected ErrValidation for duplicate name, got %v", err)
	}

	renamed, err := c.RenameList(ctx, work.ID, "Job")
	if err != nil {
		t.Fatalf("RenameList: %v", err)
	}
	if renamed.Name != "Job" {
		t.Errorf("expected Job, got %q", renamed.Name)
	}

	if err := c.DeleteList(ctx, work.ID); err != nil {
		t.Fatalf("DeleteList: %v", err)
	}
	if err := c.DeleteList(ctx, work.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound for stale id, got %v", err)
	}
}

func TestTaskRoundTrip(t *testing.T) {
	c := newClient(t, "u1")
	ctx := context.Background()

	lists, err := c.ListLists(ctx)
	if err != nil {
		t.Fatalf("ListLists: %v", err)
	}
	listID := lists[0].ID

	a, err := c.CreateTask(ctx, listID, "alpha")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	b, err := c.CreateTask(ctx, listID, "beta")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if a.Position != 0 || b.Position != 1 {
		t.Errorf("expected server-assigned positions 0,1 got %d,%d", a.Position, b.Position)
	}

	star := true
	starred, err := c.UpdateTask(ctx, a.ID, service.TaskPatch{IsImportant: &star})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if !starred.IsImportant {
		t.Error("expected starred task")
	}

	important, err := c.ListImportant(ctx)
	if err != nil {
		t.Fatalf("ListImportant: %v", err)
	}
	if len(important) != 1 || important[0].ID != a.ID {
		t.Errorf("expected [a], got %v", important)
	}

	if err := c.ReorderTasks(ctx, listID, []service.TaskOrder{
		{ID: b.ID, Position: 0}, {ID: a.ID, Position: 1},
	}); err != nil {
		t.Fatalf("ReorderTasks: %v", err)
	}
	tasks, err := c.ListTasks(ctx, listID)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if tasks[0].ID != b.ID || tasks[1].ID != a.ID {
		t.Errorf("expected [b a], got %v", tasks)
	}

	if err := c.DeleteTask(ctx, a.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, err := c.UpdateTask(ctx, a.ID, service.TaskPatch{IsImportant: &star}); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	c := newClient(t, "u2")
	victim := newClient(t, "u1")
	ctx := context.Background()

	lists, err := victim.ListLists(ctx)
	if err != nil {
		t.Fatalf("ListLists: %v", err)
	}

	// Unknown token.
	bad := resthttp.NewWithToken(ctx, "http://127.0.0.1:0", "nope")
	if _, err := bad.ListLists(ctx); err == nil {
		t.Error("expected transport failure against a dead address")
	}

	// NOTE: the two clients point at different in-memory stores, so the
	// foreign list id is simply unknown there: NotFound, never a leak of
	// the other user's data.
	if _, err := c.ListTasks(ctx, lists[0].ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if _, err := c.CreateTask(ctx, "no-such-list", ""); !errors.Is(err, service.ErrValidation) {
		// Empty titles are rejected before existence is considered.
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
