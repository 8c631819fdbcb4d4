package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jagmansidhu/DaRoommate/internal/auth"
	"github.com/jagmansidhu/DaRoommate/internal/invite"
	"github.com/jagmansidhu/DaRoommate/internal/service"
	"github.com/jagmansidhu/DaRoommate/internal/storage/sqlite"
)

type testEnv struct {
	server *httptest.Server
	jwt    *auth.JWTManager
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	dispatcher := invite.NewDispatcher(invite.LogSender{})
	t.Cleanup(dispatcher.Close)

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	roomSvc := service.NewRoomService(store, dispatcher)
	locks := roomSvc.Locks()
	srv := New(
		roomSvc,
		service.NewChoreService(store, locks),
		service.NewUtilityService(store, locks),
		service.NewLedgerService(store, locks),
		service.NewGroceryService(store),
		jwtManager,
	)

	ts := httptest.NewServer(srv.Router(gin.TestMode))
	t.Cleanup(ts.Close)

	return &testEnv{server: ts, jwt: jwtManager}
}

func (e *testEnv) token(t *testing.T, userID, name string) string {
	t.Helper()

	token, err := e.jwt.Generate(userID, userID+"@example.com", name)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// do sends a JSON request and decodes the response body into out (when
// out is non-nil).
func (e *testEnv) do(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestAuthRequired(t *testing.T) {
	env := setupServer(t)

	if status := env.do(t, http.MethodGet, "/rooms", "", nil, nil); status != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", status)
	}
	if status := env.do(t, http.MethodGet, "/rooms", "not-a-jwt", nil, nil); status != http.StatusUnauthorized {
		t.Errorf("garbage token: expected 401, got %d", status)
	}
}

func TestHealthz(t *testing.T) {
	env := setupServer(t)

	if status := env.do(t, http.MethodGet, "/healthz", "", nil, nil); status != http.StatusOK {
		t.Errorf("healthz: expected 200, got %d", status)
	}
	if status := env.do(t, http.MethodGet, "/metrics", "", nil, nil); status != http.StatusOK {
		t.Errorf("metrics: expected 200, got %d", status)
	}
}

func TestRoomFlow(t *testing.T) {
	env := setupServer(t)
	alice := env.token(t, "alice", "Alice")
	bob := env.token(t, "bob", "Bob")

	var room roomResponse
	status := env.do(t, http.MethodPost, "/rooms", alice, map[string]string{
		"name":    "Maple St",
		"address": "12 Maple St",
	}, &room)
	if status != http.StatusCreated {
		t.Fatalf("create room: expected 201, got %d", status)
	}
	if len(room.Code) != 8 {
		t.Errorf("room code: expected 8 chars, got %q", room.Code)
	}
	if len(room.Members) != 1 || room.Members[0].Role != "HEAD_ROOMMATE" {
		t.Fatalf("owner membership: got %+v", room.Members)
	}

	t.Run("join by code", func(t *testing.T) {
		var joined roomResponse
		status := env.do(t, http.MethodPost, "/rooms/join", bob, map[string]string{"code": room.Code}, &joined)
		if status != http.StatusOK {
			t.Fatalf("join: expected 200, got %d", status)
		}
		if len(joined.Members) != 2 {
			t.Errorf("members: expected 2, got %d", len(joined.Members))
		}
	})

	t.Run("bad code maps to 404", func(t *testing.T) {
		status := env.do(t, http.MethodPost, "/rooms/join", bob, map[string]string{"code": "WRONGCOD"}, nil)
		if status != http.StatusNotFound {
			t.Errorf("expected 404, got %d", status)
		}
	})

	t.Run("missing body maps to 400", func(t *testing.T) {
		status := env.do(t, http.MethodPost, "/rooms", alice, map[string]string{}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
	})

	t.Run("roommate invite maps to 403", func(t *testing.T) {
		status := env.do(t, http.MethodPost, "/rooms/invite", bob, map[string]string{
			"roomId": room.ID,
			"email":  "friend@example.com",
		}, nil)
		if status != http.StatusForbidden {
			t.Errorf("expected 403, got %d", status)
		}
	})

	t.Run("list rooms", func(t *testing.T) {
		var rooms []roomResponse
		status := env.do(t, http.MethodGet, "/rooms", bob, nil, &rooms)
		if status != http.StatusOK {
			t.Fatalf("list: expected 200, got %d", status)
		}
		if len(rooms) != 1 {
			t.Errorf("rooms: expected 1, got %d", len(rooms))
		}
	})

	t.Run("non-head delete maps to 403", func(t *testing.T) {
		status := env.do(t, http.MethodDelete, "/rooms/"+room.ID, bob, nil, nil)
		if status != http.StatusForbidden {
			t.Errorf("expected 403, got %d", status)
		}
	})
}

func TestUtilityOverHTTP(t *testing.T) {
	env := setupServer(t)
	alice := env.token(t, "alice", "Alice")
	bob := env.token(t, "bob", "Bob")
	carol := env.token(t, "carol", "Carol")

	var room roomResponse
	if status := env.do(t, http.MethodPost, "/rooms", alice, map[string]string{"name": "Maple St"}, &room); status != http.StatusCreated {
		t.Fatalf("create room: expected 201, got %d", status)
	}
	for _, tok := range []string{bob, carol} {
		if status := env.do(t, http.MethodPost, "/rooms/join", tok, map[string]string{"code": room.Code}, nil); status != http.StatusOK {
			t.Fatalf("join: expected 200, got %d", status)
		}
	}

	var u utilityResponse
	status := env.do(t, http.MethodPost, "/utility/create", alice, map[string]any{
		"roomId":               room.ID,
		"utilityName":          "Electricity - March",
		"utilityPrice":         100.00,
		"utilDistributionEnum": "EQUAL_SPLIT",
	}, &u)
	if status != http.StatusCreated {
		t.Fatalf("create utility: expected 201, got %d", status)
	}
	if len(u.Shares) != 3 {
		t.Fatalf("shares: expected 3, got %d", len(u.Shares))
	}
	// 100.00 over three members: 33.34 + 33.33 + 33.33.
	if u.Shares[0].Amount != 33.34 {
		t.Errorf("first share: expected 33.34, got %.2f", u.Shares[0].Amount)
	}
	var sum float64
	for _, sh := range u.Shares {
		sum += sh.Amount
	}
	if fmt.Sprintf("%.2f", sum) != "100.00" {
		t.Errorf("share sum: expected 100.00, got %.2f", sum)
	}

	t.Run("member share listing", func(t *testing.T) {
		var utilities []utilityResponse
		memberID := u.Shares[1].MemberID
		status := env.do(t, http.MethodGet, "/utility/"+memberID+"/room/"+room.ID, bob, nil, &utilities)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if len(utilities) != 1 {
			t.Errorf("utilities: expected 1, got %d", len(utilities))
		}
	})

	t.Run("unsupported distribution maps to 400", func(t *testing.T) {
		status := env.do(t, http.MethodPost, "/utility/create", alice, map[string]any{
			"roomId":               room.ID,
			"utilityName":          "Water",
			"utilityPrice":         10.0,
			"utilDistributionEnum": "BY_USAGE",
		}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
	})
}

func TestChoresOverHTTP(t *testing.T) {
	env := setupServer(t)
	alice := env.token(t, "alice", "Alice")

	var room roomResponse
	if status := env.do(t, http.MethodPost, "/rooms", alice, map[string]string{"name": "Maple St"}, &room); status != http.StatusCreated {
		t.Fatalf("create room: expected 201, got %d", status)
	}

	// Pad past four weekly boundaries so the serving clock moving a few
	// milliseconds never drops the fourth instance.
	deadline := time.Now().Add(29 * 24 * time.Hour).Format(time.RFC3339)
	var instances []choreResponse
	status := env.do(t, http.MethodPost, "/chores/room/"+room.ID, alice, []map[string]any{
		{"choreName": "Trash", "frequency": 1, "frequencyUnit": "WEEKLY", "deadline": deadline},
	}, &instances)
	if status != http.StatusCreated {
		t.Fatalf("create chores: expected 201, got %d", status)
	}
	if len(instances) != 4 {
		t.Errorf("instances: expected 4, got %d", len(instances))
	}

	t.Run("batch with past deadline is rejected whole", func(t *testing.T) {
		past := time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
		status := env.do(t, http.MethodPost, "/chores/room/"+room.ID, alice, []map[string]any{
			{"choreName": "Mop", "frequency": 1, "frequencyUnit": "WEEKLY", "deadline": deadline},
			{"choreName": "Dust", "frequency": 1, "frequencyUnit": "WEEKLY", "deadline": past},
		}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}

		var remaining []choreResponse
		if s := env.do(t, http.MethodGet, "/chores/room/"+room.ID, alice, nil, &remaining); s != http.StatusOK {
			t.Fatalf("list chores: expected 200, got %d", s)
		}
		if len(remaining) != 4 {
			t.Errorf("instances after rejected batch: expected 4, got %d", len(remaining))
		}
	})

	t.Run("remove by type reports the count", func(t *testing.T) {
		var resp struct {
			Removed int64 `json:"removed"`
		}
		status := env.do(t, http.MethodDelete, "/chores/room/"+room.ID+"/type/Trash", alice, nil, &resp)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if resp.Removed != 4 {
			t.Errorf("removed: expected 4, got %d", resp.Removed)
		}
	})
}

func TestLedgerOverHTTP(t *testing.T) {
	env := setupServer(t)
	alice := env.token(t, "alice", "Alice")
	bob := env.token(t, "bob", "Bob")

	var room roomResponse
	if status := env.do(t, http.MethodPost, "/rooms", alice, map[string]string{"name": "Maple St"}, &room); status != http.StatusCreated {
		t.Fatalf("create room: expected 201, got %d", status)
	}
	if status := env.do(t, http.MethodPost, "/rooms/join", bob, map[string]string{"code": room.Code}, nil); status != http.StatusOK {
		t.Fatalf("join: expected 200, got %d", status)
	}

	var entry ledgerEntryResponse
	status := env.do(t, http.MethodPost, "/api/rooms/"+room.ID+"/ledger", alice, map[string]any{
		"title":     "March rent",
		"entryType": "RENT",
		"total":     1500.00,
		"splitType": "EQUAL",
	}, &entry)
	if status != http.StatusCreated {
		t.Fatalf("create entry: expected 201, got %d", status)
	}
	if entry.Status != "PENDING" {
		t.Errorf("status: expected PENDING, got %s", entry.Status)
	}

	var approved ledgerEntryResponse
	if s := env.do(t, http.MethodPost, "/api/ledger/"+entry.ID+"/splits/equal", alice, nil, &approved); s != http.StatusOK {
		t.Fatalf("equal splits: expected 200, got %d", s)
	}
	if len(approved.Splits) != 2 {
		t.Fatalf("splits: expected 2, got %d", len(approved.Splits))
	}

	t.Run("payment moves the entry to PAID", func(t *testing.T) {
		for _, sp := range approved.Splits {
			var paid ledgerSplitResponse
			s := env.do(t, http.MethodPost, "/api/ledger/splits/"+sp.ID+"/pay", alice, map[string]any{
				"amount": sp.Owed,
			}, &paid)
			if s != http.StatusOK {
				t.Fatalf("pay: expected 200, got %d", s)
			}
			if paid.Status != "PAID" {
				t.Errorf("split status: expected PAID, got %s", paid.Status)
			}
		}

		var settled ledgerEntryResponse
		if s := env.do(t, http.MethodGet, "/api/ledger/"+entry.ID, bob, nil, &settled); s != http.StatusOK {
			t.Fatalf("get entry: expected 200, got %d", s)
		}
		if settled.Status != "PAID" {
			t.Errorf("entry status: expected PAID, got %s", settled.Status)
		}
	})

	t.Run("balances", func(t *testing.T) {
		var balances []balanceResponse
		if s := env.do(t, http.MethodGet, "/api/rooms/"+room.ID+"/ledger/balances", bob, nil, &balances); s != http.StatusOK {
			t.Fatalf("balances: expected 200, got %d", s)
		}
		if len(balances) != 2 {
			t.Errorf("balances: expected 2, got %d", len(balances))
		}
		for _, b := range balances {
			if b.Outstanding != 0 {
				t.Errorf("outstanding for %s: expected 0, got %.2f", b.MemberID, b.Outstanding)
			}
		}
	})
}
