package solver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubestudio"
)

func TestClientSolve(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/solve" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(Response{Moves: cubestudio.DemoSolution})
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	moves, err := c.Solve(context.Background(), cubestudio.SolvedState)
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	if moves != cubestudio.DemoSolution {
		t.Errorf("moves = %q", moves)
	}
	if got.State != cubestudio.SolvedState {
		t.Errorf("server got state %q", got.State)
	}
}

func TestClientEmptyMovesIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"moves": ""}`))
	}))
	defer srv.Close()

	moves, err := New(srv.URL).Solve(context.Background(), cubestudio.SolvedState)
	if err != nil || moves != "" {
		t.Errorf("Solve = %q, %v", moves, err)
	}
}

func TestClientLeavesStateCheckingToTheService(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid cube state notation"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Solve(context.Background(), "UUU")
	if !errors.Is(err, cubestudio.ErrSolveFailed) {
		t.Fatalf("Solve = %v, want ErrSolveFailed", err)
	}
	if got.State != "UUU" {
		t.Errorf("service got state %q, want the string as given", got.State)
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		status2 int
		message string
	}{
		{"server error with body", 400, `{"error":"invalid cube state notation","code":"INVALID_STATE"}`, 400, "invalid cube state notation"},
		{"server error plain", 500, `oops`, 500, "Internal Server Error"},
		{"malformed body", 200, `not json`, 200, "malformed response"},
		{"missing moves", 200, `{"solution":"R"}`, 200, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).Solve(context.Background(), cubestudio.SolvedState)
			if !errors.Is(err, cubestudio.ErrSolveFailed) {
				t.Fatalf("error %v should match ErrSolveFailed", err)
			}
			var sErr *cubestudio.SolveRequestError
			if !errors.As(err, &sErr) {
				t.Fatalf("error %T is not *SolveRequestError", err)
			}
			if sErr.Status != tt.status2 {
				t.Errorf("Status = %d, want %d", sErr.Status, tt.status2)
			}
			if tt.message != "" && sErr.Message != tt.message {
				t.Errorf("Message = %q, want %q", sErr.Message, tt.message)
			}
		})
	}
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url).Solve(context.Background(), cubestudio.SolvedState)
	var sErr *cubestudio.SolveRequestError
	if !errors.As(err, &sErr) {
		t.Fatalf("error %v is not *SolveRequestError", err)
	}
	if sErr.Status != 0 || sErr.Err == nil {
		t.Errorf("transport failure = %+v", sErr)
	}
}

func TestClientHonorsContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(srv.URL).Solve(ctx, cubestudio.SolvedState)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Solve = %v, want deadline exceeded", err)
	}
}

func TestClientDrivesStore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{Moves: "R U R' U'"})
	}))
	defer srv.Close()

	store := cubestudio.NewStore(cubestudio.WithSolver(New(srv.URL)))
	if err := store.Solve(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := cubestudio.FormatMoves(store.Snapshot().Moves); got != "R U R' U'" {
		t.Errorf("store moves = %q", got)
	}
}
