package flightapi

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/triple-tgg/sams-sub001/internal/model"
	"github.com/triple-tgg/sams-sub001/pkg/errors"
)

func TestValidateFlights_SendsBearerAndDecodesVerdicts(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]any{"token": "tok-9", "expires_in": 3600})
		case "/flight/importlist-filghtinfo-validate":
			gotAuth = r.Header.Get("Authorization")
			var items []model.ValidateItem
			if err := json.NewDecoder(r.Body).Decode(&items); err != nil || len(items) != 2 {
				t.Errorf("bad request body: %v (%d items)", err, len(items))
			}
			json.NewEncoder(w).Encode(map[string]any{
				"responseData": map[string]any{
					"flagPass": false,
					"validateFilghtList": []map[string]any{
						{"rowId": 1, "statusText": ""},
						{"rowId": 2, "statusText": "Duplicate flight"},
					},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(authTestConfig(srv.URL))
	resp, err := client.ValidateFlights(context.Background(), []model.ValidateItem{
		{RowID: 1}, {RowID: 2},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if gotAuth != "Bearer tok-9" {
		t.Fatalf("authorization header want 'Bearer tok-9' got %q", gotAuth)
	}
	if resp.ResponseData.FlagPass {
		t.Fatalf("flagPass want false")
	}
	if len(resp.ResponseData.ValidateFilghtList) != 2 ||
		resp.ResponseData.ValidateFilghtList[1].StatusText != "Duplicate flight" {
		t.Fatalf("verdicts not decoded: %+v", resp.ResponseData.ValidateFilghtList)
	}
}

func TestInsertFlights_SurfacesServerMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]any{"token": "tok-9", "expires_in": 3600})
		case "/flight/importlist-filghtinfo":
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]any{"message": "flight already exists"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(authTestConfig(srv.URL))
	err := client.InsertFlights(context.Background(), []model.InsertItem{{RowID: 1, UserName: "ops.user"}})
	if !stderrors.Is(err, errors.ErrFlightAPIError) {
		t.Fatalf("want ErrFlightAPIError got %v", err)
	}
	if got := err.Error(); got != "flight API error: flight already exists" {
		t.Fatalf("server message not surfaced: %q", got)
	}
}
