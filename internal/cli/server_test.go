package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/skyhookui/skyhook/pkg/geom"
	"github.com/skyhookui/skyhook/pkg/overlay"
	"github.com/skyhookui/skyhook/pkg/scenario"
	"github.com/skyhookui/skyhook/pkg/store"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newRouter(store.NewMemoryStore(), log.New(io.Discard)))
	t.Cleanup(srv.Close)
	return srv
}

func testScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Name:     "dropdown",
		Viewport: geom.Size{Width: 100, Height: 100},
		Origin:   scenario.RectSpec{Top: 10, Left: 10, Width: 20, Height: 20},
		Overlay:  geom.Size{Width: 30, Height: 30},
		Positions: []overlay.Position{
			{OriginX: overlay.HEnd, OriginY: overlay.VBottom,
				OverlayX: overlay.HStart, OverlayY: overlay.VTop},
		},
	}
}

// request sends a JSON request and returns the response with its body read.
func request(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func decodeErrorCode(t *testing.T, data []byte) string {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode error body %q: %v", data, err)
	}
	return body.Error.Code
}

func TestHealthz(t *testing.T) {
	srv := testServer(t)
	resp, data := request(t, http.MethodGet, srv.URL+"/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestSolveEndpoint(t *testing.T) {
	srv := testServer(t)
	resp, data := request(t, http.MethodPost, srv.URL+"/v1/solve", testScenario())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, data)
	}
	var res scenario.Result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if want := geom.NewRect(30, 30, 30, 30); res.Placement.OverlayRect != want {
		t.Errorf("overlay rect = %+v, want %+v", res.Placement.OverlayRect, want)
	}
	if res.Placement.Pushed {
		t.Error("a fitting overlay must not be pushed")
	}
}

func TestSolveEndpointRejectsInvalidScenario(t *testing.T) {
	srv := testServer(t)

	sc := testScenario()
	sc.Viewport = geom.Size{}
	resp, data := request(t, http.MethodPost, srv.URL+"/v1/solve", sc)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if code := decodeErrorCode(t, data); code != "INVALID_SCENARIO" {
		t.Errorf("error code = %q, want INVALID_SCENARIO", code)
	}
}

func TestSolveEndpointRejectsMalformedJSON(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Post(srv.URL+"/v1/solve", "application/json", bytes.NewBufferString("{not json"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestScenarioCRUD(t *testing.T) {
	srv := testServer(t)
	base := srv.URL + "/v1/scenarios"

	// Create.
	resp, data := request(t, http.MethodPost, base, testScenario())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", resp.StatusCode, data)
	}
	var rec store.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("create must assign an ID")
	}

	// Get.
	resp, data = request(t, http.MethodGet, base+"/"+rec.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}

	// List.
	resp, data = request(t, http.MethodGet, base, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var recs []store.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("list returned %d records, want 1", len(recs))
	}

	// Update.
	updated := testScenario()
	updated.Margin = 10
	resp, data = request(t, http.MethodPut, base+"/"+rec.ID, updated)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, body %s", resp.StatusCode, data)
	}
	var after store.Record
	if err := json.Unmarshal(data, &after); err != nil {
		t.Fatalf("decode updated record: %v", err)
	}
	if after.Scenario.Margin != 10 {
		t.Errorf("update not applied, margin = %v", after.Scenario.Margin)
	}

	// Solve stored.
	resp, data = request(t, http.MethodGet, base+"/"+rec.ID+"/solve", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stored solve status = %d, body %s", resp.StatusCode, data)
	}
	var res scenario.Result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	// The 10px margin narrows the viewport; the panel still fits below.
	if want := geom.NewRect(30, 30, 30, 30); res.Placement.OverlayRect != want {
		t.Errorf("overlay rect = %+v, want %+v", res.Placement.OverlayRect, want)
	}

	// Delete.
	resp, _ = request(t, http.MethodDelete, base+"/"+rec.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	resp, data = request(t, http.MethodGet, base+"/"+rec.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", resp.StatusCode)
	}
	if code := decodeErrorCode(t, data); code != "NOT_FOUND" {
		t.Errorf("error code = %q, want NOT_FOUND", code)
	}
}

func TestCreateRejectsInvalidScenario(t *testing.T) {
	srv := testServer(t)
	sc := testScenario()
	sc.Positions = nil
	resp, data := request(t, http.MethodPost, srv.URL+"/v1/scenarios", sc)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", resp.StatusCode, data)
	}
}

func TestUnknownScenarioRoutes(t *testing.T) {
	srv := testServer(t)
	for _, path := range []string{"/v1/scenarios/nope", "/v1/scenarios/nope/solve"} {
		resp, _ := request(t, http.MethodGet, srv.URL+path, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, resp.StatusCode)
		}
	}
	resp, _ := request(t, http.MethodDelete, srv.URL+"/v1/scenarios/nope", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("DELETE status = %d, want 404", resp.StatusCode)
	}
}
