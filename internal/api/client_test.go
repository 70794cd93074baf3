package api

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/andybalholm/brotli"

	"github.com/gorewood/meso/internal/output"
)

// fakeDoer returns a canned response and records the request it saw.
type fakeDoer struct {
	status   int
	body     []byte
	encoding string
	lastReq  *http.Request
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.lastReq = req
	header := http.Header{}
	if f.encoding != "" {
		header.Set("Content-Encoding", f.encoding)
	}
	return &http.Response{
		StatusCode: f.status,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(f.body)),
	}, nil
}

func newTestClient(doer *fakeDoer) *Client {
	return New("https://example.test", map[string]string{
		"Authorization": "Bearer t",
	}).WithHTTPClient(doer)
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func zlibBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("zlib write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zlib close: %v", err)
	}
	return buf.Bytes()
}

func brotliBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("brotli write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("brotli close: %v", err)
	}
	return buf.Bytes()
}

func TestGetJSON_Encodings(t *testing.T) {
	payload := []byte(`{"name":"Block A"}`)

	tests := []struct {
		name     string
		body     func(t *testing.T) []byte
		encoding string
	}{
		{"plain", func(*testing.T) []byte { return payload }, ""},
		{"gzip", func(t *testing.T) []byte { return gzipBytes(t, payload) }, "gzip"},
		{"deflate zlib", func(t *testing.T) []byte { return zlibBytes(t, payload) }, "deflate"},
		{"brotli", func(t *testing.T) []byte { return brotliBytes(t, payload) }, "br"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &fakeDoer{status: http.StatusOK, body: tt.body(t), encoding: tt.encoding}
			client := newTestClient(doer)

			got, err := client.GetJSON(context.Background(), "/api/training/mesocycles/x")
			if err != nil {
				t.Fatalf("GetJSON() error = %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("GetJSON() = %q, want %q", got, payload)
			}
		})
	}
}

func TestGetJSON_SendsHeaders(t *testing.T) {
	doer := &fakeDoer{status: http.StatusOK, body: []byte(`[]`)}
	client := newTestClient(doer)

	if _, err := client.GetJSON(context.Background(), "/api/training/exercises"); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}

	req := doer.lastReq
	if req == nil {
		t.Fatal("no request captured")
	}
	if got := req.Header.Get("Authorization"); got != "Bearer t" {
		t.Errorf("Authorization = %q, want caller header attached", got)
	}
	if got := req.Header.Get("Accept-Encoding"); got != "gzip, deflate, br" {
		t.Errorf("Accept-Encoding = %q", got)
	}
	if got := req.URL.String(); got != "https://example.test/api/training/exercises" {
		t.Errorf("URL = %q", got)
	}
}

func TestGetJSON_GoneIsSentinel(t *testing.T) {
	doer := &fakeDoer{status: http.StatusGone, body: []byte("gone")}
	client := newTestClient(doer)

	_, err := client.GetJSON(context.Background(), "/api/training/mesocycles/dead")
	if !errors.Is(err, ErrGone) {
		t.Errorf("GetJSON() error = %v, want ErrGone", err)
	}
}

func TestGetJSON_NonOKIsSystemError(t *testing.T) {
	doer := &fakeDoer{status: http.StatusForbidden, body: []byte("denied")}
	client := newTestClient(doer)

	_, err := client.GetJSON(context.Background(), "/api/training/mesocycles")
	if err == nil {
		t.Fatal("GetJSON() expected error for 403")
	}

	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != output.ExitSystemError {
		t.Errorf("GetJSON() error = %v, want system ExitError", err)
	}
}

func TestMesocycles_ParsesRefs(t *testing.T) {
	doer := &fakeDoer{
		status: http.StatusOK,
		body:   []byte(`[{"name":"Block A","key":"k1"},{"name":"Block B","key":"k2"}]`),
	}
	client := newTestClient(doer)

	raw, refs, err := client.Mesocycles(context.Background())
	if err != nil {
		t.Fatalf("Mesocycles() error = %v", err)
	}
	if len(raw) == 0 {
		t.Error("Mesocycles() raw bytes empty")
	}
	if len(refs) != 2 || refs[0].Key != "k1" || refs[1].Name != "Block B" {
		t.Errorf("Mesocycles() refs = %+v", refs)
	}
}

func TestMesocycleDetail_ParsesStructure(t *testing.T) {
	doer := &fakeDoer{
		status: http.StatusOK,
		body: []byte(`{
			"name": "Block A",
			"key": "k1",
			"weeks": [
				{"days": [
					{"label": "Monday", "position": 0, "exercises": [
						{"exerciseId": 5, "muscleGroupId": 2, "sets": [
							{"weight": 100, "reps": 10},
							{"weight": null, "reps": 8}
						]}
					]}
				]}
			]
		}`),
	}
	client := newTestClient(doer)

	_, m, err := client.MesocycleDetail(context.Background(), "k1")
	if err != nil {
		t.Fatalf("MesocycleDetail() error = %v", err)
	}

	if m.Name != "Block A" || len(m.Weeks) != 1 {
		t.Fatalf("MesocycleDetail() = %+v", m)
	}
	entry := m.Weeks[0].Days[0].Exercises[0]
	if entry.ExerciseID != 5 {
		t.Errorf("ExerciseID = %d, want 5", entry.ExerciseID)
	}
	if entry.MuscleGroupID == nil || *entry.MuscleGroupID != 2 {
		t.Errorf("MuscleGroupID = %v, want 2", entry.MuscleGroupID)
	}
	if entry.Sets[0].Weight == nil || *entry.Sets[0].Weight != 100 {
		t.Errorf("set 0 weight = %v, want 100", entry.Sets[0].Weight)
	}
	if entry.Sets[1].Weight != nil {
		t.Errorf("set 1 weight = %v, want nil", entry.Sets[1].Weight)
	}
}

func TestMesocycleDetail_MalformedBody(t *testing.T) {
	doer := &fakeDoer{status: http.StatusOK, body: []byte(`{"weeks": "nope"}`)}
	client := newTestClient(doer)

	if _, _, err := client.MesocycleDetail(context.Background(), "k1"); err == nil {
		t.Fatal("MesocycleDetail() expected error for malformed body")
	}
}
