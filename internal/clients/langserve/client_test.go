package langserve

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yungbote/ragulator-backend/internal/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func testClient(baseURL string) Client {
	return &client{
		log:        testLogger(),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestBatchInvoke_PayloadShape(t *testing.T) {
	var gotPath string
	var gotBody batchRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(batchResponse{Output: []string{"out1", "out2"}})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	outputs, err := c.BatchInvoke(context.Background(), "simple_chain.py", []string{"in1", "in2"}, map[string]interface{}{"k": 3.0})
	if err != nil {
		t.Fatalf("batch invoke: %v", err)
	}

	if gotPath != "/simple_chain/batch" {
		t.Errorf("path = %q, want /simple_chain/batch", gotPath)
	}
	if len(gotBody.Inputs) != 2 || gotBody.Inputs[0] != "in1" {
		t.Errorf("inputs = %v", gotBody.Inputs)
	}
	if gotBody.Config.Configurable["k"] != 3.0 {
		t.Errorf("configurable = %v", gotBody.Config.Configurable)
	}
	if gotBody.Kwargs == nil {
		t.Error("kwargs missing from payload")
	}
	if len(outputs) != 2 || outputs[1] != "out2" {
		t.Errorf("outputs = %v", outputs)
	}
}

func TestBatchInvoke_NilConfigurableSentAsEmptyObject(t *testing.T) {
	var raw map[string]json.RawMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(batchResponse{Output: []string{"out"}})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.BatchInvoke(context.Background(), "chain.py", []string{"in"}, nil); err != nil {
		t.Fatalf("batch invoke: %v", err)
	}

	if string(raw["config"]) != `{"configurable":{}}` {
		t.Errorf("config = %s, want empty configurable object", raw["config"])
	}
}

func TestBatchInvoke_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.BatchInvoke(context.Background(), "chain.py", []string{"in"}, nil); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestBatchInvoke_OutputCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(batchResponse{Output: []string{"only one"}})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.BatchInvoke(context.Background(), "chain.py", []string{"in1", "in2"}, nil); err == nil {
		t.Fatal("expected error when outputs do not match inputs")
	}
}

func TestGetConfigSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rag_chain/config_schema" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"title": "RunnableConfig"})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	schema, err := c.GetConfigSchema(context.Background(), "rag_chain.py")
	if err != nil {
		t.Fatalf("get config schema: %v", err)
	}
	if schema["title"] != "RunnableConfig" {
		t.Errorf("schema = %v", schema)
	}
}
