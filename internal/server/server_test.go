package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"sort"
	"strings"
	"testing"

	"github.com/ironsheep/image-filters-mcp/internal/compute"
	"github.com/ironsheep/image-filters-mcp/internal/engine"
)

// serveLines runs Serve over the given request lines and decodes every
// response written.
func serveLines(t *testing.T, s *Server, lines ...string) []MCPResponse {
	t.Helper()

	var out bytes.Buffer
	if err := s.Serve(context.Background(), strings.NewReader(strings.Join(lines, "\n")), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	var responses []MCPResponse
	dec := json.NewDecoder(&out)
	for dec.More() {
		var resp MCPResponse
		if err := dec.Decode(&resp); err != nil {
			t.Fatalf("invalid response: %v", err)
		}
		responses = append(responses, resp)
	}
	return responses
}

func TestNew(t *testing.T) {
	s := New(nil)
	if s.cache == nil {
		t.Fatal("New(nil) did not initialize cache")
	}
	if s.engine == nil {
		t.Fatal("New(nil) did not create an engine")
	}
	if s.engine.Backend() != engine.Sequential {
		t.Errorf("New(nil) engine backend: got %v, want sequential", s.engine.Backend())
	}

	eng := engine.New(engine.Options{Device: compute.NewSoftware()})
	defer eng.Close()
	if New(eng).engine != eng {
		t.Error("New did not keep the supplied engine")
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{"string id", `{"jsonrpc":"2.0","id":"apply-1","method":"tools/call"}`, "apply-1", "tools/call"},
		{"number id", `{"jsonrpc":"2.0","id":7,"method":"ping"}`, float64(7), "ping"},
		{"notification", `{"jsonrpc":"2.0","method":"notifications/initialized"}`, nil, "notifications/initialized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}
			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestMCPResponse_OmitsEmptyFields(t *testing.T) {
	ok, _ := json.Marshal(MCPResponse{JSONRPC: "2.0", ID: 1, Result: map[string]interface{}{}})
	if strings.Contains(string(ok), `"error"`) {
		t.Errorf("success response carries an error field: %s", ok)
	}

	failed, _ := json.Marshal(MCPResponse{JSONRPC: "2.0", ID: 1, Error: &MCPError{Code: -32000, Message: "Tool execution failed"}})
	if strings.Contains(string(failed), `"result"`) {
		t.Errorf("error response carries a result field: %s", failed)
	}
}

func TestHandleInitialize(t *testing.T) {
	s := New(nil)
	resp := s.handleRequest(context.Background(), &MCPRequest{JSONRPC: "2.0", ID: "init-1", Method: "initialize"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("initialize failed: %+v", resp)
	}
	if resp.ID != "init-1" {
		t.Errorf("ID: got %v, want init-1", resp.ID)
	}

	result := resp.Result.(map[string]interface{})
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}
	serverInfo := result["serverInfo"].(map[string]interface{})
	if serverInfo["name"] != "image-filters-mcp" {
		t.Errorf("serverInfo.name: got %v", serverInfo["name"])
	}
	if _, ok := result["capabilities"].(map[string]interface{})["tools"]; !ok {
		t.Error("capabilities should advertise tools")
	}
}

func TestHandleRequest_Routing(t *testing.T) {
	s := New(nil)
	tests := []struct {
		method   string
		wantNil  bool
		wantCode int
	}{
		{"ping", false, 0},
		{"tools/list", false, 0},
		{"notifications/initialized", true, 0},
		{"resources/list", false, -32601},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			resp := s.handleRequest(context.Background(), &MCPRequest{JSONRPC: "2.0", ID: 3, Method: tt.method})
			if tt.wantNil {
				if resp != nil {
					t.Errorf("%s should not be answered", tt.method)
				}
				return
			}
			if resp == nil {
				t.Fatal("handleRequest returned nil")
			}
			if tt.wantCode == 0 && resp.Error != nil {
				t.Errorf("unexpected error: %+v", resp.Error)
			}
			if tt.wantCode != 0 && (resp.Error == nil || resp.Error.Code != tt.wantCode) {
				t.Errorf("error: got %+v, want code %d", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestServe_ToolsListNamesFilterTools(t *testing.T) {
	responses := serveLines(t, New(nil), `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	if len(responses) != 1 || responses[0].Error != nil {
		t.Fatalf("unexpected responses: %+v", responses)
	}

	// Decoded from the wire, so the tools arrive as generic JSON.
	raw, _ := json.Marshal(responses[0].Result)
	var listed struct {
		Tools []Tool `json:"tools"`
	}
	if err := json.Unmarshal(raw, &listed); err != nil {
		t.Fatalf("invalid tools/list result: %v", err)
	}

	var names []string
	for _, tool := range listed.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)

	want := []string{
		"filter_apply", "filter_categories", "filter_compare_backends", "filter_list", "filter_metadata",
		"image_adjust_hue", "image_crop", "image_dimensions", "image_flip", "image_histogram",
		"image_load", "image_resize", "image_rotate", "image_sample_color", "image_sample_colors_multi",
	}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("tools:\n got %v\nwant %v", names, want)
	}
}

func TestServe_FilterSession(t *testing.T) {
	imgPath := createTestImageFile(t, 6, 4, color.RGBA{255, 0, 0, 255})
	eng := engine.New(engine.Options{Device: compute.NewSoftware()})
	defer eng.Close()

	call := func(id int, tool, args string) string {
		return fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":"tools/call","params":{"name":%q,"arguments":%s}}`, id, tool, args)
	}
	pathArg := fmt.Sprintf("%q", imgPath)

	responses := serveLines(t, New(eng),
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		call(2, "filter_apply", `{"path":`+pathArg+`,"filter":"grayscale","intensity":1}`),
		call(3, "filter_compare_backends", `{"path":`+pathArg+`,"filter":"blur","intensity":0.4}`),
		call(4, "image_rotate", `{"path":`+pathArg+`,"degrees":90}`),
		call(5, "filter_apply", `{"path":`+pathArg+`,"filter":"glow"}`),
	)

	if len(responses) != 5 {
		t.Fatalf("got %d responses, want 5", len(responses))
	}
	for i, resp := range responses[:4] {
		if resp.Error != nil {
			t.Errorf("response %d: unexpected error %+v", i, resp.Error)
		}
	}
	if responses[4].Error == nil || responses[4].Error.Code != -32000 {
		t.Errorf("unknown filter: got %+v, want tool error", responses[4].Error)
	}

	text := func(resp MCPResponse) string {
		raw, _ := json.Marshal(resp.Result)
		var wire struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		}
		if err := json.Unmarshal(raw, &wire); err != nil || len(wire.Content) != 1 {
			t.Fatalf("bad tool result: %s", raw)
		}
		return wire.Content[0].Text
	}

	var applied FilterResult
	if err := json.Unmarshal([]byte(text(responses[1])), &applied); err != nil {
		t.Fatalf("filter_apply result: %v", err)
	}
	if applied.Backend != "parallel" || applied.ImageResult == nil || applied.Width != 6 {
		t.Errorf("filter_apply: got %+v", applied)
	}

	var compared CompareResult
	if err := json.Unmarshal([]byte(text(responses[2])), &compared); err != nil {
		t.Fatalf("filter_compare_backends result: %v", err)
	}
	if !compared.WithinTolerance {
		t.Errorf("backends disagree: %+v", compared)
	}

	var rotated struct{ Width, Height int }
	if err := json.Unmarshal([]byte(text(responses[3])), &rotated); err != nil {
		t.Fatalf("image_rotate result: %v", err)
	}
	if rotated.Width != 4 || rotated.Height != 6 {
		t.Errorf("rotate 90: got %dx%d, want 4x6", rotated.Width, rotated.Height)
	}
}

func TestServe_SkipsBlankAndMalformedLines(t *testing.T) {
	responses := serveLines(t, New(nil),
		`{"jsonrpc":"2.0","id":1,"method":"ping"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"filter_categories","arguments":{}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"nonexistent"}`,
	)

	if len(responses) != 3 {
		t.Fatalf("got %d responses, want 3", len(responses))
	}
	if responses[1].Error != nil {
		t.Errorf("filter_categories failed: %v", responses[1].Error)
	}
	if responses[2].Error == nil || responses[2].Error.Code != -32601 {
		t.Errorf("unknown method: got %+v", responses[2].Error)
	}
}

func TestServe_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(nil).Serve(ctx, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`), &out)
	if err != context.Canceled {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output: %s", out.String())
	}
}
