package mcp

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/ismism/internal/catalog"
)

// --- Test helpers ---

func makeIsm(c, name string, aliases ...string) *catalog.Ism {
	return &catalog.Ism{Code: c, Name: name, Aliases: aliases, Description: name + "。"}
}

func makeTestHandle(t *testing.T) *catalog.Handle {
	t.Helper()
	ds, err := catalog.New([]*catalog.Ism{
		makeIsm("1-1-1-1", "科学实在论", "实在论"),
		makeIsm("1-1-2-1", "经验论"),
		makeIsm("1-2-1-1", "唯物论"),
		makeIsm("$-1-1-1", "无主体论"),
		makeIsm("1-1-1-3", "相对论"),
		makeIsm("1-1-x", "残缺码"),
	})
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return catalog.NewHandle(ds, "")
}

func codes(isms []*catalog.Ism) []string {
	out := make([]string, 0, len(isms))
	for _, ism := range isms {
		out = append(out, ism.Code)
	}
	return out
}

// --- Search handler tests ---

func TestHandleSearch(t *testing.T) {
	handler := handleSearch(makeTestHandle(t))

	tests := []struct {
		name      string
		query     string
		wantValid bool
		wantCodes []string
	}{
		{"wildcards after first segment", "1-1-$-$", true, []string{"1-1-1-1", "1-1-2-1", "1-1-1-3"}},
		{"subjectless only", "$-$-$-$", true, []string{"$-1-1-1"}},
		{"exact", "1-2-1-1", true, []string{"1-2-1-1"}},
		{"no match", "4-4-4-4", true, []string{}},
		{"too few segments", "1-1-$", false, []string{}},
		{"invalid segment", "1-1-9-$", false, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, SearchInput{Query: tt.query})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", out.Valid, tt.wantValid)
			}
			if !tt.wantValid && out.Hint == "" {
				t.Error("Hint should explain a malformed query")
			}
			if diff := cmp.Diff(tt.wantCodes, codes(out.Isms)); diff != "" {
				t.Errorf("codes mismatch (-want +got):\n%s", diff)
			}
			if out.Count != len(out.Isms) {
				t.Errorf("Count = %d, len(Isms) = %d", out.Count, len(out.Isms))
			}
		})
	}
}

func TestHandleSearch_SeesReload(t *testing.T) {
	handle := makeTestHandle(t)
	handler := handleSearch(handle)

	handle.Swap(catalog.MustNew([]*catalog.Ism{makeIsm("2-2-2-2", "新论")}))

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, SearchInput{Query: "$-$-$-$"})
	if err != nil {
		t.Fatal(err)
	}
	if out.Count != 0 {
		t.Errorf("Count = %d after swapping in a dataset with no subjectless isms", out.Count)
	}
}

// --- Show handler tests ---

func TestHandleShow(t *testing.T) {
	handler := handleShow(makeTestHandle(t))

	tests := []struct {
		name     string
		input    ShowInput
		wantCode string
		wantErr  bool
	}{
		{name: "by code", input: ShowInput{Code: "1-2-1-1"}, wantCode: "1-2-1-1"},
		{name: "by name", input: ShowInput{Term: "经验论"}, wantCode: "1-1-2-1"},
		{name: "by alias", input: ShowInput{Term: "实在论"}, wantCode: "1-1-1-1"},
		{name: "code wins over term", input: ShowInput{Code: "$-1-1-1", Term: "经验论"}, wantCode: "$-1-1-1"},
		{name: "not found", input: ShowInput{Code: "4-4-4-4"}, wantErr: true},
		{name: "empty", input: ShowInput{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Ism.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", out.Ism.Code, tt.wantCode)
			}
		})
	}
}

func TestHandleShow_NotFoundWrapsSentinel(t *testing.T) {
	handler := handleShow(makeTestHandle(t))
	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, ShowInput{Term: "不存在"})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// --- Related handler tests ---

func TestHandleRelated(t *testing.T) {
	handler := handleRelated(makeTestHandle(t))

	tests := []struct {
		name      string
		input     RelatedInput
		wantCodes []string
		wantErr   bool
	}{
		{name: "default limit", input: RelatedInput{Code: "1-1-1-1"}, wantCodes: []string{"1-1-2-1", "1-1-1-3", "1-1-x"}},
		{name: "limit", input: RelatedInput{Code: "1-1-1-1", Limit: 1}, wantCodes: []string{"1-1-2-1"}},
		{name: "no neighbours", input: RelatedInput{Code: "$-1-1-1"}, wantCodes: []string{}},
		{name: "missing code", input: RelatedInput{}, wantErr: true},
		{name: "negative limit", input: RelatedInput{Code: "1-1-1-1", Limit: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.wantCodes, codes(out.Isms)); diff != "" {
				t.Errorf("codes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// --- Stats handler tests ---

func TestHandleStats(t *testing.T) {
	handler := handleStats(makeTestHandle(t))

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, StatsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Stats.Total != 6 {
		t.Errorf("Total = %d, want 6", out.Stats.Total)
	}
	if out.Stats.Subjectless != 1 {
		t.Errorf("Subjectless = %d, want 1", out.Stats.Subjectless)
	}
	if out.Stats.Malformed != 1 {
		t.Errorf("Malformed = %d, want 1", out.Stats.Malformed)
	}
	if out.Stats.ByField["$"] != 1 {
		t.Errorf("ByField[$] = %d, want 1", out.Stats.ByField["$"])
	}
	if len(out.Issues) != 1 || out.Issues[0].Code != "1-1-x" {
		t.Errorf("Issues = %+v, want the malformed record only", out.Issues)
	}
}

// --- Server wiring ---

func TestNewServer_ListsTools(t *testing.T) {
	ctx := context.Background()
	server := NewServer("test", makeTestHandle(t))
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server.Connect() error = %v", err)
	}
	defer func() { _ = serverSession.Close() }()

	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client.Connect() error = %v", err)
	}
	defer func() { _ = session.Close() }()

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		if tool.Annotations == nil || !tool.Annotations.ReadOnlyHint {
			t.Errorf("tool %s should be annotated read-only", tool.Name)
		}
	}
	slices.Sort(names)
	if diff := cmp.Diff([]string{"related", "search", "show", "stats"}, names); diff != "" {
		t.Errorf("tools mismatch (-want +got):\n%s", diff)
	}

	call, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "search",
		Arguments: map[string]any{"query": "$-$-$-$"},
	})
	if err != nil {
		t.Fatalf("CallTool() error = %v", err)
	}
	if call.IsError {
		t.Errorf("search returned a tool error: %+v", call.Content)
	}
}
