package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/ismism/internal/catalog"
	"github.com/gorewood/ismism/internal/code"
)

// --- Search tool ---

// SearchInput is the input for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"code pattern such as 1-$-$-$ or $-2-$-$"`
}

// SearchOutput is the output for the search tool.
type SearchOutput struct {
	Query string         `json:"query"           jsonschema:"the query as received"`
	Valid bool           `json:"valid"           jsonschema:"false when the query is malformed and matches nothing"`
	Count int            `json:"count"           jsonschema:"number of isms returned"`
	Isms  []*catalog.Ism `json:"isms"            jsonschema:"matching isms in dataset order"`
	Hint  string         `json:"hint,omitempty"  jsonschema:"why a malformed query matched nothing"`
}

func handleSearch(handle *catalog.Handle) mcp.ToolHandlerFor[SearchInput, SearchOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
		query := input.Query
		out := SearchOutput{Query: query, Isms: []*catalog.Ism{}}

		if _, err := code.Parse(query); err != nil {
			out.Hint = err.Error()
			return nil, out, nil
		}

		out.Valid = true
		if isms := handle.Current().Search(query); isms != nil {
			out.Isms = isms
		}
		out.Count = len(out.Isms)
		return nil, out, nil
	}
}

// --- Show tool ---

// ShowInput is the input for the show tool.
type ShowInput struct {
	Code string `json:"code,omitempty" jsonschema:"exact code, e.g. 1-2-3-4"`
	Term string `json:"term,omitempty" jsonschema:"name or alias; used when code is empty"`
}

// ShowOutput is the output for the show tool.
type ShowOutput struct {
	Ism *catalog.Ism `json:"ism" jsonschema:"the matching ism"`
}

func handleShow(handle *catalog.Handle) mcp.ToolHandlerFor[ShowInput, ShowOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ShowInput) (*mcp.CallToolResult, ShowOutput, error) {
		term := input.Code
		if strings.TrimSpace(term) == "" {
			term = input.Term
		}
		if strings.TrimSpace(term) == "" {
			return nil, ShowOutput{}, errors.New("specify code or term")
		}

		ism, err := handle.Current().Lookup(term)
		if err != nil {
			return nil, ShowOutput{}, err
		}
		return nil, ShowOutput{Ism: ism}, nil
	}
}

// --- Related tool ---

// RelatedInput is the input for the related tool.
type RelatedInput struct {
	Code  string `json:"code"            jsonschema:"code whose neighbours to list"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of isms (default 4)"`
}

// RelatedOutput is the output for the related tool.
type RelatedOutput struct {
	Code  string         `json:"code"  jsonschema:"the code as received"`
	Count int            `json:"count" jsonschema:"number of isms returned"`
	Isms  []*catalog.Ism `json:"isms"  jsonschema:"related isms in dataset order"`
}

func handleRelated(handle *catalog.Handle) mcp.ToolHandlerFor[RelatedInput, RelatedOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RelatedInput) (*mcp.CallToolResult, RelatedOutput, error) {
		c := strings.TrimSpace(input.Code)
		if c == "" {
			return nil, RelatedOutput{}, errors.New("code is required")
		}
		if input.Limit < 0 {
			return nil, RelatedOutput{}, errors.New("limit must not be negative")
		}

		out := RelatedOutput{Code: c, Isms: []*catalog.Ism{}}
		if isms := handle.Current().Related(c, input.Limit); isms != nil {
			out.Isms = isms
		}
		out.Count = len(out.Isms)
		return nil, out, nil
	}
}

// --- Stats tool ---

// StatsInput is the input for the stats tool (no parameters needed).
type StatsInput struct{}

// StatsOutput is the output for the stats tool.
type StatsOutput struct {
	Stats  catalog.Stats   `json:"stats"  jsonschema:"dataset summary"`
	Issues []catalog.Issue `json:"issues" jsonschema:"records that load but are incomplete or unsearchable"`
}

func handleStats(handle *catalog.Handle) mcp.ToolHandlerFor[StatsInput, StatsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatsInput) (*mcp.CallToolResult, StatsOutput, error) {
		ds := handle.Current()
		out := StatsOutput{Stats: ds.Stats(), Issues: ds.Lint()}
		if out.Issues == nil {
			out.Issues = []catalog.Issue{}
		}
		return nil, out, nil
	}
}
