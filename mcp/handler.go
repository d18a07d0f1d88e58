// Package mcp exposes the lab roster and publication catalog as MCP tools.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/labsite/labsite/format/bibtex"
	jsonformat "github.com/labsite/labsite/format/json"
	"github.com/labsite/labsite/helpers"
	"github.com/labsite/labsite/publication"
	"github.com/labsite/labsite/roster"
	"github.com/labsite/labsite/site"
)

const Version = "0.1.0"

type SearchPublicationsRequest struct {
	Query string `json:"query"` // Case-insensitive text matched against title, authors and venue
	Sort  string `json:"sort"`  // year-desc, year-asc, title-asc or empty for file order
}

type Citation struct {
	Number   int    `json:"number"`
	Key      string `json:"key"`
	Citation string `json:"citation"`
}

type SearchPublicationsResponse struct {
	Status      string     `json:"status"`
	Total       int        `json:"total"`
	Journals    []Citation `json:"journals"`
	Conferences []Citation `json:"conferences"`
}

type ListPeopleRequest struct {
	Bucket string `json:"bucket"` // pi, postdoc, graduate, bachelor_visiting, alumni or empty for all
}

// NewServer creates a new MCP server with the publication and people tools.
func NewServer(loader *site.Loader) *server.MCPServer {
	s := server.NewMCPServer(
		"Lab Site MCP",
		Version,
		server.WithToolCapabilities(false),
	)

	searchTool := mcp.NewTool("search_publications",
		mcp.WithDescription("Search the lab's publications and return numbered IEEE citations grouped into journal and conference papers"),
		mcp.WithString("query",
			mcp.Description("Text to match against title, authors, journal, booktitle, publisher and organization"),
		),
		mcp.WithString("sort",
			mcp.Description("Sort order: year-desc, year-asc or title-asc; empty keeps file order"),
		),
	)
	s.AddTool(searchTool, mcp.NewTypedToolHandler(searchPublicationsHandler(loader)))

	bibtexTool := mcp.NewTool("export_bibtex",
		mcp.WithDescription("Export matching publications as normalized BibTeX"),
		mcp.WithString("query",
			mcp.Description("Text to match against title, authors and venue"),
		),
		mcp.WithString("sort",
			mcp.Description("Sort order: year-desc, year-asc or title-asc"),
		),
	)
	s.AddTool(bibtexTool, mcp.NewTypedToolHandler(exportBibtexHandler(loader)))

	peopleTool := mcp.NewTool("list_people",
		mcp.WithDescription("List lab members with their position and contact links"),
		mcp.WithString("bucket",
			mcp.Description("Restrict to one group: pi, postdoc, graduate, bachelor_visiting or alumni"),
		),
	)
	s.AddTool(peopleTool, mcp.NewTypedToolHandler(listPeopleHandler(loader)))

	return s
}

func loadPage(ctx context.Context, loader *site.Loader, query, sort string) (*publication.Page, *mcp.CallToolResult) {
	key, err := publication.ParseSortKey(sort)
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	page, err := loader.Publications(ctx, publication.ViewOptions{Sort: key, Query: query})
	if err != nil {
		return nil, mcp.NewToolResultError(page.Status)
	}
	return page, nil
}

func searchPublicationsHandler(loader *site.Loader) func(ctx context.Context, request mcp.CallToolRequest, args SearchPublicationsRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args SearchPublicationsRequest) (*mcp.CallToolResult, error) {
		page, errResult := loadPage(ctx, loader, args.Query, args.Sort)
		if errResult != nil {
			return errResult, nil
		}

		response := SearchPublicationsResponse{
			Status:      page.Status,
			Total:       page.View.Total,
			Journals:    citations(page.View.Journals),
			Conferences: citations(page.View.Conferences),
		}

		responseBytes, err := json.Marshal(response)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
		}
		return mcp.NewToolResultText(string(responseBytes)), nil
	}
}

func citations(items []publication.Item) []Citation {
	out := make([]Citation, 0, len(items))
	for _, it := range items {
		out = append(out, Citation{
			Number:   it.Number,
			Key:      it.Entry.Key,
			Citation: helpers.StripHTML(it.Citation),
		})
	}
	return out
}

func exportBibtexHandler(loader *site.Loader) func(ctx context.Context, request mcp.CallToolRequest, args SearchPublicationsRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args SearchPublicationsRequest) (*mcp.CallToolResult, error) {
		page, errResult := loadPage(ctx, loader, args.Query, args.Sort)
		if errResult != nil {
			return errResult, nil
		}

		var buf bytes.Buffer
		if err := (&bibtex.Format{}).RenderPublications(&buf, page, nil); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to serialize BibTeX: %v", err)), nil
		}
		return mcp.NewToolResultText(buf.String()), nil
	}
}

func listPeopleHandler(loader *site.Loader) func(ctx context.Context, request mcp.CallToolRequest, args ListPeopleRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ListPeopleRequest) (*mcp.CallToolResult, error) {
		var only roster.Bucket
		if args.Bucket != "" {
			b, ok := roster.ParseBucket(args.Bucket)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("unknown bucket %q", args.Bucket)), nil
			}
			only = b
		}

		dir, err := loader.People(ctx)
		if err != nil {
			return mcp.NewToolResultError(site.RosterStatus(loader.RosterPath, err)), nil
		}

		doc := jsonformat.NewPeopleDocument(dir)
		if only != "" {
			kept := doc.Buckets[:0]
			for _, b := range doc.Buckets {
				if b.ID == only {
					kept = append(kept, b)
				}
			}
			doc.Buckets = kept
			doc.Total = len(dir.Bucket(only))
		}

		responseBytes, err := json.Marshal(doc)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
		}
		return mcp.NewToolResultText(string(responseBytes)), nil
	}
}
