package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/shrihari/chipatlas/internal/atlas"
	"github.com/shrihari/chipatlas/internal/buildinfo"
)

func (s *Server) handleToolsList(req *Request) {
	tools := []Tool{
		{
			Name: "fetch_chip_atlas",
			Description: "Fetch ChIP-Atlas metadata filtered by a keyword. Downloads the " +
				"metadata table on first use, matches the keyword case-insensitively " +
				"against the category's search column, and saves all matches as CSV.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"term": map[string]interface{}{
						"type":        "string",
						"description": "Gene, antigen, or cell type keyword (e.g. 'TP53', 'H3K4me3')",
					},
					"metadata_type": map[string]interface{}{
						"type": "string",
						"description": "experiment_list | file_list | analysis_list | " +
							"antigen_list | celltype_list (default: experiment_list)",
					},
				},
				Required: []string{"term"},
			},
		},
		{
			Name:        "list_categories",
			Description: "List the available metadata types with their search columns and source URLs.",
			InputSchema: InputSchema{
				Type: "object",
			},
		},
		{
			Name:        "version_info",
			Description: "Return chipatlas version and build information.",
			InputSchema: InputSchema{
				Type: "object",
			},
		},
		{
			Name:        "ping",
			Description: "Connectivity check; replies with pong.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"msg": map[string]interface{}{
						"type":        "string",
						"description": "Optional message to echo back",
					},
				},
			},
		},
	}

	s.sendResult(req.ID, map[string]interface{}{"tools": tools})
}

func (s *Server) callTool(name string, args map[string]interface{}) (string, bool) {
	switch name {
	case "fetch_chip_atlas":
		return s.toolFetch(args)
	case "list_categories":
		return s.toolListCategories()
	case "version_info":
		return toolJSON(map[string]interface{}{
			"name":    "chipatlas",
			"version": versionString(),
			"author":  "Shrihari",
		}), false
	case "ping":
		msg, _ := args["msg"].(string)
		if msg == "" {
			msg = "hello"
		}
		return toolJSON(map[string]interface{}{"reply": "pong: " + msg}), false
	default:
		return toolJSON(map[string]interface{}{
			"error": fmt.Sprintf("unknown tool: %s", name),
		}), true
	}
}

// toolFetch maps one MCP request onto exactly one pipeline run.
func (s *Server) toolFetch(args map[string]interface{}) (string, bool) {
	term, _ := args["term"].(string)
	if term == "" {
		return toolJSON(map[string]interface{}{"error": "term is required"}), true
	}

	metadataType, _ := args["metadata_type"].(string)
	if metadataType == "" {
		metadataType = string(atlas.ExperimentList)
	}

	category, err := atlas.ParseCategory(metadataType)
	if err != nil {
		return toolJSON(map[string]interface{}{"error": err.Error()}), true
	}

	report := s.pipeline.Handle(category, term)
	payload := map[string]interface{}{
		"status":        report.Status,
		"term":          report.Term,
		"metadata_type": report.Category,
		"matches":       report.Matches,
		"summary":       report.Summary(),
	}
	if report.Column != "" {
		payload["column"] = report.Column
	}
	if len(report.Columns) > 0 {
		payload["columns"] = report.Columns
	}
	if report.OutputPath != "" {
		payload["output_path"] = report.OutputPath
	}
	if len(report.Preview) > 0 {
		payload["preview"] = report.Preview
	}
	if report.Detail != "" {
		payload["detail"] = report.Detail
	}
	if report.ErrorCode != "" {
		payload["error_code"] = report.ErrorCode
	}

	return toolJSON(payload), report.Status == atlas.StatusFailed
}

func (s *Server) toolListCategories() (string, bool) {
	catalog := s.pipeline.Fetcher.Catalog

	var categories []map[string]interface{}
	for _, c := range atlas.Categories() {
		src := catalog.Source(c)
		categories = append(categories, map[string]interface{}{
			"metadata_type":  c,
			"search_columns": src.Columns,
			"archive_url":    src.ArchiveURL,
		})
	}

	return toolJSON(map[string]interface{}{"categories": categories}), false
}

func versionString() string {
	if buildinfo.Version != "" {
		return buildinfo.Version
	}
	return "devel"
}

func toolJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}
	return string(data)
}
