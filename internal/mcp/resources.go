package mcp

import (
	"encoding/json"

	"github.com/shrihari/chipatlas/docs"
)

// Resource represents an MCP resource definition.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceContent represents the content of a resource.
type ResourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

// guideResources maps resource URIs to embedded guide files.
var guideResources = []struct {
	uri  string
	file string
	name string
	desc string
}{
	{
		uri:  "chipatlas://guide/index",
		file: "guide/index.md",
		name: "chipatlas User Guide",
		desc: "Overview of commands, metadata types, and configuration",
	},
	{
		uri:  "chipatlas://guide/agent",
		file: "guide/agent.md",
		name: "chipatlas Agent Guide",
		desc: "How to call the fetch_chip_atlas tool and interpret its results",
	},
}

func (s *Server) handleResourcesList(req *Request) {
	resources := make([]Resource, 0, len(guideResources))
	for _, r := range guideResources {
		resources = append(resources, Resource{
			URI:         r.uri,
			Name:        r.name,
			Description: r.desc,
			MimeType:    "text/markdown",
		})
	}
	s.sendResult(req.ID, map[string]interface{}{"resources": resources})
}

func (s *Server) handleResourcesRead(req *Request) {
	var params struct {
		URI string `json:"uri"`
	}
	if req.Params != nil {
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			s.sendError(req.ID, -32602, "Invalid params", err.Error())
			return
		}
	}

	for _, r := range guideResources {
		if r.uri != params.URI {
			continue
		}
		data, err := docs.FS.ReadFile(r.file)
		if err != nil {
			s.sendError(req.ID, -32603, "Internal error", err.Error())
			return
		}
		s.sendResult(req.ID, map[string]interface{}{
			"contents": []ResourceContent{{
				URI:      r.uri,
				MimeType: "text/markdown",
				Text:     string(data),
			}},
		})
		return
	}

	s.sendError(req.ID, -32602, "Unknown resource", params.URI)
}
