package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for omnibar resources.
	uriScheme = "omnibar://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "tags",
		Name:        "tags",
		Description: "All bookmark tags with the IDs of the items carrying them",
		MIMEType:    "application/json",
	}, s.handleTagsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "folders",
		Name:        "folders",
		Description: "All bookmark folders with the IDs of the items inside them",
		MIMEType:    "application/json",
	}, s.handleFoldersResource)
}

// handleTagsResource returns the tag taxonomy as JSON.
func (s *Server) handleTagsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return taxonomyResult(req.Params.URI, s.ports.Search.UniqueTags())
}

// handleFoldersResource returns the folder taxonomy as JSON.
func (s *Server) handleFoldersResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return taxonomyResult(req.Params.URI, s.ports.Search.UniqueFolders())
}

// taxonomyResult marshals a name to item-IDs mapping into a resource result.
func taxonomyResult(uri string, values map[string][]string) (*mcp.ReadResourceResult, error) {
	if values == nil {
		values = map[string][]string{}
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling taxonomy: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
