package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerDatasetsResource(srv, svc)
	registerDatasetTemplate(srv, svc)
}

func registerDatasetsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"tourcatalog://datasets",
		"Datasets",
		mcp.WithResourceDescription("All imported catalog datasets with sizes and import times."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		metas, err := svc.ListDatasets(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"datasets": metas,
			"count":    len(metas),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerDatasetTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"tourcatalog://datasets/{request_id}",
		"Dataset Filters",
		mcp.WithTemplateDescription("Size and filter options of one imported dataset."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments["request_id"])
		if id == "" {
			return nil, fmt.Errorf("request id is required")
		}

		ds, err := svc.Dataset(ctx, id)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"requestId": ds.RequestID,
			"source":    ds.Source,
			"imported":  ds.Imported,
			"size":      len(ds.Items),
			"filters":   ds.Filters,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// templateArg reads a URI template variable, which arrives either as a
// string or as a list of strings.
func templateArg(v any) string {
	switch a := v.(type) {
	case string:
		return a
	case []string:
		if len(a) > 0 {
			return a[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
