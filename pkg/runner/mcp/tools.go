package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListDatasetsTool(srv, svc)
	registerSearchHotelsTool(srv, svc)
	registerCatalogWindowTool(srv, svc)
	registerGetHotelTool(srv, svc)
}

const queryHelp = "Criteria in query-string form, e.g. 'filter_rating=4&filter_stars=4,5&sort_by=price,asc'. " +
	"Keys: filter_hotel_name, filter_rating, filter_price_min, filter_price_max, filter_stars, filter_line, " +
	"filter_meals, filter_regions, filter_wifi, filter_operators, sort_by (price,asc | price,desc | rating,desc). " +
	"Empty means rating,desc with no filters."

func registerListDatasetsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_datasets",
		mcp.WithDescription("List imported catalog datasets with their request ids and sizes."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		metas, err := svc.ListDatasets(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"datasets": metas,
			"count":    len(metas),
		})
	})
}

func registerSearchHotelsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_hotels",
		mcp.WithDescription("Filter and sort the hotels of a dataset and return one page."),
		mcp.WithString("request_id",
			mcp.Description("Dataset to search. Defaults to the latest import."),
		),
		mcp.WithString("query",
			mcp.Description(queryHelp),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of hotels to return (default 20)."),
		),
		mcp.WithNumber("offset",
			mcp.Description("Number of matching hotels to skip."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			RequestID string `json:"request_id"`
			Query     string `json:"query"`
			Limit     int    `json:"limit"`
			Offset    int    `json:"offset"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		res, err := svc.Search(ctx, SearchOptions{
			RequestID: args.RequestID,
			Query:     args.Query,
			Limit:     args.Limit,
			Offset:    args.Offset,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerCatalogWindowTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"catalog_window",
		mcp.WithDescription("Lay the filtered hotels out in rows and scroll through offsets, returning the rows added, removed and kept rendered at each step."),
		mcp.WithString("request_id",
			mcp.Description("Dataset to lay out. Defaults to the latest import."),
		),
		mcp.WithString("query",
			mcp.Description(queryHelp),
		),
		mcp.WithArray("offsets",
			mcp.Description("Scroll offsets in px to walk through in order: 0 at the top, negative once scrolled. The first step is always the rebuild at the top."),
			mcp.Items(map[string]any{"type": "number"}),
		),
		mcp.WithNumber("width_px",
			mcp.Description("Viewport width in px; 992+ gives 3 columns, 768+ gives 2, otherwise 1."),
		),
		mcp.WithNumber("viewport_height_px",
			mcp.Description("Viewport height in px."),
		),
		mcp.WithNumber("row_height_px",
			mcp.Description("Row height in px."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			RequestID        string    `json:"request_id"`
			Query            string    `json:"query"`
			Offsets          []float64 `json:"offsets"`
			WidthPx          int       `json:"width_px"`
			ViewportHeightPx int       `json:"viewport_height_px"`
			RowHeightPx      int       `json:"row_height_px"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		res, err := svc.Window(ctx, WindowOptions{
			RequestID:        args.RequestID,
			Query:            args.Query,
			Offsets:          args.Offsets,
			WidthPx:          args.WidthPx,
			ViewportHeightPx: args.ViewportHeightPx,
			RowHeightPx:      args.RowHeightPx,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerGetHotelTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_hotel",
		mcp.WithDescription("Get a single hotel by id."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Hotel identifier."),
		),
		mcp.WithString("request_id",
			mcp.Description("Dataset holding the hotel. Defaults to the latest import."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.Hotel(ctx, request.GetString("request_id", ""), id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
