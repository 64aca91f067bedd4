package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/todolist/internal/domain/activity"
	"github.com/rpggio/todolist/internal/domain/item"
)

const defaultActivityLimit = 20

// toolset holds the services behind the tools. Tool calls may arrive
// concurrently; mu makes each call one unit against the store.
type toolset struct {
	items    ItemService
	activity ActivityService
	logger   *slog.Logger
	mu       sync.Mutex
}

func registerTools(server *sdkmcp.Server, services Services, logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ts := &toolset{items: services.Items, activity: services.Activity, logger: logger}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_items",
		Description: "List every item on the to-do list, ordered by title",
	}, ts.listItems)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_item",
		Description: "Get one item by its title",
	}, ts.getItem)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_item",
		Description: "Add a new PENDING item with an optional description and due date",
	}, ts.createItem)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rename_item",
		Description: "Change the title of an item, keeping all other fields",
	}, ts.renameItem)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_item",
		Description: "Update the description, due date and/or status of an item",
	}, ts.updateItem)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_item",
		Description: "Remove an item from the to-do list",
	}, ts.removeItem)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "clear_items",
		Description: "Remove every item from the to-do list",
	}, ts.clearItems)

	if services.Activity != nil {
		sdkmcp.AddTool(server, &sdkmcp.Tool{
			Name:        "get_recent_activity",
			Description: "List recent changes to the to-do list, newest first",
		}, ts.getRecentActivity)
	}
}

func (ts *toolset) listItems(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListItemsParams) (*sdkmcp.CallToolResult, ListItemsResult, error) {
	items, err := ts.items.List(ctx)
	if err != nil {
		return nil, ListItemsResult{}, ts.fail("list_items", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Title < items[j].Title })

	out := ListItemsResult{Items: make([]ItemView, 0, len(items)), Count: len(items)}
	for i := range items {
		out.Items = append(out.Items, toItemView(&items[i]))
	}
	return textResult(out), out, nil
}

func (ts *toolset) getItem(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetItemParams) (*sdkmcp.CallToolResult, ItemResult, error) {
	it, err := ts.items.Get(ctx, in.Title)
	if err != nil {
		return nil, ItemResult{}, ts.fail("get_item", err)
	}
	out := ItemResult{Item: toItemView(it)}
	return textResult(out), out, nil
}

func (ts *toolset) createItem(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateItemParams) (*sdkmcp.CallToolResult, ItemResult, error) {
	req := item.CreateRequest{Title: in.Title, Description: in.Description}
	if in.DueDate != "" {
		due, err := item.ParseDueDate(in.DueDate)
		if err != nil {
			return nil, ItemResult{}, ts.fail("create_item", err)
		}
		req.DueDate = &due
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	it, err := ts.items.Create(ctx, req)
	if err != nil {
		return nil, ItemResult{}, ts.fail("create_item", err)
	}
	out := ItemResult{Item: toItemView(it)}
	return textResult(out), out, nil
}

func (ts *toolset) renameItem(ctx context.Context, _ *sdkmcp.CallToolRequest, in RenameItemParams) (*sdkmcp.CallToolResult, ItemResult, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	it, err := ts.items.Rename(ctx, in.Title, in.NewTitle)
	if err != nil {
		return nil, ItemResult{}, ts.fail("rename_item", err)
	}
	out := ItemResult{Item: toItemView(it)}
	return textResult(out), out, nil
}

// updateItem validates every supplied field, then applies them in one write.
func (ts *toolset) updateItem(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateItemParams) (*sdkmcp.CallToolResult, ItemResult, error) {
	changes := item.Changes{Description: in.Description}
	if in.DueDate != nil {
		if *in.DueDate == "" {
			changes.ClearDueDate = true
		} else {
			due, err := item.ParseDueDate(*in.DueDate)
			if err != nil {
				return nil, ItemResult{}, ts.fail("update_item", err)
			}
			changes.DueDate = &due
		}
	}
	if in.Status != nil {
		status, err := parseStatusArg(*in.Status)
		if err != nil {
			return nil, ItemResult{}, ts.fail("update_item", err)
		}
		changes.Status = &status
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	it, err := ts.items.Update(ctx, in.Title, changes)
	if err != nil {
		return nil, ItemResult{}, ts.fail("update_item", err)
	}
	out := ItemResult{Item: toItemView(it)}
	return textResult(out), out, nil
}

func (ts *toolset) removeItem(ctx context.Context, _ *sdkmcp.CallToolRequest, in RemoveItemParams) (*sdkmcp.CallToolResult, RemoveItemResult, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if err := ts.items.Remove(ctx, in.Title); err != nil {
		return nil, RemoveItemResult{}, ts.fail("remove_item", err)
	}
	out := RemoveItemResult{Removed: strings.TrimSpace(in.Title)}
	return textResult(out), out, nil
}

func (ts *toolset) clearItems(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ClearItemsParams) (*sdkmcp.CallToolResult, ClearItemsResult, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	items, err := ts.items.List(ctx)
	if err != nil {
		return nil, ClearItemsResult{}, ts.fail("clear_items", err)
	}
	if err := ts.items.Clear(ctx); err != nil {
		return nil, ClearItemsResult{}, ts.fail("clear_items", err)
	}
	out := ClearItemsResult{Cleared: len(items)}
	return textResult(out), out, nil
}

func (ts *toolset) getRecentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetRecentActivityParams) (*sdkmcp.CallToolResult, GetRecentActivityResult, error) {
	opts := activity.ListOptions{Limit: in.Limit, Offset: in.Offset}
	if opts.Limit == 0 {
		opts.Limit = defaultActivityLimit
	}
	if in.Title != "" {
		opts.ItemTitle = &in.Title
	}
	if in.SessionID != "" {
		opts.SessionID = &in.SessionID
	}
	if in.Type != "" {
		typ := activity.Type(in.Type)
		opts.Type = &typ
	}

	entries, err := ts.activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return nil, GetRecentActivityResult{}, ts.fail("get_recent_activity", err)
	}
	out := GetRecentActivityResult{Entries: make([]ActivityView, 0, len(entries))}
	for _, entry := range entries {
		out.Entries = append(out.Entries, toActivityView(entry))
	}
	return textResult(out), out, nil
}

// parseStatusArg accepts a status name or its index.
func parseStatusArg(text string) (item.Status, error) {
	if i, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
		return item.StatusFromIndex(i)
	}
	return item.ParseStatus(text)
}

func (ts *toolset) fail(tool string, err error) error {
	apiErr := MapError(err)
	if apiErr.Code == "INTERNAL" {
		ts.logger.Error("tool failed", "tool", tool, "error", err)
	} else {
		ts.logger.Debug("tool rejected", "tool", tool, "code", apiErr.Code, "error", err)
	}
	return apiErr
}

func textResult(out any) *sdkmcp.CallToolResult {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}
