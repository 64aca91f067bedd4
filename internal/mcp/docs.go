package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `todolist keeps a single to-do list of items keyed by unique title.

Each item has a title, a description, a creation time, an optional due date and a status
(PENDING, PROGRESS or COMPLETED). New items start PENDING.

Workflow:
1) Call list_items to see what exists; titles are the only identifiers.
2) create_item adds an item. Due dates use the format yyyy-MM-dd HH:mm.
3) update_item changes description, due_date and/or status in one call. An empty due_date clears it.
4) rename_item changes a title; remove_item and clear_items delete.
5) get_recent_activity shows what changed, newest first, when the journal is enabled.

Read todo://guide for error codes and examples.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "todo://guide",
		Name:        "guide",
		Title:       "todolist guide",
		Description: "Item fields, date format, status values and tool error codes.",
		Content: `# todolist guide

## Items

| Field       | Notes                                                   |
|-------------|---------------------------------------------------------|
| title       | unique, non-blank, surrounding spaces are trimmed        |
| description | free text, may be empty                                  |
| created_at  | set on creation, minute precision                        |
| due_date    | optional, yyyy-MM-dd HH:mm on input                      |
| status      | PENDING, PROGRESS or COMPLETED (index 0, 1 or 2)         |

Any status may move to any other status.

## Examples

- ` + "`create_item {\"title\": \"Buy milk\", \"due_date\": \"2024-05-01 09:30\"}`" + `
- ` + "`update_item {\"title\": \"Buy milk\", \"status\": \"PROGRESS\"}`" + `
- ` + "`update_item {\"title\": \"Buy milk\", \"due_date\": \"\"}`" + ` clears the due date.

## Error codes

- ITEM_NOT_FOUND: no item with that title.
- DUPLICATE_TITLE: the title is already used by another item.
- INVALID_TITLE: the title is blank.
- INVALID_DATE_FORMAT: the date is not a real yyyy-MM-dd HH:mm value.
- INVALID_STATUS: unknown status name or index.
- INVALID_INPUT: bad activity query arguments.
- INTERNAL: storage failure; the list is unchanged.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
