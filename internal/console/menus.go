package console

import (
	"fmt"
	"strings"

	"github.com/rpggio/todolist/internal/domain/item"
)

const welcome = `
Welcome to the TO-DO List application
To get started, enter one of the following options
`

const mainMenu = `
1. View your to-do list
2. Add to your to-do list
3. Remove from your to-do list
4. Clear to-do list
5. Update to-do list
6. Exit`

const editorMenu = `
1. Edit title
2. Edit description
3. Edit due date
4. Edit status
5. Return to main menu`

const (
	mainMenuOptions   = 6
	editorMenuOptions = 5
)

const (
	promptOption         = "\nEnter an option:"
	promptTitle          = "\nEnter the list item title"
	promptNewTitle       = "\nEnter a new list item title"
	promptDescription    = "\nEnter the list item description"
	promptNewDescription = "\nEnter a new description"
	promptDueDate        = "\nEnter the due date using format [" + item.DueDatePattern + "][Leave blank if none]"
)

// statusMenu lists the statuses in index order followed by the back option.
func statusMenu() string {
	var b strings.Builder
	b.WriteString("\n")
	statuses := item.Statuses()
	for i, s := range statuses {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	fmt.Fprintf(&b, "%d. Return to item editor", statusBackOption())
	return b.String()
}

func statusBackOption() int {
	return len(item.Statuses()) + 1
}
