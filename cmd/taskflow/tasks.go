package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/taskflow/client/query"
	"github.com/example/taskflow/domain/task"
)

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [name]",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := context.Background()
			u, err := app.requireUser(ctx)
			if err != nil {
				return err
			}

			t, err := app.tasks.Create(ctx, u.ID, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("Added %s  %s\n", shortID(t.ID), t.Name)
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	var status, search, sortBy, order string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, filtered and sorted",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := listParams(status, search, sortBy, order)
			if err != nil {
				return err
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := context.Background()
			u, err := app.requireUser(ctx)
			if err != nil {
				return err
			}

			tasks, err := app.tasks.List(ctx, u.ID)
			if err != nil {
				return err
			}

			counts := query.Count(tasks)
			view := query.View(tasks, params)

			if len(view) == 0 {
				fmt.Println("No tasks match.")
			} else {
				printTasks(view)
			}
			fmt.Printf("%d total, %d complete, %d incomplete\n",
				counts.All, counts.Complete, counts.Incomplete)
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "all", "filter by status (all, complete, incomplete)")
	cmd.Flags().StringVarP(&search, "search", "q", "", "case-insensitive name substring")
	cmd.Flags().StringVar(&sortBy, "sort", "createdAt", "sort key (name, status, createdAt)")
	cmd.Flags().StringVar(&order, "order", "desc", "sort order (asc, desc)")

	return cmd
}

func listParams(status, search, sortBy, order string) (query.Params, error) {
	p := query.Params{Search: search}

	switch status {
	case "all":
		p.Status = query.FilterAll
	case "complete":
		p.Status = query.FilterComplete
	case "incomplete":
		p.Status = query.FilterIncomplete
	default:
		return p, fmt.Errorf("unknown status %q (want all, complete or incomplete)", status)
	}

	switch sortBy {
	case "name":
		p.SortBy = query.SortByName
	case "status":
		p.SortBy = query.SortByStatus
	case "createdAt":
		p.SortBy = query.SortByCreatedAt
	default:
		return p, fmt.Errorf("unknown sort key %q (want name, status or createdAt)", sortBy)
	}

	switch order {
	case "asc":
		p.Order = query.OrderAsc
	case "desc":
		p.Order = query.OrderDesc
	default:
		return p, fmt.Errorf("unknown order %q (want asc or desc)", order)
	}

	return p, nil
}

func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [id]",
		Short: "Mark a task complete",
		Args:  cobra.ExactArgs(1),
		RunE:  setStatusRun(task.StatusComplete, "Completed"),
	}
}

func undoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undone [id]",
		Short: "Mark a task incomplete",
		Args:  cobra.ExactArgs(1),
		RunE:  setStatusRun(task.StatusIncomplete, "Reopened"),
	}
}

func setStatusRun(status task.Status, verb string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := context.Background()
		u, err := app.requireUser(ctx)
		if err != nil {
			return err
		}

		id, err := resolveID(ctx, app, u.ID, args[0])
		if err != nil {
			return err
		}

		t, err := app.tasks.SetStatus(ctx, u.ID, id, status)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s  %s\n", verb, shortID(t.ID), t.Name)
		return nil
	}
}

func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [id] [name]",
		Short: "Rename a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := context.Background()
			u, err := app.requireUser(ctx)
			if err != nil {
				return err
			}

			id, err := resolveID(ctx, app, u.ID, args[0])
			if err != nil {
				return err
			}

			tasks, err := app.tasks.List(ctx, u.ID)
			if err != nil {
				return err
			}
			current := findTask(tasks, id)
			if current == nil {
				return fmt.Errorf("task %s not found", args[0])
			}

			t, err := app.tasks.Update(ctx, u.ID, id, strings.Join(args[1:], " "), current.Status)
			if err != nil {
				return err
			}
			fmt.Printf("Renamed %s  %s\n", shortID(t.ID), t.Name)
			return nil
		},
	}
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := context.Background()
			u, err := app.requireUser(ctx)
			if err != nil {
				return err
			}

			id, err := resolveID(ctx, app, u.ID, args[0])
			if err != nil {
				return err
			}

			if err := app.tasks.Delete(ctx, u.ID, id); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", shortID(id))
			return nil
		},
	}
}

// resolveID accepts either a full task id or an unambiguous prefix of one.
func resolveID(ctx context.Context, app *App, ownerID, ref string) (string, error) {
	tasks, err := app.tasks.List(ctx, ownerID)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, t := range tasks {
		if t.ID == ref {
			return ref, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		// Fall through to the store so absent ids get its error semantics.
		return ref, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func findTask(tasks []task.Task, id string) *task.Task {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i]
		}
	}
	return nil
}

func printTasks(tasks []task.Task) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	for _, t := range tasks {
		mark := " "
		if t.Status == task.StatusComplete {
			mark = "x"
		}
		fmt.Fprintf(w, "[%s]\t%s\t%s\t%s\n",
			mark, shortID(t.ID), t.Name, t.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
