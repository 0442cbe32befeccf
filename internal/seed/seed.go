// Package seed fills empty stores with the sample lists and tasks shown on
// first start.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"flowtasks/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultData []byte

type File struct {
	Lists []List `yaml:"lists"`
	Tasks []Task `yaml:"tasks"`
}

type List struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type Task struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Priority    string `yaml:"priority"`
	List        string `yaml:"list"`
	// DueInDays is relative to the day the seed is applied
	DueInDays *int `yaml:"due_in_days"`
	Completed bool `yaml:"completed"`
}

type ListCreator interface {
	Create(ctx context.Context, draft model.ListDraft) (model.List, error)
}

type TaskCreator interface {
	Create(ctx context.Context, draft model.TaskDraft) (model.Task, error)
	ToggleComplete(ctx context.Context, id model.ID) (model.Task, error)
}

// Parse decodes a seed file
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return f, nil
}

// Default returns the embedded sample data
func Default() (File, error) {
	return Parse(defaultData)
}

// Apply creates every list, then every task, through the services so the
// usual defaults and ordering apply.
func (f File) Apply(ctx context.Context, lists ListCreator, tasks TaskCreator, now time.Time) error {
	for _, l := range f.Lists {
		if _, err := lists.Create(ctx, model.ListDraft{Name: l.Name, Color: l.Color}); err != nil {
			return fmt.Errorf("failed to seed list %q: %w", l.Name, err)
		}
	}

	today := model.DateOf(now)
	for _, t := range f.Tasks {
		draft := model.TaskDraft{
			Title:       t.Title,
			Description: t.Description,
			ListID:      model.KeyOf(t.List),
		}
		if t.Priority != "" {
			p, err := model.ParsePriority(t.Priority)
			if err != nil {
				return fmt.Errorf("failed to seed task %q: %w", t.Title, err)
			}
			draft.Priority = p
		}
		if t.DueInDays != nil {
			due := today.AddDays(*t.DueInDays)
			draft.DueDate = &due
		}

		task, err := tasks.Create(ctx, draft)
		if err != nil {
			return fmt.Errorf("failed to seed task %q: %w", t.Title, err)
		}
		if t.Completed {
			if _, err := tasks.ToggleComplete(ctx, task.ID); err != nil {
				return fmt.Errorf("failed to complete seeded task %q: %w", t.Title, err)
			}
		}
	}
	return nil
}
