package rest

import (
	"time"

	"github.com/parniiyan/To-do-list/core"
)

type CreateTaskIn struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Priority    *int       `json:"priority,omitempty"` // 1..5
	DueDate     *time.Time `json:"due_date,omitempty"`
	TagIDs      []int64    `json:"tag_ids,omitempty"`
}

// PatchTaskIn: отсутствующее поле не меняется, null очищает nullable-поля
type PatchTaskIn struct {
	Title       *string                  `json:"title"`
	Description core.Nullable[string]    `json:"description"`
	Completed   *bool                    `json:"completed"`
	Priority    core.Nullable[int]       `json:"priority"`
	DueDate     core.Nullable[time.Time] `json:"due_date"`
	Position    *float64                 `json:"position"`
	TagIDs      *[]int64                 `json:"tag_ids"`
}

func (in PatchTaskIn) Patch() core.TaskPatch {
	return core.TaskPatch{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		Position:    in.Position,
		TagIDs:      in.TagIDs,
	}
}

type ReorderIn struct {
	Tasks []core.PositionUpdate `json:"tasks"`
}

type CreateTagIn struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type RegisterIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenOut struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
