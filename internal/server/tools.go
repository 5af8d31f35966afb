package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thoreinstein/autoskills/internal/errors"
	"github.com/thoreinstein/autoskills/internal/skill"
)

type listInput struct{}

type nameInput struct {
	Name string `json:"name" jsonschema_description:"Name of the skill"`
}

type createInput struct {
	Name         string   `json:"name" jsonschema:"pattern=^[a-z0-9]+(-[a-z0-9]+)*$" jsonschema_description:"Unique skill identifier: lowercase words joined by single hyphens"`
	Description  string   `json:"description" jsonschema_description:"Short description for matching and triggering"`
	Title        string   `json:"title" jsonschema_description:"Display title for the skill"`
	WhenToUse    string   `json:"when_to_use" jsonschema_description:"When this skill should be triggered"`
	Instructions string   `json:"instructions" jsonschema_description:"Step-by-step instructions for the agent to follow"`
	Tags         []string `json:"tags,omitempty" jsonschema_description:"Tags for categorization"`
}

type updateInput struct {
	Name         string   `json:"name" jsonschema_description:"Name of the skill to update"`
	Description  *string  `json:"description,omitempty" jsonschema_description:"Updated description"`
	Title        *string  `json:"title,omitempty" jsonschema_description:"Updated title"`
	WhenToUse    *string  `json:"when_to_use,omitempty" jsonschema_description:"Updated trigger conditions"`
	Instructions *string  `json:"instructions,omitempty" jsonschema_description:"Updated instructions"`
	Tags         []string `json:"tags,omitempty" jsonschema_description:"Updated tags; an empty list clears them"`
}

// Tools returns every tool definition with its handler.
func (h *Handlers) Tools() []Tool {
	return []Tool{
		{
			Definition: mcp.NewToolWithRawSchema("list_skills",
				"List all personal skills in the skills library",
				inputSchema[listInput]()),
			Handle: h.ListSkills,
		},
		{
			Definition: mcp.NewToolWithRawSchema("get_skill",
				"Read the full content of a specific personal skill",
				inputSchema[nameInput]()),
			Handle: h.GetSkill,
		},
		{
			Definition: mcp.NewToolWithRawSchema("create_skill",
				"Create a new personal skill from a completed task solution",
				inputSchema[createInput]()),
			Handle: h.CreateSkill,
		},
		{
			Definition: mcp.NewToolWithRawSchema("update_skill",
				"Update an existing personal skill with improvements",
				inputSchema[updateInput]()),
			Handle: h.UpdateSkill,
		},
		{
			Definition: mcp.NewToolWithRawSchema("delete_skill",
				"Delete a personal skill from the library",
				inputSchema[nameInput]()),
			Handle: h.DeleteSkill,
		},
		{
			Definition: mcp.NewToolWithRawSchema("search_skill",
				"Before starting a task, look for a personal or public skill that covers it. A matching public skill is installed into the personal library.",
				inputSchema[searchInput]()),
			Handle: h.SearchSkill,
		},
		{
			Definition: mcp.NewToolWithRawSchema("review_task",
				"Review a completed task and decide whether to suggest creating a new skill or improving an existing one. Call this after finishing a task.",
				inputSchema[reviewInput]()),
			Handle: h.ReviewTask,
		},
		{
			Definition: mcp.NewToolWithRawSchema("autoskill_quick",
				"Quick command that skips the agent's own judgment. Call it when the user types /autoskill. A skill_hint creates a skill from that text; skills_used improves those skills; otherwise a skill is created from task_context.",
				inputSchema[quickInput]()),
			Handle: h.AutoskillQuick,
		},
	}
}

// ListSkills handles list_skills.
func (h *Handlers) ListSkills(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	skills, err := h.lib.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list_skills failed", "error", err)
		return fail(err)
	}
	return reply(struct {
		SkillsDir string          `json:"skills_dir"`
		Count     int             `json:"count"`
		Skills    []skill.Summary `json:"skills"`
	}{h.lib.Dir(), len(skills), skills})
}

// GetSkill handles get_skill.
func (h *Handlers) GetSkill(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in nameInput
	if err := decode(req, &in); err != nil {
		return fail(err)
	}
	s, err := h.lib.Get(ctx, in.Name)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return failf(fmt.Sprintf("Skill %q not found.", in.Name))
		}
		return fail(err)
	}
	return reply(struct {
		Success bool         `json:"success"`
		Skill   *skill.Skill `json:"skill"`
	}{true, s})
}

// CreateSkill handles create_skill.
func (h *Handlers) CreateSkill(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in createInput
	if err := decode(req, &in); err != nil {
		return fail(err)
	}
	path, err := h.lib.Create(ctx, skill.CreateParams{
		Name:         in.Name,
		Description:  in.Description,
		Title:        in.Title,
		WhenToUse:    in.WhenToUse,
		Instructions: in.Instructions,
		Tags:         in.Tags,
	})
	if err != nil {
		h.logger.InfoContext(ctx, "create_skill rejected", "name", in.Name, "error", err)
		return fail(err)
	}
	return reply(struct {
		Success   bool   `json:"success"`
		Message   string `json:"message"`
		Path      string `json:"path"`
		SkillsDir string `json:"skills_dir"`
	}{true, fmt.Sprintf("Skill %q created successfully.", in.Name), path, h.lib.Dir()})
}

// UpdateSkill handles update_skill.
func (h *Handlers) UpdateSkill(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in updateInput
	if err := decode(req, &in); err != nil {
		return fail(err)
	}
	path, err := h.lib.Update(ctx, in.Name, skill.UpdateParams{
		Description:  in.Description,
		Title:        in.Title,
		WhenToUse:    in.WhenToUse,
		Instructions: in.Instructions,
		Tags:         in.Tags,
	})
	if err != nil {
		h.logger.InfoContext(ctx, "update_skill rejected", "name", in.Name, "error", err)
		return fail(err)
	}
	return reply(struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Path    string `json:"path"`
	}{true, fmt.Sprintf("Skill %q updated successfully.", in.Name), path})
}

// DeleteSkill handles delete_skill.
func (h *Handlers) DeleteSkill(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in nameInput
	if err := decode(req, &in); err != nil {
		return fail(err)
	}
	deleted, err := h.lib.Delete(ctx, in.Name)
	if err != nil {
		return fail(err)
	}
	msg := fmt.Sprintf("Skill %q deleted.", in.Name)
	if !deleted {
		msg = fmt.Sprintf("Skill %q not found.", in.Name)
	}
	return reply(struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{deleted, msg})
}
