package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thoreinstein/autoskills/internal/guides"
)

// Review actions.
const (
	ActionNone           = "none"
	ActionSuggestImprove = "suggest_improve"
	ActionSuggestCreate  = "suggest_create"
	ActionDirectCreate   = "direct_create"
	ActionDirectImprove  = "direct_improve"
	ActionAutoCreate     = "auto_create"
)

type reviewInput struct {
	TaskDescription      string   `json:"task_description" jsonschema_description:"Brief description of the task that was completed"`
	SolutionSummary      string   `json:"solution_summary" jsonschema_description:"Summary of how the task was solved"`
	SkillsUsed           []string `json:"skills_used,omitempty" jsonschema_description:"Names of personal skills that were used during this task"`
	SkillExecutionSmooth *bool    `json:"skill_execution_smooth,omitempty" jsonschema_description:"Whether the skills used executed smoothly; only relevant when skills_used is non-empty"`
	SkillIssues          string   `json:"skill_issues,omitempty" jsonschema_description:"Issues encountered with the skills used"`
}

type quickInput struct {
	SkillHint            string   `json:"skill_hint,omitempty" jsonschema_description:"Text the user typed after /autoskill; creates a skill from it"`
	SkillsUsed           []string `json:"skills_used,omitempty" jsonschema_description:"Personal skills used in the current task; improved when there is no hint"`
	TaskContext          string   `json:"task_context,omitempty" jsonschema_description:"Current task summary; used when there is neither a hint nor skills_used"`
	SkillExecutionSmooth *bool    `json:"skill_execution_smooth,omitempty" jsonschema_description:"Whether skills_used executed smoothly"`
	SkillIssues          string   `json:"skill_issues,omitempty" jsonschema_description:"Issues encountered with skills_used"`
}

// ReviewTask handles review_task.
func (h *Handlers) ReviewTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in reviewInput
	if err := decode(req, &in); err != nil {
		return fail(err)
	}
	used := nonBlank(in.SkillsUsed)
	issues := strings.TrimSpace(in.SkillIssues)

	if len(used) > 0 {
		// only an explicit smooth report closes the review
		if in.SkillExecutionSmooth != nil && *in.SkillExecutionSmooth {
			return reply(map[string]any{
				"action":          ActionNone,
				"reason":          "The skill(s) used performed well during this task. No changes needed.",
				"skills_reviewed": used,
			})
		}

		return reply(map[string]any{
			"action": ActionSuggestImprove,
			"message": fmt.Sprintf("The following skill(s) were used but did not execute smoothly:\n\n%s\n\n"+
				"Issues encountered: %s\n\n"+
				"Would you like me to improve this skill to better handle this type of task?",
				h.describeSkills(ctx, used), orDefault(issues, "unspecified")),
			"skills_to_improve": used,
			"issues":            issues,
			"task_description":  in.TaskDescription,
			"solution_summary":  in.SolutionSummary,
			"guide":             guides.Updater(),
		})
	}

	names := h.skillNames(ctx)
	existing := "(none)"
	if len(names) > 0 {
		existing = strings.Join(names, ", ")
	}
	return reply(map[string]any{
		"action": ActionSuggestCreate,
		"message": fmt.Sprintf("This task was completed without using any personal skills. "+
			"The solution may be worth packaging as a reusable skill.\n\n"+
			"**Task**: %s\n**Solution**: %s\n\n"+
			"Existing personal skills: %s\n\n"+
			"Would you like me to create a new personal skill from this solution so it can be reused in similar tasks?",
			in.TaskDescription, in.SolutionSummary, existing),
		"task_description": in.TaskDescription,
		"solution_summary": in.SolutionSummary,
		"existing_skills":  names,
		"guide":            guides.Creator(),
	})
}

// AutoskillQuick handles autoskill_quick, the /autoskill chat command.
func (h *Handlers) AutoskillQuick(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in quickInput
	if err := decode(req, &in); err != nil {
		return fail(err)
	}

	if hint := strings.TrimSpace(in.SkillHint); hint != "" {
		return reply(map[string]any{
			"action":        ActionDirectCreate,
			"message":       fmt.Sprintf("Creating new skill from your hint: %q", hint),
			"skill_hint":    hint,
			"guide":         guides.Creator(),
			"handler_guide": guides.Handler(),
		})
	}

	if used := nonBlank(in.SkillsUsed); len(used) > 0 {
		action := ActionSuggestImprove
		message := "The following skill(s) were used. Would you like to improve them?"
		if in.SkillExecutionSmooth != nil && !*in.SkillExecutionSmooth {
			action = ActionDirectImprove
			message = "Auto-improving skill(s) based on execution issues:"
		}
		return reply(map[string]any{
			"action":            action,
			"message":           message,
			"skills_to_improve": used,
			"skills_details":    h.describeSkills(ctx, used),
			"issues":            strings.TrimSpace(in.SkillIssues),
			"task_context":      in.TaskContext,
			"guide":             guides.Updater(),
			"handler_guide":     guides.Handler(),
		})
	}

	return reply(map[string]any{
		"action":        ActionAutoCreate,
		"message":       "Auto-creating skill from current task context.",
		"task_context":  in.TaskContext,
		"guide":         guides.Creator(),
		"handler_guide": guides.Handler(),
	})
}

// describeSkills renders one Markdown bullet per skill name.
func (h *Handlers) describeSkills(ctx context.Context, names []string) string {
	lines := make([]string, 0, len(names))
	for _, name := range names {
		s, err := h.lib.Get(ctx, name)
		if err != nil {
			lines = append(lines, fmt.Sprintf("- **%s**: (not found in personal skills)", name))
			continue
		}
		lines = append(lines, fmt.Sprintf("- **%s**: %s", s.Name, s.Description))
	}
	return strings.Join(lines, "\n")
}

func (h *Handlers) skillNames(ctx context.Context) []string {
	names := []string{}
	skills, err := h.lib.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "listing skills for review failed", "error", err)
		return names
	}
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}

func nonBlank(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
