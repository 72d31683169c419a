// Package skills holds the static skill catalog: the named procedures the
// orchestrating agent can be asked to run. This plugin never executes a
// skill itself — it only records requests and completions, and maps skill
// names to the instruction text injected at turn start.
package skills

import (
	"fmt"
	"sort"
	"strings"
)

// Entry describes one catalog skill.
type Entry struct {
	Name        string
	Category    string
	Description string
}

// Categories lists catalog categories in display order.
var Categories = []string{
	"pipeline",
	"workflow",
	"research",
	"forge",
	"garden",
	"orchestration",
	"system",
	"tools",
}

// Shorthands maps /dojo subcommand shorthands to pipeline skill names.
var Shorthands = map[string]string{
	"scout":      "strategic-scout",
	"spec":       "release-specification",
	"tracks":     "parallel-tracks",
	"commission": "implementation-prompt",
	"retro":      "retrospective",
}

// Catalog is the full skill catalog, keyed by skill name.
var Catalog = map[string]Entry{
	// Pipeline (also available as /dojo scout, spec, tracks, commission, retro)
	"strategic-scout":        {"strategic-scout", "pipeline", "Explore strategic tensions and scout multiple routes"},
	"release-specification":  {"release-specification", "pipeline", "Write a production-ready release specification"},
	"parallel-tracks":        {"parallel-tracks", "pipeline", "Decompose specs into independent parallel tracks"},
	"implementation-prompt":  {"implementation-prompt", "pipeline", "Generate structured implementation prompts"},
	"retrospective":          {"retrospective", "pipeline", "Reflect on what went well, what was hard, what to improve"},

	// Workflow
	"iterative-scouting":              {"iterative-scouting", "workflow", "Iterate scout cycles with reframes"},
	"strategic-to-tactical-workflow":  {"strategic-to-tactical-workflow", "workflow", "Full scout → spec → commission pipeline"},
	"pre-implementation-checklist":    {"pre-implementation-checklist", "workflow", "Verify specs are ready before commissioning"},
	"context-ingestion":               {"context-ingestion", "workflow", "Create plans grounded in uploaded files"},
	"frontend-from-backend":           {"frontend-from-backend", "workflow", "Write frontend specs from backend architecture"},
	"spec-constellation-to-prompt-suite": {"spec-constellation-to-prompt-suite", "workflow", "Convert multiple specs into coordinated prompts"},
	"planning-with-files":             {"planning-with-files", "workflow", "Route file-based planning to specialized modes"},

	// Research
	"research-modes":      {"research-modes", "research", "Deep and wide research with structured approaches"},
	"research-synthesis":  {"research-synthesis", "research", "Synthesize multiple sources into actionable insights"},
	"project-exploration": {"project-exploration", "research", "Explore new projects to assess collaboration potential"},
	"era-architecture":    {"era-architecture", "research", "Architect multi-release eras with shared vocabulary"},
	"repo-context-sync":   {"repo-context-sync", "research", "Sync and extract context from repositories"},
	"documentation-audit": {"documentation-audit", "research", "Audit documentation for drift and accuracy"},
	"health-audit":        {"health-audit", "research", "Comprehensive repository health check"},

	// Forge
	"skill-creation":      {"skill-creation", "forge", "Create new reusable skills"},
	"skill-maintenance":   {"skill-maintenance", "forge", "Maintain skill health through systematic review"},
	"skill-audit-upgrade": {"skill-audit-upgrade", "forge", "Audit and upgrade skills to quality standards"},
	"process-extraction":  {"process-extraction", "forge", "Transform workflows into reusable skills"},

	// Garden
	"memory-garden":           {"memory-garden", "garden", "Write structured memory entries for context management"},
	"seed-extraction":         {"seed-extraction", "garden", "Extract reusable patterns from experiences"},
	"seed-library":            {"seed-library", "garden", "Access and apply Dojo Seed Patches"},
	"compression-ritual":      {"compression-ritual", "garden", "Distill conversation history into memory artifacts"},
	"seed-to-skill-converter": {"seed-to-skill-converter", "garden", "Elevate proven seeds into full skills"},

	// Orchestration
	"handoff-protocol":     {"handoff-protocol", "orchestration", "Hand off work between agents cleanly"},
	"decision-propagation": {"decision-propagation", "orchestration", "Propagate decisions across document ecosystem"},
	"workspace-navigation": {"workspace-navigation", "orchestration", "Navigate shared agent workspaces"},
	"agent-teaching":       {"agent-teaching", "orchestration", "Teach peers through shared practice"},

	// System
	"semantic-clusters": {"semantic-clusters", "system", "Map system capabilities with action-verb clusters"},
	"repo-status":       {"repo-status", "system", "Generate comprehensive repo status documents"},
	"status-template":   {"status-template", "system", "Write status docs using 10-section template"},
	"status-writing":    {"status-writing", "system", "Write and update STATUS.md files"},

	// Tools
	"patient-learning-protocol": {"patient-learning-protocol", "tools", "Learn at the pace of understanding"},
	"file-management":           {"file-management", "tools", "Organize files and directories flexibly"},
	"product-positioning":       {"product-positioning", "tools", "Reframe binary product decisions"},
	"multi-surface-strategy":    {"multi-surface-strategy", "tools", "Design coherent multi-surface strategies"},
}

// instructions maps the pipeline skills to the instruction text injected
// by the turn-start hook. Skills outside this table get the generic
// fallback from Instruction.
var instructions = map[string]string{
	"strategic-scout":       "Run the strategic-scout skill. Explore the tension from multiple perspectives, then synthesize a direction.",
	"release-specification": "Run the release-specification skill. Write a production-ready specification for this feature/release.",
	"parallel-tracks":       "Run the parallel-tracks skill. Decompose the specification into independent parallel implementation tracks.",
	"implementation-prompt": "Run the implementation-prompt skill. Generate structured implementation prompts for each track.",
	"retrospective":         "Run the retrospective skill. Reflect on what went well, what was hard, and what to improve.",
}

// Instruction returns the injected instruction text for a skill, falling
// back to a generic line for unknown names.
func Instruction(skill string) string {
	if text, ok := instructions[skill]; ok {
		return text
	}
	return fmt.Sprintf("Run the %s skill.", skill)
}

// Known reports whether a skill name exists in the catalog.
func Known(name string) bool {
	_, ok := Catalog[name]
	return ok
}

// List renders the catalog (optionally filtered by category) as markdown.
func List(category string) string {
	var filtered []Entry
	for _, e := range Catalog {
		if category == "" || e.Category == category {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == 0 {
		if category != "" {
			return fmt.Sprintf("No skills in category %q. Available: %s", category, strings.Join(Categories, ", "))
		}
		return "No skills found."
	}

	grouped := make(map[string][]Entry)
	for _, e := range filtered {
		grouped[e.Category] = append(grouped[e.Category], e)
	}

	var b strings.Builder
	b.WriteString("**Dojo Genesis Skill Catalog**\n\n")
	for _, cat := range Categories {
		entries := grouped[cat]
		if len(entries) == 0 {
			continue
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

		label := cat
		if cat == "pipeline" {
			label = cat + " (shorthand: /dojo scout|spec|tracks|commission|retro)"
		}
		fmt.Fprintf(&b, "**%s:**\n", label)
		for _, e := range entries {
			fmt.Fprintf(&b, "  `%s` — %s\n", e.Name, e.Description)
		}
		b.WriteString("\n")
	}
	b.WriteString("Run any skill with: `/dojo run <skill-name> [args]`")
	return b.String()
}
