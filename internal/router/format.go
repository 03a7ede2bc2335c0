package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aide-sh/aide/internal/memory"
	"github.com/aide-sh/aide/internal/task"
)

// formatTask renders a finished task envelope for conversation output.
func formatTask(t task.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task %s finished with status %s.", t.Type, t.Status)
	if t.Status == task.StatusFailed {
		if msg, ok := t.Result["error"]; ok {
			fmt.Fprintf(&b, " Error: %v", msg)
		}
		return b.String()
	}

	keys := make([]string, 0, len(t.Result))
	for k := range t.Result {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "\n%s: %s", k, summarizeValue(t.Result[k]))
	}
	return b.String()
}

// summarizeValue keeps long result values readable in chat output.
func summarizeValue(v any) string {
	switch val := v.(type) {
	case []string:
		if len(val) > 5 {
			return fmt.Sprintf("%d entries (%s, ...)", len(val), strings.Join(val[:3], ", "))
		}
		return strings.Join(val, ", ")
	default:
		s := fmt.Sprintf("%v", v)
		if len(s) > 200 {
			s = s[:200] + "..."
		}
		return s
	}
}

// formatOverview renders the system overview snapshot.
func formatOverview(overview map[string]any) string {
	lines := []string{"System overview:"}
	if cpu, ok := overview["cpu"].(map[string]any); ok {
		lines = append(lines, fmt.Sprintf("CPU usage: %.1f%% (cores: %v)", cpu["percent"], cpu["count"]))
	}
	if m, ok := overview["memory"].(map[string]any); ok {
		lines = append(lines, fmt.Sprintf("Memory usage: %.1f%%", m["used_percent"]))
	}
	if d, ok := overview["disk"].(map[string]any); ok {
		lines = append(lines, fmt.Sprintf("Disk usage: %.1f%%", d["used_percent"]))
	}
	if n, ok := overview["network"].(map[string]any); ok {
		lines = append(lines, fmt.Sprintf("Network: %v bytes sent, %v bytes received",
			n["bytes_sent"], n["bytes_received"]))
	}
	if boot, ok := overview["boot_time"]; ok {
		lines = append(lines, fmt.Sprintf("Boot time: %v", boot))
	}
	lines = append(lines, fmt.Sprintf("Active tasks: %v", overview["active_tasks"]))
	return strings.Join(lines, "\n")
}

// formatStats renders memory statistics.
func formatStats(stats memory.Stats) string {
	var b strings.Builder
	b.WriteString("Memory stats:\n")
	fmt.Fprintf(&b, "Short-term: %d | Episodic: %d | Semantic: %d | Procedural: %d\n",
		stats.ShortTermCount, stats.EpisodicCount, stats.SemanticCount, stats.ProceduralCount)

	if len(stats.TopPreferences) > 0 {
		b.WriteString("Top preferences:")
		for _, p := range stats.TopPreferences {
			fmt.Fprintf(&b, " %s(%.2f)", p.Token, p.Weight)
		}
		b.WriteString("\n")
	}
	if len(stats.MostUsedCommands) > 0 {
		b.WriteString("Most used commands:")
		for _, c := range stats.MostUsedCommands {
			fmt.Fprintf(&b, " %s(%d)", c.Command, c.Count)
		}
		b.WriteString("\n")
	}

	weights := make([]string, 0, len(stats.NeuralWeights))
	for name := range stats.NeuralWeights {
		weights = append(weights, name)
	}
	sort.Strings(weights)
	b.WriteString("Neural weights:")
	for _, name := range weights {
		fmt.Fprintf(&b, " %s=%.3f", name, stats.NeuralWeights[name])
	}
	return b.String()
}

const helpText = `Available commands:

Calculations:
  - calculate 2+2*5
  - solve 10*5+3

System:
  - system info / system status
  - list files
  - open <filename>
  - create file <filename>

Search and web:
  - search for <topic>
  - google <topic>
  - play <song> on youtube
  - open youtube

Entertainment:
  - tell me a joke
  - play music

Productivity:
  - take note <text>
  - remind me to <task> in <N> <minutes|hours|days>
  - what's my schedule
  - journal <entry>

Maintenance:
  - memory stats
  - clean system
  - organize files
  - network diagnostics
  - optimize performance
  - security scan
  - backup files

Say exit, quit, goodbye, or bye to leave.`
