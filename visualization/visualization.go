// Copyright 2025 The NLP Odyssey Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package visualization draws the control graph of an agent run:
// the agent node, the tools node it conditionally hands over to, and the
// start and end markers.
package visualization

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nlpodyssey/weather-agent-go/agents"
)

const (
	StartNode = "__start__"
	EndNode   = "__end__"
	ToolsNode = "tools"
)

// Edge labels of the conditional edge leaving the agent node.
const (
	ContinueLabel = "continue"
	EndLabel      = "end"
)

// GetMainGraph generates the whole graph in DOT format.
func GetMainGraph(agent *agents.Agent) string {
	var sb strings.Builder
	sb.WriteString(`
digraph G {
   graph [splines=true];
   node [fontname="Arial"];
   edge [penwidth=1.5];
`)
	sb.WriteString(GetAllNodes(agent))
	sb.WriteString(GetAllEdges(agent))
	sb.WriteString("}\n")
	return sb.String()
}

// GetAllNodes generates the nodes of the graph in DOT format.
func GetAllNodes(agent *agents.Agent) string {
	var sb strings.Builder

	_, _ = fmt.Fprintf(&sb,
		"\"%s\" [label=\"%s\", shape=ellipse, style=filled, fillcolor=lightblue, width=0.5, height=0.3];\n",
		StartNode, StartNode,
	)
	_, _ = fmt.Fprintf(&sb,
		"\"%s\" [label=\"%s\", shape=ellipse, style=filled, fillcolor=lightblue, width=0.5, height=0.3];\n",
		EndNode, EndNode,
	)
	_, _ = fmt.Fprintf(&sb,
		"\"%s\" [label=\"%s\", shape=box, style=filled, fillcolor=lightyellow, width=1.5, height=0.8];\n",
		agent.Name, agent.Name,
	)
	if len(agent.Tools) > 0 {
		_, _ = fmt.Fprintf(&sb,
			"\"%s\" [label=\"%s\", shape=box, style=filled, style=rounded, fillcolor=lightgreen, width=1.5, height=0.8];\n",
			ToolsNode, toolsLabel(agent, "\\n"),
		)
	}

	return sb.String()
}

// GetAllEdges generates the edges of the graph in DOT format.
func GetAllEdges(agent *agents.Agent) string {
	var sb strings.Builder

	_, _ = fmt.Fprintf(&sb, "\"%s\" -> \"%s\";\n", StartNode, agent.Name)

	if len(agent.Tools) == 0 {
		_, _ = fmt.Fprintf(&sb, "\"%s\" -> \"%s\";\n", agent.Name, EndNode)
		return sb.String()
	}

	_, _ = fmt.Fprintf(&sb,
		"\"%s\" -> \"%s\" [label=\"%s\", style=dotted, penwidth=1.5];\n",
		agent.Name, ToolsNode, ContinueLabel,
	)
	_, _ = fmt.Fprintf(&sb,
		"\"%s\" -> \"%s\" [label=\"%s\", style=dotted, penwidth=1.5];\n",
		agent.Name, EndNode, EndLabel,
	)
	_, _ = fmt.Fprintf(&sb, "\"%s\" -> \"%s\";\n", ToolsNode, agent.Name)

	return sb.String()
}

func toolsLabel(agent *agents.Agent, sep string) string {
	names := make([]string, 0, len(agent.Tools)+1)
	names = append(names, ToolsNode)
	for _, t := range agent.Tools {
		names = append(names, t.ToolName())
	}
	return strings.Join(names, sep)
}

// DrawASCII renders the graph as plain text, one node box per level.
func DrawASCII(agent *agents.Agent) string {
	var rows [][]string

	start := box(StartNode)
	agentBox := box(agent.Name)
	rows = append(rows, start, arrow(""), agentBox)

	if len(agent.Tools) == 0 {
		rows = append(rows, arrow(""), box(EndNode))
	} else {
		tools := box(strings.Split(toolsLabel(agent, "\n"), "\n")...)
		end := box(EndNode)
		rows = append(rows,
			sideBySide(arrow(EndLabel), arrow(ContinueLabel), widthOf(end), 2),
			sideBySide(end, tools, widthOf(end), 2),
			sideBySide(nil, []string{"|", "+--> " + agent.Name}, widthOf(end), 2),
		)
	}

	width := 0
	for _, r := range rows {
		width = max(width, widthOf(r))
	}

	var sb strings.Builder
	for i, r := range rows {
		// The tail of the two-column rows keeps its left alignment.
		center := i < 3 || len(agent.Tools) == 0
		for _, line := range r {
			if center {
				line = strings.Repeat(" ", (width-runeLen(line))/2) + line
			}
			sb.WriteString(strings.TrimRight(line, " "))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func box(lines ...string) []string {
	inner := 0
	for _, l := range lines {
		inner = max(inner, runeLen(l))
	}
	border := "+" + strings.Repeat("-", inner+2) + "+"

	out := make([]string, 0, len(lines)+2)
	out = append(out, border)
	for _, l := range lines {
		out = append(out, "| "+l+strings.Repeat(" ", inner-runeLen(l))+" |")
	}
	return append(out, border)
}

func arrow(label string) []string {
	if label == "" {
		return []string{"|", "v"}
	}
	return []string{"| " + label, "v"}
}

// sideBySide places b to the right of a, padding a's column to leftWidth.
func sideBySide(a, b []string, leftWidth, gap int) []string {
	n := max(len(a), len(b))
	out := make([]string, n)
	for i := range n {
		var l, r string
		if i < len(a) {
			l = a[i]
		}
		if i < len(b) {
			r = b[i]
		}
		out[i] = l + strings.Repeat(" ", leftWidth-runeLen(l)+gap) + r
	}
	return out
}

func widthOf(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, runeLen(l))
	}
	return w
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
