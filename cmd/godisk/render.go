package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"

	"github.com/GriffinCanCode/godisk/internal/domain/explorer"
	"github.com/GriffinCanCode/godisk/internal/domain/tree"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func render(w io.Writer, format string, res explorer.Result) error {
	switch format {
	case formatJSON:
		data, err := sonic.ConfigStd.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		data, err := yaml.Marshal(res)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		_, err := io.WriteString(w, renderText(res))
		return err
	}
}

func renderText(res explorer.Result) string {
	var b strings.Builder

	if out := strings.TrimRight(res.Output, "\n"); out != "" {
		b.WriteString(out)
		b.WriteString("\n\n")
	}

	b.WriteString("Disks\n")
	if len(res.Model.Disks) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, d := range res.Model.Disks {
		fmt.Fprintf(&b, "  %s  %s  %s\n", d.Name, d.Path, d.Size)
		for _, p := range d.Partitions {
			fmt.Fprintf(&b, "    - %s  %s\n", p.Name, p.Size)
		}
	}

	b.WriteString("\nTree\n")
	if res.Model.Tree != nil {
		b.WriteString(res.Model.Tree.Name)
		b.WriteByte('\n')
		writeChildren(&b, res.Model.Tree.Children, "")
	}

	fmt.Fprintf(&b, "\n%d lines, %d applied, %d unrecognized", res.Report.Lines, res.Report.Applied, res.Report.Unrecognized)
	if kinds := res.Report.Labels(); len(kinds) > 0 {
		names := make([]string, 0, len(kinds))
		for k := range kinds {
			names = append(names, k)
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, k := range names {
			parts[i] = fmt.Sprintf("%s=%d", k, kinds[k])
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, " "))
	}
	b.WriteByte('\n')
	return b.String()
}

func writeChildren(b *strings.Builder, children []*tree.Node, prefix string) {
	for i, n := range children {
		branch, next := "├── ", "│   "
		if i == len(children)-1 {
			branch, next = "└── ", "    "
		}
		name := n.Name
		if n.IsFolder() {
			name += "/"
		}
		b.WriteString(prefix + branch + name + "\n")
		writeChildren(b, n.Children, prefix+next)
	}
}
