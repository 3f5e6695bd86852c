package event

import (
	"regexp"
	"strings"
)

// Markers printed by the backend. They are matched verbatim.
const (
	MarkerDiskCreated      = "MKDISK: Disco creado exitosamente"
	MarkerDiskRemoved      = "RMDISK: Disco eliminado correctamente"
	MarkerPartition        = "FDISK: Partición"
	MarkerDirectoryCreated = "MKDIR: Directorio"
	MarkerFileCreated      = "MKFILE: Archivo creado exitosamente"
	MarkerRemoved          = "REMOVE:"
	MarkerRenamed          = "RENAME:"
	MarkerMoved            = "MOVE:"
)

// Field prefixes of follow-up lines
const (
	FieldPath    = "-> Path: "
	FieldSize    = "-> Tamaño: "
	FieldNewName = "-> Nuevo nombre: "
	FieldOrigin  = "-> Origen: "
	FieldDest    = "-> Destino: "
)

// MaxLookahead is the number of follow-up lines a block may span
const MaxLookahead = 2

var (
	pathLine      = regexp.MustCompile(`^-> Path: (.+)$`)
	sizeLine      = regexp.MustCompile(`^-> Tamaño: (.+)$`)
	inlinePath    = regexp.MustCompile(`-> Path: (.+)$`)
	partitionLine = regexp.MustCompile(`^FDISK: Partición [^']*'(.+)' creada exitosamente`)
	removeLine    = regexp.MustCompile(`^REMOVE: (?:Eliminado correctamente )?-> (.+)$`)
	dirPathLine   = regexp.MustCompile(`^(?:-> Path: )?(/.*)$`)
)

// rule recognizes one event variant. It returns the event and the number of
// lines consumed, header included.
type rule func(line string, next []string) (Event, int, bool)

// Classifier recognizes marker blocks in backend output
type Classifier struct {
	rules []rule
}

// NewClassifier creates a classifier for the backend's output format
func NewClassifier() *Classifier {
	return &Classifier{
		rules: []rule{
			diskCreated,
			diskRemoved,
			partitionCreated,
			directoryCreated,
			fileCreated,
			removed,
			fieldPair(MarkerRenamed, FieldPath, FieldNewName, func(path, name string) Event {
				return Renamed{Path: path, NewName: name}
			}),
			fieldPair(MarkerMoved, FieldOrigin, FieldDest, func(from, to string) Event {
				return Moved{From: from, To: to}
			}),
		},
	}
}

// Classify inspects line plus up to MaxLookahead following lines.
// It returns the recognized event and how many lines it spans. Lines that
// match no marker yield Unrecognized spanning one line.
func (c *Classifier) Classify(line string, lookahead []string) (Event, int) {
	line = normalize(line)
	if len(lookahead) > MaxLookahead {
		lookahead = lookahead[:MaxLookahead]
	}
	next := make([]string, len(lookahead))
	for i, l := range lookahead {
		next[i] = normalize(l)
	}

	for _, r := range c.rules {
		if ev, n, ok := r(line, next); ok {
			return ev, n
		}
	}
	return Unrecognized{Line: line}, 1
}

// Scan classifies a whole batch in line order. Blank lines are skipped and
// follow-up lines of a recognized block are not classified again.
func (c *Classifier) Scan(text string) []Event {
	lines := Lines(text)
	events := make([]Event, 0, len(lines))
	for i := 0; i < len(lines); {
		if lines[i] == "" {
			i++
			continue
		}
		end := i + 1 + MaxLookahead
		if end > len(lines) {
			end = len(lines)
		}
		ev, n := c.Classify(lines[i], lines[i+1:end])
		events = append(events, ev)
		i += n
	}
	return events
}

// Lines splits batch text into trimmed lines
func Lines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = normalize(l)
	}
	return lines
}

func normalize(line string) string {
	return strings.TrimSpace(strings.TrimSuffix(line, "\r"))
}

func diskCreated(line string, next []string) (Event, int, bool) {
	if !strings.HasPrefix(line, MarkerDiskCreated) || len(next) < 2 {
		return nil, 0, false
	}
	path := pathLine.FindStringSubmatch(next[0])
	size := sizeLine.FindStringSubmatch(next[1])
	if path == nil || size == nil {
		return nil, 0, false
	}
	return DiskCreated{Path: strings.TrimSpace(path[1]), Size: strings.TrimSpace(size[1])}, 3, true
}

func diskRemoved(line string, next []string) (Event, int, bool) {
	if !strings.HasPrefix(line, MarkerDiskRemoved) {
		return nil, 0, false
	}
	if m := inlinePath.FindStringSubmatch(line); m != nil {
		return DiskRemoved{Path: strings.TrimSpace(m[1])}, 1, true
	}
	if len(next) > 0 {
		if m := pathLine.FindStringSubmatch(next[0]); m != nil {
			return DiskRemoved{Path: strings.TrimSpace(m[1])}, 2, true
		}
	}
	return nil, 0, false
}

func partitionCreated(line string, next []string) (Event, int, bool) {
	if !strings.HasPrefix(line, MarkerPartition) || len(next) < 1 {
		return nil, 0, false
	}
	name := partitionLine.FindStringSubmatch(line)
	size := sizeLine.FindStringSubmatch(next[0])
	if name == nil || size == nil {
		return nil, 0, false
	}
	return PartitionCreated{Name: name[1], Size: strings.TrimSpace(size[1])}, 2, true
}

func directoryCreated(line string, next []string) (Event, int, bool) {
	if !strings.HasPrefix(line, MarkerDirectoryCreated) || len(next) < 1 {
		return nil, 0, false
	}
	m := dirPathLine.FindStringSubmatch(next[0])
	if m == nil {
		return nil, 0, false
	}
	return DirectoryCreated{Path: strings.TrimSpace(m[1])}, 2, true
}

func fileCreated(line string, next []string) (Event, int, bool) {
	if !strings.HasPrefix(line, MarkerFileCreated) || len(next) < 1 {
		return nil, 0, false
	}
	m := pathLine.FindStringSubmatch(next[0])
	if m == nil {
		return nil, 0, false
	}
	return FileCreated{Path: strings.TrimSpace(m[1])}, 2, true
}

func removed(line string, _ []string) (Event, int, bool) {
	m := removeLine.FindStringSubmatch(line)
	if m == nil {
		return nil, 0, false
	}
	return Removed{Path: strings.TrimSpace(m[1])}, 1, true
}

// fieldPair recognizes a marker whose two fields may sit on the header
// remainder or on the following lines, in either order.
func fieldPair(marker, first, second string, build func(a, b string) Event) rule {
	return func(line string, next []string) (Event, int, bool) {
		if !strings.HasPrefix(line, marker) {
			return nil, 0, false
		}

		var a, b string
		take := func(s string) bool {
			switch {
			case a == "" && strings.HasPrefix(s, first):
				a = strings.TrimSpace(strings.TrimPrefix(s, first))
			case b == "" && strings.HasPrefix(s, second):
				b = strings.TrimSpace(strings.TrimPrefix(s, second))
			default:
				return false
			}
			return true
		}

		take(strings.TrimSpace(strings.TrimPrefix(line, marker)))
		consumed := 1
		for _, l := range next {
			if a != "" && b != "" {
				break
			}
			if !take(l) {
				break
			}
			consumed++
		}
		if a == "" || b == "" {
			return nil, 0, false
		}
		return build(a, b), consumed, true
	}
}
