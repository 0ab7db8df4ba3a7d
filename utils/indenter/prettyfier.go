package indenter

import "strings"

// indenter accumulates a nested rendering. Nesting a single entry keeps it
// on the current line, nesting several puts each on its own, indented line.
type indenter struct {
	buffer *strings.Builder
	level  int
}

func Indenter() indenter {
	return indenter{buffer: &strings.Builder{}}
}

func (i indenter) indent() string {
	return strings.Repeat("  ", i.level)
}

func (i indenter) Start(str string) indenter {
	i.buffer.WriteString(str)
	return i
}

func (i indenter) NestStrings(strs ...string) indenter {
	return i.NestStringsSep("", strs...)
}

// NestStringsSep is NestStrings with sep after every entry but the last.
func (i indenter) NestStringsSep(sep string, strs ...string) indenter {
	if len(strs) == 1 {
		i.buffer.WriteString(strs[0])
		return i
	}

	nested := i
	nested.level++
	for j, str := range strs {
		nested.buffer.WriteString("\n" + nested.indent() + str)
		if j < len(strs)-1 {
			nested.buffer.WriteString(sep)
		}
	}
	i.buffer.WriteString("\n")
	return i
}

func (i indenter) End(str string) string {
	s := i.buffer.String()
	if strings.HasSuffix(s, "\n") {
		return s + i.indent() + str
	}
	return s + str
}
