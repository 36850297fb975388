//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package syntax

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/timburks/pinot/pkg/types"
)

// Default is used for files no syntax claims. It has no rules.
var Default = New("none", "")

var builtins = []*Syntax{
	New("go", `\.go$`,
		Single(`\b(break|case|chan|const|continue|default|defer|else|fallthrough|for|func|go|goto|if|import|interface|map|package|range|return|select|struct|switch|type|var)\b`, types.ColorGreen),
		Single(`\b(bool|byte|error|float32|float64|int|int8|int16|int32|int64|rune|string|uint|uint8|uint16|uint32|uint64|uintptr|nil|true|false|iota)\b`, types.ColorCyan),
		Single(`\b[0-9]+(\.[0-9]*)?\b`, types.ColorMagenta),
		Single(`"(\\.|[^"])*"`, types.ColorYellow),
		Multi("`", "`", types.ColorYellow),
		Single(`//.*`, types.ColorBlue),
		Multi(`/\*`, `\*/`, types.ColorBlue),
	),
	New("c", `\.(c|h|cc|cpp|hpp)$`,
		Single(`\b(auto|break|case|char|const|continue|default|do|double|else|enum|extern|float|for|goto|if|int|long|register|return|short|signed|sizeof|static|struct|switch|typedef|union|unsigned|void|volatile|while)\b`, types.ColorGreen),
		Single(`^\s*#\s*[a-z]+`, types.ColorCyan),
		Single(`"(\\.|[^"])*"`, types.ColorYellow),
		Single(`//.*`, types.ColorBlue),
		Multi(`/\*`, `\*/`, types.ColorBlue),
	),
	New("sh", `\.(sh|bash)$`,
		Single(`\b(case|do|done|elif|else|esac|fi|for|function|if|in|then|until|while)\b`, types.ColorGreen),
		Single(`\$\{?[A-Za-z_][A-Za-z0-9_]*\}?`, types.ColorCyan),
		Single(`"(\\.|[^"])*"`, types.ColorYellow),
		Single(`#.*`, types.ColorBlue),
	),
}

// chroma lexer names that correspond to a builtin syntax
var aliases = map[string]string{
	"go":        "go",
	"c":         "c",
	"c++":       "c",
	"bash":      "sh",
	"sh":        "sh",
	"shell":     "sh",
	"zsh":       "sh",
	"plaintext": "none",
}

// Named returns the builtin syntax with the given name, or nil.
func Named(name string) *Syntax {
	for _, s := range builtins {
		if s.Name == name {
			return s
		}
	}
	if name == Default.Name {
		return Default
	}
	return nil
}

// Select chooses the syntax for a file from its name and, failing that,
// from its first line of content.
func Select(filename string, firstLine []byte) *Syntax {
	for _, s := range builtins {
		if s.Extensions != nil && s.Extensions.MatchString(filename) {
			return s
		}
	}
	if filename != "" {
		if lexer := lexers.Match(filename); lexer != nil {
			if s := Named(aliases[strings.ToLower(lexer.Config().Name)]); s != nil {
				return s
			}
		}
	}
	if len(firstLine) > 0 {
		if lexer := lexers.Analyse(string(firstLine)); lexer != nil {
			if s := Named(aliases[strings.ToLower(lexer.Config().Name)]); s != nil {
				return s
			}
		}
	}
	return Default
}
