package lexer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"stela/interpreter-go/pkg/token"
)

// fixtureToken is the YAML shape of one expected token; only the fields
// relevant to its kind are populated.
type fixtureToken struct {
	Kind   string `yaml:"kind"`
	Id     string `yaml:"id,omitempty"`
	Number int    `yaml:"number,omitempty"`
	String string `yaml:"string,omitempty"`
	Char   string `yaml:"char,omitempty"`
}

type fixtureCase struct {
	Name   string         `yaml:"name"`
	Source string         `yaml:"source"`
	Tokens []fixtureToken `yaml:"tokens"`
}

type fixtureFile struct {
	Cases []fixtureCase `yaml:"cases"`
}

var kindByName = map[string]token.Kind{
	"Number":      token.Number,
	"String":      token.String,
	"Id":          token.Id,
	"Char":        token.Char,
	"Newline":     token.Newline,
	"Indent":      token.Indent,
	"Dedent":      token.Dedent,
	"Eof":         token.Eof,
	"Class":       token.Class,
	"Return":      token.Return,
	"If":          token.If,
	"Else":        token.Else,
	"Def":         token.Def,
	"Print":       token.Print,
	"And":         token.And,
	"Or":          token.Or,
	"Not":         token.Not,
	"Eq":          token.Eq,
	"NotEq":       token.NotEq,
	"LessOrEq":    token.LessOrEq,
	"GreaterOrEq": token.GreaterOrEq,
	"None":        token.None,
	"True":        token.True,
	"False":       token.False,
}

func (ft fixtureToken) toToken(t *testing.T) token.Token {
	kind, ok := kindByName[ft.Kind]
	if !ok {
		t.Fatalf("fixture: unknown token kind %q", ft.Kind)
	}
	tok := token.Token{Kind: kind}
	switch kind {
	case token.Number:
		tok.NumberValue = ft.Number
	case token.String:
		tok.StringValue = ft.String
	case token.Id:
		tok.IdValue = ft.Id
	case token.Char:
		if len(ft.Char) != 1 {
			t.Fatalf("fixture: char token needs exactly one rune, got %q", ft.Char)
		}
		tok.CharValue = rune(ft.Char[0])
	}
	return tok
}

func loadFixtures(t *testing.T, path string) fixtureFile {
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixtures %s: %v", path, err)
	}
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		t.Fatalf("parse fixtures %s: %v", path, err)
	}
	return file
}

func collectTokens(t *testing.T, source string) []token.Token {
	l, err := New(strings.NewReader(source))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tokens := []token.Token{l.Current()}
	for tokens[len(tokens)-1].Kind != token.Eof {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func TestLexerFixtures(t *testing.T) {
	file := loadFixtures(t, filepath.Join("testdata", "basic.yaml"))
	for _, c := range file.Cases {
		t.Run(c.Name, func(t *testing.T) {
			want := make([]token.Token, len(c.Tokens))
			for i, ft := range c.Tokens {
				want[i] = ft.toToken(t)
			}
			got := collectTokens(t, c.Source)

			if len(got) != len(want) {
				t.Fatalf("token count mismatch:\n%s", cmp.Diff(want, got))
			}
			for i := range want {
				if !got[i].Equal(want[i]) {
					t.Errorf("token %d mismatch:\n%s", i, cmp.Diff(want[i], got[i]))
				}
			}
		})
	}
}
