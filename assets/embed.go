// assets/embed.go
//
// Files compiled into the binary:
//   - words/*.txt: built-in word lists (one word per line, "#" comments).
//   - sql/*.sql:   schema migrations, applied in lexical order.
//   - web/*:       the browser client served at "/".
package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed words/*.txt
var wordsFS embed.FS

//go:embed sql/*.sql
var sqlFS embed.FS

//go:embed web
var webFS embed.FS

func readLines(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToUpper(s))
	}
	return out, sc.Err()
}

// SpanishWords returns the built-in Spanish list (uppercase).
func SpanishWords() ([]string, error) {
	return readLines(wordsFS, "words/es.txt")
}

// Migrations exposes the schema files rooted at the sql directory.
func Migrations() fs.FS {
	sub, _ := fs.Sub(sqlFS, "sql")
	return sub
}

// Web exposes the browser client rooted at the web directory.
func Web() fs.FS {
	sub, _ := fs.Sub(webFS, "web")
	return sub
}
