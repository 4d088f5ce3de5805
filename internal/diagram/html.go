package diagram

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// voidElements never take a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// CheckHTML verifies that markup is well formed enough to preview:
// every opened non-void element is closed, and close tags match the
// innermost open element. The tokenizer is lenient by design, so this
// reports structural problems a browser would silently repair; they
// surface in the error panel but never block storing the artifact.
func CheckHTML(content string) *SyntaxError {
	tok := html.NewTokenizer(strings.NewReader(content))
	var stack []string
	for {
		switch tok.Next() {
		case html.ErrorToken:
			if len(stack) > 0 {
				return &SyntaxError{Message: fmt.Sprintf("unclosed <%s>", stack[len(stack)-1])}
			}
			return nil
		case html.StartTagToken:
			name, _ := tok.TagName()
			tag := string(name)
			if !voidElements[tag] {
				stack = append(stack, tag)
			}
		case html.EndTagToken:
			name, _ := tok.TagName()
			tag := string(name)
			if len(stack) == 0 {
				return &SyntaxError{Message: fmt.Sprintf("unexpected </%s>", tag)}
			}
			if stack[len(stack)-1] != tag {
				return &SyntaxError{Message: fmt.Sprintf("</%s> closes <%s>", tag, stack[len(stack)-1])}
			}
			stack = stack[:len(stack)-1]
		}
	}
}
