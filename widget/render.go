package widget

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Emphasis renders the rating as strong text.
func Emphasis(rating string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<strong>"+templ.EscapeString(rating)+"</strong>")

		return err
	})
}
