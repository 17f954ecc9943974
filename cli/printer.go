package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/saylorsolutions/cloudcli/argument"
)

// Printer writes user-visible output, which goes to STDERR by default.
type Printer struct {
	out io.Writer
}

func NewPrinter() *Printer {
	return &Printer{out: os.Stderr}
}

func (p *Printer) Redirect(writer io.Writer) {
	p.out = writer
}

// Writer returns the current destination of the [Printer].
func (p *Printer) Writer() io.Writer {
	return p.out
}

func (p *Printer) Print(msg ...any) {
	_, _ = fmt.Fprint(p.out, msg...)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) Println(msg ...any) {
	_, _ = fmt.Fprintln(p.out, msg...)
}

// Error prints err along with any usage hints it carries.
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	p.Println(err.Error())
	for _, detail := range argument.DetailsOf(err) {
		p.Println("  " + detail)
	}
	var usageErr *UsageError
	if errors.As(err, &usageErr) && len(usageErr.Usage()) > 0 {
		p.Println()
		p.Print(usageErr.Usage())
	}
}
