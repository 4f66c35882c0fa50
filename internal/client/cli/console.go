package cli

import (
	"fmt"
	"io"
)

// Console is the terminal implementation of the notifier and navigator the
// request pipeline needs: notifications are printed lines (the CLI's toast),
// and "navigating to login" means telling the user the session is gone — the
// prompt itself reverts to the anonymous command set on the next read.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Success(message string) {
	fmt.Fprintln(c.w, message)
}

func (c *Console) Error(message string) {
	fmt.Fprintln(c.w, "error:", message)
}

func (c *Console) ToLogin() {
	fmt.Fprintln(c.w, "Returning to login.")
}
