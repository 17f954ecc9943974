package cli

import "context"

// PreExec is a function that may run before a resolved command.
type PreExec func(ctx context.Context, inv *Invocation) error

// AddPreExec registers a function that will be executed right before a command runs.
// If an error is returned from a [PreExec], then the command will not be executed, and the error will be returned from Exec instead.
// Note that no [PreExec] functions are executed when help is requested, or when a group is invoked, since that just prints usage.
//
// Passing a nil [PreExec] function to this function will panic.
func (a *App) AddPreExec(fn PreExec) {
	if fn == nil {
		panic("nil pre-exec function")
	}
	a.preExec = append(a.preExec, fn)
}

func (a *App) runPreExec(ctx context.Context, inv *Invocation) error {
	for _, fn := range a.preExec {
		if err := fn(ctx, inv); err != nil {
			return err
		}
	}
	return nil
}
