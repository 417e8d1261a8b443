/*
Package errors implements the error kinds used by the lexlocker application.

Every error returned by a handler should wrap one of the root errors declared
here or one registered by an extension with Register(code, description). The
code is exposed as the ABCI response code, which allows clients to
distinguish failures and act accordingly.

	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "deposit msg")
	}

	if errors.ErrNotFound.Is(err) {
		...
	}

Stack traces are attached on the first wrap. Use `fmt.Printf("%+v", err)` to
print the full trace, `%v` or `%s` to print the message chain only.
*/
package errors
