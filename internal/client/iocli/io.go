package iocli

// IO abstracts terminal input/output so CLI commands can be tested
// without a real terminal.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)

	// ReadInput reads a line of visible input after printing prompt
	ReadInput(prompt string) (string, error)

	// ReadSecret reads input with terminal echo disabled (OTP codes, tokens)
	ReadSecret(prompt string) (string, error)
}
