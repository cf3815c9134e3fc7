package exitcode

const (
	Success        = 0
	UsageError     = 1
	ConfigError    = 2
	ParseError     = 3
	SubmitError    = 4
	WriteError     = 5
	PartialSuccess = 6
)
