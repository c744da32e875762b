package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	DBConnError     = 3
	LookupError     = 4
	ClassifyError   = 5
	LoadError       = 6
)
