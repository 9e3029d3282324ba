package app

const (
	// Metrics
	CommandsTotal              = "commands_total"
	CommandsTotalHelp          = "Total number of dispatched commands"
	CommandDurationSeconds     = "command_duration_seconds"
	CommandDurationSecondsHelp = "Duration of a command including connect and disconnect"
	ConnectFailuresTotal       = "connect_failures_total"
	ConnectFailuresTotalHelp   = "Number of failed database connections"
	ConnectDurationSeconds     = "connect_duration_seconds"
	ConnectDurationSecondsHelp = "Time spent connecting to and pinging the database"

	LabelCommand = "command"
	LabelStatus  = "status"

	StatusSuccess = "success"
	StatusError   = "error"

	// UnknownCommand labels invocations that fell through to the help listing.
	UnknownCommand = "unknown"

	RunIDKey = "run_id"
)

var (
	CommandDurationSecondsBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	ConnectDurationSecondsBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10}
)
