package consoles

// Console receives the progress messages of the pipeline. Formats carry their own newline.
type Console interface {
	Printf(format string, a ...any)

	PushPrefix(format string, a ...any)
	PopPrefix()
}
