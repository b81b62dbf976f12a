package consoles

type nullConsole struct{}

func NewNullConsole() Console {
	return nullConsole{}
}

func (nullConsole) Printf(string, ...any) {}

func (nullConsole) PushPrefix(string, ...any) {}

func (nullConsole) PopPrefix() {}
