package main

type BuildCmd struct {
}

func (c *BuildCmd) Run(ctx *context) error {
	return ctx.ws.Build()
}
