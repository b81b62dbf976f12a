package main

import (
	"github.com/pescuma/go-build"
)

func main() {
	cfg := build.NewBuilderConfig()
	cfg.Archs = []string{
		"darwin/amd64",
		"darwin/arm64",
		"linux/amd64",
		"linux/arm64",
		"windows/amd64",
	}

	b, err := build.NewBuilder(cfg)
	if err != nil {
		panic(err)
	}

	b.Targets.Add("release", []string{"test", "build", "zip"}, nil)

	err = b.RunTarget("release")
	if err != nil {
		panic(err)
	}
}
