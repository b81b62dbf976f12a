package common

import (
	"fmt"

	"github.com/gertd/go-pluralize"
)

// Count writes n followed by word in the right number: "1 district", "18 districts".
func Count(pc *pluralize.Client, n int, word string) string {
	if pc == nil {
		pc = pluralize.NewClient()
	}

	return fmt.Sprintf("%v %v", n, pc.Pluralize(word, n, false))
}
