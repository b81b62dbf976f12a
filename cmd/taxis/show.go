package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gertd/go-pluralize"
	"github.com/oleiade/lane/v2"
	"github.com/samber/lo"

	"github.com/pescuma/taxis/lib/common"
	"github.com/pescuma/taxis/lib/model"
)

type ShowCmd struct {
	WithYears bool `short:"y" help:"Also show the years with data of each area."`
	WithFiles bool `short:"f" help:"Also show the files of each area."`
}

var plurals = pluralize.NewClient()

func (c *ShowCmd) Run(ctx *context) error {
	sources, err := ctx.ws.Load()
	if err != nil {
		return err
	}

	areas, err := ctx.ws.Reconcile(sources)
	if err != nil {
		return err
	}

	c.print(os.Stdout, areas)

	return nil
}

type showItem struct {
	area  *model.EnrichedArea
	level int
}

func (c *ShowCmd) print(out io.Writer, areas []*model.EnrichedArea) {
	byID := lo.KeyBy(areas, func(a *model.EnrichedArea) string {
		return a.ID
	})

	stack := lane.NewStack[showItem]()

	roots := lo.Filter(areas, func(a *model.EnrichedArea, _ int) bool {
		return a.IsRoot()
	})
	for i := len(roots) - 1; i >= 0; i-- {
		stack.Push(showItem{roots[i], 0})
	}

	for {
		item, ok := stack.Pop()
		if !ok {
			break
		}

		a := item.area
		indent := strings.Repeat("   ", item.level)

		_, _ = fmt.Fprintf(out, "%v%v %v (%v)%v\n", indent, a.Type, a.Name, a.ID, c.details(a))

		if c.WithFiles {
			for _, f := range a.Files {
				_, _ = fmt.Fprintf(out, "%v   - %v\n", indent, f)
			}
		}

		for i := len(a.Children) - 1; i >= 0; i-- {
			if child, ok := byID[a.Children[i]]; ok {
				stack.Push(showItem{child, item.level + 1})
			}
		}
	}
}

func (c *ShowCmd) details(a *model.EnrichedArea) string {
	var parts []string

	if len(a.Children) > 0 {
		parts = append(parts, common.Count(plurals, len(a.Children), "child"))
	}
	if len(a.Meta) > 0 {
		parts = append(parts, common.Count(plurals, len(a.Meta), "field"))
	}
	if c.WithYears && len(a.Data) > 0 {
		parts = append(parts, fmt.Sprintf("data %v-%v", a.Data[0].Year, a.Data[len(a.Data)-1].Year))
	}

	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, ", ")
}
