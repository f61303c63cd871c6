// Package mini implements a lightweight, minimalist interface for track search and playback.
package mini

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/kyoku-cli/kyoku/icon"
	"github.com/kyoku-cli/kyoku/style"
	"github.com/kyoku-cli/kyoku/util"
	"github.com/samber/lo"
)

// bind is a named menu action rendered next to the regular menu entries.
type bind struct {
	name string
}

func (b *bind) String() string {
	return b.name
}

func (b *bind) eq(other *bind) bool {
	return b == other
}

var (
	quitBind     = &bind{"Quit"}
	backBind     = &bind{"Back"}
	searchBind   = &bind{"Search"}
	pauseBind    = &bind{"Pause / Resume"}
	nextBind     = &bind{"Next in queue"}
	stopBind     = &bind{"Stop"}
	enqueueBind  = &bind{"Enqueue"}
	favoriteBind = &bind{"Favorite"}
)

func title(t string) {
	fmt.Println(style.Title(t))
}

func fail(t string) {
	fmt.Printf("%s %s\n", icon.Get(icon.Fail), style.Fg(style.ErrorColor)(t))
}

func progress(t string) (eraser func()) {
	return util.PrintErasable(fmt.Sprintf("%s %s", icon.Get(icon.Progress), t))
}

type input struct {
	value string
}

// getInput prompts for a single line and re-asks until the validator accepts it.
func getInput(validate func(string) bool) (*input, error) {
	prompt := survey.Input{Message: ""}

	var value string
	err := survey.AskOne(&prompt, &value, survey.WithValidator(func(ans interface{}) error {
		s, ok := ans.(string)
		if !ok || !validate(s) {
			return errors.New("invalid input")
		}
		return nil
	}))
	if err != nil {
		return nil, err
	}

	return &input{value: value}, nil
}

// menu renders a select prompt over the given items plus the extra binds.
// Quit is always available. When a regular item is chosen the returned bind
// is nil and the item is returned alongside it.
func menu[T fmt.Stringer](items []T, binds ...*bind) (*bind, T, error) {
	binds = append(binds, quitBind)

	options := lo.Map(items, func(item T, _ int) string {
		return item.String()
	})
	for _, b := range binds {
		options = append(options, b.String())
	}

	prompt := survey.Select{
		Options:  options,
		PageSize: 15,
	}

	var (
		index    int
		selected T
	)
	if err := survey.AskOne(&prompt, &index); err != nil {
		return nil, selected, err
	}

	if index < len(items) {
		return nil, items[index], nil
	}

	return binds[index-len(items)], selected, nil
}
