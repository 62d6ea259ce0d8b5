package cli

import (
	"context"
	"strconv"
)

func (a *App) Competitions(ctx context.Context, _ []string) error {
	list, err := a.competitionService.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No competitions yet")
		return nil
	}

	selected, err := a.competitionService.Selected(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(list))
	for _, c := range list {
		mark := ""
		if c.ID == selected.ID {
			mark = "*"
		}
		rows = append(rows, []string{mark, strconv.Itoa(c.ID), c.Name})
	}
	table(a.out, "\tID\tNAME", rows)
	return nil
}

func (a *App) Use(ctx context.Context, args []string) error {
	id, err := parseID(args[0], "competition")
	if err != nil {
		return err
	}
	c, err := a.competitionService.Select(ctx, id)
	if err != nil {
		return err
	}
	a.success("Now following " + c.Name)
	return nil
}
