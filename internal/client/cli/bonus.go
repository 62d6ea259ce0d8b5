package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/peyjabanki/internal/client/models"
)

// Bonus prints every question with its choices. The user's answer is marked
// with ">" and, once known, the correct one with "*".
func (a *App) Bonus(ctx context.Context, _ []string) error {
	questions, err := a.bonusService.Questions(ctx)
	if err != nil {
		return err
	}
	answers, err := a.bonusService.Answers(ctx)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		a.println("No bonus questions yet")
		return nil
	}

	answered := make(map[int]int, len(answers))
	for _, ans := range answers {
		answered[ans.Question] = ans.Answer
	}

	for _, q := range questions {
		a.printf("[%d] %s\n", q.ID, q.Question)
		if len(q.Choices) == 0 {
			a.println("    (no choices yet)")
			continue
		}
		for _, c := range q.Choices {
			a.printf("    %s %d. %s\n", marks(q, c, answered[q.ID]), c.ID, c.Choice.Choice)
		}
	}
	return nil
}

func marks(q models.BonusQuestion, c models.BonusQuestionChoice, answer int) string {
	m := []byte("  ")
	if c.ID == answer {
		m[0] = '>'
	}
	if q.CorrectAnswer != nil && q.CorrectAnswer.ID == c.ID {
		m[1] = '*'
	}
	return string(m)
}

func (a *App) Answer(ctx context.Context, args []string) error {
	questionID, err := parseID(args[0], "question")
	if err != nil {
		return err
	}
	choiceID, err := parseID(args[1], "choice")
	if err != nil {
		return err
	}

	if err := a.bonusService.Answer(ctx, questionID, choiceID); err != nil {
		return err
	}
	a.success("Answer saved")
	return nil
}

func (a *App) AddQuestion(ctx context.Context, _ []string) error {
	text, err := getSimpleText(a.reader, "Enter the question", a.out)
	if err != nil {
		return err
	}
	q, err := a.bonusService.CreateQuestion(ctx, text)
	if err != nil {
		return err
	}
	a.success(fmt.Sprintf("Question %d created", q.ID))
	return nil
}

func (a *App) AddChoice(ctx context.Context, args []string) error {
	questionID, err := parseID(args[0], "question")
	if err != nil {
		return err
	}
	text, err := getSimpleText(a.reader, "Enter the choice", a.out)
	if err != nil {
		return err
	}
	link, err := a.bonusService.AddChoice(ctx, questionID, text)
	if err != nil {
		return err
	}
	a.success("Choice " + strconv.Itoa(link.ID) + " added")
	return nil
}

func (a *App) SetCorrect(ctx context.Context, args []string) error {
	questionID, err := parseID(args[0], "question")
	if err != nil {
		return err
	}
	choiceID, err := parseID(args[1], "choice")
	if err != nil {
		return err
	}
	if err := a.bonusService.SetCorrect(ctx, questionID, choiceID); err != nil {
		return err
	}
	a.success("Correct answer set")
	return nil
}
