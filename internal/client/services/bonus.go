package services

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/dmitrijs2005/peyjabanki/internal/client/client"
	"github.com/dmitrijs2005/peyjabanki/internal/client/models"
	"github.com/dmitrijs2005/peyjabanki/internal/client/session"
)

// BonusService covers bonus questions: answering them, and for admins,
// creating questions, attaching choices and marking the correct one.
// Questions and Answers are narrowed to the selected competition; questions
// without a competition are always listed.
type BonusService interface {
	Questions(ctx context.Context) ([]models.BonusQuestion, error)
	Answers(ctx context.Context) ([]models.BonusAnswer, error)
	// Answer picks a choice (a question-choice id) for a question, replacing
	// an earlier answer.
	Answer(ctx context.Context, questionID, choiceID int) error

	CreateQuestion(ctx context.Context, text string) (*models.BonusQuestion, error)
	AddChoice(ctx context.Context, questionID int, text string) (*models.BonusQuestionChoice, error)
	SetCorrect(ctx context.Context, questionID, choiceID int) error
}

type bonusService struct {
	client client.Client
	store  *session.Store
}

func NewBonusService(c client.Client, store *session.Store) BonusService {
	return &bonusService{client: c, store: store}
}

func (s *bonusService) Questions(ctx context.Context) ([]models.BonusQuestion, error) {
	id, ok, err := s.store.SelectedCompetition(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.questions(ctx, id, ok)
	if err != nil {
		return nil, err
	}
	if ok {
		list = slices.DeleteFunc(list, func(q models.BonusQuestion) bool {
			return q.Competition != nil && *q.Competition != id
		})
	}
	return list, nil
}

func (s *bonusService) questions(ctx context.Context, competitionID int, scope bool) ([]models.BonusQuestion, error) {
	var list []models.BonusQuestion
	if err := getJSON(ctx, s.client, scoped("bonus-questions/", competitionID, scope), &list); err != nil {
		return nil, fmt.Errorf("list bonus questions: %w", err)
	}
	return list, nil
}

func (s *bonusService) Answers(ctx context.Context) ([]models.BonusAnswer, error) {
	id, ok, err := s.store.SelectedCompetition(ctx)
	if err != nil {
		return nil, err
	}
	return s.answers(ctx, id, ok)
}

func (s *bonusService) answers(ctx context.Context, competitionID int, scope bool) ([]models.BonusAnswer, error) {
	var list []models.BonusAnswer
	if err := getJSON(ctx, s.client, scoped("bonus-answers/", competitionID, scope), &list); err != nil {
		return nil, fmt.Errorf("list bonus answers: %w", err)
	}
	return list, nil
}

// Answer checks the choice and looks for an earlier answer across all
// competitions.
func (s *bonusService) Answer(ctx context.Context, questionID, choiceID int) error {
	questions, err := s.questions(ctx, 0, false)
	if err != nil {
		return err
	}
	if !hasChoice(questions, questionID, choiceID) {
		return fmt.Errorf("%w: question %d has no choice %d", ErrUnknownQuestion, questionID, choiceID)
	}

	answers, err := s.answers(ctx, 0, false)
	if err != nil {
		return err
	}
	for _, a := range answers {
		if a.Question != questionID {
			continue
		}
		req := models.BonusAnswerUpdate{Answer: choiceID}
		if err := sendJSON(ctx, s.client, http.MethodPatch, fmt.Sprintf("bonus-answers/%d/", a.ID), req, nil); err != nil {
			return fmt.Errorf("update bonus answer %d: %w", a.ID, err)
		}
		return nil
	}

	req := models.BonusAnswerCreate{Question: questionID, Answer: choiceID}
	if err := sendJSON(ctx, s.client, http.MethodPost, "bonus-answers/", req, nil); err != nil {
		return fmt.Errorf("answer bonus question %d: %w", questionID, err)
	}
	return nil
}

func hasChoice(questions []models.BonusQuestion, questionID, choiceID int) bool {
	for _, q := range questions {
		if q.ID != questionID {
			continue
		}
		for _, c := range q.Choices {
			if c.ID == choiceID {
				return true
			}
		}
	}
	return false
}

func (s *bonusService) CreateQuestion(ctx context.Context, text string) (*models.BonusQuestion, error) {
	var q models.BonusQuestion
	req := models.BonusQuestionCreate{Question: text}
	if err := sendJSON(ctx, s.client, http.MethodPost, "bonus-questions/", req, &q); err != nil {
		return nil, fmt.Errorf("create bonus question: %w", err)
	}
	return &q, nil
}

// AddChoice creates the choice and then links it to the question.
func (s *bonusService) AddChoice(ctx context.Context, questionID int, text string) (*models.BonusQuestionChoice, error) {
	var choice models.BonusChoice
	if err := sendJSON(ctx, s.client, http.MethodPost, "bonus-choices/", models.BonusChoiceCreate{Choice: text}, &choice); err != nil {
		return nil, fmt.Errorf("create bonus choice: %w", err)
	}

	// The link comes back with the choice as a bare id.
	var created struct {
		ID int `json:"id"`
	}
	req := models.BonusQuestionChoiceCreate{Question: questionID, Choice: choice.ID}
	if err := sendJSON(ctx, s.client, http.MethodPost, "bonus-question-choices/", req, &created); err != nil {
		return nil, fmt.Errorf("link choice %d to question %d: %w", choice.ID, questionID, err)
	}
	return &models.BonusQuestionChoice{ID: created.ID, Question: questionID, Choice: choice}, nil
}

func (s *bonusService) SetCorrect(ctx context.Context, questionID, choiceID int) error {
	req := models.SetCorrectRequest{ChoiceID: choiceID}
	path := fmt.Sprintf("bonus-questions/%d/set_correct/", questionID)
	if err := sendJSON(ctx, s.client, http.MethodPost, path, req, nil); err != nil {
		return fmt.Errorf("set correct answer of question %d: %w", questionID, err)
	}
	return nil
}
