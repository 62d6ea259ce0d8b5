package models

type BonusChoice struct {
	ID     int    `json:"id"`
	Choice string `json:"choice"`
}

// BonusQuestionChoice links a choice to a question.
type BonusQuestionChoice struct {
	ID       int         `json:"id"`
	Choice   BonusChoice `json:"choice"`
	Question int         `json:"question"`
}

type BonusQuestion struct {
	ID            int                   `json:"id"`
	Question      string                `json:"question"`
	Competition   *int                  `json:"competition"`
	Choices       []BonusQuestionChoice `json:"choices"`
	CorrectAnswer *BonusQuestionChoice  `json:"correct_answer"`
}

// BonusAnswer is the current user's answer; Answer is a question-choice id.
type BonusAnswer struct {
	ID       int `json:"id"`
	User     int `json:"user,omitempty"`
	Question int `json:"question"`
	Answer   int `json:"answer"`
}

type BonusQuestionCreate struct {
	Question string `json:"question" validate:"required,max=500"`
}

type BonusChoiceCreate struct {
	Choice string `json:"choice" validate:"required,max=200"`
}

type BonusQuestionChoiceCreate struct {
	Question int `json:"question" validate:"required,gt=0"`
	Choice   int `json:"choice" validate:"required,gt=0"`
}

type BonusAnswerCreate struct {
	Question int `json:"question" validate:"required,gt=0"`
	Answer   int `json:"answer" validate:"required,gt=0"`
}

type BonusAnswerUpdate struct {
	Answer int `json:"answer" validate:"required,gt=0"`
}

type SetCorrectRequest struct {
	ChoiceID int `json:"choice_id" validate:"required,gt=0"`
}
