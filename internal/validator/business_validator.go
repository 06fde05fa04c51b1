package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
)

// ValidationError describes a single failed field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

func toValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var errors ValidationErrors
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			errors = append(errors, ValidationError{
				Field:   fe.Field(),
				Message: messageFor(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
		return errors
	}

	return ValidationErrors{{Field: "", Message: err.Error(), Rule: "struct"}}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// BusinessValidator layers the domain rules tag validation cannot express.
type BusinessValidator struct {
	validate *validator.Validate
}

func NewBusinessValidator(validate *validator.Validate) *BusinessValidator {
	return &BusinessValidator{validate: validate}
}

func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	return toValidationErrors(bv.validate.Struct(s))
}

// ValidateQuestions checks the rules shared by manual edits and AI-seeded
// question lists: at least two options and a correct index inside them.
func (bv *BusinessValidator) ValidateQuestions(questions []models.QuizQuestion) ValidationErrors {
	var errors ValidationErrors

	for i, q := range questions {
		if q.Statement == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("preguntas[%d].enunciado", i),
				Message: "is required",
				Rule:    "required",
			})
		}
		if len(q.Options) < 2 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("preguntas[%d].opciones", i),
				Message: "must have at least 2 options",
				Value:   len(q.Options),
				Rule:    "min",
			})
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("preguntas[%d].indiceCorrecta", i),
				Message: "must reference an existing option",
				Value:   q.CorrectIndex,
				Rule:    "range",
			})
		}
	}

	return errors
}

// ValidateQuizUpdate validates an edit request together with its question
// rules.
func (bv *BusinessValidator) ValidateQuizUpdate(req *QuizUpdateRequest) ValidationErrors {
	errors := bv.Validate(req)
	if req.Questions != nil {
		errors = append(errors, bv.ValidateQuestions(req.Questions)...)
	}
	return errors
}

// ValidateGenerateRequest validates AI generation input.
func (bv *BusinessValidator) ValidateGenerateRequest(req *GenerateQuizRequest) ValidationErrors {
	return bv.Validate(req)
}
