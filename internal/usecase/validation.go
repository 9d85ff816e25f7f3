package usecase

import (
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateCreateQuestionnaireInput checks the required answers in form order.
func ValidateCreateQuestionnaireInput(input CreateQuestionnaireInput) []ValidationError {
	required := []struct {
		field string
		value string
	}{
		{"name", input.Name},
		{"email", input.Email},
		{"phone", input.Phone},
		{"eventId", input.EventID},
		{"entrepreneurAtHeart", input.EntrepreneurAtHeart},
		{"goalWithLaunching", input.GoalWithLaunching},
		{"interestInSolarBusiness", input.InterestInSolarBusiness},
		{"desiredMonthlyRevenue", input.DesiredMonthlyRevenue},
		{"helpNeededMost", input.HelpNeededMost},
		{"currentMonthlyIncome", input.CurrentMonthlyIncome},
		{"priorityReason", input.PriorityReason},
		{"investmentWillingness", input.InvestmentWillingness},
		{"strategyCallCommitment", input.StrategyCallCommitment},
	}

	var errors []ValidationError
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errors = append(errors, ValidationError{r.field, "is required"})
		}
	}
	return errors
}
