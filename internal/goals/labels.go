package goals

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/prepdesk/internal/model"
)

var labelFormats = map[string]map[model.GoalType]string{
	"en": {
		model.GoalTime:      "Study %d minutes",
		model.GoalQuestions: "Solve %d questions",
	},
	"hi": {
		model.GoalTime:      "%d मिनट पढ़ाई करें",
		model.GoalQuestions: "%d प्रश्न हल करें",
	},
}

// Labels renders the default and translated labels for a goal.
func Labels(t model.GoalType, target int, lang string) (label, translated string) {
	label = fmt.Sprintf(labelFormats["en"][t], target)
	formats, ok := labelFormats[strings.ToLower(strings.TrimSpace(lang))]
	if !ok {
		return label, label
	}
	return label, fmt.Sprintf(formats[t], target)
}
