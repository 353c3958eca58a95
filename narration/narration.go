// Package narration builds the spoken summary of a prediction. Speech
// synthesis itself happens in the browser; this package only produces the
// script in the requested language.
package narration

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"thyrocast/predict"
)

var supported = []language.Tag{
	language.English, // fallback
	language.Hindi,
}

var matcher = language.NewMatcher(supported)

// Match resolves a requested language (BCP 47 tag or empty) to a supported
// narration language. Unknown or unsupported requests fall back to English.
func Match(requested string) language.Tag {
	tag, err := language.Parse(requested)
	if err != nil {
		return language.English
	}
	_, index, _ := matcher.Match(tag)
	return supported[index]
}

// Script renders the narration text for one prediction.
func Script(name string, confidenceYes float64, verdict predict.Verdict, lang language.Tag) string {
	printer := message.NewPrinter(lang)
	percent := confidenceYes * 100

	if lang == language.Hindi {
		summary := "अनुमान पूर्ण हुआ।"
		if name != "" {
			summary = fmt.Sprintf("%s के लिए अनुमान।", name)
		}
		return printer.Sprintf("%s कैंसर की पुनरावृत्ति की संभावना %.1f प्रतिशत है। परिणाम: %s", summary, percent, hindiVerdict(verdict))
	}

	summary := "Prediction completed."
	if name != "" {
		summary = printer.Sprintf("Prediction for %s. Confidence of recurrence is %.1f percent.", name, percent)
	}
	return fmt.Sprintf("%s %s", summary, englishVerdict(verdict))
}

func englishVerdict(verdict predict.Verdict) string {
	switch verdict {
	case predict.VerdictLikely:
		return "Recurrence is likely."
	case predict.VerdictBorderline:
		return "Recurrence is borderline. Please consider further testing and specialist evaluation."
	default:
		return "No recurrence expected."
	}
}

func hindiVerdict(verdict predict.Verdict) string {
	switch verdict {
	case predict.VerdictLikely:
		return "कैंसर की पुनरावृत्ति की संभावना है"
	case predict.VerdictBorderline:
		return "कैंसर की अनिश्चितता का मामला, कृपया आगे के परीक्षण और विशेषज्ञ मूल्यांकन पर विचार करें"
	default:
		return "कैंसर की पुनरावृत्ति की संभावना नहीं है"
	}
}
