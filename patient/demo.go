package patient

import (
	"fmt"
	"math/rand"
)

// DemoRecord returns a randomized valid record for demo mode. counter is used
// only for the display name.
func DemoRecord(counter int) Record {
	return Record{
		Name:            fmt.Sprintf("Demo Patient %d", counter),
		Age:             MinAge + rand.Intn(MaxAge-MinAge+1),
		Gender:          pick(GenderValues),
		Smoking:         pick(YesNoValues),
		SmokingHistory:  pick(YesNoValues),
		Radiotherapy:    pick(YesNoValues),
		ThyroidFunction: pick(ThyroidFuncValues),
		PhysicalExam:    pick(PhysicalExamValues),
		Adenopathy:      pick(AdenopathyValues),
		Pathology:       pick(PathologyValues),
		Focality:        pick(FocalityValues),
		Risk:            pick(RiskValues),
		T:               pick(TValues),
		N:               pick(NValues),
		M:               pick(MValues),
		Stage:           pick(StageValues),
		Response:        pick(ResponseValues),
	}
}

func pick(domain []string) string {
	return domain[rand.Intn(len(domain))]
}
