package pack

// Stats aggregates authoring progress counters for a pack.
type Stats struct {
	Rounds         int `json:"rounds"`
	Questions      int `json:"questions"`
	TimerOverrides int `json:"timer_overrides"`
	MediaAssets    int `json:"media_assets"`
	MultipleChoice int `json:"multiple_choice"`
}

func (p *Pack) Stats() Stats {
	s := Stats{Rounds: len(p.Rounds)}
	for _, r := range p.Rounds {
		if r.IntroMediaPath != "" {
			s.MediaAssets++
		}
		for _, q := range r.Questions {
			s.Questions++
			if q.TimerSec > 0 {
				s.TimerOverrides++
			}
			if q.Type == TypeMultipleChoice {
				s.MultipleChoice++
			}
			if q.MediaPath != "" {
				s.MediaAssets++
			}
			if q.AnswerMediaPath != "" {
				s.MediaAssets++
			}
		}
	}
	return s
}
