package risk

import "github.com/m-mizutani/goerr/v2"

// Labels names the five steps of each axis.
type Labels struct {
	Likelihood  [MaxScale]string
	Consequence [MaxScale]string
}

func DefaultLabels() Labels {
	return Labels{
		Likelihood: [MaxScale]string{
			"Svært lite sannsynlig",
			"Lite sannsynlig",
			"Mulig",
			"Sannsynlig",
			"Svært sannsynlig",
		},
		Consequence: [MaxScale]string{
			"Ubetydelig",
			"Liten",
			"Moderat",
			"Alvorlig",
			"Katastrofal",
		},
	}
}

func (l Labels) LikelihoodName(v int) string {
	if v < MinScale || v > MaxScale {
		return ""
	}
	return l.Likelihood[v-1]
}

func (l Labels) ConsequenceName(v int) string {
	if v < MinScale || v > MaxScale {
		return ""
	}
	return l.Consequence[v-1]
}

// Validate rejects empty names.
func (l Labels) Validate() error {
	for i, name := range l.Likelihood {
		if name == "" {
			return goerr.New("likelihood label is empty", goerr.V("score", i+1))
		}
	}
	for i, name := range l.Consequence {
		if name == "" {
			return goerr.New("consequence label is empty", goerr.V("score", i+1))
		}
	}
	return nil
}
