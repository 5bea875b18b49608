package sentiment

var defaultNegations = []string{"not", "no", "never", "nothing", "neither", "nor", "hardly", "without"}

var defaultIntensifiers = map[string]float64{
	"very":       1.3,
	"really":     1.3,
	"extremely":  1.5,
	"super":      1.4,
	"so":         1.2,
	"too":        1.2,
	"totally":    1.3,
	"absolutely": 1.5,
	"highly":     1.3,
	"incredibly": 1.5,
	"quite":      1.1,
	"pretty":     1.1,
	"slightly":   0.6,
	"somewhat":   0.7,
	"barely":     0.5,
}

var defaultWords = map[string]float64{
	// positive
	"good":        0.7,
	"great":       0.8,
	"excellent":   1.0,
	"amazing":     0.6,
	"awesome":     1.0,
	"fantastic":   0.4,
	"wonderful":   1.0,
	"perfect":     1.0,
	"best":        1.0,
	"better":      0.5,
	"love":        0.5,
	"loved":       0.7,
	"loves":       0.5,
	"like":        0.2,
	"liked":       0.4,
	"nice":        0.6,
	"happy":       0.8,
	"satisfied":   0.5,
	"recommend":   0.4,
	"recommended": 0.4,
	"worth":       0.3,
	"comfortable": 0.4,
	"smooth":      0.4,
	"fast":        0.2,
	"quick":       0.33,
	"easy":        0.43,
	"beautiful":   0.85,
	"gentle":      0.3,
	"light":       0.4,
	"lightweight": 0.3,
	"soft":        0.1,
	"fresh":       0.3,
	"reliable":    0.5,
	"sturdy":      0.4,
	"durable":     0.4,
	"effective":   0.6,
	"works":       0.2,
	"fine":        0.42,
	"okay":        0.5,
	"ok":          0.5,
	"superb":      1.0,
	"brilliant":   0.9,
	"outstanding": 0.5,
	"impressive":  1.0,
	"pleased":     0.5,
	"glad":        0.5,
	"enjoy":       0.4,
	"enjoyed":     0.4,
	"value":       0.2,
	"cheap":       0.4,
	"affordable":  0.3,
	"clear":       0.1,
	"bright":      0.7,
	"sharp":       0.2,
	"solid":       0.3,
	"genuine":     0.4,
	"protective":  0.3,
	"hydrating":   0.3,
	// negative
	"bad":           -0.7,
	"terrible":      -1.0,
	"awful":         -1.0,
	"horrible":      -1.0,
	"worst":         -1.0,
	"worse":         -0.4,
	"poor":          -0.4,
	"hate":          -0.8,
	"hated":         -0.9,
	"disappointed":  -0.75,
	"disappointing": -0.6,
	"useless":       -0.5,
	"broken":        -0.4,
	"broke":         -0.4,
	"defective":     -0.6,
	"fake":          -0.5,
	"waste":         -0.2,
	"slow":          -0.3,
	"sticky":        -0.3,
	"greasy":        -0.4,
	"itchy":         -0.4,
	"rash":          -0.5,
	"burn":          -0.4,
	"burned":        -0.4,
	"painful":       -0.7,
	"uncomfortable": -0.5,
	"expensive":     -0.5,
	"overpriced":    -0.6,
	"cheaply":       -0.3,
	"flimsy":        -0.4,
	"noisy":         -0.3,
	"heavy":         -0.2,
	"weak":          -0.4,
	"wrong":         -0.5,
	"fail":          -0.5,
	"failed":        -0.5,
	"fails":         -0.5,
	"problem":       -0.3,
	"problems":      -0.3,
	"issue":         -0.2,
	"issues":        -0.2,
	"refund":        -0.2,
	"return":        -0.1,
	"returned":      -0.3,
	"scam":          -0.8,
	"annoying":      -0.8,
	"mediocre":      -0.3,
	"dull":          -0.3,
	"sad":           -0.5,
	"angry":         -0.5,
	"unhappy":       -0.6,
	"dirty":         -0.6,
	"damaged":       -0.5,
	"lag":           -0.3,
	"laggy":         -0.4,
	"overheats":     -0.5,
}
