package quality

// Sentiment labels produced by the lexicon analyzer.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// positiveWords and negativeWords form the sentiment lexicon. Lexicon
// counting keeps the evaluator deterministic: the same text always
// yields the same polarity and confidence.
var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "excellent": {}, "amazing": {}, "love": {},
	"helpful": {}, "useful": {}, "fantastic": {}, "solid": {}, "reliable": {},
	"intuitive": {}, "seamless": {}, "powerful": {}, "fast": {}, "easy": {},
	"recommend": {}, "impressive": {}, "smooth": {}, "flexible": {},
	"beautiful": {}, "clean": {}, "generous": {}, "valuable": {}, "best": {},
	"perfect": {}, "enjoy": {}, "pleased": {}, "happy": {}, "efficient": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "poor": {}, "terrible": {}, "awful": {}, "horrible": {},
	"bug": {}, "bugs": {}, "buggy": {}, "broken": {}, "crash": {},
	"crashes": {}, "slow": {}, "frustrating": {}, "frustrated": {},
	"disappointing": {}, "disappointed": {}, "useless": {}, "waste": {},
	"painful": {}, "confusing": {}, "unreliable": {}, "missing": {},
	"lacking": {}, "outdated": {}, "expensive": {}, "steep": {},
	"clunky": {}, "worst": {}, "annoying": {}, "unusable": {},
}

// expectedLengthRanges maps rating to the expected word-count band.
// Low ratings tend to be short complaints, high ratings detailed praise.
var expectedLengthRanges = map[int][2]int{
	1: {20, 150},
	2: {30, 180},
	3: {40, 200},
	4: {40, 200},
	5: {30, 180},
}

const defaultMinLengthWords, defaultMaxLengthWords = 30, 200

// Penalty points applied to the bias sub-score.
const (
	sentimentMismatchPenalty = 50.0
	lengthAnomalyPenalty     = 30.0
)

// BiasResult is the breakdown of the bias/alignment evaluation.
type BiasResult struct {
	// Sentiment is the detected polarity label
	Sentiment string `json:"sentiment"`

	// Confidence is the polarity strength in [0, 1]
	Confidence float64 `json:"confidence"`

	// ExpectedSentiment is the polarity implied by the rating
	ExpectedSentiment string `json:"expected_sentiment"`

	// Aligned is false when the polarity contradicts the rating;
	// this is a hard gate
	Aligned bool `json:"aligned"`

	// WordCount is the candidate length in words
	WordCount int `json:"word_count"`

	// LengthAnomalous is true when WordCount is outside the expected
	// band for the rating; this is a hard gate
	LengthAnomalous bool `json:"length_anomalous"`
	TooShort        bool `json:"too_short"`
	TooLong         bool `json:"too_long"`

	// Score is the bias sub-score (0-100, higher is better aligned)
	Score float64 `json:"score"`
}

// BiasEvaluator checks that expressed sentiment and length are consistent
// with the target rating. Stateless and deterministic.
type BiasEvaluator struct{}

// Evaluate scores one candidate against its target rating.
func (BiasEvaluator) Evaluate(candidate string, rating int) BiasResult {
	label, confidence := analyzeSentiment(candidate)

	expected := SentimentNeutral
	switch {
	case rating <= 2:
		expected = SentimentNegative
	case rating >= 4:
		expected = SentimentPositive
	}

	// 3-star reviews may read either way; only the extremes constrain.
	// A neutral read never contradicts an extreme rating outright.
	aligned := true
	if expected != SentimentNeutral && label != SentimentNeutral {
		aligned = label == expected
	}

	wc := wordCount(candidate)
	bounds, ok := expectedLengthRanges[rating]
	if !ok {
		bounds = [2]int{defaultMinLengthWords, defaultMaxLengthWords}
	}
	tooShort := wc < bounds[0]
	tooLong := wc > bounds[1]

	var penalty float64
	if !aligned {
		penalty += confidence * sentimentMismatchPenalty
	}
	if tooShort || tooLong {
		penalty += lengthAnomalyPenalty
	}

	score := 100 - penalty
	if score < 0 {
		score = 0
	}

	return BiasResult{
		Sentiment:         label,
		Confidence:        confidence,
		ExpectedSentiment: expected,
		Aligned:           aligned,
		WordCount:         wc,
		LengthAnomalous:   tooShort || tooLong,
		TooShort:          tooShort,
		TooLong:           tooLong,
		Score:             score,
	}
}

// analyzeSentiment counts lexicon hits and returns a polarity label with
// a confidence in [0, 1] (the margin between polarities).
func analyzeSentiment(text string) (label string, confidence float64) {
	var pos, neg float64
	for _, tok := range tokenize(text) {
		if _, ok := positiveWords[tok]; ok {
			pos++
		}
		if _, ok := negativeWords[tok]; ok {
			neg++
		}
	}

	total := pos + neg
	if total == 0 {
		return SentimentNeutral, 0
	}

	confidence = (pos - neg) / total
	if confidence < 0 {
		confidence = -confidence
	}

	switch {
	case pos > neg:
		return SentimentPositive, confidence
	case neg > pos:
		return SentimentNegative, confidence
	default:
		return SentimentNeutral, 0
	}
}
