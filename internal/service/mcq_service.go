package service

import (
	"MCQ-Generator-Backend/internal/model"
	"MCQ-Generator-Backend/internal/nlp"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrEmptyParagraph = errors.New("paragraph cannot be empty")

const numDistractors = 3

type MCQOptions struct {
	Placeholder string
	Blank       string
}

type MCQService struct {
	analyzer nlp.Analyzer
	opts     MCQOptions
	logger   *logrus.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewMCQService(analyzer nlp.Analyzer, rng *rand.Rand, opts MCQOptions, logger *logrus.Logger) *MCQService {
	return &MCQService{
		analyzer: analyzer,
		opts:     opts,
		logger:   logger,
		rng:      rng,
	}
}

// Generate builds at most numQuestions fill-in-the-blank questions from
// paragraph. Sentences with fewer than two common nouns are skipped, so the
// result may be shorter than requested or empty.
func (s *MCQService) Generate(paragraph string, numQuestions int) ([]model.MCQ, error) {
	if strings.TrimSpace(paragraph) == "" {
		return nil, ErrEmptyParagraph
	}

	sentences, err := s.analyzer.Sentences(paragraph)
	if err != nil {
		return nil, fmt.Errorf("段落分句失败: %w", err)
	}

	n := min(numQuestions, len(sentences))
	mcqs := make([]model.MCQ, 0, max(n, 0))
	if n <= 0 {
		return mcqs, nil
	}

	var picks []int
	s.withRand(func(r *rand.Rand) {
		picks = r.Perm(len(sentences))[:n]
	})

	lower := cases.Lower(language.Und)
	skipped := 0
	for _, idx := range picks {
		sentence := lower.String(sentences[idx])
		nouns, err := s.analyzer.Nouns(sentence)
		if err != nil {
			return nil, fmt.Errorf("提取名词失败: %w", err)
		}

		var mcq model.MCQ
		var ok bool
		s.withRand(func(r *rand.Rand) {
			mcq, ok = buildMCQ(sentence, nouns, s.opts, r)
		})
		if !ok {
			skipped++
			continue
		}
		mcqs = append(mcqs, mcq)
	}

	s.logger.WithFields(logrus.Fields{
		"sentences": len(sentences),
		"sampled":   n,
		"skipped":   skipped,
		"mcqs":      len(mcqs),
	}).Debug("MCQ 生成完成")
	return mcqs, nil
}

func (s *MCQService) withRand(fn func(r *rand.Rand)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.rng)
}

// buildMCQ turns one lower-cased sentence into a question. The first noun is
// the answer; the rest are distractors, padded with the placeholder up to
// three.
func buildMCQ(sentence string, nouns []string, opts MCQOptions, r *rand.Rand) (model.MCQ, bool) {
	if len(nouns) < 2 {
		return model.MCQ{}, false
	}

	answer := nouns[0]
	question := strings.Replace(sentence, answer, opts.Blank, 1)

	distractors := append([]string(nil), nouns[1:]...)
	for len(distractors) < numDistractors {
		distractors = append(distractors, opts.Placeholder)
	}
	r.Shuffle(len(distractors), func(i, j int) {
		distractors[i], distractors[j] = distractors[j], distractors[i]
	})

	choices := make([]string, 0, numDistractors+1)
	choices = append(choices, answer)
	choices = append(choices, distractors[:numDistractors]...)
	r.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return model.MCQ{
		Question: question,
		Choices:  choices,
		Answer:   answer,
	}, true
}
