package nlp

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jdkato/prose/v2"
)

// Penn Treebank tags for common nouns. NNP/NNPS are proper nouns and are left out.
var commonNounTags = map[string]struct{}{
	"NN":  {},
	"NNS": {},
}

func isCommonNoun(tag string) bool {
	_, ok := commonNounTags[tag]
	return ok
}

type ProseAnalyzer struct {
	model *prose.Model
}

var (
	defaultOnce     sync.Once
	defaultAnalyzer *ProseAnalyzer
	defaultErr      error
)

// Default returns the process-wide analyzer. The tagging model is loaded on
// the first call and shared read-only afterwards.
func Default() (*ProseAnalyzer, error) {
	defaultOnce.Do(func() {
		defaultAnalyzer, defaultErr = loadProseAnalyzer()
	})
	return defaultAnalyzer, defaultErr
}

func loadProseAnalyzer() (*ProseAnalyzer, error) {
	doc, err := prose.NewDocument("",
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("加载语言模型失败: %w", err)
	}
	if doc.Model == nil {
		return nil, fmt.Errorf("加载语言模型失败: 模型为空")
	}
	return &ProseAnalyzer{model: doc.Model}, nil
}

func (a *ProseAnalyzer) Sentences(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.UsingModel(a.model),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("分句失败: %w", err)
	}

	var sentences []string
	for _, s := range doc.Sentences() {
		if t := strings.TrimSpace(s.Text); t != "" {
			sentences = append(sentences, t)
		}
	}
	return sentences, nil
}

func (a *ProseAnalyzer) Nouns(sentence string) ([]string, error) {
	doc, err := prose.NewDocument(sentence,
		prose.UsingModel(a.model),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("词性标注失败: %w", err)
	}

	var nouns []string
	for _, tok := range doc.Tokens() {
		if isCommonNoun(tok.Tag) {
			nouns = append(nouns, tok.Text)
		}
	}
	return nouns, nil
}
